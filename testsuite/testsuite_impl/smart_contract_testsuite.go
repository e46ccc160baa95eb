/*
 * Copyright (c) 2020 - present Kurtosis Technologies LLC.
 * All Rights Reserved.
 */

package testsuite_impl

import (
	"context"

	"github.com/kurtosis-tech/terra-smart-contract-sample-testsuite/testsuite/networks_impl"
	"github.com/kurtosis-tech/terra-smart-contract-sample-testsuite/testsuite/testsuite_impl/contract_deployment_test"
)

const (
	ContractDeploymentTestName = "contractDeploymentTest"
)

type Test interface {
	Run(ctx context.Context) error
}

type SmartContractTestsuite struct {
	networkConfig networks_impl.TerraNetworkConfig
	testConfig    contract_deployment_test.ContractDeploymentTestConfig
}

func NewSmartContractTestsuite(networkConfig networks_impl.TerraNetworkConfig, testConfig contract_deployment_test.ContractDeploymentTestConfig) *SmartContractTestsuite {
	return &SmartContractTestsuite{networkConfig: networkConfig, testConfig: testConfig}
}

// Each call hands out fresh tests, since a network can only be initialized once
func (suite SmartContractTestsuite) GetTests() map[string]Test {
	tests := map[string]Test{
		ContractDeploymentTestName: contract_deployment_test.NewContractDeploymentTest(
			networks_impl.NewTerraNetwork(suite.networkConfig),
			suite.testConfig,
		),
	}

	return tests
}
