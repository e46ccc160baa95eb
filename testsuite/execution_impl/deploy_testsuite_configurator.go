/*
 * Copyright (c) 2021 - present Kurtosis Technologies LLC.
 * All Rights Reserved.
 */

package execution_impl

import (
	"io"
	"strings"

	"github.com/kurtosis-tech/terra-smart-contract-sample-testsuite/testsuite/networks_impl"
	"github.com/kurtosis-tech/terra-smart-contract-sample-testsuite/testsuite/services_impl/wallet"
	"github.com/kurtosis-tech/terra-smart-contract-sample-testsuite/testsuite/testsuite_impl"
	"github.com/kurtosis-tech/terra-smart-contract-sample-testsuite/testsuite/testsuite_impl/contract_deployment_test"
	"github.com/palantir/stacktrace"
	"github.com/sirupsen/logrus"
)

type DeployTestsuiteConfigurator struct{}

func NewDeployTestsuiteConfigurator() *DeployTestsuiteConfigurator {
	return &DeployTestsuiteConfigurator{}
}

func (t DeployTestsuiteConfigurator) SetLogLevel(logLevelStr string, out io.Writer) error {
	level, err := logrus.ParseLevel(logLevelStr)
	if err != nil {
		return stacktrace.Propagate(err, "An error occurred parsing loglevel string '%v'", logLevelStr)
	}
	logrus.SetLevel(level)
	logrus.SetOutput(out)
	logrus.SetFormatter(&logrus.TextFormatter{
		ForceColors:   true,
		FullTimestamp: true,
	})
	return nil
}

func (t DeployTestsuiteConfigurator) CreateSuite(args DeployTestsuiteArgs) (*testsuite_impl.SmartContractTestsuite, error) {
	if err := validateArgs(args); err != nil {
		return nil, stacktrace.Propagate(err, "An error occurred validating the testsuite args")
	}

	networkConfig := networks_impl.TerraNetworkConfig{
		NetworkUrl:     args.NetworkUrl,
		ChainId:        args.ChainId,
		RequestTimeout: args.RequestTimeout,
		WalletSeeds:    args.WalletSeeds,
		WalletKeyOptions: wallet.MnemonicKeyOptions{
			CoinType:      args.CoinType,
			Account:       args.AccountIndex,
			Index:         0,
			AddressPrefix: args.AddressPrefix,
		},
	}
	testConfig := contract_deployment_test.ContractDeploymentTestConfig{
		WasmFilepath:   args.WasmFilepath,
		Verbose:        args.Verbose,
		VerifyContract: args.VerifyContract,
	}
	suite := testsuite_impl.NewSmartContractTestsuite(networkConfig, testConfig)
	return suite, nil
}

func validateArgs(args DeployTestsuiteArgs) error {
	if strings.TrimSpace(args.NetworkUrl) == "" {
		return stacktrace.NewError("Network URL is empty")
	}
	if strings.TrimSpace(args.ChainId) == "" {
		return stacktrace.NewError("Chain ID is empty")
	}
	if strings.TrimSpace(args.WalletSeeds) == "" {
		return stacktrace.NewError("Wallet seeds are empty; set '%v' in the config or the %v_%v environment variable",
			WalletSeedsKey,
			envVarPrefix,
			strings.ToUpper(WalletSeedsKey))
	}
	if strings.TrimSpace(args.WasmFilepath) == "" {
		return stacktrace.NewError("Wasm filepath is empty")
	}
	if strings.TrimSpace(args.AddressPrefix) == "" {
		return stacktrace.NewError("Account address prefix is empty")
	}
	return nil
}
