package testsuite_impl

import (
	"testing"

	"github.com/kurtosis-tech/terra-smart-contract-sample-testsuite/testsuite/networks_impl"
	"github.com/kurtosis-tech/terra-smart-contract-sample-testsuite/testsuite/testsuite_impl/contract_deployment_test"
	"github.com/stretchr/testify/require"
)

func TestGetTests_HandsOutFreshTests(t *testing.T) {
	suite := NewSmartContractTestsuite(
		networks_impl.TerraNetworkConfig{NetworkUrl: "http://localhost:1317", ChainId: "localterra"},
		contract_deployment_test.ContractDeploymentTestConfig{WasmFilepath: "contract.wasm"})

	first := suite.GetTests()
	second := suite.GetTests()
	require.Len(t, first, 1)
	require.Contains(t, first, ContractDeploymentTestName)
	require.NotSame(t, first[ContractDeploymentTestName], second[ContractDeploymentTestName])
}
