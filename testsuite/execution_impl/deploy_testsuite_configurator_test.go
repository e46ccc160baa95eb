package execution_impl

import (
	"bytes"
	"os"
	"testing"
	"time"

	"github.com/kurtosis-tech/terra-smart-contract-sample-testsuite/testsuite/testsuite_impl"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func newValidArgs() DeployTestsuiteArgs {
	return DeployTestsuiteArgs{
		NetworkUrl:     "http://localhost:1317",
		ChainId:        "localterra",
		WalletSeeds:    "notice oak worry limit wrap speak medal online prefer cluster roof addict wrist behave treat actual wasp year salad speed social layer crew genius",
		WasmFilepath:   "artifacts/interview_challenge.wasm",
		CoinType:       330,
		AddressPrefix:  "terra",
		RequestTimeout: 5 * time.Second,
		LogLevel:       "info",
	}
}

func TestValidateArgs(t *testing.T) {
	require.NoError(t, validateArgs(newValidArgs()))

	invalidations := map[string]func(args *DeployTestsuiteArgs){
		"empty network url":    func(args *DeployTestsuiteArgs) { args.NetworkUrl = "" },
		"blank chain id":       func(args *DeployTestsuiteArgs) { args.ChainId = "  " },
		"empty wallet seeds":   func(args *DeployTestsuiteArgs) { args.WalletSeeds = "" },
		"empty wasm filepath":  func(args *DeployTestsuiteArgs) { args.WasmFilepath = "" },
		"empty address prefix": func(args *DeployTestsuiteArgs) { args.AddressPrefix = "" },
	}
	for name, invalidate := range invalidations {
		t.Run(name, func(t *testing.T) {
			args := newValidArgs()
			invalidate(&args)
			require.Error(t, validateArgs(args))
		})
	}
}

func TestValidateArgs_WalletSeedsErrorNamesEnvVar(t *testing.T) {
	args := newValidArgs()
	args.WalletSeeds = ""
	err := validateArgs(args)
	require.Error(t, err)
	require.Contains(t, err.Error(), "TERRA_DEPLOY_WALLET_SEEDS")
}

func TestCreateSuite(t *testing.T) {
	suite, err := NewDeployTestsuiteConfigurator().CreateSuite(newValidArgs())
	require.NoError(t, err)

	tests := suite.GetTests()
	require.Len(t, tests, 1)
	require.Contains(t, tests, testsuite_impl.ContractDeploymentTestName)
}

func TestCreateSuite_InvalidArgs(t *testing.T) {
	args := newValidArgs()
	args.ChainId = ""
	suite, err := NewDeployTestsuiteConfigurator().CreateSuite(args)
	require.Error(t, err)
	require.Nil(t, suite)
}

func TestSetLogLevel(t *testing.T) {
	originalLevel := logrus.GetLevel()
	defer logrus.SetLevel(originalLevel)
	defer logrus.SetOutput(os.Stderr)

	configurator := NewDeployTestsuiteConfigurator()
	out := &bytes.Buffer{}
	require.NoError(t, configurator.SetLogLevel("debug", out))
	require.Equal(t, logrus.DebugLevel, logrus.GetLevel())

	logrus.Debug("Debug logging enabled")
	require.Contains(t, out.String(), "Debug logging enabled")

	require.Error(t, configurator.SetLogLevel("loud", out))
	require.Equal(t, logrus.DebugLevel, logrus.GetLevel())
}
