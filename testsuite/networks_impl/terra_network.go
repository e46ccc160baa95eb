package networks_impl

import (
	"time"

	"github.com/kurtosis-tech/terra-smart-contract-sample-testsuite/testsuite/services_impl/lcd"
	"github.com/kurtosis-tech/terra-smart-contract-sample-testsuite/testsuite/services_impl/wallet"
	"github.com/palantir/stacktrace"
	"github.com/sirupsen/logrus"
)

type TerraNetworkConfig struct {
	NetworkUrl     string
	ChainId        string
	RequestTimeout time.Duration

	WalletSeeds      string
	WalletKeyOptions wallet.MnemonicKeyOptions
}

// TerraNetwork hands out the LCD client and deployer wallet for an already-running Terra network
type TerraNetwork struct {
	config TerraNetworkConfig

	runPhaseInitializationComplete bool
}

func NewTerraNetwork(config TerraNetworkConfig) *TerraNetwork {
	return &TerraNetwork{
		config:                         config,
		runPhaseInitializationComplete: false,
	}
}

func (network *TerraNetwork) ExecuteRunPhaseInitialization() (*wallet.Wallet, *lcd.LcdClient, error) {
	if network.runPhaseInitializationComplete {
		return nil, nil, stacktrace.NewError("Run phase initialization already executed")
	}

	logrus.Info("Creating LCD client...")
	lcdClient := lcd.NewLcdClient(network.config.NetworkUrl, network.config.ChainId, network.config.RequestTimeout)
	logrus.Infof("LCD client for chain '%v' at '%v' created", lcdClient.GetChainID(), lcdClient.GetURL())

	logrus.Info("Deriving deployer wallet from mnemonic...")
	key, err := wallet.NewMnemonicKey(network.config.WalletSeeds, network.config.WalletKeyOptions)
	if err != nil {
		return nil, nil, stacktrace.Propagate(err, "An error occurred deriving the deployer key from the mnemonic")
	}
	deployer := wallet.NewWallet(lcdClient, key)
	logrus.Info("Deployer wallet derived")

	network.runPhaseInitializationComplete = true
	return deployer, lcdClient, nil
}
