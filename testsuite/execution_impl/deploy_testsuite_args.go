/*
 * Copyright (c) 2021 - present Kurtosis Technologies LLC.
 * All Rights Reserved.
 */

package execution_impl

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kurtosis-tech/terra-smart-contract-sample-testsuite/testsuite/services_impl/lcd"
	"github.com/kurtosis-tech/terra-smart-contract-sample-testsuite/testsuite/services_impl/wallet"
	"github.com/palantir/stacktrace"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	defaultConfigName = "terra-deploy"
	defaultConfigType = "yaml"

	// e.g. TERRA_DEPLOY_WALLET_SEEDS
	envVarPrefix = "TERRA_DEPLOY"

	NetworkUrlKey     = "network_url"
	ChainIdKey        = "chain_id"
	WalletSeedsKey    = "wallet_seeds"
	WasmFilepathKey   = "wasm_filepath"
	CoinTypeKey       = "coin_type"
	AccountIndexKey   = "account_index"
	AddressPrefixKey  = "address_prefix"
	RequestTimeoutKey = "request_timeout"
	LogLevelKey       = "log_level"
	VerboseKey        = "verbose"
	VerifyContractKey = "verify_contract"

	defaultNetworkUrl   = "https://bombay-lcd.terra.dev"
	defaultChainId      = "bombay-12"
	defaultWasmFilepath = "artifacts/interview_challenge.wasm"
	defaultLogLevel     = "info"
)

var defaultConfigPaths = []string{
	"/etc/terra-deploy",
	"$HOME/.config",
	".config",
	".",
}

// Fields are public so viper can unmarshal them
type DeployTestsuiteArgs struct {
	NetworkUrl     string        `mapstructure:"network_url"`
	ChainId        string        `mapstructure:"chain_id"`
	WalletSeeds    string        `mapstructure:"wallet_seeds"`
	WasmFilepath   string        `mapstructure:"wasm_filepath"`
	CoinType       uint32        `mapstructure:"coin_type"`
	AccountIndex   uint32        `mapstructure:"account_index"`
	AddressPrefix  string        `mapstructure:"address_prefix"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	LogLevel       string        `mapstructure:"log_level"`
	Verbose        bool          `mapstructure:"verbose"`
	VerifyContract bool          `mapstructure:"verify_contract"`
}

/*
Loads the args from, in increasing precedence: defaults, the config file, the environment (optionally seeded
from a dotenv file), and any changed flags bound to a key of the same name with dashes.

An empty configFilepath searches the default config paths and tolerates a missing file; an empty dotenvFilepath
skips dotenv loading.
*/
func LoadArgs(configFilepath string, dotenvFilepath string, flags *pflag.FlagSet) (*DeployTestsuiteArgs, error) {
	if dotenvFilepath != "" {
		if err := godotenv.Load(dotenvFilepath); err != nil && !os.IsNotExist(err) {
			return nil, stacktrace.Propagate(err, "An error occurred loading dotenv file '%v'", dotenvFilepath)
		}
	}

	v := viper.New()
	v.SetDefault(NetworkUrlKey, defaultNetworkUrl)
	v.SetDefault(ChainIdKey, defaultChainId)
	v.SetDefault(WalletSeedsKey, "")
	v.SetDefault(WasmFilepathKey, defaultWasmFilepath)
	v.SetDefault(CoinTypeKey, wallet.TerraCoinType)
	v.SetDefault(AccountIndexKey, 0)
	v.SetDefault(AddressPrefixKey, wallet.TerraAccAddressPrefix)
	v.SetDefault(RequestTimeoutKey, lcd.DefaultRequestTimeout)
	v.SetDefault(LogLevelKey, defaultLogLevel)
	v.SetDefault(VerboseKey, false)
	v.SetDefault(VerifyContractKey, false)

	v.SetEnvPrefix(envVarPrefix)
	v.AutomaticEnv()

	if flags != nil {
		for _, key := range v.AllKeys() {
			flag := flags.Lookup(strings.ReplaceAll(key, "_", "-"))
			if flag == nil {
				continue
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return nil, stacktrace.Propagate(err, "An error occurred binding flag '%v' to config key '%v'", flag.Name, key)
			}
		}
	}

	if configFilepath != "" {
		v.SetConfigFile(configFilepath)
	} else {
		v.SetConfigName(defaultConfigName)
		v.SetConfigType(defaultConfigType)
		for _, configPath := range defaultConfigPaths {
			v.AddConfigPath(configPath)
		}
	}
	if err := v.ReadInConfig(); err != nil {
		if _, isNotFound := err.(viper.ConfigFileNotFoundError); !isNotFound || configFilepath != "" {
			return nil, stacktrace.Propagate(err, "An error occurred reading the config file")
		}
	}

	args := &DeployTestsuiteArgs{}
	if err := v.Unmarshal(args); err != nil {
		return nil, stacktrace.Propagate(err, "An error occurred unmarshalling the config into the testsuite args")
	}
	return args, nil
}
