/*
 * Copyright (c) 2021 - present Kurtosis Technologies LLC.
 * All Rights Reserved.
 */

package main

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/kurtosis-tech/terra-smart-contract-sample-testsuite/testsuite/execution_impl"
	"github.com/kurtosis-tech/terra-smart-contract-sample-testsuite/testsuite/services_impl/wallet"
	"github.com/palantir/stacktrace"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const (
	successExitCode = 0
	failureExitCode = 1

	defaultDotenvFilepath = ".env"
)

var (
	configFilepath string
	dotenvFilepath string
)

var rootCmd = &cobra.Command{
	Use:           "terra-deploy",
	Short:         "Deploys and instantiates a wasm contract on a Terra network",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Upload the contract code, instantiate it, and print the contract address",
	Args:  cobra.ExactArgs(0),
	RunE:  runTestsuite,
}

var addressCmd = &cobra.Command{
	Use:   "address",
	Short: "Print the deployer address derived from the configured mnemonic",
	Args:  cobra.ExactArgs(0),
	RunE:  printAddress,
}

func main() {
	addFlags()
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(addressCmd)

	if err := rootCmd.Execute(); err != nil {
		logrus.Errorf("An error occurred running the testsuite:\n%v", err)
		os.Exit(failureExitCode)
	}
	os.Exit(successExitCode)
}

func addFlags() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configFilepath, "config", "c", "", "config file (default: terra-deploy.yaml in /etc/terra-deploy, $HOME/.config, .config or .)")
	flags.StringVar(&dotenvFilepath, "env-file", defaultDotenvFilepath, "dotenv file to load into the environment before reading the config, if it exists")
	flags.String("network-url", "", "LCD URL of the network to deploy to")
	flags.String("chain-id", "", "chain ID of the network to deploy to")
	flags.String("wasm-filepath", "", "path to the compiled contract")
	flags.String("log-level", "", "log level (e.g. debug, info, warn)")
	flags.Bool("verbose", false, "log every transaction hash and raw log")
	flags.Bool("verify-contract", false, "query and execute the contract after instantiating it")
}

func loadArgs(cmd *cobra.Command) (*execution_impl.DeployTestsuiteArgs, error) {
	args, err := execution_impl.LoadArgs(configFilepath, dotenvFilepath, cmd.Flags())
	if err != nil {
		return nil, stacktrace.Propagate(err, "An error occurred loading the testsuite args")
	}
	configurator := execution_impl.NewDeployTestsuiteConfigurator()
	if err := configurator.SetLogLevel(args.LogLevel, os.Stdout); err != nil {
		return nil, stacktrace.Propagate(err, "An error occurred setting the log level")
	}
	return args, nil
}

func runTestsuite(cmd *cobra.Command, _ []string) error {
	args, err := loadArgs(cmd)
	if err != nil {
		return err
	}
	suite, err := execution_impl.NewDeployTestsuiteConfigurator().CreateSuite(*args)
	if err != nil {
		return stacktrace.Propagate(err, "An error occurred creating the testsuite")
	}

	tests := suite.GetTests()
	testNames := make([]string, 0, len(tests))
	for name := range tests {
		testNames = append(testNames, name)
	}
	sort.Strings(testNames)

	ctx := context.Background()
	for _, name := range testNames {
		logrus.Infof("Running test '%v'...", name)
		if err := tests[name].Run(ctx); err != nil {
			return stacktrace.Propagate(err, "Test '%v' failed", name)
		}
		logrus.Infof("Test '%v' passed", name)
	}
	return nil
}

func printAddress(cmd *cobra.Command, _ []string) error {
	args, err := loadArgs(cmd)
	if err != nil {
		return err
	}
	key, err := wallet.NewMnemonicKey(args.WalletSeeds, wallet.MnemonicKeyOptions{
		CoinType:      args.CoinType,
		Account:       args.AccountIndex,
		AddressPrefix: args.AddressPrefix,
	})
	if err != nil {
		return stacktrace.Propagate(err, "An error occurred deriving the deployer key")
	}
	fmt.Println(key.AccAddress())
	return nil
}
