package contract_deployment_test

import (
	"context"
	"encoding/base64"
	"errors"
	"os"
	"strconv"

	jsoniter "github.com/json-iterator/go"
	"github.com/kurtosis-tech/terra-smart-contract-sample-testsuite/testsuite/services_impl/lcd"
	"github.com/kurtosis-tech/terra-smart-contract-sample-testsuite/testsuite/services_impl/wallet"
	"github.com/palantir/stacktrace"
	"github.com/sirupsen/logrus"
)

const (
	txGasLimit  = 2000000
	txFeeDenom  = "uusd"
	txFeeAmount = 1000000

	storeCodeEventType = "store_code"
	codeIdAttributeKey = "code_id"

	instantiateContractEventType = "instantiate_contract"
	contractAddressAttributeKey  = "contract_address"

	prettyLogIndent = "  "
)

var ErrLogAttributeNotFound = errors.New("the expected attribute was not found in the first transaction log")

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type txSigner interface {
	GetAccAddress() string
	CreateAndSignTx(ctx context.Context, options wallet.CreateTxOptions) (*lcd.StdTx, error)
}

type txBroadcaster interface {
	BroadcastTx(ctx context.Context, tx lcd.StdTx, mode lcd.BroadcastMode) (*lcd.TxResult, error)
}

type contractQuerier interface {
	QueryContract(ctx context.Context, contractAddress string, queryMsg interface{}, resultObj interface{}) error
}

type contractClient interface {
	txBroadcaster
	contractQuerier
}

// Uploads the contract code and returns the code ID the chain assigned to it
func storeCode(ctx context.Context, client txBroadcaster, deployer txSigner, filepath string, verbose bool) (uint64, error) {
	code, err := os.ReadFile(filepath)
	if err != nil {
		return 0, stacktrace.Propagate(err, "An error occurred reading the contract code at '%v'", filepath)
	}
	msg := lcd.NewMsgStoreCode(deployer.GetAccAddress(), base64.StdEncoding.EncodeToString(code))

	result, err := sendTransaction(ctx, client, deployer, []lcd.Msg{msg}, verbose)
	if err != nil {
		return 0, stacktrace.Propagate(err, "An error occurred sending the store code transaction")
	}

	codeIdStr, err := getFirstLogAttribute(result, storeCodeEventType, codeIdAttributeKey)
	if err != nil {
		return 0, stacktrace.Propagate(err, "An error occurred getting the code ID from store code transaction '%v'", result.TxHash)
	}
	codeId, err := strconv.ParseUint(codeIdStr, 10, 64)
	if err != nil {
		return 0, stacktrace.Propagate(err, "An error occurred parsing code ID '%v'", codeIdStr)
	}
	if codeId == 0 {
		return 0, stacktrace.NewError("Store code transaction '%v' returned code ID 0", result.TxHash)
	}
	return codeId, nil
}

// Instantiates a contract from an existing code ID; getting the contract address out of the result is up to the caller
func instantiateContract(
		ctx context.Context,
		client txBroadcaster,
		deployer txSigner,
		admin txSigner,
		codeId uint64,
		initMsg interface{},
		verbose bool) (*lcd.TxResult, error) {
	msg, err := lcd.NewMsgInstantiateContract(deployer.GetAccAddress(), admin.GetAccAddress(), codeId, initMsg)
	if err != nil {
		return nil, stacktrace.Propagate(err, "An error occurred creating the instantiate message for code ID '%v'", codeId)
	}
	result, err := sendTransaction(ctx, client, deployer, []lcd.Msg{msg}, verbose)
	if err != nil {
		return nil, stacktrace.Propagate(err, "An error occurred sending the instantiate transaction for code ID '%v'", codeId)
	}
	return result, nil
}

func executeContract(
		ctx context.Context,
		client txBroadcaster,
		sender txSigner,
		contractAddress string,
		executeMsg interface{},
		verbose bool) (*lcd.TxResult, error) {
	msg, err := lcd.NewMsgExecuteContract(sender.GetAccAddress(), contractAddress, executeMsg)
	if err != nil {
		return nil, stacktrace.Propagate(err, "An error occurred creating the execute message for contract '%v'", contractAddress)
	}
	result, err := sendTransaction(ctx, client, sender, []lcd.Msg{msg}, verbose)
	if err != nil {
		return nil, stacktrace.Propagate(err, "An error occurred sending the execute transaction to contract '%v'", contractAddress)
	}
	return result, nil
}

// Signs the messages with the fixed fee and broadcasts them, failing with a *lcd.TxError root cause
// if the node reports that the transaction failed
func sendTransaction(ctx context.Context, client txBroadcaster, sender txSigner, msgs []lcd.Msg, verbose bool) (*lcd.TxResult, error) {
	tx, err := sender.CreateAndSignTx(ctx, wallet.CreateTxOptions{
		Msgs: msgs,
		Fee:  lcd.NewStdFee(txGasLimit, lcd.NewCoin(txFeeDenom, txFeeAmount)),
	})
	if err != nil {
		return nil, stacktrace.Propagate(err, "An error occurred creating and signing the transaction")
	}

	result, err := client.BroadcastTx(ctx, *tx, lcd.BroadcastModeBlock)
	if err != nil {
		return nil, stacktrace.Propagate(err, "An error occurred broadcasting the transaction")
	}

	if verbose {
		logTxResult(result)
	}

	if result.IsTxError() {
		return nil, stacktrace.Propagate(lcd.NewTxError(result), "Transaction '%v' was broadcast but failed", result.TxHash)
	}
	return result, nil
}

func findContractAddress(result *lcd.TxResult) (string, error) {
	contractAddress, err := getFirstLogAttribute(result, instantiateContractEventType, contractAddressAttributeKey)
	if err != nil {
		return "", stacktrace.Propagate(err, "An error occurred getting the contract address from instantiate transaction '%v'", result.TxHash)
	}
	if contractAddress == "" {
		return "", stacktrace.NewError("Instantiate transaction '%v' has an empty contract address", result.TxHash)
	}
	return contractAddress, nil
}

// ========================================================================================================
//                                     Private helper functions
// ========================================================================================================
func getFirstLogAttribute(result *lcd.TxResult, eventType string, attributeKey string) (string, error) {
	if len(result.Logs) == 0 {
		return "", stacktrace.Propagate(ErrLogAttributeNotFound, "Transaction '%v' has no logs", result.TxHash)
	}
	attributes, found := result.Logs[0].EventsByType()[eventType]
	if !found {
		return "", stacktrace.Propagate(ErrLogAttributeNotFound, "No '%v' event found in the first log", eventType)
	}
	values := attributes[attributeKey]
	if len(values) == 0 {
		return "", stacktrace.Propagate(ErrLogAttributeNotFound, "No '%v' attribute found in the '%v' event", attributeKey, eventType)
	}
	return values[0], nil
}

func logTxResult(result *lcd.TxResult) {
	logrus.Infof("TxHash: %v", result.TxHash)
	var rawLog interface{}
	if err := json.Unmarshal([]byte(result.RawLog), &rawLog); err != nil {
		logrus.Infof("Failed to parse log! Raw log: %v", result.RawLog)
		return
	}
	prettyLog, err := json.MarshalIndent(rawLog, "", prettyLogIndent)
	if err != nil {
		logrus.Infof("Failed to parse log! Raw log: %v", result.RawLog)
		return
	}
	logrus.Infof("Raw log: %v", string(prettyLog))
}
