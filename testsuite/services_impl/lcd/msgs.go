/*
 * Copyright (c) 2021 - present Kurtosis Technologies LLC.
 * All Rights Reserved.
 */

package lcd

import (
	"strconv"

	jsoniter "github.com/json-iterator/go"
	"github.com/palantir/stacktrace"
)

const (
	msgStoreCodeType           = "wasm/MsgStoreCode"
	msgInstantiateContractType = "wasm/MsgInstantiateContract"
	msgExecuteContractType     = "wasm/MsgExecuteContract"
)

// Msg is a message that can be wrapped in a transaction. Its exported fields are
// the "value" half of its amino JSON representation.
type Msg interface {
	AminoType() string
}

// AminoMsg is the {"type": ..., "value": ...} envelope the LCD expects for every message
type AminoMsg struct {
	Type  string `json:"type"`
	Value Msg    `json:"value"`
}

func WrapMsgs(msgs []Msg) []AminoMsg {
	result := make([]AminoMsg, 0, len(msgs))
	for _, msg := range msgs {
		result = append(result, AminoMsg{
			Type:  msg.AminoType(),
			Value: msg,
		})
	}
	return result
}

type Coin struct {
	Denom  string `json:"denom"`
	Amount string `json:"amount"`
}

func NewCoin(denom string, amount int64) Coin {
	return Coin{
		Denom:  denom,
		Amount: strconv.FormatInt(amount, 10),
	}
}

type StdFee struct {
	Amount []Coin `json:"amount"`
	Gas    uint64 `json:"gas,string"`
}

func NewStdFee(gas uint64, amount ...Coin) StdFee {
	if amount == nil {
		amount = []Coin{}
	}
	return StdFee{
		Amount: amount,
		Gas:    gas,
	}
}

// ====================================================================================================
//                                         wasm messages
// ====================================================================================================
type MsgStoreCode struct {
	Sender string `json:"sender"`
	// Base64 of the compiled contract
	WASMByteCode string `json:"wasm_byte_code"`
}

func NewMsgStoreCode(sender string, wasmByteCode string) *MsgStoreCode {
	return &MsgStoreCode{Sender: sender, WASMByteCode: wasmByteCode}
}

func (msg MsgStoreCode) AminoType() string {
	return msgStoreCodeType
}

type MsgInstantiateContract struct {
	Sender    string              `json:"sender"`
	Admin     string              `json:"admin"`
	CodeID    uint64              `json:"code_id,string"`
	InitMsg   jsoniter.RawMessage `json:"init_msg"`
	InitCoins []Coin              `json:"init_coins"`
}

// NewMsgInstantiateContract serializes initMsg to JSON, so it can be any value that marshals to a JSON object
func NewMsgInstantiateContract(sender string, admin string, codeId uint64, initMsg interface{}, initCoins ...Coin) (*MsgInstantiateContract, error) {
	initMsgBytes, err := json.Marshal(initMsg)
	if err != nil {
		return nil, stacktrace.Propagate(err, "An error occurred serializing the init message for code ID '%v'", codeId)
	}
	if initCoins == nil {
		initCoins = []Coin{}
	}
	return &MsgInstantiateContract{
		Sender:    sender,
		Admin:     admin,
		CodeID:    codeId,
		InitMsg:   initMsgBytes,
		InitCoins: initCoins,
	}, nil
}

func (msg MsgInstantiateContract) AminoType() string {
	return msgInstantiateContractType
}

type MsgExecuteContract struct {
	Sender     string              `json:"sender"`
	Contract   string              `json:"contract"`
	ExecuteMsg jsoniter.RawMessage `json:"execute_msg"`
	Coins      []Coin              `json:"coins"`
}

func NewMsgExecuteContract(sender string, contract string, executeMsg interface{}, coins ...Coin) (*MsgExecuteContract, error) {
	executeMsgBytes, err := json.Marshal(executeMsg)
	if err != nil {
		return nil, stacktrace.Propagate(err, "An error occurred serializing the execute message for contract '%v'", contract)
	}
	if coins == nil {
		coins = []Coin{}
	}
	return &MsgExecuteContract{
		Sender:     sender,
		Contract:   contract,
		ExecuteMsg: executeMsgBytes,
		Coins:      coins,
	}, nil
}

func (msg MsgExecuteContract) AminoType() string {
	return msgExecuteContractType
}
