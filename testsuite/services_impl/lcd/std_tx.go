/*
 * Copyright (c) 2021 - present Kurtosis Technologies LLC.
 * All Rights Reserved.
 */

package lcd

import (
	jsoniter "github.com/json-iterator/go"
	"github.com/palantir/stacktrace"
)

const (
	secp256k1PubKeyType = "tendermint/PubKeySecp256k1"
)

// Sign bytes must match what the node re-derives: map keys sorted, HTML escaped, numbers untouched
var signBytesJson = jsoniter.Config{
	EscapeHTML:  true,
	SortMapKeys: true,
	UseNumber:   true,
}.Froze()

type PubKey struct {
	Type string `json:"type"`
	// Base64 of the compressed public key; encoding/json-compatible []byte handling does the encoding
	Value []byte `json:"value"`
}

func NewSecp256k1PubKey(compressedPubKey []byte) PubKey {
	return PubKey{
		Type:  secp256k1PubKeyType,
		Value: compressedPubKey,
	}
}

type StdSignature struct {
	PubKey    PubKey `json:"pub_key"`
	Signature []byte `json:"signature"`
}

type StdTx struct {
	Msg        []AminoMsg     `json:"msg"`
	Fee        StdFee         `json:"fee"`
	Signatures []StdSignature `json:"signatures"`
	Memo       string         `json:"memo"`
}

type StdSignDoc struct {
	AccountNumber uint64     `json:"account_number,string"`
	ChainID       string     `json:"chain_id"`
	Fee           StdFee     `json:"fee"`
	Memo          string     `json:"memo"`
	Msgs          []AminoMsg `json:"msgs"`
	Sequence      uint64     `json:"sequence,string"`
}

func NewStdSignDoc(chainId string, accountNumber uint64, sequence uint64, fee StdFee, msgs []Msg, memo string) StdSignDoc {
	return StdSignDoc{
		AccountNumber: accountNumber,
		ChainID:       chainId,
		Fee:           fee,
		Memo:          memo,
		Msgs:          WrapMsgs(msgs),
		Sequence:      sequence,
	}
}

// Bytes returns the canonical JSON that gets hashed and signed
func (doc StdSignDoc) Bytes() ([]byte, error) {
	docBytes, err := signBytesJson.Marshal(doc)
	if err != nil {
		return nil, stacktrace.Propagate(err, "An error occurred serializing the sign doc")
	}
	var generic interface{}
	if err := signBytesJson.Unmarshal(docBytes, &generic); err != nil {
		return nil, stacktrace.Propagate(err, "An error occurred deserializing the sign doc into a generic value for key sorting")
	}
	sortedBytes, err := signBytesJson.Marshal(generic)
	if err != nil {
		return nil, stacktrace.Propagate(err, "An error occurred serializing the key-sorted sign doc")
	}
	return sortedBytes, nil
}
