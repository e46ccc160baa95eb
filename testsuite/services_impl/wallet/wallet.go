/*
 * Copyright (c) 2021 - present Kurtosis Technologies LLC.
 * All Rights Reserved.
 */

package wallet

import (
	"context"

	"github.com/kurtosis-tech/terra-smart-contract-sample-testsuite/testsuite/services_impl/lcd"
	"github.com/palantir/stacktrace"
	"github.com/sirupsen/logrus"
)

type AccountInfoProvider interface {
	GetAccountInfo(ctx context.Context, address string) (*lcd.AccountInfo, error)
	GetChainID() string
}

type CreateTxOptions struct {
	Msgs []lcd.Msg
	Fee  lcd.StdFee
	Memo string
}

// Wallet signs transactions with a key, fetching the account number and sequence from the chain
type Wallet struct {
	accounts AccountInfoProvider
	key      *MnemonicKey
}

func NewWallet(accounts AccountInfoProvider, key *MnemonicKey) *Wallet {
	return &Wallet{accounts: accounts, key: key}
}

func (wallet Wallet) GetKey() *MnemonicKey {
	return wallet.key
}

func (wallet Wallet) GetAccAddress() string {
	return wallet.key.AccAddress()
}

func (wallet Wallet) CreateAndSignTx(ctx context.Context, options CreateTxOptions) (*lcd.StdTx, error) {
	if len(options.Msgs) == 0 {
		return nil, stacktrace.NewError("Cannot create a transaction without any messages")
	}

	address := wallet.key.AccAddress()
	accountInfo, err := wallet.accounts.GetAccountInfo(ctx, address)
	if err != nil {
		return nil, stacktrace.Propagate(err, "An error occurred getting the account number and sequence for '%v'", address)
	}
	logrus.Debugf(
		"Signing transaction for '%v' with account number '%v' and sequence '%v'",
		address,
		accountInfo.AccountNumber,
		accountInfo.Sequence)

	signDoc := lcd.NewStdSignDoc(
		wallet.accounts.GetChainID(),
		accountInfo.AccountNumber,
		accountInfo.Sequence,
		options.Fee,
		options.Msgs,
		options.Memo)
	signBytes, err := signDoc.Bytes()
	if err != nil {
		return nil, stacktrace.Propagate(err, "An error occurred getting the sign bytes for the transaction")
	}
	signature, err := wallet.key.Sign(signBytes)
	if err != nil {
		return nil, stacktrace.Propagate(err, "An error occurred signing the transaction")
	}

	return &lcd.StdTx{
		Msg: signDoc.Msgs,
		Fee: options.Fee,
		Signatures: []lcd.StdSignature{
			{
				PubKey:    lcd.NewSecp256k1PubKey(wallet.key.PubKey()),
				Signature: signature,
			},
		},
		Memo: options.Memo,
	}, nil
}
