/*
 * Copyright (c) 2021 - present Kurtosis Technologies LLC.
 * All Rights Reserved.
 */

package wallet

import (
	"crypto/ecdsa"
	"crypto/sha256"
	"crypto/sha512"
	"strings"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/palantir/stacktrace"
	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/crypto/ripemd160"
)

const (
	TerraCoinType         = 330
	TerraAccAddressPrefix = "terra"

	bip44Purpose = 44

	bip39SeedSaltPrefix  = "mnemonic"
	bip39SeedIterations  = 2048
	bip39SeedLengthBytes = 64

	// crypto.Sign appends a recovery byte that Cosmos signatures don't carry
	cosmosSignatureLength = 64
)

type MnemonicKeyOptions struct {
	CoinType      uint32
	Account       uint32
	Index         uint32
	AddressPrefix string
}

func DefaultMnemonicKeyOptions() MnemonicKeyOptions {
	return MnemonicKeyOptions{
		CoinType:      TerraCoinType,
		Account:       0,
		Index:         0,
		AddressPrefix: TerraAccAddressPrefix,
	}
}

// MnemonicKey is a secp256k1 key derived from a BIP39 mnemonic along m/44'/coinType'/account'/0/index
type MnemonicKey struct {
	privateKey       *ecdsa.PrivateKey
	compressedPubKey []byte
	accAddress       string
}

func NewMnemonicKey(mnemonic string, options MnemonicKeyOptions) (*MnemonicKey, error) {
	normalizedMnemonic := strings.Join(strings.Fields(mnemonic), " ")
	if normalizedMnemonic == "" {
		return nil, stacktrace.NewError("Mnemonic is empty")
	}
	if options.AddressPrefix == "" {
		return nil, stacktrace.NewError("Account address prefix is empty")
	}

	seed := pbkdf2.Key(
		[]byte(normalizedMnemonic),
		[]byte(bip39SeedSaltPrefix),
		bip39SeedIterations,
		bip39SeedLengthBytes,
		sha512.New)

	// The network params only affect the serialized xprv/xpub version bytes, which we never use
	extendedKey, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	if err != nil {
		return nil, stacktrace.Propagate(err, "An error occurred creating the master key from the mnemonic seed")
	}
	derivationPath := []uint32{
		hdkeychain.HardenedKeyStart + bip44Purpose,
		hdkeychain.HardenedKeyStart + options.CoinType,
		hdkeychain.HardenedKeyStart + options.Account,
		0,
		options.Index,
	}
	for _, childIdx := range derivationPath {
		extendedKey, err = extendedKey.Derive(childIdx)
		if err != nil {
			return nil, stacktrace.Propagate(err, "An error occurred deriving child key '%v'", childIdx)
		}
	}
	btcPrivKey, err := extendedKey.ECPrivKey()
	if err != nil {
		return nil, stacktrace.Propagate(err, "An error occurred getting the private key of the derived extended key")
	}

	privateKey, err := toEcdsaPrivateKey(btcPrivKey)
	if err != nil {
		return nil, stacktrace.Propagate(err, "An error occurred converting the derived private key")
	}
	compressedPubKey := crypto.CompressPubkey(&privateKey.PublicKey)
	accAddress, err := pubKeyToAccAddress(compressedPubKey, options.AddressPrefix)
	if err != nil {
		return nil, stacktrace.Propagate(err, "An error occurred computing the account address of the derived key")
	}

	return &MnemonicKey{
		privateKey:       privateKey,
		compressedPubKey: compressedPubKey,
		accAddress:       accAddress,
	}, nil
}

func (key MnemonicKey) AccAddress() string {
	return key.accAddress
}

func (key MnemonicKey) PubKey() []byte {
	return key.compressedPubKey
}

// Sign returns the 64-byte r||s signature over sha256(msg)
func (key MnemonicKey) Sign(msg []byte) ([]byte, error) {
	hash := sha256.Sum256(msg)
	signature, err := crypto.Sign(hash[:], key.privateKey)
	if err != nil {
		return nil, stacktrace.Propagate(err, "An error occurred signing the message hash")
	}
	return signature[:cosmosSignatureLength], nil
}

// ========================================================================================================
//                                     Private helper functions
// ========================================================================================================
func toEcdsaPrivateKey(btcPrivKey *btcec.PrivateKey) (*ecdsa.PrivateKey, error) {
	privateKey, err := crypto.ToECDSA(btcPrivKey.Serialize())
	if err != nil {
		return nil, stacktrace.Propagate(err, "An error occurred converting the secp256k1 key to an ECDSA key")
	}
	return privateKey, nil
}

// Account addresses are bech32(prefix, ripemd160(sha256(compressedPubKey)))
func pubKeyToAccAddress(compressedPubKey []byte, prefix string) (string, error) {
	sha := sha256.Sum256(compressedPubKey)
	hasher := ripemd160.New()
	hasher.Write(sha[:])
	addressBytes := hasher.Sum(nil)

	converted, err := bech32.ConvertBits(addressBytes, 8, 5, true)
	if err != nil {
		return "", stacktrace.Propagate(err, "An error occurred converting the address bytes to 5-bit groups")
	}
	address, err := bech32.Encode(prefix, converted)
	if err != nil {
		return "", stacktrace.Propagate(err, "An error occurred bech32-encoding the address with prefix '%v'", prefix)
	}
	return address, nil
}
