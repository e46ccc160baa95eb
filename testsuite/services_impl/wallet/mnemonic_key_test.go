package wallet

import (
	"crypto/sha256"
	"strings"
	"testing"

	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"
)

const (
	// The LocalTerra "test1" account
	testMnemonic   = "notice oak worry limit wrap speak medal online prefer cluster roof addict wrist behave treat actual wasp year salad speed social layer crew genius"
	testAccAddress = "terra1x46rqay4d3cssq8gxxvqz8xt6nwlz4td20k38v"
)

func TestNewMnemonicKey_DerivesTerraAddress(t *testing.T) {
	key, err := NewMnemonicKey(testMnemonic, DefaultMnemonicKeyOptions())
	require.NoError(t, err)
	require.Equal(t, testAccAddress, key.AccAddress())
	require.Len(t, key.PubKey(), 33)
}

func TestNewMnemonicKey_IgnoresExtraWhitespace(t *testing.T) {
	messyMnemonic := "  " + strings.Join(strings.Fields(testMnemonic), "   \n") + "\t"
	key, err := NewMnemonicKey(messyMnemonic, DefaultMnemonicKeyOptions())
	require.NoError(t, err)
	require.Equal(t, testAccAddress, key.AccAddress())
}

func TestNewMnemonicKey_AccountChangesAddress(t *testing.T) {
	options := DefaultMnemonicKeyOptions()
	options.Account = 1
	key, err := NewMnemonicKey(testMnemonic, options)
	require.NoError(t, err)
	require.NotEqual(t, testAccAddress, key.AccAddress())
	require.True(t, strings.HasPrefix(key.AccAddress(), TerraAccAddressPrefix+"1"))
}

func TestNewMnemonicKey_UsesAddressPrefix(t *testing.T) {
	options := DefaultMnemonicKeyOptions()
	options.AddressPrefix = "cosmos"
	key, err := NewMnemonicKey(testMnemonic, options)
	require.NoError(t, err)

	terraKey, err := NewMnemonicKey(testMnemonic, DefaultMnemonicKeyOptions())
	require.NoError(t, err)

	// Same key, so the same 20 address bytes under a different prefix
	hrp, data, err := bech32.Decode(key.AccAddress())
	require.NoError(t, err)
	require.Equal(t, "cosmos", hrp)
	terraHrp, terraData, err := bech32.Decode(terraKey.AccAddress())
	require.NoError(t, err)
	require.Equal(t, TerraAccAddressPrefix, terraHrp)
	require.Equal(t, terraData, data)
}

func TestNewMnemonicKey_RejectsEmptyInput(t *testing.T) {
	_, err := NewMnemonicKey(" \n ", DefaultMnemonicKeyOptions())
	require.Error(t, err)

	options := DefaultMnemonicKeyOptions()
	options.AddressPrefix = ""
	_, err = NewMnemonicKey(testMnemonic, options)
	require.Error(t, err)
}

func TestSign_ProducesVerifiableCompactSignature(t *testing.T) {
	key, err := NewMnemonicKey(testMnemonic, DefaultMnemonicKeyOptions())
	require.NoError(t, err)

	msg := []byte(`{"account_number":"0","chain_id":"localterra"}`)
	signature, err := key.Sign(msg)
	require.NoError(t, err)
	require.Len(t, signature, 64)

	hash := sha256.Sum256(msg)
	require.True(t, crypto.VerifySignature(key.PubKey(), hash[:], signature))

	otherHash := sha256.Sum256([]byte("something else"))
	require.False(t, crypto.VerifySignature(key.PubKey(), otherHash[:], signature))
}
