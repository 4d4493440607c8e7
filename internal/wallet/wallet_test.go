package wallet

import (
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewChallenge(t *testing.T) {
	msg, err := NewChallenge()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(msg, ChallengePrefix))
	// 16 random bytes hex-encoded
	assert.Len(t, msg, len(ChallengePrefix)+32)
}

func TestNewChallengeIsFreshEachCall(t *testing.T) {
	a, err := NewChallenge()
	require.NoError(t, err)
	b, err := NewChallenge()
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestRecoverAddressRoundTrip(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	addr := crypto.PubkeyToAddress(key.PublicKey)

	msg, err := NewChallenge()
	require.NoError(t, err)

	sig, err := crypto.Sign(PersonalSignHash(msg).Bytes(), key)
	require.NoError(t, err)

	recovered, err := RecoverAddress(msg, hexutil.Encode(sig))
	require.NoError(t, err)
	assert.Equal(t, addr, recovered)
}

func TestRecoverAddressLegacyRecoveryID(t *testing.T) {
	// Wallets emit V as 27/28; the verifier must accept both encodings.
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	addr := crypto.PubkeyToAddress(key.PublicKey)

	msg := ChallengePrefix + "00112233445566778899aabbccddeeff"
	sig, err := crypto.Sign(PersonalSignHash(msg).Bytes(), key)
	require.NoError(t, err)
	sig[64] += 27

	recovered, err := RecoverAddress(msg, hexutil.Encode(sig))
	require.NoError(t, err)
	assert.Equal(t, addr, recovered)
}

func TestVerifyPersonalSign(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	addr := crypto.PubkeyToAddress(key.PublicKey)

	msg := ChallengePrefix + "deadbeef"
	sig, err := crypto.Sign(PersonalSignHash(msg).Bytes(), key)
	require.NoError(t, err)
	sigHex := hexutil.Encode(sig)

	t.Run("matching address verifies", func(t *testing.T) {
		ok, err := VerifyPersonalSign(addr.Hex(), msg, sigHex)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("other address fails", func(t *testing.T) {
		other, err := crypto.GenerateKey()
		require.NoError(t, err)
		ok, err := VerifyPersonalSign(crypto.PubkeyToAddress(other.PublicKey).Hex(), msg, sigHex)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("tampered message fails", func(t *testing.T) {
		ok, err := VerifyPersonalSign(addr.Hex(), msg+"x", sigHex)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestRecoverAddressRejectsMalformedInput(t *testing.T) {
	tests := []struct {
		name string
		sig  string
	}{
		{"not hex", "zzzz"},
		{"missing 0x prefix", "deadbeef"},
		{"wrong length", "0xdeadbeef"},
		{"bad recovery id", "0x" + strings.Repeat("00", 64) + "05"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := RecoverAddress("msg", tt.sig)
			require.Error(t, err)
		})
	}
}
