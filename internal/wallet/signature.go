package wallet

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// PersonalSignHash computes the EIP-191 "personal_sign" digest of a message,
// the same hash wallets apply before signing arbitrary text.
func PersonalSignHash(message string) common.Hash {
	prefixed := fmt.Sprintf("\x19Ethereum Signed Message:\n%d%s", len(message), message)
	return crypto.Keccak256Hash([]byte(prefixed))
}

// RecoverAddress recovers the signer address from a personal_sign signature.
// sigHex is the 65-byte signature in 0x hex; the recovery id may be encoded
// as 0/1 or as the legacy 27/28.
func RecoverAddress(message, sigHex string) (common.Address, error) {
	sig, err := hexutil.Decode(sigHex)
	if err != nil {
		return common.Address{}, fmt.Errorf("decode signature: %w", err)
	}
	if len(sig) != 65 {
		return common.Address{}, fmt.Errorf("signature must be 65 bytes, got %d", len(sig))
	}

	// Normalize the recovery id without mutating the caller's view.
	norm := make([]byte, 65)
	copy(norm, sig)
	if norm[64] >= 27 {
		norm[64] -= 27
	}
	if norm[64] > 1 {
		return common.Address{}, fmt.Errorf("invalid recovery id %d", sig[64])
	}

	hash := PersonalSignHash(message)
	pubKey, err := crypto.Ecrecover(hash.Bytes(), norm)
	if err != nil {
		return common.Address{}, fmt.Errorf("recover public key: %w", err)
	}

	// Address is the last 20 bytes of keccak256(pubkey[1:]).
	addrHash := crypto.Keccak256Hash(pubKey[1:])
	return common.BytesToAddress(addrHash.Bytes()[12:]), nil
}

// VerifyPersonalSign reports whether sigHex is a valid signature over message
// by the claimed address.
func VerifyPersonalSign(claimed, message, sigHex string) (bool, error) {
	recovered, err := RecoverAddress(message, sigHex)
	if err != nil {
		return false, err
	}
	return recovered == common.HexToAddress(claimed), nil
}
