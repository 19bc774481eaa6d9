package decode

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// Address is anything that resolves to a public key. Operations accept
// it so callers can pass base58 strings, raw bytes or parsed keys
// interchangeably.
type Address interface {
	AsAddress() (solana.PublicKey, error)
}

// Base58 is a base58-encoded address string.
type Base58 string

func (b Base58) AsAddress() (solana.PublicKey, error) {
	key, err := solana.PublicKeyFromBase58(string(b))
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("%w: %q: %v", ErrPubkeyParse, string(b), err)
	}
	return key, nil
}

// Bytes is a raw 32-byte address.
type Bytes []byte

func (b Bytes) AsAddress() (solana.PublicKey, error) {
	if len(b) != solana.PublicKeyLength {
		return solana.PublicKey{}, fmt.Errorf("%w: expected %d bytes, got %d", ErrPubkeyParse, solana.PublicKeyLength, len(b))
	}
	return solana.PublicKeyFromBytes(b), nil
}

// Pubkey wraps an already parsed key.
type Pubkey solana.PublicKey

func (p Pubkey) AsAddress() (solana.PublicKey, error) {
	return solana.PublicKey(p), nil
}

// Resolve resolves a required address parameter.
func Resolve(a Address) (solana.PublicKey, error) {
	if a == nil {
		return solana.PublicKey{}, fmt.Errorf("%w: address is required", ErrPubkeyParse)
	}
	return a.AsAddress()
}

// ResolveOptional resolves an optional address parameter; a nil Address
// stays nil.
func ResolveOptional(a Address) (*solana.PublicKey, error) {
	if a == nil {
		return nil, nil
	}
	key, err := a.AsAddress()
	if err != nil {
		return nil, err
	}
	return &key, nil
}
