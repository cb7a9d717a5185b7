package wallet

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// Signer performs detached signatures for transaction messages. The swap
// assembler never signs; this interface is consumed only by txbuilder and
// callers that submit the built instructions.
type Signer interface {
	PublicKey() solana.PublicKey
	SignMessage(ctx context.Context, message []byte) (solana.Signature, error)
}

// Local wraps a local private key.
type Local struct {
	key solana.PrivateKey
}

// NewLocalFromKeygen loads a solana-keygen JSON file.
func NewLocalFromKeygen(path string) (Local, error) {
	key, err := solana.PrivateKeyFromSolanaKeygenFile(path)
	if err != nil {
		return Local{}, fmt.Errorf("load keypair: %w", err)
	}
	return Local{key: key}, nil
}

// NewLocalFromBase58 constructs a local signer from a base58-encoded key.
func NewLocalFromBase58(privateKey string) (Local, error) {
	key, err := solana.PrivateKeyFromBase58(privateKey)
	if err != nil {
		return Local{}, fmt.Errorf("decode base58 key: %w", err)
	}
	return Local{key: key}, nil
}

// PublicKey returns the associated public key.
func (l Local) PublicKey() solana.PublicKey {
	return l.key.PublicKey()
}

// SignMessage signs the provided message bytes.
func (l Local) SignMessage(ctx context.Context, message []byte) (solana.Signature, error) {
	select {
	case <-ctx.Done():
		return solana.Signature{}, ctx.Err()
	default:
		sig, err := l.key.Sign(message)
		if err != nil {
			return solana.Signature{}, fmt.Errorf("sign message: %w", err)
		}
		return sig, nil
	}
}

// Func adapts a signing callback (remote signer, HSM) to the Signer interface.
type Func struct {
	Pub  solana.PublicKey
	Sign func(ctx context.Context, message []byte) ([]byte, error)
}

// PublicKey returns the attached public key.
func (f Func) PublicKey() solana.PublicKey {
	return f.Pub
}

// SignMessage obtains a signature from the callback.
func (f Func) SignMessage(ctx context.Context, message []byte) (solana.Signature, error) {
	if f.Sign == nil {
		return solana.Signature{}, fmt.Errorf("sign func not set")
	}
	raw, err := f.Sign(ctx, message)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("remote sign: %w", err)
	}
	if len(raw) != solana.SignatureLength {
		return solana.Signature{}, fmt.Errorf("invalid signature length: got %d", len(raw))
	}
	var sig solana.Signature
	copy(sig[:], raw)
	return sig, nil
}
