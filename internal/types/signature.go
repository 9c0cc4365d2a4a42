package types

import (
	"fmt"

	"github.com/mr-tron/base58"
)

const SignatureSize = 64

// Signature 表示 64 字节 ed25519 签名，base58 形式即交易哈希
type Signature [SignatureSize]byte

func (s Signature) String() string {
	return base58.Encode(s[:])
}

func (s Signature) IsZero() bool {
	return s == Signature{}
}

func SignatureFromBase58(str string) (Signature, error) {
	var s Signature
	data, err := base58.Decode(str)
	if err != nil {
		return s, fmt.Errorf("failed to decode base58 signature %q: %w", str, err)
	}
	if len(data) != SignatureSize {
		return s, fmt.Errorf("invalid signature length: got %d, want %d", len(data), SignatureSize)
	}
	copy(s[:], data)
	return s, nil
}
