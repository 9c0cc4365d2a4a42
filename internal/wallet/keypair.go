package wallet

import (
	"bytes"
	"crypto/ed25519"
	"crypto/rand"
	"fmt"

	"prereq-kit-sol/internal/types"
)

const (
	SeedSize    = ed25519.SeedSize       // 32
	KeypairSize = ed25519.PrivateKeySize // 64: seed‖pubkey
)

// Keypair 持有 ed25519 私钥种子与对应公钥，创建后不可变
type Keypair struct {
	private ed25519.PrivateKey
	pubkey  types.Pubkey
}

// NewKeypair 使用系统随机源生成新密钥对
func NewKeypair() (*Keypair, error) {
	seed := make([]byte, SeedSize)
	if _, err := rand.Read(seed); err != nil {
		return nil, fmt.Errorf("read random seed: %w", err)
	}
	return KeypairFromSeed(seed)
}

// KeypairFromSeed 由 32 字节种子确定性推导密钥对
func KeypairFromSeed(seed []byte) (*Keypair, error) {
	if len(seed) != SeedSize {
		return nil, fmt.Errorf("invalid seed length: got %d, want %d", len(seed), SeedSize)
	}
	priv := ed25519.NewKeyFromSeed(seed)
	kp := &Keypair{private: priv}
	copy(kp.pubkey[:], priv[SeedSize:])
	return kp, nil
}

// KeypairFromBytes 解析 64 字节 seed‖pubkey，公钥部分必须与种子一致
func KeypairFromBytes(b []byte) (*Keypair, error) {
	if len(b) != KeypairSize {
		return nil, fmt.Errorf("invalid keypair length: got %d, want %d", len(b), KeypairSize)
	}
	kp, err := KeypairFromSeed(b[:SeedSize])
	if err != nil {
		return nil, err
	}
	if !bytes.Equal(kp.pubkey[:], b[SeedSize:]) {
		return nil, fmt.Errorf("keypair pubkey mismatch: stored=%s derived=%s",
			types.Pubkey(b[SeedSize:]), kp.pubkey)
	}
	return kp, nil
}

func (k *Keypair) Pubkey() types.Pubkey {
	return k.pubkey
}

// Bytes 返回 64 字节 seed‖pubkey 副本
func (k *Keypair) Bytes() []byte {
	out := make([]byte, KeypairSize)
	copy(out, k.private)
	return out
}

// Seed 返回 32 字节种子副本
func (k *Keypair) Seed() []byte {
	return k.private.Seed()
}

// Sign 对任意消息签名（交易场景下为序列化后的 Message）
func (k *Keypair) Sign(message []byte) types.Signature {
	var sig types.Signature
	copy(sig[:], ed25519.Sign(k.private, message))
	return sig
}

// Verify 校验签名
func Verify(pubkey types.Pubkey, message []byte, sig types.Signature) bool {
	return ed25519.Verify(pubkey[:], message, sig[:])
}
