package wallet

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSeed(start byte) []byte {
	seed := make([]byte, SeedSize)
	for i := range seed {
		seed[i] = start + byte(i)
	}
	return seed
}

func TestKeypairFromSeed_Deterministic(t *testing.T) {
	a, err := KeypairFromSeed(testSeed(1))
	require.NoError(t, err)
	b, err := KeypairFromSeed(testSeed(1))
	require.NoError(t, err)

	assert.Equal(t, a.Pubkey(), b.Pubkey())
	assert.Equal(t, a.Bytes(), b.Bytes())
	assert.Equal(t, testSeed(1), a.Seed())
}

func TestKeypairFromBytes(t *testing.T) {
	kp, err := NewKeypair()
	require.NoError(t, err)

	restored, err := KeypairFromBytes(kp.Bytes())
	require.NoError(t, err)
	assert.Equal(t, kp.Pubkey(), restored.Pubkey())

	// 篡改公钥部分
	bad := kp.Bytes()
	bad[KeypairSize-1] ^= 0xFF
	_, err = KeypairFromBytes(bad)
	assert.Error(t, err)

	_, err = KeypairFromBytes(kp.Bytes()[:SeedSize])
	assert.Error(t, err)
}

func TestSignVerify(t *testing.T) {
	kp, err := KeypairFromSeed(testSeed(7))
	require.NoError(t, err)

	msg := []byte("I verify my solana keypair")
	sig := kp.Sign(msg)
	assert.True(t, Verify(kp.Pubkey(), msg, sig))
	assert.False(t, Verify(kp.Pubkey(), []byte("other"), sig))
}

func TestKeypairFile_SaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dev-wallet.json")
	kp, err := NewKeypair()
	require.NoError(t, err)

	require.NoError(t, SaveKeypairFile(path, kp))
	// 不允许覆盖
	assert.Error(t, SaveKeypairFile(path, kp))

	loaded, err := LoadKeypairFile(path)
	require.NoError(t, err)
	assert.Equal(t, kp.Bytes(), loaded.Bytes())
}

func TestLoadKeypairFile_Invalid(t *testing.T) {
	dir := t.TempDir()

	short := filepath.Join(dir, "short.json")
	require.NoError(t, os.WriteFile(short, []byte("[1,2,3]"), 0o600))
	_, err := LoadKeypairFile(short)
	assert.Error(t, err)

	garbage := filepath.Join(dir, "garbage.json")
	require.NoError(t, os.WriteFile(garbage, []byte("not json"), 0o600))
	_, err = LoadKeypairFile(garbage)
	assert.Error(t, err)

	_, err = LoadKeypairFile(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}
