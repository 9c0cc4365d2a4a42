package wallet

import (
	"fmt"
	"os"

	"prereq-kit-sol/internal/keycodec"
)

// LoadKeypairFile 读取钱包文件：64 个 [0,255] 整数组成的 JSON 数组（seed‖pubkey）
func LoadKeypairFile(path string) (*Keypair, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read wallet file %s: %w", path, err)
	}
	b, err := keycodec.ParseNumericArray(string(data))
	if err != nil {
		return nil, fmt.Errorf("parse wallet file %s: %w", path, err)
	}
	kp, err := KeypairFromBytes(b)
	if err != nil {
		return nil, fmt.Errorf("load wallet file %s: %w", path, err)
	}
	return kp, nil
}

// SaveKeypairFile 以钱包文件格式写出密钥对，已存在的文件不会被覆盖
func SaveKeypairFile(path string, kp *Keypair) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return fmt.Errorf("create wallet file %s: %w", path, err)
	}
	if _, err := f.WriteString(keycodec.FormatArray(kp.Bytes())); err != nil {
		_ = f.Close()
		return fmt.Errorf("write wallet file %s: %w", path, err)
	}
	return f.Close()
}
