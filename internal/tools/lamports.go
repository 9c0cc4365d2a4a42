package tools

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"

	"prereq-kit-sol/internal/consts"
	"prereq-kit-sol/internal/types"
)

// SolDecimals 1 SOL = 10^9 lamports
const SolDecimals = 9

var (
	ErrNegativeAmount  = errors.New("amount must not be negative")
	ErrTooManyDecimals = errors.New("amount has more than 9 decimal places")
	ErrAmountOverflow  = errors.New("amount exceeds uint64 lamports")
)

// FormatSol 将 lamports 转为 SOL 字符串，去掉末尾多余的 0
func FormatSol(lamports uint64) string {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(lamports), -SolDecimals).String()
}

// ParseSol 解析 "0.5" / "2" 这样的 SOL 数量为 lamports，不做舍入
func ParseSol(s string) (uint64, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("parse sol amount %q: %w", s, err)
	}
	if d.IsNegative() {
		return 0, fmt.Errorf("%w: %s", ErrNegativeAmount, s)
	}

	lamports := d.Shift(SolDecimals)
	if !lamports.IsInteger() {
		return 0, fmt.Errorf("%w: %s", ErrTooManyDecimals, s)
	}
	bi := lamports.BigInt()
	if !bi.IsUint64() {
		return 0, fmt.Errorf("%w: %s", ErrAmountOverflow, s)
	}
	return bi.Uint64(), nil
}

// ExplorerURL 交易在区块浏览器中的链接
func ExplorerURL(sig types.Signature, cluster string) string {
	if cluster == "" {
		cluster = consts.DefaultCluster
	}
	return fmt.Sprintf(consts.ExplorerTxURLFormat, sig, cluster)
}
