package pda

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"math"

	"filippo.io/edwards25519"

	"prereq-kit-sol/internal/types"
)

// 与链上共识规则保持一致
const (
	MaxSeeds      = 16
	MaxSeedLength = 32

	pdaMarker = "ProgramDerivedAddress"
)

var (
	ErrMaxSeedsExceeded      = errors.New("pda: too many seeds")
	ErrMaxSeedLengthExceeded = errors.New("pda: seed too long")
	ErrOnCurve               = errors.New("pda: address lies on the ed25519 curve")
	ErrNoValidBump           = errors.New("pda: unable to find a viable bump seed")
)

// 测试中可替换
var onCurve = IsOnCurve

// IsOnCurve 判断 32 字节是否为合法的 ed25519 压缩点
func IsOnCurve(p types.Pubkey) bool {
	_, err := new(edwards25519.Point).SetBytes(p[:])
	return err == nil
}

func validateSeeds(seeds [][]byte, max int) error {
	if len(seeds) > max {
		return fmt.Errorf("%w: got %d, max %d", ErrMaxSeedsExceeded, len(seeds), max)
	}
	for i, s := range seeds {
		if len(s) > MaxSeedLength {
			return fmt.Errorf("%w: seed #%d has %d bytes, max %d", ErrMaxSeedLengthExceeded, i, len(s), MaxSeedLength)
		}
	}
	return nil
}

// hashSeeds 计算 sha256(seeds... ‖ program ‖ "ProgramDerivedAddress")
func hashSeeds(seeds [][]byte, program types.Pubkey) types.Pubkey {
	h := sha256.New()
	for _, s := range seeds {
		h.Write(s)
	}
	h.Write(program[:])
	h.Write([]byte(pdaMarker))

	var out types.Pubkey
	copy(out[:], h.Sum(nil))
	return out
}

// CreateProgramAddress 单次计算派生地址，结果在曲线上时返回 ErrOnCurve
func CreateProgramAddress(seeds [][]byte, program types.Pubkey) (types.Pubkey, error) {
	if err := validateSeeds(seeds, MaxSeeds); err != nil {
		return types.Pubkey{}, err
	}
	addr := hashSeeds(seeds, program)
	if onCurve(addr) {
		return types.Pubkey{}, ErrOnCurve
	}
	return addr, nil
}

// FindProgramAddress 从 bump=255 开始递减，返回第一个不在曲线上的派生地址及其 bump。
// bump 本身作为最后一个种子参与哈希，因此调用方最多传入 MaxSeeds-1 个种子。
func FindProgramAddress(seeds [][]byte, program types.Pubkey) (types.Pubkey, uint8, error) {
	if err := validateSeeds(seeds, MaxSeeds-1); err != nil {
		return types.Pubkey{}, 0, err
	}

	withBump := make([][]byte, len(seeds)+1)
	copy(withBump, seeds)
	bumpSeed := []byte{0}
	withBump[len(seeds)] = bumpSeed

	for bump := math.MaxUint8; bump >= 0; bump-- {
		bumpSeed[0] = uint8(bump)
		addr := hashSeeds(withBump, program)
		if !onCurve(addr) {
			return addr, uint8(bump), nil
		}
	}
	return types.Pubkey{}, 0, ErrNoValidBump
}
