package types

import (
	"fmt"

	"github.com/mr-tron/base58"
)

const PubkeySize = 32

type Pubkey [PubkeySize]byte

func (p Pubkey) String() string {
	return base58.Encode(p[:])
}

func (p Pubkey) Equals(other Pubkey) bool {
	return p == other
}

func (p Pubkey) Bytes() []byte {
	return p[:]
}

// IsZero 判断是否为全 0 地址（与 System Program 地址相同）
func (p Pubkey) IsZero() bool {
	return p == Pubkey{}
}

// PubkeyFromBytes 从 32 字节切片构造 Pubkey，长度不符时返回 error
func PubkeyFromBytes(b []byte) (Pubkey, error) {
	if len(b) != PubkeySize {
		return Pubkey{}, fmt.Errorf("invalid pubkey length: got %d, want %d", len(b), PubkeySize)
	}
	var p Pubkey
	copy(p[:], b)
	return p, nil
}

// TryPubkeyFromBase58 解析 base58 字符串为 Pubkey，失败时返回 error（用于不信任输入路径）
func TryPubkeyFromBase58(s string) (Pubkey, error) {
	data, err := base58.Decode(s)
	if err != nil {
		return Pubkey{}, fmt.Errorf("failed to decode base58 pubkey %q: %w", s, err)
	}
	if len(data) != PubkeySize {
		return Pubkey{}, fmt.Errorf("invalid pubkey length: got %d, want 32, input=%q", len(data), s)
	}
	var p Pubkey
	copy(p[:], data)
	return p, nil
}

// MustPubkeyFromBase58 仅用于常量地址初始化，输入非法时 panic
func MustPubkeyFromBase58(s string) Pubkey {
	p, err := TryPubkeyFromBase58(s)
	if err != nil {
		panic(err)
	}
	return p
}

// AddressKind 标记地址来源：钱包公钥或程序派生地址（PDA）。
// 两者结构完全一致，仅用于日志与输出时区分。
type AddressKind uint8

const (
	KindWallet  AddressKind = 1
	KindDerived AddressKind = 2
)

func (k AddressKind) String() string {
	switch k {
	case KindWallet:
		return "wallet"
	case KindDerived:
		return "derived"
	default:
		return "unknown"
	}
}

// TaggedAddress 附带来源标记的地址
type TaggedAddress struct {
	Pubkey Pubkey
	Kind   AddressKind
}

func WalletAddress(p Pubkey) TaggedAddress {
	return TaggedAddress{Pubkey: p, Kind: KindWallet}
}

func DerivedAddress(p Pubkey) TaggedAddress {
	return TaggedAddress{Pubkey: p, Kind: KindDerived}
}

func (a TaggedAddress) String() string {
	return fmt.Sprintf("%s(%s)", a.Pubkey, a.Kind)
}
