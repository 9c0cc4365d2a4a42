package utils

import (
	"errors"
)

var ErrCompactU16Overflow = errors.New("compact-u16: value overflow")

// AppendCompactU16 按 Solana short_vec 规则追加长度前缀：
// 每字节低 7 位为数据，最高位表示后续还有字节，最多 3 字节
func AppendCompactU16(buf []byte, n int) []byte {
	v := uint16(n)
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v == 0 {
			return append(buf, b)
		}
		buf = append(buf, b|0x80)
	}
}

// ReadCompactU16 解析长度前缀，返回值与占用字节数
func ReadCompactU16(data []byte) (int, int, error) {
	var v uint32
	for i := 0; i < 3; i++ {
		if i >= len(data) {
			return 0, 0, errors.New("compact-u16: unexpected end of data")
		}
		b := data[i]
		v |= uint32(b&0x7f) << (7 * i)
		if b&0x80 == 0 {
			if v > 0xffff {
				return 0, 0, ErrCompactU16Overflow
			}
			return int(v), i + 1, nil
		}
	}
	return 0, 0, ErrCompactU16Overflow
}
