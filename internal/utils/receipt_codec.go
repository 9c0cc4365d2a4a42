package utils

import (
	"encoding/binary"
	"fmt"
	"runtime/debug"

	"github.com/near/borsh-go"
)

const kindPrefixSize = 4

// EncodeRecord 将结构体编码为带类型前缀的二进制数据：
// - 前 4 字节为记录类型（uint32，小端序）
// - 后续为 borsh 序列化数据
func EncodeRecord(kind uint32, v any) ([]byte, error) {
	body, err := borsh.Serialize(v)
	if err != nil {
		return nil, fmt.Errorf("EncodeRecord: marshal %T: %w", v, err)
	}
	buf := make([]byte, kindPrefixSize, kindPrefixSize+len(body))
	binary.LittleEndian.PutUint32(buf[:kindPrefixSize], kind)
	return append(buf, body...), nil
}

// DecodeRecord 解析 EncodeRecord 的输出，返回类型前缀并填充 out
func DecodeRecord(data []byte, out any) (kind uint32, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("DecodeRecord panic: %v\n%s", r, debug.Stack())
		}
	}()

	if len(data) < kindPrefixSize {
		return 0, fmt.Errorf("DecodeRecord: data too short: %d", len(data))
	}
	kind = binary.LittleEndian.Uint32(data[:kindPrefixSize])
	if err := borsh.Deserialize(out, data[kindPrefixSize:]); err != nil {
		return kind, fmt.Errorf("DecodeRecord: unmarshal %T: %w", out, err)
	}
	return kind, nil
}
