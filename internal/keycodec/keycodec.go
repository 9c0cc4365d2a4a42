// Package keycodec 在两种私钥表示之间转换：
// 钱包文件使用的数字数组文本（如 [12,34,...]）与便于分享的 base58 字符串。
package keycodec

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mr-tron/base58"
)

// DecodeError 表示 base58 字符串中含有字母表之外的字符
type DecodeError struct {
	Input string
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("invalid base58 input %q: %v", e.Input, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// FormatError 表示数字数组文本格式非法
type FormatError struct {
	Index  int    // 出错 token 的下标，括号错误时为 -1
	Token  string // 原始 token
	Reason string
}

func (e *FormatError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("invalid byte array: %s", e.Reason)
	}
	return fmt.Sprintf("invalid byte array: token #%d %q: %s", e.Index, e.Token, e.Reason)
}

// Encode 将任意字节序列编码为 base58 字符串
func Encode(b []byte) string {
	return base58.Encode(b)
}

// Decode 解析 base58 字符串，不校验长度（私钥场景由调用方约定 64 或 32 字节）
func Decode(s string) ([]byte, error) {
	if s == "" {
		return []byte{}, nil
	}
	b, err := base58.Decode(s)
	if err != nil {
		return nil, &DecodeError{Input: s, Err: err}
	}
	return b, nil
}

// ParseNumericArray 解析 "[1, 2, 3]" 形式的字节数组，每个元素必须是 [0,255] 内的整数
func ParseNumericArray(text string) ([]byte, error) {
	s := strings.TrimSpace(text)
	if !strings.HasPrefix(s, "[") || !strings.HasSuffix(s, "]") || len(s) < 2 {
		return nil, &FormatError{Index: -1, Reason: "expected bracketed list"}
	}

	body := strings.TrimSpace(s[1 : len(s)-1])
	if body == "" {
		return []byte{}, nil
	}
	if strings.ContainsAny(body, "[]") {
		return nil, &FormatError{Index: -1, Reason: "unbalanced brackets"}
	}

	tokens := strings.Split(body, ",")
	out := make([]byte, 0, len(tokens))
	for i, raw := range tokens {
		tok := strings.TrimSpace(raw)
		if tok == "" {
			return nil, &FormatError{Index: i, Token: raw, Reason: "empty element"}
		}
		v, err := strconv.ParseUint(tok, 10, 8)
		if err != nil {
			return nil, &FormatError{Index: i, Token: tok, Reason: "not an integer in [0,255]"}
		}
		out = append(out, byte(v))
	}
	return out, nil
}

// FormatArray 输出与钱包文件一致的数组文本，例如 [1,2,3]
func FormatArray(b []byte) string {
	var sb strings.Builder
	sb.Grow(len(b)*4 + 2)
	sb.WriteByte('[')
	for i, v := range b {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(int(v)))
	}
	sb.WriteByte(']')
	return sb.String()
}

// ArrayToBase58 钱包数组文本 -> base58
func ArrayToBase58(text string) (string, error) {
	b, err := ParseNumericArray(text)
	if err != nil {
		return "", err
	}
	return Encode(b), nil
}

// Base58ToArray base58 -> 钱包数组文本
func Base58ToArray(s string) (string, error) {
	b, err := Decode(strings.TrimSpace(s))
	if err != nil {
		return "", err
	}
	return FormatArray(b), nil
}
