package keycodec

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 测试 [1..32] 数组 -> base58 -> 原始 32 字节
func TestArrayBase58_Scenario32(t *testing.T) {
	want := make([]byte, 32)
	for i := range want {
		want[i] = byte(i + 1)
	}
	text := FormatArray(want)
	assert.Equal(t, "[1,2,3,4,5,6,7,8,9,10,11,12,13,14,15,16,17,18,19,20,21,22,23,24,25,26,27,28,29,30,31,32]", text)

	s, err := ArrayToBase58(text)
	require.NoError(t, err)

	got, err := Decode(s)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	back, err := Base58ToArray(s)
	require.NoError(t, err)
	assert.Equal(t, text, back)
}

func TestRoundTrip_Random(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for n := 0; n < 200; n++ {
		b := make([]byte, r.Intn(80))
		r.Read(b)
		// 覆盖前导 0 字节的情况
		if n%5 == 0 && len(b) > 2 {
			b[0], b[1] = 0, 0
		}

		decoded, err := Decode(Encode(b))
		require.NoError(t, err)
		assert.Equal(t, b, decoded)

		parsed, err := ParseNumericArray(FormatArray(b))
		require.NoError(t, err)
		assert.Equal(t, b, parsed)
	}
}

func TestParseNumericArray_Whitespace(t *testing.T) {
	b, err := ParseNumericArray("  [ 0, 255 ,17 ]\n")
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 255, 17}, b)

	b, err = ParseNumericArray("[]")
	require.NoError(t, err)
	assert.Empty(t, b)
}

func TestParseNumericArray_Errors(t *testing.T) {
	cases := []struct {
		name  string
		input string
		index int
	}{
		{"no brackets", "1,2,3", -1},
		{"missing close", "[1,2,3", -1},
		{"nested", "[[1,2]]", -1},
		{"out of range", "[1,256]", 1},
		{"negative", "[-1]", 0},
		{"not a number", "[1,abc,3]", 1},
		{"float", "[1.5]", 0},
		{"empty element", "[1,,2]", 1},
		{"trailing comma", "[1,2,]", 2},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := ParseNumericArray(c.input)
			var fe *FormatError
			require.True(t, errors.As(err, &fe), "应该返回 FormatError: %v", err)
			assert.Equal(t, c.index, fe.Index)
		})
	}
}

func TestDecode_InvalidAlphabet(t *testing.T) {
	// 0 / O / I / l 不在 base58 字母表内
	for _, s := range []string{"0abc", "OOPS", "Il1", "abc!"} {
		_, err := Decode(s)
		var de *DecodeError
		assert.True(t, errors.As(err, &de), "input=%q", s)
	}
}

func TestDecode_Empty(t *testing.T) {
	b, err := Decode("")
	require.NoError(t, err)
	assert.Empty(t, b)
}
