package tools

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prereq-kit-sol/internal/consts"
	"prereq-kit-sol/internal/types"
)

func TestFormatSol(t *testing.T) {
	cases := map[uint64]string{
		0:                              "0",
		1:                              "0.000000001",
		5_000:                          "0.000005",
		consts.LamportsPerSol:          "1",
		2_500_000_000:                  "2.5",
		consts.DefaultTransferLamports: "0.01",
	}
	for lamports, want := range cases {
		assert.Equal(t, want, FormatSol(lamports), "lamports=%d", lamports)
	}
}

func TestParseSol(t *testing.T) {
	cases := map[string]uint64{
		"2":           2 * consts.LamportsPerSol,
		"0.01":        10_000_000,
		" 1.5 ":       1_500_000_000,
		"0.000000001": 1,
		"0":           0,
	}
	for in, want := range cases {
		got, err := ParseSol(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestParseSol_Errors(t *testing.T) {
	_, err := ParseSol("-1")
	assert.ErrorIs(t, err, ErrNegativeAmount)

	_, err = ParseSol("0.0000000001")
	assert.ErrorIs(t, err, ErrTooManyDecimals)

	_, err = ParseSol("100000000000")
	assert.ErrorIs(t, err, ErrAmountOverflow)

	_, err = ParseSol("abc")
	assert.Error(t, err)
}

func TestParseSol_FormatRoundTrip(t *testing.T) {
	for _, lamports := range []uint64{1, 999, 1_000_000_000, 18_446_744_073_709_551_615} {
		got, err := ParseSol(FormatSol(lamports))
		require.NoError(t, err)
		assert.Equal(t, lamports, got)
	}
}

func TestExplorerURL(t *testing.T) {
	sig := types.Signature{1}
	assert.Equal(t, "https://explorer.solana.com/tx/"+sig.String()+"?cluster=devnet", ExplorerURL(sig, "devnet"))
	assert.Equal(t, ExplorerURL(sig, consts.DefaultCluster), ExplorerURL(sig, ""))
}
