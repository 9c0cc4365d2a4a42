package payment

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prereq-kit-sol/internal/logic/sysprogram"
	"prereq-kit-sol/internal/service/ledgertest"
	"prereq-kit-sol/internal/types"
	"prereq-kit-sol/internal/wallet"
)

func TestAirdrop(t *testing.T) {
	ledger := ledgertest.NewFakeLedger()
	to := types.Pubkey{0x0A}

	sig, err := NewPayment(ledger).Airdrop(context.Background(), to, 2_000_000_000)
	require.NoError(t, err)
	assert.Equal(t, ledger.SubmitSig, sig)
	assert.Equal(t, uint64(2_000_000_000), ledger.Airdrops[to])

	_, err = NewPayment(ledger).Airdrop(context.Background(), to, 0)
	assert.ErrorIs(t, err, ErrZeroAmount)
	assert.Equal(t, 1, ledger.CallCount("RequestAirdrop"))
}

func TestSend(t *testing.T) {
	from, err := wallet.NewKeypair()
	require.NoError(t, err)
	to := types.Pubkey{0x0B}

	ledger := ledgertest.NewFakeLedger()
	res, err := NewPayment(ledger).Send(context.Background(), from, to, 10_000_000)
	require.NoError(t, err)
	assert.Equal(t, ledger.SubmitSig, res.Signature)

	require.Len(t, ledger.Submitted, 1)
	tx := ledger.Submitted[0]
	gotFrom, gotTo, lamports, err := sysprogram.FindTransfer(tx.Message)
	require.NoError(t, err)
	assert.Equal(t, from.Pubkey(), gotFrom)
	assert.Equal(t, to, gotTo)
	assert.Equal(t, uint64(10_000_000), lamports)
	assert.Equal(t, from.Pubkey(), tx.Message.FeePayer())
	assert.True(t, wallet.Verify(from.Pubkey(), tx.Message.Serialize(), tx.Signatures[0]))
}

func TestSend_Errors(t *testing.T) {
	from, err := wallet.NewKeypair()
	require.NoError(t, err)

	ledger := ledgertest.NewFakeLedger()
	_, err = NewPayment(ledger).Send(context.Background(), from, types.Pubkey{1}, 0)
	assert.ErrorIs(t, err, ErrZeroAmount)
	assert.Empty(t, ledger.Calls)

	rejected := errors.New("insufficient funds for rent")
	ledger.SubmitErr = rejected
	_, err = NewPayment(ledger).Send(context.Background(), from, types.Pubkey{1}, 1)
	assert.ErrorIs(t, err, rejected)
}
