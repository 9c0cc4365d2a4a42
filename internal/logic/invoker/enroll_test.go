package invoker

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prereq-kit-sol/internal/consts"
	"prereq-kit-sol/internal/logic/domain"
	"prereq-kit-sol/internal/logic/pda"
	"prereq-kit-sol/internal/service/ledgertest"
	"prereq-kit-sol/internal/types"
	"prereq-kit-sol/internal/wallet"
)

func TestEnrollInstruction_Layout(t *testing.T) {
	for i := 0; i < 5; i++ {
		payer, err := wallet.NewKeypair()
		require.NoError(t, err)
		mint, err := wallet.NewKeypair()
		require.NoError(t, err)

		accounts, err := DeriveEnrollAccounts(consts.PrereqProgram, payer.Pubkey(), mint.Pubkey(), consts.Collection)
		require.NoError(t, err)

		ix := EnrollInstruction(consts.PrereqProgram, accounts)
		assert.Equal(t, consts.PrereqProgram, ix.ProgramID)
		assert.Equal(t, []byte{77, 124, 82, 163, 21, 133, 181, 206}, ix.Data)

		want := []domain.AccountMeta{
			{Pubkey: payer.Pubkey(), IsSigner: true, IsWritable: true},
			{Pubkey: accounts.Prereq, IsSigner: false, IsWritable: true},
			{Pubkey: mint.Pubkey(), IsSigner: true, IsWritable: true},
			{Pubkey: consts.Collection, IsSigner: false, IsWritable: true},
			{Pubkey: accounts.CollectionAuthority, IsSigner: false, IsWritable: false},
			{Pubkey: consts.MplCoreProgram, IsSigner: false, IsWritable: false},
			{Pubkey: consts.SystemProgram, IsSigner: false, IsWritable: false},
		}
		assert.Equal(t, want, ix.Accounts)
	}
}

func TestDeriveEnrollAccounts_Seeds(t *testing.T) {
	payer := types.Pubkey{3, 3, 3}
	accounts, err := DeriveEnrollAccounts(consts.PrereqProgram, payer, types.Pubkey{4}, consts.Collection)
	require.NoError(t, err)

	prereq, _, err := pda.FindProgramAddress([][]byte{[]byte("prereqs"), payer[:]}, consts.PrereqProgram)
	require.NoError(t, err)
	assert.Equal(t, prereq, accounts.Prereq)

	authority, _, err := pda.FindProgramAddress([][]byte{[]byte("collection"), consts.Collection[:]}, consts.PrereqProgram)
	require.NoError(t, err)
	assert.Equal(t, authority, accounts.CollectionAuthority)

	assert.False(t, pda.IsOnCurve(accounts.Prereq))
	assert.False(t, pda.IsOnCurve(accounts.CollectionAuthority))
}

func TestEnroll_SignsWithPayerAndMint(t *testing.T) {
	payer, err := wallet.NewKeypair()
	require.NoError(t, err)
	mint, err := wallet.NewKeypair()
	require.NoError(t, err)

	ledger := ledgertest.NewFakeLedger()
	iv := NewInvoker(ledger, consts.PrereqProgram, consts.Collection)
	iv.newMint = func() (*wallet.Keypair, error) { return mint, nil }

	res, err := iv.Enroll(context.Background(), payer)
	require.NoError(t, err)
	assert.Equal(t, ledger.SubmitSig, res.Signature)
	assert.Equal(t, mint.Pubkey(), res.Accounts.Mint)

	require.Len(t, ledger.Submitted, 1)
	tx := ledger.Submitted[0]
	assert.Equal(t, []types.Pubkey{payer.Pubkey(), mint.Pubkey()}, tx.Message.Signers())

	payload := tx.Message.Serialize()
	assert.True(t, wallet.Verify(payer.Pubkey(), payload, tx.Signatures[0]))
	assert.True(t, wallet.Verify(mint.Pubkey(), payload, tx.Signatures[1]))

	// 编译后再还原，账户顺序与权限保持不变
	ix, err := tx.Message.DecompileInstruction(0)
	require.NoError(t, err)
	assert.Equal(t, EnrollInstruction(consts.PrereqProgram, res.Accounts), ix)
}

func TestEnroll_ReferenceError(t *testing.T) {
	payer, err := wallet.NewKeypair()
	require.NoError(t, err)

	stale := errors.New("blockhash not found")
	ledger := ledgertest.NewFakeLedger()
	ledger.ReferenceErr = stale

	_, err = NewInvoker(ledger, consts.PrereqProgram, consts.Collection).Enroll(context.Background(), payer)
	assert.ErrorIs(t, err, stale)
	assert.Equal(t, 0, ledger.CallCount("SubmitAndConfirm"))
}
