package invoker

import (
	"context"
	"fmt"

	"prereq-kit-sol/internal/consts"
	"prereq-kit-sol/internal/logic/domain"
	"prereq-kit-sol/internal/logic/pda"
	"prereq-kit-sol/internal/logic/txbuilder"
	"prereq-kit-sol/internal/service"
	"prereq-kit-sol/internal/types"
	"prereq-kit-sol/internal/wallet"
	"prereq-kit-sol/pkg/logger"
)

// EnrollDiscriminator 为 prereq 程序约定的 8 字节指令前缀，指令没有额外参数
var EnrollDiscriminator = [8]byte{77, 124, 82, 163, 21, 133, 181, 206}

// EnrollAccounts 为 enroll 指令的 7 个位置账户
type EnrollAccounts struct {
	Payer               types.Pubkey
	Prereq              types.Pubkey // PDA ["prereqs", payer]
	Mint                types.Pubkey // 一次性生成的新资产 Keypair
	Collection          types.Pubkey
	CollectionAuthority types.Pubkey // PDA ["collection", collection]
	MplCoreProgram      types.Pubkey
	SystemProgram       types.Pubkey
}

// DeriveEnrollAccounts 按 prereq 程序的种子规则派生两个 PDA
func DeriveEnrollAccounts(program, payer, mint, collection types.Pubkey) (EnrollAccounts, error) {
	prereq, _, err := pda.FindProgramAddress([][]byte{[]byte(consts.PrereqSeed), payer[:]}, program)
	if err != nil {
		return EnrollAccounts{}, fmt.Errorf("derive prereq account: %w", err)
	}
	authority, _, err := pda.FindProgramAddress([][]byte{[]byte(consts.CollectionSeed), collection[:]}, program)
	if err != nil {
		return EnrollAccounts{}, fmt.Errorf("derive collection authority: %w", err)
	}
	return EnrollAccounts{
		Payer:               payer,
		Prereq:              prereq,
		Mint:                mint,
		Collection:          collection,
		CollectionAuthority: authority,
		MplCoreProgram:      consts.MplCoreProgram,
		SystemProgram:       consts.SystemProgram,
	}, nil
}

// EnrollInstruction 构造 enroll 指令。账户顺序是与链上程序的外部约定，不可调整：
//
// #0 - payer（签名、可写）
// #1 - prereq PDA（可写）
// #2 - mint（签名、可写）
// #3 - collection（可写）
// #4 - collection authority PDA（只读）
// #5 - mpl-core 程序（只读）
// #6 - system 程序（只读）
func EnrollInstruction(program types.Pubkey, a EnrollAccounts) domain.Instruction {
	data := make([]byte, len(EnrollDiscriminator))
	copy(data, EnrollDiscriminator[:])
	return domain.Instruction{
		ProgramID: program,
		Accounts: []domain.AccountMeta{
			domain.NewAccountMeta(a.Payer, true),
			domain.NewAccountMeta(a.Prereq, false),
			domain.NewAccountMeta(a.Mint, true),
			domain.NewAccountMeta(a.Collection, false),
			domain.NewReadonlyAccountMeta(a.CollectionAuthority, false),
			domain.NewReadonlyAccountMeta(a.MplCoreProgram, false),
			domain.NewReadonlyAccountMeta(a.SystemProgram, false),
		},
		Data: data,
	}
}

// EnrollResult enroll 结果
type EnrollResult struct {
	Signature types.Signature
	Accounts  EnrollAccounts
}

// Invoker 调用 prereq 程序
type Invoker struct {
	ledger     service.Ledger
	program    types.Pubkey
	collection types.Pubkey
	newMint    func() (*wallet.Keypair, error)
}

func NewInvoker(ledger service.Ledger, program, collection types.Pubkey) *Invoker {
	return &Invoker{
		ledger:     ledger,
		program:    program,
		collection: collection,
		newMint:    wallet.NewKeypair,
	}
}

// Enroll 生成一次性 mint Keypair，由 payer 与 mint 共同签名后提交
func (iv *Invoker) Enroll(ctx context.Context, payer *wallet.Keypair) (*EnrollResult, error) {
	mint, err := iv.newMint()
	if err != nil {
		return nil, fmt.Errorf("generate mint keypair: %w", err)
	}

	accounts, err := DeriveEnrollAccounts(iv.program, payer.Pubkey(), mint.Pubkey(), iv.collection)
	if err != nil {
		return nil, err
	}
	logger.Infof("[Invoker] enroll: payer=%s prereq=%s mint=%s authority=%s",
		types.WalletAddress(accounts.Payer), types.DerivedAddress(accounts.Prereq),
		types.WalletAddress(accounts.Mint), types.DerivedAddress(accounts.CollectionAuthority))

	reference, err := iv.ledger.LatestReference(ctx)
	if err != nil {
		return nil, err
	}

	tx, err := txbuilder.Build(
		[]domain.Instruction{EnrollInstruction(iv.program, accounts)},
		payer.Pubkey(),
		[]*wallet.Keypair{payer, mint},
		reference,
	)
	if err != nil {
		return nil, err
	}

	sig, err := iv.ledger.SubmitAndConfirm(ctx, tx)
	if err != nil {
		return nil, err
	}
	return &EnrollResult{Signature: sig, Accounts: accounts}, nil
}
