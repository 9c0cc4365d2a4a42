package sweeper

import (
	"context"
	"fmt"

	"prereq-kit-sol/internal/logic/domain"
	"prereq-kit-sol/internal/logic/sysprogram"
	"prereq-kit-sol/internal/logic/txbuilder"
	"prereq-kit-sol/internal/service"
	"prereq-kit-sol/internal/types"
	"prereq-kit-sol/internal/wallet"
	"prereq-kit-sol/pkg/logger"
)

// InsufficientBalanceError 余额不足以支付手续费，未提交任何交易
type InsufficientBalanceError struct {
	Address types.Pubkey
	Balance uint64
	Fee     uint64
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance to sweep %s: balance=%d fee=%d", e.Address, e.Balance, e.Fee)
}

// SweepResult 清空余额的结果
type SweepResult struct {
	Signature   types.Signature
	Balance     uint64     // 第一阶段查询到的余额
	Fee         uint64     // 按模拟消息估算的手续费
	Transferred uint64     // 实际转出金额 = Balance - Fee
	Reference   types.Hash // 实际交易使用的 blockhash
}

// Sweeper 将账户全部余额（扣除精确手续费）转到目标地址
type Sweeper struct {
	ledger           service.Ledger
	refreshReference bool
}

// NewSweeper refreshReference 为 true 时第二阶段重新获取 blockhash。
// 手续费只由消息结构（签名数、指令）决定，重新获取 blockhash 后仍沿用第一阶段的估算值。
func NewSweeper(ledger service.Ledger, refreshReference bool) *Sweeper {
	return &Sweeper{ledger: ledger, refreshReference: refreshReference}
}

// Sweep 两阶段执行：
//  1. 查询余额 B，用全额 B 构造模拟消息（不签名、不提交）
//  2. 估算该消息的手续费 F，构造并提交转账 B-F 的真实交易
func (s *Sweeper) Sweep(ctx context.Context, from *wallet.Keypair, to types.Pubkey) (*SweepResult, error) {
	source := from.Pubkey()

	balance, err := s.ledger.Balance(ctx, source)
	if err != nil {
		return nil, err
	}
	reference, err := s.ledger.LatestReference(ctx)
	if err != nil {
		return nil, err
	}

	mock, err := txbuilder.CompileMessage(
		[]domain.Instruction{sysprogram.Transfer(source, to, balance)},
		source,
		reference,
	)
	if err != nil {
		return nil, fmt.Errorf("compile mock message: %w", err)
	}

	fee, err := s.ledger.EstimatedFee(ctx, mock)
	if err != nil {
		return nil, err
	}
	logger.Infof("[Sweeper] %s 余额=%d 手续费=%d", source, balance, fee)

	if balance <= fee {
		return nil, &InsufficientBalanceError{Address: source, Balance: balance, Fee: fee}
	}

	if s.refreshReference {
		if reference, err = s.ledger.LatestReference(ctx); err != nil {
			return nil, err
		}
	}

	amount := balance - fee
	tx, err := txbuilder.Build(
		[]domain.Instruction{sysprogram.Transfer(source, to, amount)},
		source,
		[]*wallet.Keypair{from},
		reference,
	)
	if err != nil {
		return nil, err
	}

	sig, err := s.ledger.SubmitAndConfirm(ctx, tx)
	if err != nil {
		return nil, err
	}
	logger.Infof("[Sweeper] 已转出 %d lamports: %s -> %s, sig=%s", amount, source, to, sig)

	return &SweepResult{
		Signature:   sig,
		Balance:     balance,
		Fee:         fee,
		Transferred: amount,
		Reference:   reference,
	}, nil
}
