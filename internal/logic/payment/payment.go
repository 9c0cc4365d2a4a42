package payment

import (
	"context"
	"errors"
	"fmt"

	"prereq-kit-sol/internal/logic/domain"
	"prereq-kit-sol/internal/logic/sysprogram"
	"prereq-kit-sol/internal/logic/txbuilder"
	"prereq-kit-sol/internal/service"
	"prereq-kit-sol/internal/types"
	"prereq-kit-sol/internal/wallet"
	"prereq-kit-sol/pkg/logger"
)

var ErrZeroAmount = errors.New("amount must be greater than zero")

// SendResult 固定金额转账结果
type SendResult struct {
	Signature types.Signature
	From      types.Pubkey
	To        types.Pubkey
	Lamports  uint64
}

// Payment 空投与固定金额转账
type Payment struct {
	ledger service.Ledger
}

func NewPayment(ledger service.Ledger) *Payment {
	return &Payment{ledger: ledger}
}

// Airdrop 向 devnet 申请空投，只返回请求签名，不等待确认
func (p *Payment) Airdrop(ctx context.Context, to types.Pubkey, lamports uint64) (types.Signature, error) {
	if lamports == 0 {
		return types.Signature{}, ErrZeroAmount
	}
	sig, err := p.ledger.RequestAirdrop(ctx, to, lamports)
	if err != nil {
		return types.Signature{}, err
	}
	logger.Infof("[Payment] 空投已请求: to=%s lamports=%d sig=%s", to, lamports, sig)
	return sig, nil
}

// Send 从 from 向 to 转账固定金额，手续费由 from 另付
func (p *Payment) Send(ctx context.Context, from *wallet.Keypair, to types.Pubkey, lamports uint64) (*SendResult, error) {
	if lamports == 0 {
		return nil, ErrZeroAmount
	}

	reference, err := p.ledger.LatestReference(ctx)
	if err != nil {
		return nil, err
	}

	tx, err := txbuilder.Build(
		[]domain.Instruction{sysprogram.Transfer(from.Pubkey(), to, lamports)},
		from.Pubkey(),
		[]*wallet.Keypair{from},
		reference,
	)
	if err != nil {
		return nil, fmt.Errorf("build transfer: %w", err)
	}

	sig, err := p.ledger.SubmitAndConfirm(ctx, tx)
	if err != nil {
		return nil, err
	}
	logger.Infof("[Payment] 转账成功: from=%s to=%s lamports=%d sig=%s", from.Pubkey(), to, lamports, sig)
	return &SendResult{Signature: sig, From: from.Pubkey(), To: to, Lamports: lamports}, nil
}
