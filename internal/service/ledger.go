package service

import (
	"context"
	"errors"
	"fmt"

	"prereq-kit-sol/internal/logic/domain"
	"prereq-kit-sol/internal/types"
)

// Ledger 是与链交互的唯一边界，所有网络调用都经过这里。
// 实现方不做重试，错误原样（包装后）返回给调用方。
type Ledger interface {
	LatestReference(ctx context.Context) (types.Hash, error)
	RequestAirdrop(ctx context.Context, addr types.Pubkey, lamports uint64) (types.Signature, error)
	Balance(ctx context.Context, addr types.Pubkey) (uint64, error)
	EstimatedFee(ctx context.Context, msg *domain.Message) (uint64, error)
	SubmitAndConfirm(ctx context.Context, tx *domain.Transaction) (types.Signature, error)
}

var (
	// ErrConfirmTimeout 交易已发送但在超时时间内未达到目标确认级别
	ErrConfirmTimeout = errors.New("transaction not confirmed before timeout")
	// ErrFeeUnavailable 节点无法为该消息估算手续费（通常是 blockhash 已过期）
	ErrFeeUnavailable = errors.New("fee unavailable for message")
)

// TransactionFailedError 交易已上链但执行失败
type TransactionFailedError struct {
	Signature types.Signature
	Err       any // 节点返回的原始错误结构
}

func (e *TransactionFailedError) Error() string {
	return fmt.Sprintf("transaction %s failed on-chain: %v", e.Signature, e.Err)
}

// ConfirmTimeoutError 携带已发送交易的签名，便于调用方后续查询
type ConfirmTimeoutError struct {
	Signature types.Signature
}

func (e *ConfirmTimeoutError) Error() string {
	return fmt.Sprintf("%v: %s", ErrConfirmTimeout, e.Signature)
}

func (e *ConfirmTimeoutError) Unwrap() error {
	return ErrConfirmTimeout
}
