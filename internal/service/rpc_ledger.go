package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/blocto/solana-go-sdk/client"
	"github.com/blocto/solana-go-sdk/rpc"
	sdktypes "github.com/blocto/solana-go-sdk/types"

	"prereq-kit-sol/internal/config"
	"prereq-kit-sol/internal/logic/domain"
	"prereq-kit-sol/internal/types"
	"prereq-kit-sol/pkg/logger"
)

// rpcClient 为 RpcLedger 用到的 blocto client 方法子集
type rpcClient interface {
	GetLatestBlockhash(ctx context.Context) (rpc.GetLatestBlockhashValue, error)
	RequestAirdrop(ctx context.Context, base58Addr string, lamports uint64) (string, error)
	GetBalance(ctx context.Context, base58Addr string) (uint64, error)
	GetFeeForMessage(ctx context.Context, message sdktypes.Message) (*uint64, error)
	SendTransaction(ctx context.Context, tx sdktypes.Transaction) (string, error)
	GetSignatureStatus(ctx context.Context, signature string) (*rpc.SignatureStatus, error)
}

var _ rpcClient = (*client.Client)(nil)

// RpcLedger 基于 JSON-RPC 的 Ledger 实现
type RpcLedger struct {
	client         rpcClient
	endpoint       string
	commitment     rpc.Commitment
	requestTimeout time.Duration
	confirmTimeout time.Duration
	pollInterval   time.Duration
}

var _ Ledger = (*RpcLedger)(nil)

func NewRpcLedger(cfg *config.RpcConfig) (*RpcLedger, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("rpc endpoint is empty")
	}
	c := client.NewClient(cfg.Endpoint)
	if c == nil {
		return nil, errors.New("rpc client init failed")
	}
	return newRpcLedger(c, cfg), nil
}

func newRpcLedger(c rpcClient, cfg *config.RpcConfig) *RpcLedger {
	pollMs := cfg.PollIntervalMs
	if pollMs <= 0 {
		pollMs = config.DefaultPollIntervalMs
	}
	return &RpcLedger{
		client:         c,
		endpoint:       cfg.Endpoint,
		commitment:     rpc.Commitment(cfg.Commitment),
		requestTimeout: time.Duration(cfg.RequestTimeoutSec) * time.Second,
		confirmTimeout: time.Duration(cfg.ConfirmTimeoutSec) * time.Second,
		pollInterval:   time.Duration(pollMs) * time.Millisecond,
	}
}

func (l *RpcLedger) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if l.requestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, l.requestTimeout)
}

func (l *RpcLedger) LatestReference(ctx context.Context) (types.Hash, error) {
	ctx, cancel := l.withTimeout(ctx)
	defer cancel()

	start := time.Now()
	res, err := l.client.GetLatestBlockhash(ctx)
	if err != nil {
		return types.Hash{}, fmt.Errorf("GetLatestBlockhash failed: %w", err)
	}
	h, err := types.HashFromBase58(res.Blockhash)
	if err != nil {
		return types.Hash{}, fmt.Errorf("GetLatestBlockhash returned invalid blockhash: %w", err)
	}
	logger.Debugf("[RpcLedger] GetLatestBlockhash 成功: %s, 耗时: %v", h, time.Since(start))
	return h, nil
}

func (l *RpcLedger) RequestAirdrop(ctx context.Context, addr types.Pubkey, lamports uint64) (types.Signature, error) {
	ctx, cancel := l.withTimeout(ctx)
	defer cancel()

	sig, err := l.client.RequestAirdrop(ctx, addr.String(), lamports)
	if err != nil {
		return types.Signature{}, fmt.Errorf("RequestAirdrop failed: addr=%s lamports=%d: %w", addr, lamports, err)
	}
	return types.SignatureFromBase58(sig)
}

func (l *RpcLedger) Balance(ctx context.Context, addr types.Pubkey) (uint64, error) {
	ctx, cancel := l.withTimeout(ctx)
	defer cancel()

	balance, err := l.client.GetBalance(ctx, addr.String())
	if err != nil {
		return 0, fmt.Errorf("GetBalance failed: addr=%s: %w", addr, err)
	}
	return balance, nil
}

func (l *RpcLedger) EstimatedFee(ctx context.Context, msg *domain.Message) (uint64, error) {
	sdkMsg, err := sdktypes.MessageDeserialize(msg.Serialize())
	if err != nil {
		return 0, fmt.Errorf("convert message: %w", err)
	}

	ctx, cancel := l.withTimeout(ctx)
	defer cancel()

	fee, err := l.client.GetFeeForMessage(ctx, sdkMsg)
	if err != nil {
		return 0, fmt.Errorf("GetFeeForMessage failed: %w", err)
	}
	if fee == nil {
		return 0, fmt.Errorf("%w: blockhash=%s", ErrFeeUnavailable, msg.RecentBlockhash)
	}
	return *fee, nil
}

// SubmitAndConfirm 发送交易并轮询签名状态，直到达到配置的确认级别、
// 链上执行失败或超时
func (l *RpcLedger) SubmitAndConfirm(ctx context.Context, tx *domain.Transaction) (types.Signature, error) {
	sdkTx, err := sdktypes.TransactionDeserialize(tx.Serialize())
	if err != nil {
		return types.Signature{}, fmt.Errorf("convert transaction: %w", err)
	}

	sendCtx, cancel := l.withTimeout(ctx)
	raw, err := l.client.SendTransaction(sendCtx, sdkTx)
	cancel()
	if err != nil {
		return types.Signature{}, fmt.Errorf("SendTransaction failed: %w", err)
	}

	sig, err := types.SignatureFromBase58(raw)
	if err != nil {
		return types.Signature{}, err
	}
	logger.Infof("[RpcLedger] 交易已发送: %s, 等待 %s 确认", sig, l.commitment)

	return sig, l.waitConfirmed(ctx, sig)
}

func (l *RpcLedger) waitConfirmed(ctx context.Context, sig types.Signature) error {
	deadline := time.Now().Add(l.confirmTimeout)
	ticker := time.NewTicker(l.pollInterval)
	defer ticker.Stop()

	for {
		pollCtx, cancel := l.withTimeout(ctx)
		status, err := l.client.GetSignatureStatus(pollCtx, sig.String())
		cancel()
		if err != nil {
			return fmt.Errorf("GetSignatureStatus failed: sig=%s: %w", sig, err)
		}

		if status != nil {
			if status.Err != nil {
				return &TransactionFailedError{Signature: sig, Err: status.Err}
			}
			if status.ConfirmationStatus != nil && commitmentReached(*status.ConfirmationStatus, l.commitment) {
				logger.Infof("[RpcLedger] 交易已确认: %s, slot=%d", sig, status.Slot)
				return nil
			}
		}

		if time.Now().After(deadline) {
			return &ConfirmTimeoutError{Signature: sig}
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("wait confirmation %s: %w", sig, ctx.Err())
		case <-ticker.C:
		}
	}
}

func commitmentLevel(c rpc.Commitment) int {
	switch c {
	case rpc.CommitmentProcessed:
		return 1
	case rpc.CommitmentConfirmed:
		return 2
	case rpc.CommitmentFinalized:
		return 3
	default:
		return 0
	}
}

// commitmentReached 当前确认级别是否不低于目标级别
func commitmentReached(current, target rpc.Commitment) bool {
	return commitmentLevel(current) >= commitmentLevel(target) && commitmentLevel(current) > 0
}
