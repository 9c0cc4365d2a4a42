package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/blocto/solana-go-sdk/rpc"
	sdktypes "github.com/blocto/solana-go-sdk/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prereq-kit-sol/internal/config"
	"prereq-kit-sol/internal/logic/domain"
	"prereq-kit-sol/internal/logic/sysprogram"
	"prereq-kit-sol/internal/logic/txbuilder"
	"prereq-kit-sol/internal/types"
	"prereq-kit-sol/internal/wallet"
)

type fakeRpcClient struct {
	blockhash string
	fee       *uint64
	sendSig   string
	sendErr   error
	statuses  []*rpc.SignatureStatus // 依次返回，用完后重复最后一个
	statusErr error

	sent       []sdktypes.Transaction
	feeQueries []sdktypes.Message
	polls      int
}

func (f *fakeRpcClient) GetLatestBlockhash(_ context.Context) (rpc.GetLatestBlockhashValue, error) {
	return rpc.GetLatestBlockhashValue{Blockhash: f.blockhash}, nil
}

func (f *fakeRpcClient) RequestAirdrop(_ context.Context, _ string, _ uint64) (string, error) {
	return f.sendSig, nil
}

func (f *fakeRpcClient) GetBalance(_ context.Context, _ string) (uint64, error) {
	return 42, nil
}

func (f *fakeRpcClient) GetFeeForMessage(_ context.Context, message sdktypes.Message) (*uint64, error) {
	f.feeQueries = append(f.feeQueries, message)
	return f.fee, nil
}

func (f *fakeRpcClient) SendTransaction(_ context.Context, tx sdktypes.Transaction) (string, error) {
	f.sent = append(f.sent, tx)
	return f.sendSig, f.sendErr
}

func (f *fakeRpcClient) GetSignatureStatus(_ context.Context, _ string) (*rpc.SignatureStatus, error) {
	if f.statusErr != nil {
		return nil, f.statusErr
	}
	i := f.polls
	if i >= len(f.statuses) {
		i = len(f.statuses) - 1
	}
	f.polls++
	if i < 0 {
		return nil, nil
	}
	return f.statuses[i], nil
}

func commitmentPtr(c rpc.Commitment) *rpc.Commitment { return &c }

func testRpcConfig() *config.RpcConfig {
	return &config.RpcConfig{
		Endpoint:          "http://127.0.0.1:8899",
		Commitment:        "confirmed",
		RequestTimeoutSec: 1,
		ConfirmTimeoutSec: 1,
		PollIntervalMs:    5,
	}
}

func testTransaction(t *testing.T) *domain.Transaction {
	seed := make([]byte, wallet.SeedSize)
	seed[0] = 7
	payer, err := wallet.KeypairFromSeed(seed)
	require.NoError(t, err)

	tx, err := txbuilder.Build(
		[]domain.Instruction{sysprogram.Transfer(payer.Pubkey(), types.Pubkey{9}, 1_000)},
		payer.Pubkey(), []*wallet.Keypair{payer}, types.Hash{0x11},
	)
	require.NoError(t, err)
	return tx
}

func TestCommitmentReached(t *testing.T) {
	assert.True(t, commitmentReached(rpc.CommitmentConfirmed, rpc.CommitmentConfirmed))
	assert.True(t, commitmentReached(rpc.CommitmentFinalized, rpc.CommitmentConfirmed))
	assert.True(t, commitmentReached(rpc.CommitmentProcessed, rpc.CommitmentProcessed))
	assert.False(t, commitmentReached(rpc.CommitmentProcessed, rpc.CommitmentConfirmed))
	assert.False(t, commitmentReached(rpc.CommitmentConfirmed, rpc.CommitmentFinalized))
	assert.False(t, commitmentReached(rpc.Commitment("unknown"), rpc.Commitment("unknown")))
}

func TestNewRpcLedger_KeepsCallerConfig(t *testing.T) {
	cfg := testRpcConfig()
	cfg.PollIntervalMs = 0

	l := newRpcLedger(&fakeRpcClient{}, cfg)
	assert.Equal(t, time.Duration(config.DefaultPollIntervalMs)*time.Millisecond, l.pollInterval)
	assert.Equal(t, 0, cfg.PollIntervalMs)
}

func TestRpcLedger_LatestReference(t *testing.T) {
	want := types.Hash{0xCA, 0xFE}
	l := newRpcLedger(&fakeRpcClient{blockhash: want.String()}, testRpcConfig())

	got, err := l.LatestReference(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, got)

	l = newRpcLedger(&fakeRpcClient{blockhash: "not-base58!"}, testRpcConfig())
	_, err = l.LatestReference(context.Background())
	assert.Error(t, err)
}

func TestRpcLedger_EstimatedFee(t *testing.T) {
	tx := testTransaction(t)

	fee := uint64(5_000)
	c := &fakeRpcClient{fee: &fee}
	got, err := newRpcLedger(c, testRpcConfig()).EstimatedFee(context.Background(), tx.Message)
	require.NoError(t, err)
	assert.Equal(t, fee, got)

	// 转换后的 SDK 消息应与自身序列化结果一致
	require.Len(t, c.feeQueries, 1)
	raw, err := c.feeQueries[0].Serialize()
	require.NoError(t, err)
	assert.Equal(t, tx.Message.Serialize(), raw)

	_, err = newRpcLedger(&fakeRpcClient{}, testRpcConfig()).EstimatedFee(context.Background(), tx.Message)
	assert.ErrorIs(t, err, ErrFeeUnavailable)
}

func TestRpcLedger_SubmitAndConfirm(t *testing.T) {
	tx := testTransaction(t)
	c := &fakeRpcClient{
		sendSig: tx.ID().String(),
		statuses: []*rpc.SignatureStatus{
			nil,
			{Slot: 10, ConfirmationStatus: commitmentPtr(rpc.CommitmentProcessed)},
			{Slot: 11, ConfirmationStatus: commitmentPtr(rpc.CommitmentConfirmed)},
		},
	}

	sig, err := newRpcLedger(c, testRpcConfig()).SubmitAndConfirm(context.Background(), tx)
	require.NoError(t, err)
	assert.Equal(t, tx.ID(), sig)
	assert.Equal(t, 3, c.polls)

	require.Len(t, c.sent, 1)
	raw, err := c.sent[0].Serialize()
	require.NoError(t, err)
	assert.Equal(t, tx.Serialize(), raw)
}

func TestRpcLedger_SubmitFailedOnChain(t *testing.T) {
	tx := testTransaction(t)
	c := &fakeRpcClient{
		sendSig: tx.ID().String(),
		statuses: []*rpc.SignatureStatus{
			{Slot: 10, ConfirmationStatus: commitmentPtr(rpc.CommitmentProcessed), Err: map[string]any{"InstructionError": []any{0, "Custom"}}},
		},
	}

	sig, err := newRpcLedger(c, testRpcConfig()).SubmitAndConfirm(context.Background(), tx)
	assert.Equal(t, tx.ID(), sig)

	var failed *TransactionFailedError
	require.True(t, errors.As(err, &failed))
	assert.Equal(t, tx.ID(), failed.Signature)
}

func TestRpcLedger_ConfirmTimeout(t *testing.T) {
	tx := testTransaction(t)
	c := &fakeRpcClient{
		sendSig:  tx.ID().String(),
		statuses: []*rpc.SignatureStatus{{Slot: 10, ConfirmationStatus: commitmentPtr(rpc.CommitmentProcessed)}},
	}
	cfg := testRpcConfig()
	cfg.ConfirmTimeoutSec = 0
	l := newRpcLedger(c, cfg)
	l.confirmTimeout = 20 * time.Millisecond

	sig, err := l.SubmitAndConfirm(context.Background(), tx)
	assert.Equal(t, tx.ID(), sig)
	assert.ErrorIs(t, err, ErrConfirmTimeout)

	var timeout *ConfirmTimeoutError
	require.True(t, errors.As(err, &timeout))
	assert.Equal(t, tx.ID(), timeout.Signature)
}

func TestRpcLedger_ErrorsAreWrapped(t *testing.T) {
	tx := testTransaction(t)
	refused := errors.New("connection refused")

	_, err := newRpcLedger(&fakeRpcClient{sendErr: refused}, testRpcConfig()).SubmitAndConfirm(context.Background(), tx)
	assert.ErrorIs(t, err, refused)

	c := &fakeRpcClient{sendSig: tx.ID().String(), statusErr: refused}
	_, err = newRpcLedger(c, testRpcConfig()).SubmitAndConfirm(context.Background(), tx)
	assert.ErrorIs(t, err, refused)
}

func TestRpcLedger_ContextCancelled(t *testing.T) {
	tx := testTransaction(t)
	c := &fakeRpcClient{sendSig: tx.ID().String()}
	cfg := testRpcConfig()
	cfg.ConfirmTimeoutSec = 30

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newRpcLedger(c, cfg).SubmitAndConfirm(ctx, tx)
	assert.ErrorIs(t, err, context.Canceled)
}
