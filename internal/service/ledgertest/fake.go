// Package ledgertest 提供内存版 Ledger，供上层逻辑测试使用
package ledgertest

import (
	"context"
	"sync"

	"prereq-kit-sol/internal/logic/domain"
	"prereq-kit-sol/internal/types"
)

// FakeLedger 记录每次调用，返回预设结果
type FakeLedger struct {
	mu sync.Mutex

	Balances   map[types.Pubkey]uint64
	Fee        uint64
	References []types.Hash // 依次返回，用完后重复最后一个
	SubmitSig  types.Signature

	BalanceErr   error
	ReferenceErr error
	FeeErr       error
	SubmitErr    error
	AirdropErr   error

	Calls       []string
	FeeMessages []*domain.Message
	Submitted   []*domain.Transaction
	Airdrops    map[types.Pubkey]uint64
	refIndex    int
}

func NewFakeLedger() *FakeLedger {
	return &FakeLedger{
		Balances:   make(map[types.Pubkey]uint64),
		References: []types.Hash{{0x01}},
		SubmitSig:  types.Signature{0x5A},
		Airdrops:   make(map[types.Pubkey]uint64),
	}
}

func (f *FakeLedger) record(call string) {
	f.Calls = append(f.Calls, call)
}

func (f *FakeLedger) LatestReference(_ context.Context) (types.Hash, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("LatestReference")
	if f.ReferenceErr != nil {
		return types.Hash{}, f.ReferenceErr
	}
	ref := f.References[f.refIndex]
	if f.refIndex < len(f.References)-1 {
		f.refIndex++
	}
	return ref, nil
}

func (f *FakeLedger) RequestAirdrop(_ context.Context, addr types.Pubkey, lamports uint64) (types.Signature, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("RequestAirdrop")
	if f.AirdropErr != nil {
		return types.Signature{}, f.AirdropErr
	}
	f.Airdrops[addr] += lamports
	f.Balances[addr] += lamports
	return f.SubmitSig, nil
}

func (f *FakeLedger) Balance(_ context.Context, addr types.Pubkey) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("Balance")
	if f.BalanceErr != nil {
		return 0, f.BalanceErr
	}
	return f.Balances[addr], nil
}

func (f *FakeLedger) EstimatedFee(_ context.Context, msg *domain.Message) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("EstimatedFee")
	f.FeeMessages = append(f.FeeMessages, msg)
	if f.FeeErr != nil {
		return 0, f.FeeErr
	}
	return f.Fee, nil
}

func (f *FakeLedger) SubmitAndConfirm(_ context.Context, tx *domain.Transaction) (types.Signature, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("SubmitAndConfirm")
	if f.SubmitErr != nil {
		return types.Signature{}, f.SubmitErr
	}
	f.Submitted = append(f.Submitted, tx)
	return f.SubmitSig, nil
}

// CallCount 统计某方法被调用次数
func (f *FakeLedger) CallCount(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.Calls {
		if c == name {
			n++
		}
	}
	return n
}
