package txbuilder

import (
	"fmt"
	"sort"

	"prereq-kit-sol/internal/logic/domain"
	"prereq-kit-sol/internal/types"
)

// 单条消息账户下标为 u8
const maxAccountKeys = 256

type keyEntry struct {
	meta    domain.AccountMeta
	isPayer bool
}

// rank 账户分组：签名可写 < 签名只读 < 可写 < 只读
func (e *keyEntry) rank() int {
	switch {
	case e.isPayer:
		return -1
	case e.meta.IsSigner && e.meta.IsWritable:
		return 0
	case e.meta.IsSigner:
		return 1
	case e.meta.IsWritable:
		return 2
	default:
		return 3
	}
}

// CompileMessage 将指令编译为 legacy 消息：
// - 手续费账户固定排在首位，并且一定签名、可写
// - 重复出现的账户合并，权限取并集
// - 组内保持首次出现顺序
func CompileMessage(instructions []domain.Instruction, feePayer types.Pubkey, recentBlockhash types.Hash) (*domain.Message, error) {
	if len(instructions) == 0 {
		return nil, ErrNoInstructions
	}

	entries := make([]*keyEntry, 0, 8)
	index := make(map[types.Pubkey]*keyEntry, 8)

	add := func(meta domain.AccountMeta) {
		if e, ok := index[meta.Pubkey]; ok {
			e.meta.IsSigner = e.meta.IsSigner || meta.IsSigner
			e.meta.IsWritable = e.meta.IsWritable || meta.IsWritable
			return
		}
		e := &keyEntry{meta: meta}
		index[meta.Pubkey] = e
		entries = append(entries, e)
	}

	add(domain.NewAccountMeta(feePayer, true))
	entries[0].isPayer = true

	for _, ix := range instructions {
		for _, acc := range ix.Accounts {
			add(acc)
		}
		add(domain.NewReadonlyAccountMeta(ix.ProgramID, false))
	}

	if len(entries) > maxAccountKeys {
		return nil, fmt.Errorf("%w: got %d, max %d", ErrTooManyAccounts, len(entries), maxAccountKeys)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].rank() < entries[j].rank()
	})

	msg := &domain.Message{
		AccountKeys:     make([]types.Pubkey, len(entries)),
		RecentBlockhash: recentBlockhash,
		Instructions:    make([]domain.CompiledInstruction, 0, len(instructions)),
	}
	position := make(map[types.Pubkey]uint8, len(entries))
	for i, e := range entries {
		msg.AccountKeys[i] = e.meta.Pubkey
		position[e.meta.Pubkey] = uint8(i)

		switch e.rank() {
		case -1, 0:
			msg.Header.NumRequiredSignatures++
		case 1:
			msg.Header.NumRequiredSignatures++
			msg.Header.NumReadonlySignedAccounts++
		case 3:
			msg.Header.NumReadonlyUnsignedAccounts++
		}
	}

	for _, ix := range instructions {
		cix := domain.CompiledInstruction{
			ProgramIDIndex: position[ix.ProgramID],
			Accounts:       make([]uint8, len(ix.Accounts)),
			Data:           append([]byte(nil), ix.Data...),
		}
		for i, acc := range ix.Accounts {
			cix.Accounts[i] = position[acc.Pubkey]
		}
		msg.Instructions = append(msg.Instructions, cix)
	}

	return msg, nil
}
