package sysprogram

import (
	"fmt"
	"runtime/debug"

	"github.com/near/borsh-go"

	"prereq-kit-sol/internal/consts"
	"prereq-kit-sol/internal/logic/domain"
	"prereq-kit-sol/internal/types"
)

// System Program 指令编号（u32 小端）
const (
	InstructionCreateAccount uint32 = iota
	InstructionAssign
	InstructionTransfer
)

// TransferData 为 Transfer 指令数据布局（共 12 字节）
type TransferData struct {
	Instruction uint32
	Lamports    uint64
}

const transferDataSize = 12

// Transfer 构造 System Program 转账指令
//
// #0 - from（签名、可写）
// #1 - to（可写）
func Transfer(from, to types.Pubkey, lamports uint64) domain.Instruction {
	data, err := borsh.Serialize(TransferData{
		Instruction: InstructionTransfer,
		Lamports:    lamports,
	})
	if err != nil {
		// 定长整数结构体序列化不会失败
		panic(fmt.Errorf("serialize transfer data: %w", err))
	}
	return domain.Instruction{
		ProgramID: consts.SystemProgram,
		Accounts: []domain.AccountMeta{
			domain.NewAccountMeta(from, true),
			domain.NewAccountMeta(to, false),
		},
		Data: data,
	}
}

// DecodeTransfer 解析 Transfer 指令数据，返回转账金额
func DecodeTransfer(data []byte) (lamports uint64, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("decode transfer panic: %v\n%s", r, debug.Stack())
		}
	}()

	if len(data) != transferDataSize {
		return 0, fmt.Errorf("invalid transfer data length: got %d, want %d", len(data), transferDataSize)
	}
	var td TransferData
	if err := borsh.Deserialize(&td, data); err != nil {
		return 0, fmt.Errorf("borsh decode transfer: %w", err)
	}
	if td.Instruction != InstructionTransfer {
		return 0, fmt.Errorf("not a transfer instruction: %d", td.Instruction)
	}
	return td.Lamports, nil
}

// FindTransfer 在消息中查找第一条 System Program 转账指令并返回金额
func FindTransfer(msg *domain.Message) (from, to types.Pubkey, lamports uint64, err error) {
	for i := range msg.Instructions {
		ix, derr := msg.DecompileInstruction(i)
		if derr != nil {
			return from, to, 0, derr
		}
		if ix.ProgramID != consts.SystemProgram || len(ix.Accounts) < 2 {
			continue
		}
		amount, derr := DecodeTransfer(ix.Data)
		if derr != nil {
			continue
		}
		return ix.Accounts[0].Pubkey, ix.Accounts[1].Pubkey, amount, nil
	}
	return from, to, 0, fmt.Errorf("no system transfer in message")
}
