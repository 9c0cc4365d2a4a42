package domain

import "prereq-kit-sol/internal/types"

// AccountMeta 描述指令引用的一个账户及其权限
type AccountMeta struct {
	Pubkey     types.Pubkey
	IsSigner   bool
	IsWritable bool
}

// NewAccountMeta 可写账户
func NewAccountMeta(pubkey types.Pubkey, isSigner bool) AccountMeta {
	return AccountMeta{Pubkey: pubkey, IsSigner: isSigner, IsWritable: true}
}

// NewReadonlyAccountMeta 只读账户
func NewReadonlyAccountMeta(pubkey types.Pubkey, isSigner bool) AccountMeta {
	return AccountMeta{Pubkey: pubkey, IsSigner: isSigner, IsWritable: false}
}

// Instruction 表示一条待编译的指令。
// Accounts 的顺序即目标程序的位置 ABI，编译时不会调整指令内的账户顺序。
type Instruction struct {
	ProgramID types.Pubkey  // 所调用的程序地址
	Accounts  []AccountMeta // 指令涉及的账户列表，保持原始顺序
	Data      []byte        // 指令数据
}
