package domain

import (
	"errors"
	"fmt"

	"prereq-kit-sol/internal/types"
	"prereq-kit-sol/internal/utils"
)

// MessageHeader 描述 AccountKeys 的签名与只读分段
type MessageHeader struct {
	NumRequiredSignatures       uint8 // 前 N 个账户需要签名
	NumReadonlySignedAccounts   uint8 // 签名账户中末尾只读的数量
	NumReadonlyUnsignedAccounts uint8 // 非签名账户中末尾只读的数量
}

// CompiledInstruction 以账户下标引用 AccountKeys 的指令
type CompiledInstruction struct {
	ProgramIDIndex uint8
	Accounts       []uint8
	Data           []byte
}

// Message 为编译后的 legacy 消息，签名覆盖其序列化字节。
// 构造后不再修改；blockhash 过期时需重新编译。
type Message struct {
	Header          MessageHeader
	AccountKeys     []types.Pubkey
	RecentBlockhash types.Hash
	Instructions    []CompiledInstruction
}

// FeePayer 手续费账户固定为第一个账户
func (m *Message) FeePayer() types.Pubkey {
	if len(m.AccountKeys) == 0 {
		return types.Pubkey{}
	}
	return m.AccountKeys[0]
}

// Signers 返回需要签名的账户（按签名顺序）
func (m *Message) Signers() []types.Pubkey {
	n := int(m.Header.NumRequiredSignatures)
	if n > len(m.AccountKeys) {
		n = len(m.AccountKeys)
	}
	return m.AccountKeys[:n]
}

// IsSigner 判断账户下标是否位于签名段
func (m *Message) IsSigner(index int) bool {
	return index < int(m.Header.NumRequiredSignatures)
}

// IsWritable 按 header 分段规则判断账户下标是否可写
func (m *Message) IsWritable(index int) bool {
	h := m.Header
	if index < int(h.NumRequiredSignatures) {
		return index < int(h.NumRequiredSignatures-h.NumReadonlySignedAccounts)
	}
	return index < len(m.AccountKeys)-int(h.NumReadonlyUnsignedAccounts)
}

// Serialize 输出 legacy 消息格式：
//
//	header(3) | compact(len) accountKeys | blockhash(32) | compact(len) instructions
//	instruction: programIdIndex(1) | compact(len) accounts | compact(len) data
func (m *Message) Serialize() []byte {
	size := 3 + 3 + len(m.AccountKeys)*types.PubkeySize + 32 + 3
	for _, ix := range m.Instructions {
		size += 1 + 3 + len(ix.Accounts) + 3 + len(ix.Data)
	}

	buf := make([]byte, 0, size)
	buf = append(buf,
		m.Header.NumRequiredSignatures,
		m.Header.NumReadonlySignedAccounts,
		m.Header.NumReadonlyUnsignedAccounts,
	)

	buf = utils.AppendCompactU16(buf, len(m.AccountKeys))
	for _, k := range m.AccountKeys {
		buf = append(buf, k[:]...)
	}

	buf = append(buf, m.RecentBlockhash[:]...)

	buf = utils.AppendCompactU16(buf, len(m.Instructions))
	for _, ix := range m.Instructions {
		buf = append(buf, ix.ProgramIDIndex)
		buf = utils.AppendCompactU16(buf, len(ix.Accounts))
		buf = append(buf, ix.Accounts...)
		buf = utils.AppendCompactU16(buf, len(ix.Data))
		buf = append(buf, ix.Data...)
	}
	return buf
}

// DecompileInstruction 将编译后的指令还原为带权限信息的 Instruction（用于检查与测试）
func (m *Message) DecompileInstruction(i int) (Instruction, error) {
	if i < 0 || i >= len(m.Instructions) {
		return Instruction{}, fmt.Errorf("instruction index %d out of range", i)
	}
	cix := m.Instructions[i]
	if int(cix.ProgramIDIndex) >= len(m.AccountKeys) {
		return Instruction{}, fmt.Errorf("program index %d out of range", cix.ProgramIDIndex)
	}

	ix := Instruction{
		ProgramID: m.AccountKeys[cix.ProgramIDIndex],
		Accounts:  make([]AccountMeta, 0, len(cix.Accounts)),
		Data:      cix.Data,
	}
	for _, idx := range cix.Accounts {
		if int(idx) >= len(m.AccountKeys) {
			return Instruction{}, fmt.Errorf("account index %d out of range", idx)
		}
		ix.Accounts = append(ix.Accounts, AccountMeta{
			Pubkey:     m.AccountKeys[idx],
			IsSigner:   m.IsSigner(int(idx)),
			IsWritable: m.IsWritable(int(idx)),
		})
	}
	return ix, nil
}

// Transaction 为已签名交易，Signatures 与 Message.Signers() 一一对应。
// 提交后即视为消费完毕，不可复用。
type Transaction struct {
	Message    *Message
	Signatures []types.Signature
}

var ErrSignatureNotFound = errors.New("signature not found")

// Signature 返回指定签名账户的签名
func (tx *Transaction) Signature(signer types.Pubkey) (types.Signature, error) {
	for i, k := range tx.Message.Signers() {
		if k == signer && i < len(tx.Signatures) {
			return tx.Signatures[i], nil
		}
	}
	return types.Signature{}, fmt.Errorf("%w: %s", ErrSignatureNotFound, signer)
}

// ID 交易标识即手续费账户的签名
func (tx *Transaction) ID() types.Signature {
	if len(tx.Signatures) == 0 {
		return types.Signature{}
	}
	return tx.Signatures[0]
}

// Serialize 输出 compact(len) signatures | message
func (tx *Transaction) Serialize() []byte {
	msg := tx.Message.Serialize()
	buf := make([]byte, 0, 3+len(tx.Signatures)*types.SignatureSize+len(msg))
	buf = utils.AppendCompactU16(buf, len(tx.Signatures))
	for _, s := range tx.Signatures {
		buf = append(buf, s[:]...)
	}
	return append(buf, msg...)
}
