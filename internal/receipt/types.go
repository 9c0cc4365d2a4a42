package receipt

import (
	"prereq-kit-sol/internal/consts"
	"prereq-kit-sol/internal/types"
)

// Receipt 表示一笔已提交并确认的交易
type Receipt struct {
	Signature types.Signature
	Kind      uint8        // consts.TxKind*
	From      types.Pubkey // 付款 / 签名账户
	To        types.Pubkey // 收款账户或派生地址，enroll 时为 prereq PDA
	Lamports  uint64       // 转账金额，enroll 时为 0
	Fee       uint64       // 估算手续费，未知时为 0
	Cluster   string
	CreatedAt int64 // Unix 秒
}

func (r *Receipt) KindName() string {
	return consts.TxKindName(int(r.Kind))
}
