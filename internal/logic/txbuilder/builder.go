package txbuilder

import (
	"prereq-kit-sol/internal/logic/domain"
	"prereq-kit-sol/internal/types"
	"prereq-kit-sol/internal/wallet"
)

// Build 编译并签名交易。纯本地计算：blockhash 由调用方预先获取，
// 签名校验失败会在任何网络交互之前返回。
func Build(
	instructions []domain.Instruction,
	feePayer types.Pubkey,
	signers []*wallet.Keypair,
	recentBlockhash types.Hash,
) (*domain.Transaction, error) {
	msg, err := CompileMessage(instructions, feePayer, recentBlockhash)
	if err != nil {
		return nil, err
	}
	return Sign(msg, signers)
}

// Sign 使用 signers 为已编译消息签名。
// 缺少签名账户返回 MissingSignerError，多余的 Keypair 返回 UnnecessarySignerError。
func Sign(msg *domain.Message, signers []*wallet.Keypair) (*domain.Transaction, error) {
	byKey := make(map[types.Pubkey]*wallet.Keypair, len(signers))
	order := make([]types.Pubkey, 0, len(signers))
	for _, kp := range signers {
		if kp == nil {
			continue
		}
		pk := kp.Pubkey()
		if _, dup := byKey[pk]; !dup {
			order = append(order, pk)
		}
		byKey[pk] = kp
	}

	required := msg.Signers()
	needed := make(map[types.Pubkey]struct{}, len(required))
	var missing []types.Pubkey
	for _, pk := range required {
		needed[pk] = struct{}{}
		if _, ok := byKey[pk]; !ok {
			missing = append(missing, pk)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingSignerError{Missing: missing}
	}

	var extra []types.Pubkey
	for _, pk := range order {
		if _, ok := needed[pk]; !ok {
			extra = append(extra, pk)
		}
	}
	if len(extra) > 0 {
		return nil, &UnnecessarySignerError{Extra: extra}
	}

	payload := msg.Serialize()
	tx := &domain.Transaction{
		Message:    msg,
		Signatures: make([]types.Signature, len(required)),
	}
	for i, pk := range required {
		tx.Signatures[i] = byKey[pk].Sign(payload)
	}
	return tx, nil
}
