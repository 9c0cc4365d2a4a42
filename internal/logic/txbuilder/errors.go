package txbuilder

import (
	"errors"
	"fmt"
	"strings"

	"prereq-kit-sol/internal/types"
)

var (
	ErrNoInstructions  = errors.New("txbuilder: no instructions")
	ErrTooManyAccounts = errors.New("txbuilder: too many account keys")
)

// MissingSignerError 需要签名的账户没有提供对应的 Keypair
type MissingSignerError struct {
	Missing []types.Pubkey
}

func (e *MissingSignerError) Error() string {
	return "txbuilder: missing signer(s): " + joinPubkeys(e.Missing)
}

// UnnecessarySignerError 提供的 Keypair 既不是手续费账户也不是任何指令的签名账户
type UnnecessarySignerError struct {
	Extra []types.Pubkey
}

func (e *UnnecessarySignerError) Error() string {
	return "txbuilder: unnecessary signer(s): " + joinPubkeys(e.Extra)
}

func joinPubkeys(keys []types.Pubkey) string {
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k.String()
	}
	return fmt.Sprintf("[%s]", strings.Join(parts, ", "))
}
