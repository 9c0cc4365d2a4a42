package consts

import (
	"prereq-kit-sol/internal/types"
)

// 公钥形式的地址常量（types.Pubkey），用于指令构造与比对
var (
	SystemProgram = types.MustPubkeyFromBase58(SystemProgramStr)

	PrereqProgram  = types.MustPubkeyFromBase58(PrereqProgramStr)
	MplCoreProgram = types.MustPubkeyFromBase58(MplCoreProgramStr)
	Collection     = types.MustPubkeyFromBase58(CollectionStr)
)
