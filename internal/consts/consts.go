package consts

const (
	LamportsPerSol uint64 = 1_000_000_000

	// 默认 devnet RPC
	DefaultRpcEndpoint = "https://api.devnet.solana.com"
	DefaultCluster     = "devnet"

	// 默认空投 2 SOL
	DefaultAirdropLamports uint64 = 2 * LamportsPerSol
	// 默认转账 0.01 SOL
	DefaultTransferLamports uint64 = 10_000_000

	// 签名校验时使用的默认消息
	DefaultVerifyMessage = "I verify my solana keypair"

	ExplorerTxURLFormat = "https://explorer.solana.com/tx/%s?cluster=%s"
)
