package consts

// 已提交交易的类型，用于回执记录
const (
	TxKindAirdrop  = iota + 1 // 1
	TxKindTransfer            // 2
	TxKindSweep               // 3
	TxKindEnroll              // 4
)

var TxKindNames = []string{
	"unknown",  // 0 (保留)
	"airdrop",  // 1
	"transfer", // 2
	"sweep",    // 3
	"enroll",   // 4
}

func TxKindName(kind int) string {
	if kind >= 1 && kind < len(TxKindNames) {
		return TxKindNames[kind]
	}
	return TxKindNames[0]
}

// TxKindFromName 反查类型编号，未知名称返回 0
func TxKindFromName(name string) int {
	for i := 1; i < len(TxKindNames); i++ {
		if TxKindNames[i] == name {
			return i
		}
	}
	return 0
}
