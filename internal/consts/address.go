package consts

// Base58 地址常量（可读性高，适合配置与日志使用）
const (
	// Programs
	SystemProgramStr = "11111111111111111111111111111111"

	// Turbin3 prereq 程序及其依赖
	PrereqProgramStr  = "TRBZyQHB3m68FGeVsqTK39Wm4xejadjVhP5MAZaKWDM"
	MplCoreProgramStr = "CoREENxT6tW1HoK8ypY1SxRMZTcVPm7R94rH4PZNhX7d"
	CollectionStr     = "5ebsp5RChCGK7ssRZMVMufgVZhd2kFbNaotcZ5UvytN2"
)

// PDA 种子前缀
const (
	PrereqSeed     = "prereqs"
	CollectionSeed = "collection"
)
