package config

import (
	"fmt"
	"os"

	"github.com/zeromicro/go-zero/core/conf"
	"gopkg.in/yaml.v3"

	"prereq-kit-sol/internal/consts"
	"prereq-kit-sol/pkg/logger"
)

// 默认值
const (
	DefaultCommitment        = "confirmed"
	DefaultRequestTimeoutSec = 15
	DefaultConfirmTimeoutSec = 60
	DefaultPollIntervalMs    = 500
	DefaultReceiptTtlHours   = 7 * 24
	DefaultDevWallet         = "dev-wallet.json"
	DefaultEnrollWallet      = "turbine-wallet.json"
)

type LogConfig struct {
	Format   string `json:"format,optional" yaml:"format"`     // 日志格式，支持 "console" 或 "json"
	LogDir   string `json:"log_dir,optional" yaml:"log_dir"`   // 日志目录，为空时只输出到 stderr
	Level    string `json:"level,optional" yaml:"level"`       // 日志级别：debug / info / warn / error
	Compress bool   `json:"compress,optional" yaml:"compress"` // 是否压缩旧日志文件
}

func (c *LogConfig) ToLogOption() logger.LogOption {
	return logger.LogOption{
		Format:   c.Format,
		LogDir:   c.LogDir,
		Level:    c.Level,
		Compress: c.Compress,
	}
}

// RpcConfig 表示 RPC 节点连接配置
type RpcConfig struct {
	Endpoint   string `json:"endpoint,optional" yaml:"endpoint"`     // RPC 地址，例如 https://api.devnet.solana.com
	Cluster    string `json:"cluster,optional" yaml:"cluster"`       // 浏览器链接使用的集群名：devnet / testnet / mainnet-beta
	Commitment string `json:"commitment,optional" yaml:"commitment"` // 交易确认级别：processed / confirmed / finalized

	RequestTimeoutSec int `json:"request_timeout_sec,optional" yaml:"request_timeout_sec"` // 单次 RPC 请求超时（秒）
	ConfirmTimeoutSec int `json:"confirm_timeout_sec,optional" yaml:"confirm_timeout_sec"` // 等待交易确认的总超时（秒）
	PollIntervalMs    int `json:"poll_interval_ms,optional" yaml:"poll_interval_ms"`       // 确认状态轮询间隔（毫秒）
}

// WalletConfig 钱包文件路径
type WalletConfig struct {
	DevWallet    string `json:"dev_wallet,optional" yaml:"dev_wallet"`       // 空投 / 转账 / 清空使用的钱包
	EnrollWallet string `json:"enroll_wallet,optional" yaml:"enroll_wallet"` // 调用 prereq 程序使用的钱包
}

// SweepConfig 清空余额相关配置
type SweepConfig struct {
	// 第二阶段是否重新获取 blockhash；手续费仍沿用第一阶段的估算值
	RefreshReference bool `json:"refresh_reference,optional" yaml:"refresh_reference"`
}

// ReceiptConfig 交易回执记录，RedisAddr 为空时不记录
type ReceiptConfig struct {
	RedisAddr string `json:"redis_addr,optional" yaml:"redis_addr"` // Redis 地址
	RedisDB   int    `json:"redis_db,optional" yaml:"redis_db"`     // Redis DB 编号
	TtlHours  int    `json:"ttl_hours,optional" yaml:"ttl_hours"`   // 回执保留时长（小时）
}

// Config 是主配置结构体
type Config struct {
	LogConf     LogConfig     `json:"logger,optional" yaml:"logger"`   // 日志配置
	RpcConf     RpcConfig     `json:"rpc,optional" yaml:"rpc"`         // RPC 配置
	WalletConf  WalletConfig  `json:"wallet,optional" yaml:"wallet"`   // 钱包文件
	SweepConf   SweepConfig   `json:"sweep,optional" yaml:"sweep"`     // 清空余额配置
	ReceiptConf ReceiptConfig `json:"receipt,optional" yaml:"receipt"` // 回执记录配置
}

// Default 返回全部填充默认值的配置
func Default() Config {
	var c Config
	c.ApplyDefaults()
	return c
}

// ApplyDefaults 为未配置的字段填充默认值
func (c *Config) ApplyDefaults() {
	if c.LogConf.Format == "" {
		c.LogConf.Format = "console"
	}
	if c.LogConf.Level == "" {
		c.LogConf.Level = "info"
	}

	if c.RpcConf.Endpoint == "" {
		c.RpcConf.Endpoint = consts.DefaultRpcEndpoint
	}
	if c.RpcConf.Cluster == "" {
		c.RpcConf.Cluster = consts.DefaultCluster
	}
	if c.RpcConf.Commitment == "" {
		c.RpcConf.Commitment = DefaultCommitment
	}
	if c.RpcConf.RequestTimeoutSec <= 0 {
		c.RpcConf.RequestTimeoutSec = DefaultRequestTimeoutSec
	}
	if c.RpcConf.ConfirmTimeoutSec <= 0 {
		c.RpcConf.ConfirmTimeoutSec = DefaultConfirmTimeoutSec
	}
	if c.RpcConf.PollIntervalMs <= 0 {
		c.RpcConf.PollIntervalMs = DefaultPollIntervalMs
	}

	if c.WalletConf.DevWallet == "" {
		c.WalletConf.DevWallet = DefaultDevWallet
	}
	if c.WalletConf.EnrollWallet == "" {
		c.WalletConf.EnrollWallet = DefaultEnrollWallet
	}

	if c.ReceiptConf.TtlHours <= 0 {
		c.ReceiptConf.TtlHours = DefaultReceiptTtlHours
	}
}

// validate 校验取值范围，需在 ApplyDefaults 之后调用。
// 不使用导出的 Validate：go-zero conf.Load 会在填充默认值之前自动调用它
func (c *Config) validate() error {
	switch c.RpcConf.Commitment {
	case "processed", "confirmed", "finalized":
	default:
		return fmt.Errorf("invalid rpc.commitment %q", c.RpcConf.Commitment)
	}
	switch c.LogConf.Format {
	case "console", "json":
	default:
		return fmt.Errorf("invalid logger.format %q", c.LogConf.Format)
	}
	return nil
}

// Load 读取配置文件（支持 ${ENV} 展开），文件不存在时返回默认配置
func Load(path string) (Config, error) {
	var c Config
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := conf.Load(path, &c, conf.UseEnv()); err != nil {
				return c, fmt.Errorf("load config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return c, fmt.Errorf("stat config %s: %w", path, err)
		}
	}
	c.ApplyDefaults()
	if err := c.validate(); err != nil {
		return c, err
	}
	return c, nil
}

// WriteDefault 生成默认配置文件，已存在时报错
func WriteDefault(path string) error {
	data, err := yaml.Marshal(Default())
	if err != nil {
		return fmt.Errorf("marshal default config: %w", err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("create config %s: %w", path, err)
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return f.Close()
}
