package svc

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"prereq-kit-sol/internal/config"
	"prereq-kit-sol/internal/consts"
	"prereq-kit-sol/internal/logic/invoker"
	"prereq-kit-sol/internal/logic/payment"
	"prereq-kit-sol/internal/logic/sweeper"
	"prereq-kit-sol/internal/receipt"
	"prereq-kit-sol/internal/service"
	"prereq-kit-sol/pkg/logger"
)

// ServiceContext 包含命令执行所需的资源
type ServiceContext struct {
	Config   config.Config
	Ledger   service.Ledger
	Recorder *receipt.Recorder

	Payment *payment.Payment
	Sweeper *sweeper.Sweeper
	Invoker *invoker.Invoker

	rdb *redis.Client
}

// NewServiceContext 创建服务上下文
func NewServiceContext(c config.Config) (*ServiceContext, error) {
	// 1. 初始化 RPC Ledger
	ledger, err := service.NewRpcLedger(&c.RpcConf)
	if err != nil {
		logger.Errorf("RPC Ledger 初始化失败: %v", err)
		return nil, err
	}

	ctx := NewServiceContextWithLedger(c, ledger)

	// 2. 初始化回执存储（可选）
	if c.ReceiptConf.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr: c.ReceiptConf.RedisAddr,
			DB:   c.ReceiptConf.RedisDB,
		})
		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			_ = rdb.Close()
			return nil, fmt.Errorf("redis ping %s: %w", c.ReceiptConf.RedisAddr, err)
		}
		ttl := time.Duration(c.ReceiptConf.TtlHours) * time.Hour
		ctx.rdb = rdb
		ctx.Recorder = receipt.NewRecorder(receipt.NewRedisStore(rdb, ttl), c.RpcConf.Cluster)
	}

	logger.Debugf("服务上下文初始化完成: endpoint=%s receipt=%v", c.RpcConf.Endpoint, ctx.Recorder.Enabled())
	return ctx, nil
}

// NewServiceContextWithLedger 使用给定的 Ledger 组装上下文，回执默认关闭
func NewServiceContextWithLedger(c config.Config, ledger service.Ledger) *ServiceContext {
	return &ServiceContext{
		Config:   c,
		Ledger:   ledger,
		Recorder: receipt.NewRecorder(nil, c.RpcConf.Cluster),
		Payment:  payment.NewPayment(ledger),
		Sweeper:  sweeper.NewSweeper(ledger, c.SweepConf.RefreshReference),
		Invoker:  invoker.NewInvoker(ledger, consts.PrereqProgram, consts.Collection),
	}
}

// Close 关闭服务上下文中的资源
func (ctx *ServiceContext) Close() {
	if ctx.rdb != nil {
		_ = ctx.rdb.Close()
	}
}
