package receipt

import (
	"context"
	"errors"
	"time"

	"prereq-kit-sol/internal/types"
	"prereq-kit-sol/pkg/logger"
)

// Store 回执存储
type Store interface {
	Save(ctx context.Context, r *Receipt) error
	Get(ctx context.Context, kind uint8, sig types.Signature) (*Receipt, error)
	Recent(ctx context.Context, n int) ([]*Receipt, error)
}

var ErrDisabled = errors.New("receipt store disabled")

// Recorder 封装回执写入：未配置存储时不记录
type Recorder struct {
	store   Store
	cluster string
	now     func() time.Time
}

func NewRecorder(store Store, cluster string) *Recorder {
	return &Recorder{store: store, cluster: cluster, now: time.Now}
}

func (r *Recorder) Enabled() bool {
	return r != nil && r.store != nil
}

// Record 写入一条回执。交易此时已经确认，写入失败只记录日志并返回 error，
// 由调用方决定是否继续
func (r *Recorder) Record(ctx context.Context, rc Receipt) error {
	if !r.Enabled() {
		return nil
	}
	if rc.Cluster == "" {
		rc.Cluster = r.cluster
	}
	if rc.CreatedAt == 0 {
		rc.CreatedAt = r.now().Unix()
	}
	if err := r.store.Save(ctx, &rc); err != nil {
		logger.Warnf("[Receipt] 记录失败: kind=%s sig=%s err=%v", rc.KindName(), rc.Signature, err)
		return err
	}
	logger.Debugf("[Receipt] 已记录: kind=%s sig=%s", rc.KindName(), rc.Signature)
	return nil
}

func (r *Recorder) Get(ctx context.Context, kind uint8, sig types.Signature) (*Receipt, error) {
	if !r.Enabled() {
		return nil, ErrDisabled
	}
	return r.store.Get(ctx, kind, sig)
}

func (r *Recorder) Recent(ctx context.Context, n int) ([]*Receipt, error) {
	if !r.Enabled() {
		return nil, ErrDisabled
	}
	return r.store.Recent(ctx, n)
}
