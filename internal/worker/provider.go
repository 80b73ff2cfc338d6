package worker

import (
	"context"
	"sync"

	"github.com/dftlabs/refengine/internal/domain"
	"go.uber.org/zap"
)

// ConfigSource reads the persisted worker tunables row.
type ConfigSource interface {
	WorkerConfig(ctx context.Context) (*domain.WorkerConfig, error)
}

// ConfigProvider caches the persisted worker config. The worker reloads it
// before every loop iteration so operators can retune a live worker; a
// failed reload keeps the last good snapshot.
type ConfigProvider struct {
	source ConfigSource

	mu      sync.RWMutex
	current domain.WorkerConfig
}

func NewConfigProvider(source ConfigSource) *ConfigProvider {
	return &ConfigProvider{
		source:  source,
		current: domain.DefaultWorkerConfig(),
	}
}

// Reload refreshes the snapshot. A missing row means defaults.
func (p *ConfigProvider) Reload(ctx context.Context) error {
	cfg, err := p.source.WorkerConfig(ctx)
	if err != nil {
		zap.L().Warn("worker config reload failed, keeping previous", zap.Error(err))
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if cfg == nil {
		p.current = domain.DefaultWorkerConfig()
	} else {
		p.current = *cfg
	}
	return nil
}

func (p *ConfigProvider) Current() domain.WorkerConfig {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.current
}
