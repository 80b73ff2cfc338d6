package worker

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/dftlabs/refengine/internal/domain"
)

func TestConfigProvider(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	source := NewMockConfigSource(ctrl)
	provider := NewConfigProvider(source)

	// Before any reload the defaults apply.
	assert.Equal(t, domain.DefaultWorkerConfig(), provider.Current())

	// A persisted row replaces the snapshot.
	stored := domain.DefaultWorkerConfig()
	stored.BatchSize = 50
	stored.Active = false
	source.EXPECT().WorkerConfig(gomock.Any()).Return(&stored, nil)
	assert.NoError(t, provider.Reload(context.Background()))
	assert.Equal(t, stored, provider.Current())

	// A failed reload keeps the last good snapshot.
	source.EXPECT().WorkerConfig(gomock.Any()).Return(nil, errors.New("some error"))
	assert.Error(t, provider.Reload(context.Background()))
	assert.Equal(t, stored, provider.Current())

	// A deleted row falls back to defaults.
	source.EXPECT().WorkerConfig(gomock.Any()).Return(nil, nil)
	assert.NoError(t, provider.Reload(context.Background()))
	assert.Equal(t, domain.DefaultWorkerConfig(), provider.Current())
}
