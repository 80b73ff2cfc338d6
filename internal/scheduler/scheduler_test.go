package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/dftlabs/refengine/internal/domain"
	miningrepo "github.com/dftlabs/refengine/internal/repo/mining-repo"
	"github.com/dftlabs/refengine/internal/service/miningservice"
	"github.com/dftlabs/refengine/internal/worker"
)

func NewMock(t *testing.T) (*Scheduler, *MockMiningService) {
	ctrl := gomock.NewController(t)
	mining := NewMockMiningService(ctrl)
	source := worker.NewMockConfigSource(ctrl)
	source.EXPECT().WorkerConfig(gomock.Any()).Return(nil, nil).AnyTimes()
	scheduler := New(mining, worker.NewConfigProvider(source), clockwork.NewFakeClock(), time.Second)
	defer ctrl.Finish()
	return scheduler, mining
}

// Default worker config carries these chain-walk tunables.
var params = miningservice.Params{CompanyUserID: 1, MaxChainDepth: 30, MinEligibleLevel: 1}

func TestTick(t *testing.T) {
	now := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	schedule := domain.MiningSchedule{ID: 3, Kind: domain.ScheduleInterval, IntervalMinutes: 60}
	run := &domain.MiningRun{ID: 77, ScheduleID: 3}

	tests := []struct {
		name          string
		prepareMock   func(mining *MockMiningService)
		expectedError bool
	}{
		{
			name: "starts and executes a due run",
			prepareMock: func(mining *MockMiningService) {
				mining.EXPECT().DueSchedules(gomock.Any(), now).Return([]domain.MiningSchedule{schedule}, nil)
				mining.EXPECT().StartRun(gomock.Any(), schedule, now).Return(run, nil)
				mining.EXPECT().ExecuteRun(gomock.Any(), run, params).Return(nil)
			},
		},
		{
			name: "resumes an interrupted run",
			prepareMock: func(mining *MockMiningService) {
				mining.EXPECT().DueSchedules(gomock.Any(), now).Return([]domain.MiningSchedule{schedule}, nil)
				mining.EXPECT().StartRun(gomock.Any(), schedule, now).Return(nil, miningrepo.ErrRunAlreadyRunning)
				mining.EXPECT().ResumeRun(gomock.Any(), int64(3)).Return(run, nil)
				mining.EXPECT().ExecuteRun(gomock.Any(), run, params).Return(nil)
			},
		},
		{
			name: "competing run finished in between, nothing to do",
			prepareMock: func(mining *MockMiningService) {
				mining.EXPECT().DueSchedules(gomock.Any(), now).Return([]domain.MiningSchedule{schedule}, nil)
				mining.EXPECT().StartRun(gomock.Any(), schedule, now).Return(nil, miningrepo.ErrRunAlreadyRunning)
				mining.EXPECT().ResumeRun(gomock.Any(), int64(3)).Return(nil, nil)
			},
		},
		{
			name: "one broken schedule does not block the next",
			prepareMock: func(mining *MockMiningService) {
				other := domain.MiningSchedule{ID: 4, Kind: domain.ScheduleInterval, IntervalMinutes: 30}
				otherRun := &domain.MiningRun{ID: 78, ScheduleID: 4}
				mining.EXPECT().DueSchedules(gomock.Any(), now).
					Return([]domain.MiningSchedule{schedule, other}, nil)
				mining.EXPECT().StartRun(gomock.Any(), schedule, now).Return(nil, errors.New("some error"))
				mining.EXPECT().StartRun(gomock.Any(), other, now).Return(otherRun, nil)
				mining.EXPECT().ExecuteRun(gomock.Any(), otherRun, params).Return(nil)
			},
		},
		{
			name: "due-schedule query failure surfaces",
			prepareMock: func(mining *MockMiningService) {
				mining.EXPECT().DueSchedules(gomock.Any(), now).Return(nil, errors.New("some error"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scheduler, mining := NewMock(t)
			tt.prepareMock(mining)

			err := scheduler.Tick(context.Background(), now)
			if tt.expectedError {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}
