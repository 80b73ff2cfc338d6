package miningservice

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"

	"github.com/dftlabs/refengine/internal/domain"
	"github.com/dftlabs/refengine/internal/service/uplineservice"
)

func NewMock(t *testing.T) (*Service, *MockMiningRepo, *MockPolicySource, *uplineservice.MockResolver, *MockLedgerWriter) {
	ctrl := gomock.NewController(t)
	repo := NewMockMiningRepo(ctrl)
	policies := NewMockPolicySource(ctrl)
	upline := uplineservice.NewMockResolver(ctrl)
	ledger := NewMockLedgerWriter(ctrl)
	service := New(repo, policies, upline, ledger)
	defer ctrl.Finish()
	return service, repo, policies, upline, ledger
}

var params = Params{CompanyUserID: 1, MaxChainDepth: 30, MinEligibleLevel: 1}

func TestComputeNextRunAt(t *testing.T) {
	// A Monday.
	now := time.Date(2026, 8, 31, 8, 0, 0, 0, time.UTC)
	allDays := 0b1111111

	tests := []struct {
		name        string
		schedule    domain.MiningSchedule
		now         time.Time
		expected    time.Time
		expectedErr error
		wantErr     bool
	}{
		{
			name:     "interval adds its offset",
			schedule: domain.MiningSchedule{ID: 1, Kind: domain.ScheduleInterval, IntervalMinutes: 90},
			now:      now,
			expected: now.Add(90 * time.Minute),
		},
		{
			name:     "interval must be positive",
			schedule: domain.MiningSchedule{ID: 1, Kind: domain.ScheduleInterval},
			now:      now,
			wantErr:  true,
		},
		{
			name: "daily fires later today when the time has not passed",
			schedule: domain.MiningSchedule{
				ID: 2, Kind: domain.ScheduleDaily,
				DailyAtMinutes: 600, Timezone: "UTC", DaysOfWeekMask: allDays,
			},
			now:      now,
			expected: time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC),
		},
		{
			name: "daily rolls to tomorrow when the time already passed",
			schedule: domain.MiningSchedule{
				ID: 2, Kind: domain.ScheduleDaily,
				DailyAtMinutes: 600, Timezone: "UTC", DaysOfWeekMask: allDays,
			},
			now:      time.Date(2026, 8, 31, 11, 0, 0, 0, time.UTC),
			expected: time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC),
		},
		{
			name: "daily honors the weekday mask",
			schedule: domain.MiningSchedule{
				ID: 2, Kind: domain.ScheduleDaily,
				DailyAtMinutes: 600, Timezone: "UTC", DaysOfWeekMask: 1 << 3, // Wednesday only
			},
			now:      now,
			expected: time.Date(2026, 9, 2, 10, 0, 0, 0, time.UTC),
		},
		{
			name: "mask bit zero is Sunday",
			schedule: domain.MiningSchedule{
				ID: 2, Kind: domain.ScheduleDaily,
				DailyAtMinutes: 600, Timezone: "UTC", DaysOfWeekMask: 1,
			},
			now:      now,
			expected: time.Date(2026, 9, 6, 10, 0, 0, 0, time.UTC),
		},
		{
			name: "empty mask never fires",
			schedule: domain.MiningSchedule{
				ID: 2, Kind: domain.ScheduleDaily,
				DailyAtMinutes: 600, Timezone: "UTC",
			},
			now:         now,
			expectedErr: ErrMaskNeverFires,
			wantErr:     true,
		},
		{
			name: "bad timezone is rejected",
			schedule: domain.MiningSchedule{
				ID: 2, Kind: domain.ScheduleDaily,
				DailyAtMinutes: 600, Timezone: "Mars/Olympus", DaysOfWeekMask: allDays,
			},
			now:     now,
			wantErr: true,
		},
		{
			name:     "unknown kind is rejected",
			schedule: domain.MiningSchedule{ID: 3, Kind: "WEEKLY"},
			now:      now,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeNextRunAt(tt.schedule, tt.now)
			if tt.wantErr {
				assert.Error(t, err)
				if tt.expectedErr != nil {
					assert.ErrorIs(t, err, tt.expectedErr)
				}
				return
			}
			assert.NoError(t, err)
			assert.True(t, tt.expected.Equal(got), "want %s, got %s", tt.expected, got)
		})
	}
}

func TestComputeNextRunAtDailyInZone(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Shanghai")
	require.NoError(t, err)

	schedule := domain.MiningSchedule{
		ID: 2, Kind: domain.ScheduleDaily,
		DailyAtMinutes: 600, Timezone: "Asia/Shanghai", DaysOfWeekMask: 0b1111111,
	}
	// 08:00 UTC is already past 10:00 in Shanghai.
	now := time.Date(2026, 8, 31, 8, 0, 0, 0, time.UTC)

	got, err := ComputeNextRunAt(schedule, now)
	assert.NoError(t, err)
	assert.True(t, time.Date(2026, 9, 1, 10, 0, 0, 0, loc).Equal(got), "got %s", got)
}

func TestStartRun(t *testing.T) {
	now := time.Date(2026, 8, 31, 8, 0, 0, 0, time.UTC)
	schedule := domain.MiningSchedule{ID: 3, Kind: domain.ScheduleInterval, IntervalMinutes: 60}

	policy := &domain.MiningPercentPolicy{
		ID: 1, Active: true,
		SelfPct:      decimal.NewFromInt(50),
		CompanyPct:   decimal.NewFromInt(10),
		MlmPct:       decimal.NewFromInt(40),
		ReferralPcts: []decimal.Decimal{decimal.NewFromInt(10), decimal.NewFromInt(5)},
	}
	plan := &domain.BonusPlan{ID: 9, Active: true}

	tests := []struct {
		name          string
		prepareMock   func(repo *MockMiningRepo, policies *MockPolicySource)
		expectedError error
	}{
		{
			name: "snapshots the live percentages into the run",
			prepareMock: func(repo *MockMiningRepo, policies *MockPolicySource) {
				policies.EXPECT().ActiveMiningPercentPolicy(gomock.Any()).Return(policy, nil)
				policies.EXPECT().ActiveBonusPlan(gomock.Any()).Return(plan, nil)
				repo.EXPECT().StartRun(gomock.Any(), gomock.Any(), now.Add(time.Hour), now).
					DoAndReturn(func(_ context.Context, run *domain.MiningRun, _, _ time.Time) error {
						assert.Equal(t, int64(3), run.ScheduleID)
						assert.Equal(t, int64(9), run.BonusPlanID)
						assert.True(t, run.SelfPct.Equal(policy.SelfPct))
						run.ID = 77
						return nil
					})
			},
		},
		{
			name: "missing percent policy",
			prepareMock: func(repo *MockMiningRepo, policies *MockPolicySource) {
				policies.EXPECT().ActiveMiningPercentPolicy(gomock.Any()).Return(nil, nil)
			},
			expectedError: ErrNoPercentPolicy,
		},
		{
			name: "missing bonus plan",
			prepareMock: func(repo *MockMiningRepo, policies *MockPolicySource) {
				policies.EXPECT().ActiveMiningPercentPolicy(gomock.Any()).Return(policy, nil)
				policies.EXPECT().ActiveBonusPlan(gomock.Any()).Return(nil, nil)
			},
			expectedError: ErrNoBonusPlan,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repo, policies, _, _ := NewMock(t)
			tt.prepareMock(repo, policies)

			run, err := service.StartRun(context.Background(), schedule, now)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, int64(77), run.ID)
		})
	}
}

type recordedPayout struct {
	userID int64
	kind   domain.PayoutKind
	level  int
}

func TestExecuteRun(t *testing.T) {
	service, repo, policies, upline, ledger := NewMock(t)

	run := &domain.MiningRun{
		ID:           77,
		ScheduleID:   3,
		SelfPct:      decimal.NewFromInt(50),
		CompanyPct:   decimal.NewFromInt(10),
		MlmPct:       decimal.NewFromInt(40),
		ReferralPcts: []decimal.Decimal{decimal.NewFromInt(10), decimal.NewFromInt(5)},
		BonusPlanID:  9,
	}
	plan := &domain.BonusPlan{
		ID: 9, Active: true,
		Items: []domain.BonusPlanItem{
			{Level: 1, Percent: decimal.NewFromInt(10)},
			{Level: 2, Percent: decimal.NewFromInt(25)},
		},
	}
	policies.EXPECT().BonusPlanByID(gomock.Any(), int64(9)).Return(plan, nil)

	repo.EXPECT().HolderAllowances(gomock.Any()).Return([]domain.HolderAllowance{
		{UserID: 7, Level: 0, Allowance: decimal.NewFromInt(100)},
		{UserID: 8, Level: 0, Allowance: decimal.NewFromInt(200)},
	}, nil)

	chainOf7 := []domain.User{{ID: 2, Level: 1}, {ID: 3, Level: 2}}
	chainOf8 := []domain.User{{ID: 2, Level: 1}}
	upline.EXPECT().FullChain(gomock.Any(), int64(7), int64(1), 30).Return(chainOf7, nil)
	upline.EXPECT().FullChain(gomock.Any(), int64(8), int64(1), 30).Return(chainOf8, nil)
	upline.EXPECT().MonotonicChain(gomock.Any(), int64(7), int64(1), 30).Return(chainOf7, nil)
	upline.EXPECT().MonotonicChain(gomock.Any(), int64(8), int64(1), 30).Return(chainOf8, nil)

	paid := make(map[recordedPayout]decimal.Decimal)
	ledger.EXPECT().PayMiningReward(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, payout *domain.MiningPayout) (bool, error) {
			assert.Equal(t, int64(77), payout.RunID)
			key := recordedPayout{userID: payout.UserID, kind: payout.Kind, level: payout.Level}
			_, dup := paid[key]
			assert.False(t, dup, "payout key %+v written twice", key)
			paid[key] = payout.Amount
			return true, nil
		}).AnyTimes()

	repo.EXPECT().CompleteRun(gomock.Any(), int64(77)).Return(nil)

	err := service.ExecuteRun(context.Background(), run, params)
	require.NoError(t, err)

	// levelPct = 40 - 10 - 5 = 25.
	expected := []struct {
		key  recordedPayout
		want string
	}{
		{recordedPayout{userID: 7, kind: domain.PayoutSelf}, "50"},
		{recordedPayout{userID: 8, kind: domain.PayoutSelf}, "100"},
		{recordedPayout{userID: 1, kind: domain.PayoutCompany}, "30"},
		{recordedPayout{userID: 2, kind: domain.PayoutReferral, level: 1}, "30"},
		{recordedPayout{userID: 3, kind: domain.PayoutReferral, level: 2}, "5"},
		{recordedPayout{userID: 2, kind: domain.PayoutLevelBonus, level: 1}, "7.5"},
		{recordedPayout{userID: 3, kind: domain.PayoutLevelBonus, level: 2}, "3.75"},
	}
	require.Len(t, paid, len(expected))
	for _, tc := range expected {
		got, ok := paid[tc.key]
		require.True(t, ok, "missing payout %+v", tc.key)
		assert.True(t, got.Equal(decimal.RequireFromString(tc.want)),
			"payout %+v: want %s, got %s", tc.key, tc.want, got)
	}
}

func TestExecuteRunSkipsIneligibleReferralAncestors(t *testing.T) {
	service, repo, policies, upline, _ := NewMock(t)

	run := &domain.MiningRun{
		ID:           78,
		SelfPct:      decimal.Zero,
		CompanyPct:   decimal.Zero,
		MlmPct:       decimal.NewFromInt(10),
		ReferralPcts: []decimal.Decimal{decimal.NewFromInt(10)},
		BonusPlanID:  9,
	}
	policies.EXPECT().BonusPlanByID(gomock.Any(), int64(9)).Return(&domain.BonusPlan{ID: 9}, nil)
	repo.EXPECT().HolderAllowances(gomock.Any()).Return([]domain.HolderAllowance{
		{UserID: 7, Level: 0, Allowance: decimal.NewFromInt(100)},
	}, nil)
	// The direct sponsor sits below the minimum eligible tier.
	upline.EXPECT().FullChain(gomock.Any(), int64(7), int64(1), 30).
		Return([]domain.User{{ID: 2, Level: 0}}, nil)
	repo.EXPECT().CompleteRun(gomock.Any(), int64(78)).Return(nil)

	err := service.ExecuteRun(context.Background(), run, params)
	assert.NoError(t, err)
}

func TestExecuteRunMissingPlan(t *testing.T) {
	service, _, policies, _, _ := NewMock(t)

	policies.EXPECT().BonusPlanByID(gomock.Any(), int64(9)).Return(nil, nil)
	err := service.ExecuteRun(context.Background(), &domain.MiningRun{ID: 77, BonusPlanID: 9}, params)
	assert.Error(t, err)
}

func TestResumeRun(t *testing.T) {
	service, repo, _, _, _ := NewMock(t)

	repo.EXPECT().FindRunningRun(gomock.Any(), int64(3)).Return(&domain.MiningRun{ID: 77}, nil)
	run, err := service.ResumeRun(context.Background(), 3)
	assert.NoError(t, err)
	assert.Equal(t, int64(77), run.ID)

	repo.EXPECT().FindRunningRun(gomock.Any(), int64(4)).Return(nil, errors.New("some error"))
	_, err = service.ResumeRun(context.Background(), 4)
	assert.Error(t, err)
}
