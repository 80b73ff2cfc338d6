package ledgerservice

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/dftlabs/refengine/internal/domain"
	"github.com/dftlabs/refengine/internal/metrics"
	"github.com/dftlabs/refengine/internal/pg"
)

func NewMock(t *testing.T) (*Service, *MockLedgerRepo) {
	ctrl := gomock.NewController(t)
	repo := NewMockLedgerRepo(ctrl)
	txManager := pg.NewMockTXManager(ctrl)
	txManager.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		}).AnyTimes()
	service := New(repo, txManager)
	defer ctrl.Finish()
	return service, repo
}

func TestPayLevelBonus(t *testing.T) {
	amount := decimal.NewFromInt(30)

	tests := []struct {
		name          string
		amount        decimal.Decimal
		prepareMock   func(repo *MockLedgerRepo)
		expectedPaid  bool
		expectedError bool
	}{
		{
			name:   "claims, credits and records in one transaction",
			amount: amount,
			prepareMock: func(repo *MockLedgerRepo) {
				repo.EXPECT().ClaimLevelBonus(gomock.Any(), "ph:42", int64(2), 1, amount).Return(true, nil)
				repo.EXPECT().CreditWallet(gomock.Any(), int64(2), TokenUSDT, amount).Return(nil)
				repo.EXPECT().AppendWalletTx(gomock.Any(), gomock.Any()).Return(nil)
			},
			expectedPaid: true,
		},
		{
			name:   "already-claimed triple is a no-op",
			amount: amount,
			prepareMock: func(repo *MockLedgerRepo) {
				repo.EXPECT().ClaimLevelBonus(gomock.Any(), "ph:42", int64(2), 1, amount).Return(false, nil)
			},
			expectedPaid: false,
		},
		{
			name:         "non-positive amount never touches the ledger",
			amount:       decimal.Zero,
			prepareMock:  func(*MockLedgerRepo) {},
			expectedPaid: false,
		},
		{
			name:   "credit failure rolls the payment back",
			amount: amount,
			prepareMock: func(repo *MockLedgerRepo) {
				repo.EXPECT().ClaimLevelBonus(gomock.Any(), "ph:42", int64(2), 1, amount).Return(true, nil)
				repo.EXPECT().CreditWallet(gomock.Any(), int64(2), TokenUSDT, amount).Return(errors.New("some error"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repo := NewMock(t)
			tt.prepareMock(repo)

			paid, err := service.PayLevelBonus(context.Background(), "ph:42", 2, 1, tt.amount)
			if tt.expectedError {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedPaid, paid)
		})
	}
}

func TestPayMiningReward(t *testing.T) {
	payout := func() *domain.MiningPayout {
		return &domain.MiningPayout{
			RunID:  5,
			UserID: 2,
			Kind:   domain.PayoutReferral,
			Level:  1,
			Amount: decimal.NewFromInt(12),
		}
	}

	tests := []struct {
		name          string
		payout        *domain.MiningPayout
		prepareMock   func(repo *MockLedgerRepo)
		expectedPaid  bool
		expectedError bool
	}{
		{
			name:   "writes the full audit trail",
			payout: payout(),
			prepareMock: func(repo *MockLedgerRepo) {
				repo.EXPECT().InsertPayout(gomock.Any(), gomock.Any()).Return(true, nil)
				repo.EXPECT().CreditWallet(gomock.Any(), int64(2), TokenDFT, gomock.Any()).Return(nil)
				repo.EXPECT().AppendWalletTx(gomock.Any(), gomock.Any()).Return(nil)
				repo.EXPECT().BumpRewardSummary(gomock.Any(), int64(2), gomock.Any()).Return(nil)
				repo.EXPECT().AppendRewardHistory(gomock.Any(), gomock.Any()).Return(nil)
			},
			expectedPaid: true,
		},
		{
			name:   "existing payout row makes the whole payment a no-op",
			payout: payout(),
			prepareMock: func(repo *MockLedgerRepo) {
				repo.EXPECT().InsertPayout(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			expectedPaid: false,
		},
		{
			name: "non-positive payout never touches the ledger",
			payout: &domain.MiningPayout{
				RunID: 5, UserID: 2, Kind: domain.PayoutSelf, Amount: decimal.Zero,
			},
			prepareMock:  func(*MockLedgerRepo) {},
			expectedPaid: false,
		},
		{
			name:   "summary failure aborts the transaction",
			payout: payout(),
			prepareMock: func(repo *MockLedgerRepo) {
				repo.EXPECT().InsertPayout(gomock.Any(), gomock.Any()).Return(true, nil)
				repo.EXPECT().CreditWallet(gomock.Any(), int64(2), TokenDFT, gomock.Any()).Return(nil)
				repo.EXPECT().AppendWalletTx(gomock.Any(), gomock.Any()).Return(nil)
				repo.EXPECT().BumpRewardSummary(gomock.Any(), int64(2), gomock.Any()).Return(errors.New("some error"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repo := NewMock(t)
			tt.prepareMock(repo)

			paid, err := service.PayMiningReward(context.Background(), tt.payout)
			if tt.expectedError {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedPaid, paid)
		})
	}
}

func TestPayoutCounterMovesOnlyWhenPaid(t *testing.T) {
	amount := decimal.NewFromInt(30)
	counter := metrics.PayoutsPaid.WithLabelValues(string(domain.PayoutLevelBonus))

	service, repo := NewMock(t)
	repo.EXPECT().ClaimLevelBonus(gomock.Any(), "ph:42", int64(2), 1, amount).Return(true, nil)
	repo.EXPECT().CreditWallet(gomock.Any(), int64(2), TokenUSDT, amount).Return(nil)
	repo.EXPECT().AppendWalletTx(gomock.Any(), gomock.Any()).Return(nil)

	before := testutil.ToFloat64(counter)
	paid, err := service.PayLevelBonus(context.Background(), "ph:42", 2, 1, amount)
	assert.NoError(t, err)
	assert.True(t, paid)
	assert.Equal(t, before+1, testutil.ToFloat64(counter))

	// A replayed payment is a no-op and must not move the counter.
	repo.EXPECT().ClaimLevelBonus(gomock.Any(), "ph:42", int64(2), 1, amount).Return(false, nil)
	paid, err = service.PayLevelBonus(context.Background(), "ph:42", 2, 1, amount)
	assert.NoError(t, err)
	assert.False(t, paid)
	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}
