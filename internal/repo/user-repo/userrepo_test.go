package userrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	repo := New(mockDB)
	defer mockDB.Close()
	return repo, mockDB
}

func TestRepository_FindByID(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()

	tests := []struct {
		name      string
		userID    int64
		mockSetup func()
		wantUser  bool
		wantLevel int
		expectErr bool
	}{
		{
			name:   "User exists",
			userID: 7,
			mockSetup: func() {
				rows := pgxmock.NewRows([]string{"id", "login", "level", "created_at"}).
					AddRow(int64(7), "alice", 2, now)
				mock.ExpectQuery(regexp.QuoteMeta("SELECT id, login, level, created_at")).
					WithArgs(int64(7)).
					WillReturnRows(rows)
			},
			wantUser:  true,
			wantLevel: 2,
		},
		{
			name:   "User does not exist",
			userID: 99,
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta("SELECT id, login, level, created_at")).
					WithArgs(int64(99)).
					WillReturnRows(pgxmock.NewRows([]string{"id", "login", "level", "created_at"}))
			},
			wantUser: false,
		},
		{
			name:   "Database error",
			userID: 7,
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta("SELECT id, login, level, created_at")).
					WithArgs(int64(7)).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			user, err := repo.FindByID(context.Background(), tt.userID)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				if tt.wantUser {
					assert.NotNil(t, user)
					assert.Equal(t, tt.userID, user.ID)
					assert.Equal(t, tt.wantLevel, user.Level)
				} else {
					assert.Nil(t, user)
				}
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_Parent(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()

	tests := []struct {
		name       string
		userID     int64
		mockSetup  func()
		wantParent *int64
		expectErr  bool
	}{
		{
			name:   "Parent exists",
			userID: 7,
			mockSetup: func() {
				rows := pgxmock.NewRows([]string{"id", "login", "level", "created_at"}).
					AddRow(int64(3), "bob", 1, now)
				mock.ExpectQuery(regexp.QuoteMeta("JOIN users u ON u.id = e.parent_id")).
					WithArgs(int64(7)).
					WillReturnRows(rows)
			},
			wantParent: ptr(int64(3)),
		},
		{
			name:   "Root has no parent",
			userID: 1,
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta("JOIN users u ON u.id = e.parent_id")).
					WithArgs(int64(1)).
					WillReturnRows(pgxmock.NewRows([]string{"id", "login", "level", "created_at"}))
			},
		},
		{
			name:   "Database error",
			userID: 7,
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta("JOIN users u ON u.id = e.parent_id")).
					WithArgs(int64(7)).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			parent, err := repo.Parent(context.Background(), tt.userID)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				if tt.wantParent != nil {
					assert.NotNil(t, parent)
					assert.Equal(t, *tt.wantParent, parent.ID)
				} else {
					assert.Nil(t, parent)
				}
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_SetLevel(t *testing.T) {
	repo, mock := NewMock(t)

	tests := []struct {
		name      string
		level     int
		mockSetup func()
		changed   bool
		expectErr bool
	}{
		{
			name:  "Level changes",
			level: 3,
			mockSetup: func() {
				mock.ExpectExec(regexp.QuoteMeta("UPDATE users")).
					WithArgs(int64(7), 3).
					WillReturnResult(pgxmock.NewResult("UPDATE", 1))
			},
			changed: true,
		},
		{
			name:  "Level already set",
			level: 3,
			mockSetup: func() {
				mock.ExpectExec(regexp.QuoteMeta("UPDATE users")).
					WithArgs(int64(7), 3).
					WillReturnResult(pgxmock.NewResult("UPDATE", 0))
			},
			changed: false,
		},
		{
			name:  "Database error",
			level: 3,
			mockSetup: func() {
				mock.ExpectExec(regexp.QuoteMeta("UPDATE users")).
					WithArgs(int64(7), 3).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			changed, err := repo.SetLevel(context.Background(), 7, tt.level)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.changed, changed)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_SelfNodeAmount(t *testing.T) {
	repo, mock := NewMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM user_packages")).
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows([]string{"coalesce"}).AddRow(decimal.RequireFromString("1500.50")))

	amount, err := repo.SelfNodeAmount(context.Background(), 7)
	assert.NoError(t, err)
	assert.True(t, amount.Equal(decimal.RequireFromString("1500.50")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_DirectReferralCount(t *testing.T) {
	repo, mock := NewMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE parent_id = $1")).
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(4))

	count, err := repo.DirectReferralCount(context.Background(), 7)
	assert.NoError(t, err)
	assert.Equal(t, 4, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GroupSalesAmount(t *testing.T) {
	repo, mock := NewMock(t)

	tests := []struct {
		name      string
		mockSetup func()
		want      string
		expectErr bool
	}{
		{
			name: "Rollup row exists",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta("FROM user_group_sales")).
					WithArgs(int64(7)).
					WillReturnRows(pgxmock.NewRows([]string{"total_amount"}).AddRow(decimal.RequireFromString("25000")))
			},
			want: "25000",
		},
		{
			name: "No rollup yet means zero",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta("FROM user_group_sales")).
					WithArgs(int64(7)).
					WillReturnRows(pgxmock.NewRows([]string{"total_amount"}))
			},
			want: "0",
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta("FROM user_group_sales")).
					WithArgs(int64(7)).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			amount, err := repo.GroupSalesAmount(context.Background(), 7)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.True(t, amount.Equal(decimal.RequireFromString(tt.want)))
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_DirectDownlineLevelCount(t *testing.T) {
	repo, mock := NewMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE e.parent_id = $1 AND u.level = $2")).
		WithArgs(int64(7), 2).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.DirectDownlineLevelCount(context.Background(), 7, 2)
	assert.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func ptr[T any](v T) *T { return &v }
