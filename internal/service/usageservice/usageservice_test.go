package usageservice

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/creditmeter/internal/domain"
	"github.com/GlebRadaev/creditmeter/internal/pg"
	"github.com/GlebRadaev/creditmeter/internal/service/creditservice"
)

type mocks struct {
	repo    *MockRepo
	charger *MockCharger
	tx      *pg.MockTXManager
}

func NewMock(t *testing.T) (*Service, mocks) {
	ctrl := gomock.NewController(t)
	m := mocks{
		repo:    NewMockRepo(ctrl),
		charger: NewMockCharger(ctrl),
		tx:      pg.NewMockTXManager(ctrl),
	}
	return New(m.repo, m.charger, m.tx), m
}

func (m mocks) passThrough() {
	m.tx.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, fn pg.TransactionalFn) error {
		return fn(ctx)
	})
}

func strPtr(s string) *string {
	return &s
}

func pending() *domain.UsageCharge {
	return &domain.UsageCharge{ID: 7, UserID: "user-1", GenerationID: "gen-1", Model: "gpt-4o", Status: domain.UsageStatusNew}
}

func TestSettle(t *testing.T) {
	entryID := uuid.New()

	tests := []struct {
		name           string
		prepareMock    func(m mocks)
		expectedStatus domain.UsageStatus
		expectErr      bool
	}{
		{
			name: "Charges pending usage",
			prepareMock: func(m mocks) {
				m.passThrough()
				m.repo.EXPECT().LockByID(gomock.Any(), int64(7)).Return(pending(), nil)
				m.charger.EXPECT().ChargeUsage(gomock.Any(), "user-1", "0.01", creditservice.ChargeInput{GenerationID: "gen-1", Model: "gpt-4o"}).
					Return(creditservice.ChargeResult{
						ChargedMicrocents: decimal.NewFromInt(2_000_000),
						Entry:             &domain.LedgerEntry{ID: entryID},
					}, nil)
				m.repo.EXPECT().MarkCharged(gomock.Any(), int64(7), "0.01", decimal.NewFromInt(2_000_000), &entryID).Return(nil)
			},
			expectedStatus: domain.UsageStatusCharged,
		},
		{
			name: "Zero total settles without ledger entry",
			prepareMock: func(m mocks) {
				m.passThrough()
				m.repo.EXPECT().LockByID(gomock.Any(), int64(7)).Return(pending(), nil)
				m.charger.EXPECT().ChargeUsage(gomock.Any(), "user-1", "0.01", gomock.Any()).
					Return(creditservice.ChargeResult{ChargedMicrocents: decimal.Zero}, nil)
				m.repo.EXPECT().MarkCharged(gomock.Any(), int64(7), "0.01", decimal.Zero, (*uuid.UUID)(nil)).Return(nil)
			},
			expectedStatus: domain.UsageStatusCharged,
		},
		{
			name: "Already settled is not charged twice",
			prepareMock: func(m mocks) {
				m.passThrough()
				charged := pending()
				charged.Status = domain.UsageStatusCharged
				m.repo.EXPECT().LockByID(gomock.Any(), int64(7)).Return(charged, nil)
			},
			expectedStatus: domain.UsageStatusCharged,
		},
		{
			name: "Invalid cost marks usage invalid",
			prepareMock: func(m mocks) {
				m.passThrough()
				m.repo.EXPECT().LockByID(gomock.Any(), int64(7)).Return(pending(), nil)
				m.charger.EXPECT().ChargeUsage(gomock.Any(), "user-1", "0.01", gomock.Any()).
					Return(creditservice.ChargeResult{}, domain.ErrInvalidAmount)
				m.repo.EXPECT().MarkInvalid(gomock.Any(), int64(7), strPtr("0.01")).Return(nil)
			},
			expectedStatus: domain.UsageStatusInvalid,
		},
		{
			name: "Storage error rolls back",
			prepareMock: func(m mocks) {
				m.passThrough()
				m.repo.EXPECT().LockByID(gomock.Any(), int64(7)).Return(pending(), nil)
				m.charger.EXPECT().ChargeUsage(gomock.Any(), "user-1", "0.01", gomock.Any()).
					Return(creditservice.ChargeResult{}, domain.ErrConcurrencyConflict)
			},
			expectErr: true,
		},
		{
			name: "Missing usage",
			prepareMock: func(m mocks) {
				m.passThrough()
				m.repo.EXPECT().LockByID(gomock.Any(), int64(7)).Return(nil, domain.ErrNotFound)
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, m := NewMock(t)
			tt.prepareMock(m)

			charge, err := service.Settle(context.Background(), 7, "0.01")
			if tt.expectErr {
				assert.Error(t, err)
				assert.Nil(t, charge)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, charge.Status)
		})
	}
}

func TestSubmit(t *testing.T) {
	t.Run("Queues usage without cost", func(t *testing.T) {
		service, m := NewMock(t)
		m.repo.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, c *domain.UsageCharge) (bool, error) {
				c.ID = 7
				c.Status = domain.UsageStatusNew
				return true, nil
			})

		charge, err := service.Submit(context.Background(), SubmitInput{UserID: "user-1", GenerationID: "gen-1", Model: "gpt-4o"})
		require.NoError(t, err)
		assert.Equal(t, domain.UsageStatusNew, charge.Status)
		assert.Equal(t, int64(7), charge.ID)
	})

	t.Run("Settles immediately when cost is known", func(t *testing.T) {
		service, m := NewMock(t)
		m.repo.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, c *domain.UsageCharge) (bool, error) {
				c.ID = 7
				return true, nil
			})
		m.passThrough()
		m.repo.EXPECT().LockByID(gomock.Any(), int64(7)).Return(pending(), nil)
		m.charger.EXPECT().ChargeUsage(gomock.Any(), "user-1", "0.02", gomock.Any()).
			Return(creditservice.ChargeResult{ChargedMicrocents: decimal.NewFromInt(3_000_000), Entry: &domain.LedgerEntry{ID: uuid.New()}}, nil)
		m.repo.EXPECT().MarkCharged(gomock.Any(), int64(7), "0.02", gomock.Any(), gomock.Any()).Return(nil)

		charge, err := service.Submit(context.Background(), SubmitInput{UserID: "user-1", GenerationID: "gen-1", CostUsd: strPtr("0.02")})
		require.NoError(t, err)
		assert.Equal(t, domain.UsageStatusCharged, charge.Status)
		assert.Equal(t, "3000000", charge.TotalMicrocents.String())
	})

	t.Run("Unparsable cost waits for metering", func(t *testing.T) {
		service, m := NewMock(t)
		m.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(true, nil)

		charge, err := service.Submit(context.Background(), SubmitInput{UserID: "user-1", GenerationID: "gen-1", CostUsd: strPtr("pending")})
		require.NoError(t, err)
		assert.Equal(t, "gen-1", charge.GenerationID)
	})

	t.Run("Duplicate returns stored charge", func(t *testing.T) {
		service, m := NewMock(t)
		stored := pending()
		stored.Status = domain.UsageStatusCharged
		m.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(false, nil)
		m.repo.EXPECT().GetByGenerationID(gomock.Any(), "gen-1").Return(stored, nil)

		charge, err := service.Submit(context.Background(), SubmitInput{UserID: "user-1", GenerationID: "gen-1", CostUsd: strPtr("0.02")})
		require.NoError(t, err)
		assert.Equal(t, stored, charge)
	})

	t.Run("Duplicate from another user", func(t *testing.T) {
		service, m := NewMock(t)
		m.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(false, nil)
		m.repo.EXPECT().GetByGenerationID(gomock.Any(), "gen-1").Return(pending(), nil)

		_, err := service.Submit(context.Background(), SubmitInput{UserID: "user-2", GenerationID: "gen-1"})
		assert.ErrorIs(t, err, ErrGenerationOwner)
	})

	t.Run("Storage error", func(t *testing.T) {
		service, m := NewMock(t)
		m.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(false, errors.New("db error"))

		_, err := service.Submit(context.Background(), SubmitInput{UserID: "user-1", GenerationID: "gen-1"})
		assert.Error(t, err)
	})
}

func TestReject(t *testing.T) {
	service, m := NewMock(t)
	m.passThrough()
	m.repo.EXPECT().LockByID(gomock.Any(), int64(7)).Return(pending(), nil)
	m.repo.EXPECT().MarkInvalid(gomock.Any(), int64(7), (*string)(nil)).Return(nil)
	assert.NoError(t, service.Reject(context.Background(), 7, nil))

	charged := pending()
	charged.Status = domain.UsageStatusCharged
	m.passThrough()
	m.repo.EXPECT().LockByID(gomock.Any(), int64(7)).Return(charged, nil)
	assert.NoError(t, service.Reject(context.Background(), 7, nil))
}

func TestPending(t *testing.T) {
	service, m := NewMock(t)
	m.repo.EXPECT().FindForProcessing(gomock.Any(), uint32(10)).Return([]domain.UsageCharge{*pending()}, nil)

	charges, err := service.Pending(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, charges, 1)

	m.repo.EXPECT().FindForProcessing(gomock.Any(), uint32(10)).Return(nil, errors.New("db error"))
	_, err = service.Pending(context.Background(), 10)
	assert.Error(t, err)
}
