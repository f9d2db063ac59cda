package repo

import (
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/creditmeter/internal/pg"
	creditrepo "github.com/GlebRadaev/creditmeter/internal/repo/credit-repo"
	usagerepo "github.com/GlebRadaev/creditmeter/internal/repo/usage-repo"
)

func NewMock(t *testing.T) (*Repositories, pgxmock.PgxPoolIface) {
	ctrl := gomock.NewController(t)
	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	t.Cleanup(mockDB.Close)

	return New(mockDB, pg.NewMockTXManager(ctrl)), mockDB
}

func TestNew(t *testing.T) {
	repo, mock := NewMock(t)

	assert.NotNil(t, repo.CreditRepo)
	assert.NotNil(t, repo.UsageRepo)

	assert.IsType(t, &creditrepo.Repository{}, repo.CreditRepo)
	assert.IsType(t, &usagerepo.Repository{}, repo.UsageRepo)

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unmet expectations: %v", err)
	}
}
