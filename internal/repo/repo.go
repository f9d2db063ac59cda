package repo

import (
	"github.com/GlebRadaev/creditmeter/internal/pg"
	creditrepo "github.com/GlebRadaev/creditmeter/internal/repo/credit-repo"
	usagerepo "github.com/GlebRadaev/creditmeter/internal/repo/usage-repo"
	"github.com/GlebRadaev/creditmeter/internal/service/creditservice"
	"github.com/GlebRadaev/creditmeter/internal/service/usageservice"
)

type Repositories struct {
	CreditRepo creditservice.Repo
	UsageRepo  usageservice.Repo
}

func New(conn pg.Database, txManager pg.TXManager) *Repositories {
	return &Repositories{
		CreditRepo: creditrepo.New(conn, txManager),
		UsageRepo:  usagerepo.New(conn),
	}
}
