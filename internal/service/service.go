package service

import (
	"github.com/GlebRadaev/creditmeter/internal/pg"
	"github.com/GlebRadaev/creditmeter/internal/pricing"
	"github.com/GlebRadaev/creditmeter/internal/repo"
	"github.com/GlebRadaev/creditmeter/internal/service/creditservice"
	"github.com/GlebRadaev/creditmeter/internal/service/usageservice"
)

type Services struct {
	CreditService *creditservice.Service
	UsageService  *usageservice.Service
}

func New(repo *repo.Repositories, txManager pg.TXManager, opts pricing.Options) *Services {
	creditService := creditservice.New(repo.CreditRepo, opts)
	usageService := usageservice.New(repo.UsageRepo, creditService, txManager)

	return &Services{
		CreditService: creditService,
		UsageService:  usageService,
	}
}
