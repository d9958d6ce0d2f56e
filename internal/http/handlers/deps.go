package handlers

import (
	"github.com/jmoiron/sqlx"

	"orderdesk/internal/config"
	"orderdesk/internal/repos"
	"orderdesk/internal/services"
)

type Deps struct {
	CustomerHandler  *CustomerHandler
	ProductHandler   *ProductHandler
	OrderHandler     *OrderHandler
	DashboardHandler *DashboardHandler
	AnalyticsHandler *AnalyticsHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config) *Deps {
	customerRepo := repos.NewCustomerRepo(db)
	productRepo := repos.NewProductRepo(db)
	orderRepo := repos.NewOrderRepo(db)

	catalogSvc := services.NewCatalogService(customerRepo, productRepo, orderRepo)
	orderSvc := services.NewOrderService(orderRepo)
	statsSvc := services.NewStatsService(cfg.LowStockThreshold)

	return &Deps{
		CustomerHandler:  &CustomerHandler{Catalog: catalogSvc},
		ProductHandler:   &ProductHandler{Catalog: catalogSvc, Stats: statsSvc},
		OrderHandler:     &OrderHandler{Catalog: catalogSvc, Orders: orderSvc},
		DashboardHandler: &DashboardHandler{Catalog: catalogSvc, StatsSvc: statsSvc},
		AnalyticsHandler: &AnalyticsHandler{Catalog: catalogSvc},
	}
}
