package handler

import (
	"net/http"

	"github.com/vfg2006/vendas-dre-api/internal/api/handler/router"
	"github.com/vfg2006/vendas-dre-api/internal/usecases/processing"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Sales(service processing.Processor) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/sales/import",
			Method:  http.MethodPost,
			Handler: ImportSales(service),
		},
		{
			Path:    "/v1/sales",
			Method:  http.MethodGet,
			Handler: ListSales(service),
		},
		{
			Path:    "/v1/sales/aggregates",
			Method:  http.MethodGet,
			Handler: GetAggregates(service),
		},
		{
			Path:    "/v1/sales/statement",
			Method:  http.MethodGet,
			Handler: GetStatement(service),
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/cron/:type/run",
			Method:  http.MethodPost,
			Handler: RunCronJob(services),
		},
		{
			Path:    "/v1/cron/status",
			Method:  http.MethodGet,
			Handler: GetCronStatus(services),
		},
	}
}
