package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cast"
	"github.com/vfg2006/vendas-dre-api/infrastructure/repository"
	"github.com/vfg2006/vendas-dre-api/internal/api/handler/router"
	"github.com/vfg2006/vendas-dre-api/pkg/apiErrors"
	"github.com/vfg2006/vendas-dre-api/pkg/log"
)

func MonthlyStatements(repo repository.MonthlyStatementRepository) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/statements/monthly",
			Method:  http.MethodGet,
			Handler: GetMonthlyStatement(repo),
		},
		{
			Path:    "/v1/statements/periods",
			Method:  http.MethodGet,
			Handler: GetAvailableStatementPeriods(repo),
		},
	}
}

// GetMonthlyStatement retorna o snapshot de DRE gravado para um mês fechado
func GetMonthlyStatement(repo repository.MonthlyStatementRepository) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		month := r.URL.Query().Get("month")
		year := r.URL.Query().Get("year")

		if month == "" || year == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "É necessário informar mês e ano nos parâmetros", nil)
			return
		}

		if len(month) != 2 || month < "01" || month > "12" {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Mês inválido. Use formato de dois dígitos (01-12)", nil)
			return
		}

		if len(year) != 4 {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Ano inválido. Use formato de quatro dígitos (ex: 2025)", nil)
			return
		}

		period := fmt.Sprintf("%s-%s", month, year)
		periodDate := time.Date(cast.ToInt(year), time.Month(cast.ToInt(month)), 1, 0, 0, 0, 0, time.Local)

		logger.WithFields(log.Fields{
			"period": period,
		}).Info("monthly-statements: buscando snapshot de DRE do período")

		entry, err := repo.GetByPeriod(periodDate)
		if err != nil {
			logger.WithError(err).WithFields(log.Fields{
				"period": period,
			}).Error("monthly-statements: erro ao buscar snapshot")

			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar o snapshot do período", nil)
			return
		}

		if entry == nil {
			apiErrors.WriteError(w, apiErrors.ErrNoData, "Nenhum snapshot de DRE para o período informado", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(entry); err != nil {
			logger.WithError(err).Error("monthly-statements: erro ao codificar resposta")
		}
	})
}

// GetAvailableStatementPeriods retorna os períodos com snapshot gravado
func GetAvailableStatementPeriods(repo repository.MonthlyStatementRepository) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		logger.Info("statement-periods: buscando períodos disponíveis")

		periods, err := repo.GetAllPeriods()
		if err != nil {
			logger.WithError(err).Error("statement-periods: erro ao buscar períodos disponíveis")

			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar os períodos disponíveis", nil)
			return
		}

		logger.WithFields(log.Fields{
			"total_periods": len(periods),
		}).Info("statement-periods: períodos recuperados")

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(map[string]any{"periods": periods}); err != nil {
			logger.WithError(err).Error("statement-periods: erro ao codificar resposta")
		}
	})
}
