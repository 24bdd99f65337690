package handler

import (
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"github.com/vfg2006/vendas-dre-api/internal/domain"
	"github.com/vfg2006/vendas-dre-api/internal/usecases/processing"
	"github.com/vfg2006/vendas-dre-api/internal/usecases/reporting"
	"github.com/vfg2006/vendas-dre-api/pkg/apiErrors"
	"github.com/vfg2006/vendas-dre-api/pkg/log"
	"github.com/vfg2006/vendas-dre-api/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ImportSales recebe um array de linhas brutas (planilha exportada) e as
// importa para o conjunto canônico
func ImportSales(service processing.Processor) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		var raw []map[string]any
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			err = errors.Wrap(err, "erro ao decodificar o corpo da requisição")
			logger.WithError(err).Warn("sales-import: corpo inválido")

			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido: esperado um array de linhas", nil)
			return
		}

		if len(raw) == 0 {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Nenhuma linha informada para importação", nil)
			return
		}

		result, err := service.ImportRows(raw)
		if err != nil {
			logger.WithError(err).Error("sales-import: erro ao importar vendas")

			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao importar as vendas", nil)
			return
		}

		logger.WithFields(log.Fields{
			"batch_id":       result.BatchID,
			"sales_imported": result.Imported,
			"dropped":        result.Dropped,
		}).Info("sales-import: importação concluída")

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(result); err != nil {
			logger.WithError(err).Error("sales-import: erro ao codificar resposta")
		}
	})
}

// ListSales retorna os registros canônicos do período informado
func ListSales(service processing.Processor) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		startDate, endDate, ok := parseDateRange(w, r)
		if !ok {
			return
		}

		rows, err := service.GetCanonicalRows(startDate, endDate)
		if err != nil {
			writeRangeError(w, logger, err, "sales-list")
			return
		}

		logger.WithFields(log.Fields{
			"sales_returned": len(rows),
		}).Info("sales-list: registros recuperados")

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(rows); err != nil {
			logger.WithError(err).Error("sales-list: erro ao codificar resposta")
		}
	})
}

// GetAggregates retorna a visão agregada (diário acumulado, dias da semana
// e meios de pagamento) do período informado
func GetAggregates(service processing.Processor) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		startDate, endDate, ok := parseDateRange(w, r)
		if !ok {
			return
		}

		view, err := service.GetAggregates(startDate, endDate)
		if err != nil {
			writeRangeError(w, logger, err, "sales-aggregates")
			return
		}

		logger.WithFields(log.Fields{
			"sales_days": len(view.Daily),
		}).Info("sales-aggregates: agregados calculados")

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(view); err != nil {
			logger.WithError(err).Error("sales-aggregates: erro ao codificar resposta")
		}
	})
}

// GetStatement retorna a DRE do período. Os parâmetros de negócio podem
// ser sobrescritos via query string; `format=text` devolve o demonstrativo
// renderizado em texto com formatação numérica brasileira
func GetStatement(service processing.Processor) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		startDate, endDate, ok := parseDateRange(w, r)
		if !ok {
			return
		}

		overrides, err := parseStatementOverrides(r)
		if err != nil {
			logger.WithError(err).Warn("sales-statement: parâmetro numérico inválido")

			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetros da DRE devem ser numéricos", nil)
			return
		}

		statement, err := service.GetStatement(startDate, endDate, overrides)
		if err != nil {
			writeRangeError(w, logger, err, "sales-statement")
			return
		}

		logger.WithFields(log.Fields{
			"start_date": startDate.Format(time.DateOnly),
			"end_date":   endDate.Format(time.DateOnly),
		}).Info("sales-statement: DRE calculada")

		if r.URL.Query().Get("format") == "text" {
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			if _, err := w.Write([]byte(reporting.RenderStatement(statement))); err != nil {
				logger.WithError(err).Error("sales-statement: erro ao escrever resposta")
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(statement); err != nil {
			logger.WithError(err).Error("sales-statement: erro ao codificar resposta")
		}
	})
}

// parseDateRange lê start_date/end_date da query string. Em caso de data
// inválida, escreve a resposta de erro e retorna ok=false
func parseDateRange(w http.ResponseWriter, r *http.Request) (*time.Time, *time.Time, bool) {
	logger := log.ForContext(r.Context())

	startDate, err := utils.ParseDate(r.URL.Query().Get("start_date"))
	if err != nil {
		logger.WithFields(log.Fields{
			"start_date": r.URL.Query().Get("start_date"),
			"error":      err.Error(),
		}).Warn("sales: parâmetro start_date inválido")

		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "start_date inválida, use o formato AAAA-MM-DD", nil)
		return nil, nil, false
	}

	endDate, err := utils.ParseDate(r.URL.Query().Get("end_date"))
	if err != nil {
		logger.WithFields(log.Fields{
			"end_date": r.URL.Query().Get("end_date"),
			"error":    err.Error(),
		}).Warn("sales: parâmetro end_date inválido")

		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "end_date inválida, use o formato AAAA-MM-DD", nil)
		return nil, nil, false
	}

	return startDate, endDate, true
}

// parseStatementOverrides lê os parâmetros opcionais da DRE da query
// string. Retorna nil quando nenhum foi informado
func parseStatementOverrides(r *http.Request) (*domain.StatementParams, error) {
	overrides := &domain.StatementParams{}
	found := false

	params := map[string]*float64{
		"salario_minimo":        &overrides.SalarioMinimo,
		"honorario_contador":    &overrides.HonorarioContador,
		"percentual_fornecedor": &overrides.PercentualFornecedor,
	}

	for name, target := range params {
		value := r.URL.Query().Get(name)
		if value == "" {
			continue
		}

		parsed, err := cast.ToFloat64E(value)
		if err != nil {
			return nil, errors.Wrapf(err, "parâmetro %s inválido", name)
		}

		*target = parsed
		found = true
	}

	if !found {
		return nil, nil
	}

	return overrides, nil
}

func writeRangeError(w http.ResponseWriter, logger log.Logger, err error, operation string) {
	if errors.Is(err, processing.ErrInvalidDateRange) {
		apiErrors.WriteError(w, apiErrors.ErrInvalidDateRange, "Data inicial posterior à data final", nil)
		return
	}

	logger.WithError(err).Errorf("%s: erro ao consultar as vendas", operation)
	apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao consultar as vendas", nil)
}
