package processing

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/vendas-dre-api/infrastructure/repository"
	"github.com/vfg2006/vendas-dre-api/internal/config"
	"github.com/vfg2006/vendas-dre-api/internal/domain"
	"github.com/vfg2006/vendas-dre-api/internal/usecases/aggregating"
	"github.com/vfg2006/vendas-dre-api/internal/usecases/enriching"
	"github.com/vfg2006/vendas-dre-api/internal/usecases/ingesting"
	"github.com/vfg2006/vendas-dre-api/internal/usecases/reporting"
	"github.com/vfg2006/vendas-dre-api/pkg/cache"
	"github.com/vfg2006/vendas-dre-api/pkg/log"
	"github.com/vfg2006/vendas-dre-api/pkg/utils"
)

// ErrInvalidDateRange indica data inicial posterior à data final.
var ErrInvalidDateRange = errors.New("data inicial posterior à data final")

// Service orquestra o pipeline: normalização, enriquecimento de
// calendário, persistência, agregação e DRE.
type Service struct {
	cfg       *config.Config
	salesRepo repository.SalesRepository
	viewCache *cache.Cache[*domain.AggregateView]
	useCache  bool
}

// NewService cria uma nova instância do serviço de processamento de vendas
func NewService(cfg *config.Config, salesRepo repository.SalesRepository) *Service {
	return &Service{
		cfg:       cfg,
		salesRepo: salesRepo,
	}
}

// WithCache habilita o cache de agregados. O cache é invalidado por
// completo a cada importação que altera o conjunto canônico.
func (s *Service) WithCache(ttl time.Duration) *Service {
	s.viewCache = cache.New[*domain.AggregateView](ttl)
	s.useCache = true

	return s
}

// ImportRows executa o pipeline de entrada sobre as linhas brutas: cada
// linha vira um registro canônico, datas inválidas são descartadas (e
// contadas) e datas já presentes na base são puladas.
func (s *Service) ImportRows(raw []map[string]any) (*ImportResult, error) {
	batchID, err := utils.GenerateID()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao gerar o identificador do lote")
	}

	records := ingesting.Normalize(raw)
	rows, dropped := enriching.Enrich(records)

	result := &ImportResult{
		BatchID:  batchID,
		Received: len(raw),
		Dropped:  dropped,
	}

	for i := range rows {
		exists, err := s.salesRepo.ExistsByDate(rows[i].Data)
		if err != nil {
			return nil, errors.Wrapf(err, "erro ao verificar a data %s", rows[i].DataFormatada)
		}

		if exists {
			result.Duplicates++

			logrus.WithFields(logrus.Fields{
				"batch_id": batchID,
				"date":     rows[i].DataFormatada,
			}).Debug("Data já existente na base, linha ignorada")

			continue
		}

		if err := s.salesRepo.SaveOrUpdate(&rows[i], batchID); err != nil {
			return nil, errors.Wrapf(err, "erro ao salvar a venda de %s", rows[i].DataFormatada)
		}

		result.Imported++
	}

	if result.Imported > 0 && s.useCache {
		s.viewCache.Flush()
	}

	logrus.WithFields(logrus.Fields{
		"batch_id":         batchID,
		"sales_received":   result.Received,
		"sales_imported":   result.Imported,
		"sales_duplicates": result.Duplicates,
		"dropped":          result.Dropped,
	}).Info("Importação de vendas concluída")

	return result, nil
}

// GetCanonicalRows retorna os registros canônicos do período informado.
// Datas zeradas significam "sem filtro" naquela ponta.
func (s *Service) GetCanonicalRows(startDate, endDate *time.Time) ([]domain.CanonicalRow, error) {
	stored, err := s.fetchRows(startDate, endDate)
	if err != nil {
		return nil, err
	}

	rows := make([]domain.CanonicalRow, 0, len(stored))
	for _, row := range stored {
		rows = append(rows, *row)
	}

	return rows, nil
}

// GetAggregates monta a visão agregada (diário acumulado, dias da semana e
// meios de pagamento) do período informado.
func (s *Service) GetAggregates(startDate, endDate *time.Time) (*domain.AggregateView, error) {
	cacheKey := s.aggregatesCacheKey(startDate, endDate)

	if s.useCache {
		if view, found := s.viewCache.Get(cacheKey); found {
			log.L.WithField("cache_key", cacheKey).Debug("Agregados servidos do cache")
			return view, nil
		}
	}

	rows, err := s.GetCanonicalRows(startDate, endDate)
	if err != nil {
		return nil, err
	}

	view := aggregating.BuildView(rows)

	if s.useCache {
		s.viewCache.Set(cacheKey, view)
	}

	return view, nil
}

// GetStatement monta a DRE do período. Parâmetros ausentes no override
// caem nos valores padrão da configuração.
func (s *Service) GetStatement(startDate, endDate *time.Time, overrides *domain.StatementParams) (*domain.FinancialStatement, error) {
	view, err := s.GetAggregates(startDate, endDate)
	if err != nil {
		return nil, err
	}

	params := s.statementParams(overrides)

	if log.IsDevelopment() {
		log.L.Debugf("Parâmetros da DRE: %s", utils.PrettyJson(params))
	}

	return reporting.BuildStatement(view, params), nil
}

func (s *Service) fetchRows(startDate, endDate *time.Time) ([]*domain.CanonicalRow, error) {
	start := dateOrZero(startDate)
	end := dateOrZero(endDate)

	if start.IsZero() && end.IsZero() {
		return s.salesRepo.GetAll()
	}

	if end.IsZero() {
		end = time.Now()
	}

	if start.After(end) {
		return nil, ErrInvalidDateRange
	}

	return s.salesRepo.GetByDateRange(start, end)
}

func (s *Service) statementParams(overrides *domain.StatementParams) domain.StatementParams {
	params := domain.StatementParams{
		SalarioMinimo:        s.cfg.Statement.SalarioMinimo,
		HonorarioContador:    s.cfg.Statement.HonorarioContador,
		PercentualFornecedor: s.cfg.Statement.PercentualFornecedor,
	}

	if overrides == nil {
		return params
	}

	if overrides.SalarioMinimo > 0 {
		params.SalarioMinimo = overrides.SalarioMinimo
	}

	if overrides.HonorarioContador > 0 {
		params.HonorarioContador = overrides.HonorarioContador
	}

	if overrides.PercentualFornecedor > 0 {
		params.PercentualFornecedor = overrides.PercentualFornecedor
	}

	return params
}

func (s *Service) aggregatesCacheKey(startDate, endDate *time.Time) string {
	start := dateOrZero(startDate)
	end := dateOrZero(endDate)

	return cache.Fingerprint(
		"aggregates",
		fmt.Sprintf("%s:%s", start.Format(time.DateOnly), end.Format(time.DateOnly)),
	)
}

func dateOrZero(date *time.Time) time.Time {
	if date == nil {
		return time.Time{}
	}

	return *date
}
