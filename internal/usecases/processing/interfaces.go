package processing

import (
	"time"

	"github.com/vfg2006/vendas-dre-api/internal/domain"
)

// Processor define a interface do pipeline completo de vendas: importação
// de linhas brutas, leitura do conjunto canônico, agregados e DRE.
type Processor interface {
	ImportRows(raw []map[string]any) (*ImportResult, error)
	GetCanonicalRows(startDate, endDate *time.Time) ([]domain.CanonicalRow, error)
	GetAggregates(startDate, endDate *time.Time) (*domain.AggregateView, error)
	GetStatement(startDate, endDate *time.Time, overrides *domain.StatementParams) (*domain.FinancialStatement, error)
}

// ImportResult resume o resultado de uma importação: quantas linhas
// chegaram, quantas viraram registros canônicos, quantas foram descartadas
// por data inválida e quantas já existiam na base.
type ImportResult struct {
	BatchID    string `json:"batch_id"`
	Received   int    `json:"received"`
	Imported   int    `json:"imported"`
	Dropped    int    `json:"dropped"`
	Duplicates int    `json:"duplicates"`
}
