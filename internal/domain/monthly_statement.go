package domain

import "time"

// MonthlyStatementEntry é o snapshot mensal de DRE armazenado no banco,
// indexado pelo período no formato mm-yyyy.
type MonthlyStatementEntry struct {
	ID        int64               `json:"id"`
	Period    string              `json:"period"`
	Statement *FinancialStatement `json:"statement"`
	RowCount  int                 `json:"row_count"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}
