package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/vendas-dre-api/infrastructure/database/postgres"
	"github.com/vfg2006/vendas-dre-api/internal/domain"
)

const (
	monthlyStatementsTable = "monthly_statements ms"
)

// MonthlyStatementRepository persiste os snapshots mensais de DRE,
// indexados pelo período no formato mm-yyyy.
type MonthlyStatementRepository interface {
	GetByPeriod(date time.Time) (*domain.MonthlyStatementEntry, error)
	SaveOrUpdate(entry *domain.MonthlyStatementEntry) error
	GetAllPeriods() ([]string, error)
	DeleteOlderThan(months int) (int64, error)
}

type monthlyStatementRepository struct {
	conn *postgres.Connection
}

func NewMonthlyStatementRepository(conn *postgres.Connection) MonthlyStatementRepository {
	return &monthlyStatementRepository{
		conn: conn,
	}
}

// PeriodKey formata uma data como período mensal (mm-yyyy).
func PeriodKey(date time.Time) string {
	return fmt.Sprintf("%02d-%04d", int(date.Month()), date.Year())
}

func (r *monthlyStatementRepository) GetByPeriod(date time.Time) (*domain.MonthlyStatementEntry, error) {
	period := PeriodKey(date)

	query, args, err := squirrel.
		Select("ms.id, ms.period, ms.statement, ms.row_count, ms.created_at, ms.updated_at").
		From(monthlyStatementsTable).
		Where(squirrel.Eq{"ms.period": period}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRow(query, args...)
	entry, err := r.scanEntry(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear snapshot mensal: %w", err)
	}

	return entry, nil
}

func (r *monthlyStatementRepository) SaveOrUpdate(entry *domain.MonthlyStatementEntry) error {
	var statementJSON []byte
	var err error

	if entry.Statement != nil {
		statementJSON, err = json.Marshal(entry.Statement)
		if err != nil {
			return fmt.Errorf("erro ao serializar DRE para JSON: %w", err)
		}
	}

	query := squirrel.StatementBuilder.
		Insert("monthly_statements").
		Columns("period", "statement", "row_count").
		Values(
			entry.Period,
			statementJSON,
			entry.RowCount,
		).
		Suffix(`
			ON CONFLICT (period) DO UPDATE SET
				statement = EXCLUDED.statement,
				row_count = EXCLUDED.row_count,
				updated_at = NOW()
		`).
		PlaceholderFormat(squirrel.Dollar)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(sqlQuery, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

func (r *monthlyStatementRepository) GetAllPeriods() ([]string, error) {
	query, args, err := squirrel.
		Select("ms.period").
		From(monthlyStatementsTable).
		OrderBy("ms.period ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	periods := make([]string, 0)
	for rows.Next() {
		var period string
		if err := rows.Scan(&period); err != nil {
			return nil, fmt.Errorf("erro ao escanear período: %w", err)
		}
		periods = append(periods, period)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return periods, nil
}

func (r *monthlyStatementRepository) DeleteOlderThan(months int) (int64, error) {
	cutoff := time.Now().AddDate(0, -months, 0)
	cutoffPeriod := PeriodKey(cutoff)

	// O período é mm-yyyy; compara-se pela forma ordenável yyyy-mm.
	query, args, err := squirrel.
		Delete("monthly_statements").
		Where(squirrel.Lt{"substring(period from 4 for 4) || '-' || substring(period from 1 for 2)": fmt.Sprintf("%s-%s", cutoffPeriod[3:], cutoffPeriod[:2])}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.Exec(query, args...)
	if err != nil {
		return 0, fmt.Errorf("erro ao executar a query: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
	}

	return rowsAffected, nil
}

func (r *monthlyStatementRepository) scanEntry(row *sql.Row) (*domain.MonthlyStatementEntry, error) {
	entry := &domain.MonthlyStatementEntry{}
	var statementJSON []byte

	err := row.Scan(
		&entry.ID,
		&entry.Period,
		&statementJSON,
		&entry.RowCount,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if statementJSON != nil {
		statement := &domain.FinancialStatement{}
		if err := json.Unmarshal(statementJSON, statement); err != nil {
			return nil, fmt.Errorf("erro ao deserializar JSON da DRE: %w", err)
		}
		entry.Statement = statement
	}

	return entry, nil
}
