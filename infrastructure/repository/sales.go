package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/vendas-dre-api/infrastructure/database/postgres"
	"github.com/vfg2006/vendas-dre-api/internal/domain"
)

const (
	dailySalesTable = "daily_sales ds"
)

// SalesRepository persiste as linhas canônicas de venda. A unicidade por
// data é garantida aqui, na fronteira de persistência (UNIQUE em sale_date);
// o núcleo do pipeline apenas expõe a verificação pura de existência.
type SalesRepository interface {
	SaveOrUpdate(row *domain.CanonicalRow, batchID string) error
	GetByDateRange(startDate, endDate time.Time) ([]*domain.CanonicalRow, error)
	GetAll() ([]*domain.CanonicalRow, error)
	ExistsByDate(date time.Time) (bool, error)
	DeleteByDate(date time.Time) (int64, error)
}

type salesRepository struct {
	conn *postgres.Connection
}

func NewSalesRepository(conn *postgres.Connection) SalesRepository {
	return &salesRepository{
		conn: conn,
	}
}

func (r *salesRepository) SaveOrUpdate(row *domain.CanonicalRow, batchID string) error {
	query := squirrel.StatementBuilder.
		Insert("daily_sales").
		Columns("sale_date", "card_amount", "cash_amount", "pix_amount", "import_batch_id").
		Values(
			row.Data.Format(time.DateOnly),
			row.Cartao,
			row.Dinheiro,
			row.Pix,
			batchID,
		).
		Suffix(`
			ON CONFLICT (sale_date) DO UPDATE SET
				card_amount = EXCLUDED.card_amount,
				cash_amount = EXCLUDED.cash_amount,
				pix_amount = EXCLUDED.pix_amount,
				import_batch_id = EXCLUDED.import_batch_id,
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

func (r *salesRepository) GetByDateRange(startDate, endDate time.Time) ([]*domain.CanonicalRow, error) {
	query, args, err := squirrel.
		Select("ds.sale_date, ds.card_amount, ds.cash_amount, ds.pix_amount").
		From(dailySalesTable).
		Where(squirrel.GtOrEq{"ds.sale_date": startDate.Format(time.DateOnly)}).
		Where(squirrel.LtOrEq{"ds.sale_date": endDate.Format(time.DateOnly)}).
		OrderBy("ds.sale_date ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	return r.queryRows(query, args)
}

func (r *salesRepository) GetAll() ([]*domain.CanonicalRow, error) {
	query, args, err := squirrel.
		Select("ds.sale_date, ds.card_amount, ds.cash_amount, ds.pix_amount").
		From(dailySalesTable).
		OrderBy("ds.sale_date ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	return r.queryRows(query, args)
}

func (r *salesRepository) ExistsByDate(date time.Time) (bool, error) {
	query, args, err := squirrel.
		Select("1").
		From(dailySalesTable).
		Where(squirrel.Eq{"ds.sale_date": date.Format(time.DateOnly)}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var exists int
	err = r.conn.QueryRow(query, args...).Scan(&exists)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("erro ao executar a query: %w", err)
	}

	return true, nil
}

func (r *salesRepository) DeleteByDate(date time.Time) (int64, error) {
	query, args, err := squirrel.
		Delete("daily_sales").
		Where(squirrel.Eq{"sale_date": date.Format(time.DateOnly)}).
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

func (r *salesRepository) queryRows(query string, args []interface{}) ([]*domain.CanonicalRow, error) {
	rows, err := r.conn.Query(query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return make([]*domain.CanonicalRow, 0), nil
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	canonicalRows := make([]*domain.CanonicalRow, 0)
	for rows.Next() {
		row, err := r.scanRow(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear linha de vendas: %w", err)
		}
		canonicalRows = append(canonicalRows, row)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return canonicalRows, nil
}

// scanRow rederiva as dimensões de calendário na leitura: o banco guarda
// apenas a data e os valores por canal, o restante é função pura da data.
func (r *salesRepository) scanRow(rows *sql.Rows) (*domain.CanonicalRow, error) {
	var (
		date     time.Time
		cartao   float64
		dinheiro float64
		pix      float64
	)

	err := rows.Scan(&date, &cartao, &dinheiro, &pix)
	if err != nil {
		return nil, err
	}

	row := domain.NewCanonicalRow(date, cartao, dinheiro, pix)
	return &row, nil
}
