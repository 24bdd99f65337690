package enriching

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/vendas-dre-api/internal/domain"
)

func TestEnrich(t *testing.T) {
	tests := []struct {
		name            string
		records         []domain.SalesRecord
		expectedRows    int
		expectedDropped int
	}{
		{
			name: "Datas válidas dia-primeiro são todas enriquecidas",
			records: []domain.SalesRecord{
				{Data: "01/01/2025", Cartao: 100, Dinheiro: 50},
				{Data: "02/01/2025", Pix: 200},
			},
			expectedRows:    2,
			expectedDropped: 0,
		},
		{
			name: "Data impossível é descartada e contada",
			records: []domain.SalesRecord{
				{Data: "01/01/2025", Cartao: 100},
				{Data: "31/02/2025", Cartao: 50},
			},
			expectedRows:    1,
			expectedDropped: 1,
		},
		{
			name: "Data vazia é descartada",
			records: []domain.SalesRecord{
				{Data: "", Cartao: 10},
			},
			expectedRows:    0,
			expectedDropped: 1,
		},
		{
			name: "Texto não interpretável é descartado",
			records: []domain.SalesRecord{
				{Data: "não é data", Cartao: 10},
			},
			expectedRows:    0,
			expectedDropped: 1,
		},
		{
			name:            "Conjunto vazio produz zero linhas e zero descartes",
			records:         []domain.SalesRecord{},
			expectedRows:    0,
			expectedDropped: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, dropped := Enrich(tt.records)

			assert.Len(t, rows, tt.expectedRows)
			assert.Equal(t, tt.expectedDropped, dropped)
		})
	}
}

func TestEnrichDayFirstConvention(t *testing.T) {
	// 06/01/2025 na convenção dia-primeiro é 6 de janeiro, uma segunda-feira
	rows, dropped := Enrich([]domain.SalesRecord{
		{Data: "06/01/2025", Cartao: 100},
	})

	assert.Equal(t, 0, dropped)
	assert.Len(t, rows, 1)
	assert.Equal(t, time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC), rows[0].Data)
	assert.Equal(t, "Segunda-feira", rows[0].DiaSemana)
	assert.Equal(t, "Janeiro", rows[0].MesNome)
	assert.Equal(t, "2025-01", rows[0].AnoMes)
}

func TestEnrichGenericLayouts(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected time.Time
	}{
		{
			name:     "Formato ISO",
			raw:      "2025-01-06",
			expected: time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "Formato com hífen dia-primeiro",
			raw:      "06-01-2025",
			expected: time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "Formato com barras invertido",
			raw:      "2025/01/06",
			expected: time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "Espaços nas bordas são tolerados",
			raw:      "  06/01/2025  ",
			expected: time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, dropped := Enrich([]domain.SalesRecord{{Data: tt.raw, Cartao: 1}})

			assert.Equal(t, 0, dropped)
			assert.Len(t, rows, 1)
			assert.Equal(t, tt.expected, rows[0].Data)
		})
	}
}

func TestEnrichDayFirstWinsOverMonthFirst(t *testing.T) {
	// 05/01/2025 é 5 de janeiro, nunca 1º de maio
	rows, _ := Enrich([]domain.SalesRecord{{Data: "05/01/2025"}})

	assert.Len(t, rows, 1)
	assert.Equal(t, time.January, rows[0].Data.Month())
	assert.Equal(t, 5, rows[0].Data.Day())
}

func TestEnrichTotalInvariant(t *testing.T) {
	rows, _ := Enrich([]domain.SalesRecord{
		{Data: "01/01/2025", Cartao: 100.10, Dinheiro: 50.20, Pix: 25.30},
	})

	assert.Len(t, rows, 1)
	assert.InDelta(t, rows[0].Cartao+rows[0].Dinheiro+rows[0].Pix, rows[0].Total, 1e-9)
}

func TestEnrichIdempotence(t *testing.T) {
	// Enriquecer a saída canônica reproduz o mesmo conjunto
	first, dropped := Enrich([]domain.SalesRecord{
		{Data: "01/01/2025", Cartao: 100, Dinheiro: 50},
		{Data: "02/01/2025", Pix: 200},
	})
	assert.Equal(t, 0, dropped)

	records := make([]domain.SalesRecord, 0, len(first))
	for _, row := range first {
		records = append(records, row.ToRecord())
	}

	second, dropped := Enrich(records)
	assert.Equal(t, 0, dropped)
	assert.Equal(t, first, second)
}
