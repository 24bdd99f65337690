package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMonthName(t *testing.T) {
	assert.Equal(t, "Janeiro", MonthName(time.January))
	assert.Equal(t, "Março", MonthName(time.March))
	assert.Equal(t, "Dezembro", MonthName(time.December))
	assert.Equal(t, "", MonthName(time.Month(0)))
	assert.Equal(t, "", MonthName(time.Month(13)))
}

func TestISOWeekday(t *testing.T) {
	tests := []struct {
		name     string
		date     time.Time
		expected int
	}{
		{
			name:     "Segunda-feira é o índice 0",
			date:     time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC),
			expected: 0,
		},
		{
			name:     "Quarta-feira é o índice 2",
			date:     time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			expected: 2,
		},
		{
			name:     "Domingo é o índice 6",
			date:     time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC),
			expected: 6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ISOWeekday(tt.date))
		})
	}
}

func TestWeekdayName(t *testing.T) {
	// 06/01/2025 é uma segunda-feira
	assert.Equal(t, "Segunda-feira", WeekdayName(time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "Sábado", WeekdayName(time.Date(2025, 1, 4, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "Domingo", WeekdayName(time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)))
}

func TestWeekdayOrder(t *testing.T) {
	order := WeekdayOrder()

	assert.Equal(t, []string{
		"Segunda-feira",
		"Terça-feira",
		"Quarta-feira",
		"Quinta-feira",
		"Sexta-feira",
		"Sábado",
		"Domingo",
	}, order)

	// A cópia retornada não pode afetar a tabela fixa
	order[0] = "alterado"
	assert.Equal(t, "Segunda-feira", WeekdayOrder()[0])
}

func TestNewCanonicalRow(t *testing.T) {
	row := NewCanonicalRow(time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC), 100, 50, 25.5)

	assert.Equal(t, "06/01/2025", row.DataFormatada)
	assert.Equal(t, 2025, row.Ano)
	assert.Equal(t, 1, row.Mes)
	assert.Equal(t, "Janeiro", row.MesNome)
	assert.Equal(t, "2025-01", row.AnoMes)
	assert.Equal(t, "Segunda-feira", row.DiaSemana)
	assert.Equal(t, 6, row.DiaDoMes)
	assert.Equal(t, 175.5, row.Total)
}

func TestCanonicalRowToRecord(t *testing.T) {
	row := NewCanonicalRow(time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), 10, 20, 30)
	record := row.ToRecord()

	assert.Equal(t, "15/03/2025", record.Data)
	assert.Equal(t, 10.0, record.Cartao)
	assert.Equal(t, 20.0, record.Dinheiro)
	assert.Equal(t, 30.0, record.Pix)
}
