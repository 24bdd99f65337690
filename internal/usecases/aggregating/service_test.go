package aggregating

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/vendas-dre-api/internal/domain"
)

func row(date string, cartao, dinheiro, pix float64) domain.CanonicalRow {
	parsed, _ := time.Parse("02/01/2006", date)
	return domain.NewCanonicalRow(parsed, cartao, dinheiro, pix)
}

func TestBuildViewEmpty(t *testing.T) {
	view := BuildView(nil)

	assert.NotNil(t, view)
	assert.True(t, view.IsEmpty())
	assert.NotNil(t, view.Daily)
	assert.NotNil(t, view.Weekdays)
	assert.Empty(t, view.Daily)
	assert.Empty(t, view.Weekdays)
	assert.Equal(t, 0.0, view.GrandTotal())

	_, ok := view.BestWeekday()
	assert.False(t, ok)
}

func TestBuildViewDailyCumulative(t *testing.T) {
	view := BuildView([]domain.CanonicalRow{
		row("01/01/2025", 100, 50, 0),
		row("02/01/2025", 0, 0, 200),
	})

	assert.Len(t, view.Daily, 2)

	assert.Equal(t, "01/01/2025", view.Daily[0].DataFormatada)
	assert.InDelta(t, 150, view.Daily[0].Total, 1e-9)
	assert.InDelta(t, 150, view.Daily[0].Acumulado, 1e-9)

	assert.Equal(t, "02/01/2025", view.Daily[1].DataFormatada)
	assert.InDelta(t, 200, view.Daily[1].Total, 1e-9)
	assert.InDelta(t, 350, view.Daily[1].Acumulado, 1e-9)

	assert.InDelta(t, 350, view.GrandTotal(), 1e-9)
}

func TestBuildViewSortsUnorderedDates(t *testing.T) {
	view := BuildView([]domain.CanonicalRow{
		row("10/01/2025", 30, 0, 0),
		row("02/01/2025", 10, 0, 0),
		row("05/01/2025", 20, 0, 0),
	})

	assert.Equal(t, "02/01/2025", view.Daily[0].DataFormatada)
	assert.Equal(t, "05/01/2025", view.Daily[1].DataFormatada)
	assert.Equal(t, "10/01/2025", view.Daily[2].DataFormatada)

	assert.InDelta(t, 10, view.Daily[0].Acumulado, 1e-9)
	assert.InDelta(t, 30, view.Daily[1].Acumulado, 1e-9)
	assert.InDelta(t, 60, view.Daily[2].Acumulado, 1e-9)
}

func TestBuildViewWeekdays(t *testing.T) {
	// 06/01 segunda, 07/01 terça, 13/01 segunda
	view := BuildView([]domain.CanonicalRow{
		row("07/01/2025", 100, 0, 0),
		row("06/01/2025", 50, 0, 0),
		row("13/01/2025", 150, 0, 0),
	})

	// Ordem fixa Segunda→Domingo, dias ausentes omitidos
	assert.Len(t, view.Weekdays, 2)

	assert.Equal(t, "Segunda-feira", view.Weekdays[0].DiaSemana)
	assert.InDelta(t, 200, view.Weekdays[0].Soma, 1e-9)
	assert.InDelta(t, 100, view.Weekdays[0].Media, 1e-9)
	assert.Equal(t, 2, view.Weekdays[0].Contagem)

	assert.Equal(t, "Terça-feira", view.Weekdays[1].DiaSemana)
	assert.InDelta(t, 100, view.Weekdays[1].Soma, 1e-9)
	assert.Equal(t, 1, view.Weekdays[1].Contagem)

	best, ok := view.BestWeekday()
	assert.True(t, ok)
	assert.Equal(t, "Segunda-feira", best.DiaSemana)
}

func TestBuildViewPaymentMethods(t *testing.T) {
	view := BuildView([]domain.CanonicalRow{
		row("01/01/2025", 100, 50, 0),
		row("02/01/2025", 0, 0, 200),
	})

	methods := view.PaymentMethods

	assert.InDelta(t, 100, methods.Cartao, 1e-9)
	assert.InDelta(t, 50, methods.Dinheiro, 1e-9)
	assert.InDelta(t, 200, methods.Pix, 1e-9)
	assert.InDelta(t, 350, methods.Total, 1e-9)

	assert.InDelta(t, 28.57, methods.PercentualCartao, 1e-9)
	assert.InDelta(t, 14.29, methods.PercentualDinheiro, 1e-9)
	assert.InDelta(t, 57.14, methods.PercentualPix, 1e-9)

	// As participações somam 100 a menos do arredondamento
	sum := methods.PercentualCartao + methods.PercentualDinheiro + methods.PercentualPix
	assert.InDelta(t, 100, sum, 0.02)
}

func TestBuildViewPaymentMethodsZeroTotal(t *testing.T) {
	// Total geral 0 mantém todos os percentuais em 0, sem NaN
	view := BuildView([]domain.CanonicalRow{
		row("01/01/2025", 0, 0, 0),
	})

	methods := view.PaymentMethods

	assert.Equal(t, 0.0, methods.Total)
	assert.Equal(t, 0.0, methods.PercentualCartao)
	assert.Equal(t, 0.0, methods.PercentualDinheiro)
	assert.Equal(t, 0.0, methods.PercentualPix)
}

func TestBuildViewMergesSameDate(t *testing.T) {
	// Linhas duplicadas da mesma data somam em um único total diário
	view := BuildView([]domain.CanonicalRow{
		row("01/01/2025", 100, 0, 0),
		row("01/01/2025", 0, 50, 0),
	})

	assert.Len(t, view.Daily, 1)
	assert.InDelta(t, 150, view.Daily[0].Total, 1e-9)
}

func TestHasDate(t *testing.T) {
	rows := []domain.CanonicalRow{
		row("01/01/2025", 100, 0, 0),
		row("02/01/2025", 0, 0, 200),
	}

	assert.True(t, HasDate(rows, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, HasDate(rows, time.Date(2025, 1, 2, 15, 30, 0, 0, time.Local)))
	assert.False(t, HasDate(rows, time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC)))
	assert.False(t, HasDate(nil, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)))
}
