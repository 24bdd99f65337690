package aggregating

import (
	"sort"
	"time"

	"github.com/vfg2006/vendas-dre-api/internal/domain"
	"github.com/vfg2006/vendas-dre-api/pkg/utils"
)

// Acumulador por dia da semana
type weekdayAggregator struct {
	soma     float64
	contagem int
}

// BuildView recomputa as três visões derivadas sobre o conjunto canônico:
// totais diários com soma acumulada, estatísticas por dia da semana e
// totais por meio de pagamento com participação percentual. A visão nunca é
// mutada depois; chamadas sobre o mesmo conjunto produzem o mesmo resultado.
func BuildView(rows []domain.CanonicalRow) *domain.AggregateView {
	view := &domain.AggregateView{
		Daily:    make([]domain.DailyTotal, 0, len(rows)),
		Weekdays: make([]domain.WeekdayStat, 0),
	}

	if len(rows) == 0 {
		return view
	}

	view.Daily = buildDaily(rows)
	view.Weekdays = buildWeekdays(rows)
	view.PaymentMethods = buildPaymentMethods(rows)

	return view
}

// buildDaily soma os totais por data, ordena ascendente e calcula a soma
// acumulada. O(n log n) por causa da ordenação.
func buildDaily(rows []domain.CanonicalRow) []domain.DailyTotal {
	byDate := make(map[string]*domain.DailyTotal)

	for _, row := range rows {
		key := row.Data.Format(time.DateOnly)
		entry, exists := byDate[key]
		if !exists {
			entry = &domain.DailyTotal{
				Data:          row.Data,
				DataFormatada: row.DataFormatada,
			}
			byDate[key] = entry
		}
		entry.Total += row.Total
	}

	daily := make([]domain.DailyTotal, 0, len(byDate))
	for _, entry := range byDate {
		daily = append(daily, *entry)
	}

	sort.Slice(daily, func(i, j int) bool {
		return daily[i].Data.Before(daily[j].Data)
	})

	cumulative := 0.0
	for i := range daily {
		cumulative += daily[i].Total
		daily[i].Acumulado = cumulative
	}

	return daily
}

// buildWeekdays agrega por nome do dia da semana e reordena na sequência
// fixa Segunda→Domingo. Dias ausentes do conjunto são omitidos, não
// preenchidos com zero.
func buildWeekdays(rows []domain.CanonicalRow) []domain.WeekdayStat {
	accumulators := make(map[string]*weekdayAggregator)

	for _, row := range rows {
		accumulator, exists := accumulators[row.DiaSemana]
		if !exists {
			accumulator = &weekdayAggregator{}
			accumulators[row.DiaSemana] = accumulator
		}
		accumulator.soma += row.Total
		accumulator.contagem++
	}

	stats := make([]domain.WeekdayStat, 0, len(accumulators))
	for _, name := range domain.WeekdayOrder() {
		accumulator, exists := accumulators[name]
		if !exists {
			continue
		}

		stats = append(stats, domain.WeekdayStat{
			DiaSemana: name,
			Soma:      accumulator.soma,
			Media:     utils.RoundWithTwoDecimalPlace(accumulator.soma / float64(accumulator.contagem)),
			Contagem:  accumulator.contagem,
		})
	}

	return stats
}

// buildPaymentMethods soma cada canal e calcula a participação percentual.
// Percentual é 0 quando o total geral é 0.
func buildPaymentMethods(rows []domain.CanonicalRow) domain.PaymentMethodTotals {
	totals := domain.PaymentMethodTotals{}

	for _, row := range rows {
		totals.Cartao += row.Cartao
		totals.Dinheiro += row.Dinheiro
		totals.Pix += row.Pix
	}

	totals.Total = totals.Cartao + totals.Dinheiro + totals.Pix

	if totals.Total > 0 {
		totals.PercentualCartao = utils.RoundWithTwoDecimalPlace(totals.Cartao / totals.Total * 100)
		totals.PercentualDinheiro = utils.RoundWithTwoDecimalPlace(totals.Dinheiro / totals.Total * 100)
		totals.PercentualPix = utils.RoundWithTwoDecimalPlace(totals.Pix / totals.Total * 100)
	}

	return totals
}

// HasDate verifica se já existe linha canônica para a data no conjunto.
// É o gancho de unicidade consultado pela camada de persistência antes de
// inserir; a verificação é pura, a rejeição acontece na fronteira de
// persistência.
func HasDate(rows []domain.CanonicalRow, date time.Time) bool {
	year, month, day := date.Date()

	for _, row := range rows {
		rowYear, rowMonth, rowDay := row.Data.Date()
		if rowYear == year && rowMonth == month && rowDay == day {
			return true
		}
	}

	return false
}
