package domain

import "time"

// DailyTotal é o total vendido em um dia, com a soma acumulada até esse dia.
type DailyTotal struct {
	Data          time.Time `json:"Data"`
	DataFormatada string    `json:"DataFormatada"`
	Total         float64   `json:"Total"`
	Acumulado     float64   `json:"Acumulado"`
}

// WeekdayStat agrega os totais por dia da semana.
type WeekdayStat struct {
	DiaSemana string  `json:"DiaSemana"`
	Soma      float64 `json:"Soma"`
	Media     float64 `json:"Media"`
	Contagem  int     `json:"Contagem"`
}

// PaymentMethodTotals soma cada meio de pagamento e sua participação
// percentual no total geral. Todos os percentuais são 0 quando o total
// geral é 0.
type PaymentMethodTotals struct {
	Cartao             float64 `json:"Cartão"`
	Dinheiro           float64 `json:"Dinheiro"`
	Pix                float64 `json:"Pix"`
	Total              float64 `json:"Total"`
	PercentualCartao   float64 `json:"PercentualCartão"`
	PercentualDinheiro float64 `json:"PercentualDinheiro"`
	PercentualPix      float64 `json:"PercentualPix"`
}

// AggregateView reúne as três visões derivadas (somente leitura) sobre um
// conjunto de linhas canônicas. Nunca é mutada após construída; sempre
// recomputada a partir das linhas.
type AggregateView struct {
	Daily          []DailyTotal        `json:"daily"`
	Weekdays       []WeekdayStat       `json:"weekdays"`
	PaymentMethods PaymentMethodTotals `json:"payment_methods"`
}

// GrandTotal é o total geral de vendas da visão.
func (v *AggregateView) GrandTotal() float64 {
	return v.PaymentMethods.Total
}

// IsEmpty indica uma visão construída a partir de um conjunto vazio.
func (v *AggregateView) IsEmpty() bool {
	return v == nil || len(v.Daily) == 0
}

// BestWeekday retorna o dia da semana com a maior média de vendas. O segundo
// retorno é false quando a visão está vazia.
func (v *AggregateView) BestWeekday() (WeekdayStat, bool) {
	if v == nil || len(v.Weekdays) == 0 {
		return WeekdayStat{}, false
	}

	best := v.Weekdays[0]
	for _, stat := range v.Weekdays[1:] {
		if stat.Media > best.Media {
			best = stat
		}
	}

	return best, true
}
