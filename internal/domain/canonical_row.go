package domain

import (
	"fmt"
	"time"
)

// CanonicalRow é a unidade durável trocada com a persistência e a
// apresentação: uma linha de vendas com data válida e dimensões de
// calendário derivadas. O esquema completo está sempre presente, mesmo em
// conjuntos vazios.
type CanonicalRow struct {
	Data          time.Time `json:"Data"`
	DataFormatada string    `json:"DataFormatada"`
	Ano           int       `json:"Ano"`
	Mes           int       `json:"Mês"`
	MesNome       string    `json:"MêsNome"`
	AnoMes        string    `json:"AnoMês"`
	DiaSemana     string    `json:"DiaSemana"`
	DiaDoMes      int       `json:"DiaDoMes"`
	Cartao        float64   `json:"Cartão"`
	Dinheiro      float64   `json:"Dinheiro"`
	Pix           float64   `json:"Pix"`
	Total         float64   `json:"Total"`
}

// NewCanonicalRow deriva todas as dimensões de calendário a partir de uma
// data já validada e dos valores por meio de pagamento. Total é sempre a
// soma exata dos três canais.
func NewCanonicalRow(date time.Time, cartao, dinheiro, pix float64) CanonicalRow {
	return CanonicalRow{
		Data:          date,
		DataFormatada: date.Format("02/01/2006"),
		Ano:           date.Year(),
		Mes:           int(date.Month()),
		MesNome:       MonthName(date.Month()),
		AnoMes:        fmt.Sprintf("%04d-%02d", date.Year(), int(date.Month())),
		DiaSemana:     WeekdayName(date),
		DiaDoMes:      date.Day(),
		Cartao:        cartao,
		Dinheiro:      dinheiro,
		Pix:           pix,
		Total:         cartao + dinheiro + pix,
	}
}

// ToRecord converte a linha canônica de volta para o formato de registro
// bruto. O enriquecimento de um conjunto já canônico é idempotente: a data
// formatada (DD/MM/YYYY) é reparseada para a mesma data.
func (r CanonicalRow) ToRecord() SalesRecord {
	return SalesRecord{
		Data:     r.DataFormatada,
		Cartao:   r.Cartao,
		Dinheiro: r.Dinheiro,
		Pix:      r.Pix,
	}
}
