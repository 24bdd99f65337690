package ingesting

import (
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"
	"github.com/vfg2006/vendas-dre-api/internal/domain"
)

// Normalize converte linhas brutas e heterogêneas (campo → valor) em
// registros de venda numericamente seguros. Campos de valor ausentes ou não
// numéricos viram 0.0; a data é repassada crua para o enriquecimento.
// Nunca retorna erro: entrada fora de contrato degrada para zero.
func Normalize(rows []map[string]any) []domain.SalesRecord {
	records := make([]domain.SalesRecord, 0, len(rows))

	for _, row := range rows {
		records = append(records, domain.SalesRecord{
			Data:     rawDate(row[domain.FieldData]),
			Cartao:   amountOrZero(row, domain.FieldCartao),
			Dinheiro: amountOrZero(row, domain.FieldDinheiro),
			Pix:      amountOrZero(row, domain.FieldPix),
		})
	}

	return records
}

// rawDate repassa o valor de data sem interpretá-lo. Datas nativas são
// serializadas em DD/MM/YYYY para preservar a convenção dia-primeiro.
func rawDate(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case time.Time:
		return v.Format("02/01/2006")
	case string:
		return strings.TrimSpace(v)
	default:
		return strings.TrimSpace(cast.ToString(v))
	}
}

// amountOrZero coage o campo para float64. Qualquer falha de coerção vale
// 0.0 e valores negativos são saturados em 0 para manter o invariante de
// valores não negativos.
func amountOrZero(row map[string]any, field string) float64 {
	value, ok := row[field]
	if !ok || value == nil {
		return 0
	}

	if s, isString := value.(string); isString && strings.TrimSpace(s) == "" {
		return 0
	}

	amount, err := cast.ToFloat64E(value)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"field": field,
			"value": value,
		}).Debug("ingestão: valor não numérico, assumindo 0")
		return 0
	}

	if amount < 0 {
		return 0
	}

	return amount
}
