package enriching

import (
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/vendas-dre-api/internal/domain"
)

// Layouts tentados em ordem: primeiro os formatos dia-primeiro (convenção
// local), depois os genéricos. time.Parse rejeita datas impossíveis como
// 31/02, então nenhuma validação extra é necessária.
var (
	dayFirstLayouts = []string{
		"02/01/2006",
		"02-01-2006",
	}

	genericLayouts = []string{
		"2006-01-02",
		"2006/01/02",
		time.RFC3339,
	}
)

// Enrich deriva as dimensões de calendário de cada registro e retorna o
// conjunto canônico junto com a contagem de linhas descartadas por data
// inválida. O descarte é política explícita de perda de dados: a contagem é
// sempre observável pelo chamador, inclusive quando o campo de data está
// totalmente ausente.
func Enrich(records []domain.SalesRecord) ([]domain.CanonicalRow, int) {
	rows := make([]domain.CanonicalRow, 0, len(records))
	dropped := 0

	for _, record := range records {
		date, ok := parseDate(record.Data)
		if !ok {
			dropped++
			logrus.WithField("raw_date", record.Data).Debug("enriquecimento: data inválida, linha descartada")
			continue
		}

		rows = append(rows, domain.NewCanonicalRow(date, record.Cartao, record.Dinheiro, record.Pix))
	}

	if dropped > 0 {
		logrus.WithFields(logrus.Fields{
			"dropped": dropped,
			"total":   len(records),
		}).Warn("enriquecimento: linhas descartadas por data inválida")
	}

	return rows, dropped
}

// parseDate tenta os layouts dia-primeiro e em seguida os genéricos.
func parseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}

	for _, layout := range dayFirstLayouts {
		if date, err := time.Parse(layout, raw); err == nil {
			return date, true
		}
	}

	for _, layout := range genericLayouts {
		if date, err := time.Parse(layout, raw); err == nil {
			return date, true
		}
	}

	return time.Time{}, false
}
