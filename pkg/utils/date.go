package utils

import "time"

// ParseDate interpreta parâmetros de data no formato ISO vindos da query
// string. Uma string vazia resulta em data zero, tratada como "sem filtro"
// pelos chamadores.
func ParseDate(dateStr string) (*time.Time, error) {
	var date time.Time

	if dateStr != "" {
		incomingDate, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			return nil, err
		}

		date = incomingDate
	}

	return &date, nil
}
