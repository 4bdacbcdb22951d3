package utils

import "time"

// ParseDate interpreta uma data AAAA-MM-DD de query string. String vazia
// devolve nil, filtro ausente.
func ParseDate(dateStr string) (*time.Time, error) {
	if dateStr == "" {
		return nil, nil
	}

	date, err := time.Parse(time.DateOnly, dateStr)
	if err != nil {
		return nil, err
	}

	return &date, nil
}
