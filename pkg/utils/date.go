package utils

import (
	"strings"
	"time"
)

// ParseDate lê uma data YYYY-MM-DD; vazio devolve a data zero
func ParseDate(dateStr string) (*time.Time, error) {
	var date time.Time

	if dateStr = strings.TrimSpace(dateStr); dateStr != "" {
		incomingDate, err := time.Parse(time.DateOnly, dateStr)
		if err != nil {
			return nil, err
		}

		date = incomingDate
	}

	return &date, nil
}

// FormatDate formata no mesmo layout aceito por ParseDate e pela plataforma (time_range)
func FormatDate(t time.Time) string {
	return t.Format(time.DateOnly)
}
