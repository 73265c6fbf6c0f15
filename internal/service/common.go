package service

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"
)

func validateDate(date string) (string, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		return time.Now().Format("2006-01-02"), nil
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return "", fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", date)
	}
	return date, nil
}

func validateNumbers(numbers []float64) error {
	for _, n := range numbers {
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return fmt.Errorf("numbers must be finite, got %v", n)
		}
	}
	return nil
}

func encodeNumbers(numbers []float64) (string, error) {
	raw, err := json.Marshal(numbers)
	if err != nil {
		return "", fmt.Errorf("encode numbers: %w", err)
	}
	return string(raw), nil
}

func decodeNumbers(raw string) ([]float64, error) {
	var numbers []float64
	if err := json.Unmarshal([]byte(raw), &numbers); err != nil {
		return nil, fmt.Errorf("decode numbers: %w", err)
	}
	return numbers, nil
}
