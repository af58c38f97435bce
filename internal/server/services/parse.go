package services

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// ParseDecimalES parses an amount written with Spanish separators
// ("1.234,56"). Dots count as thousand separators only when a comma is
// present, otherwise the value is read as-is. Empty, "N/A" and unparseable
// input all yield zero: the processor sends free text here and a zero
// amount is the agreed fallback.
func ParseDecimalES(s string) float64 {
	if s == "" || strings.ToUpper(strings.TrimSpace(s)) == "N/A" {
		return 0
	}
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}

// ParseDateDDMMYYYY parses a "31/12/2025"-style date. Empty or malformed
// input yields nil rather than an error; invoice dates are best effort.
func ParseDateDDMMYYYY(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	t, err := time.Parse("02/01/2006", s)
	if err != nil {
		return nil
	}
	return &t
}

// ParseTipoCambio parses an exchange rate. An absent value means the
// invoice is already in euros (rate 1.0); explicit not-available markers
// mean the rate is unknown (nil); anything unparseable falls back to 1.0.
func ParseTipoCambio(s string) *float64 {
	if s == "" {
		one := 1.0
		return &one
	}
	up := strings.ToUpper(strings.TrimSpace(s))
	switch up {
	case "N/A", "NA", "N.A.", "NONE", "-":
		return nil
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(up, ",", "."), 64)
	if err != nil {
		v = 1.0
	}
	return &v
}

// ImporteToEUR converts a local-currency amount using the raw exchange-rate
// string from the processor payload. Unknown, unparseable or zero rates
// yield nil. The result is rounded to cents.
func ImporteToEUR(importe float64, tipoCambio string) *float64 {
	up := strings.ToUpper(strings.TrimSpace(tipoCambio))
	switch up {
	case "", "N/A", "NA", "-":
		return nil
	}
	tc, err := strconv.ParseFloat(strings.ReplaceAll(up, ",", "."), 64)
	if err != nil || tc == 0 {
		return nil
	}
	v := math.Round(importe*tc*100) / 100
	return &v
}

// truncate caps s at n bytes; processor bodies can be arbitrarily large and
// only the head is worth persisting.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
