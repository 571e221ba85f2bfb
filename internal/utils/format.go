package utils

import (
	"fmt"
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.AmericanEnglish)

var symbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"INR": "₹",
}

// ValidateCurrency reports whether code is a known ISO 4217 currency.
func ValidateCurrency(code string) error {
	if _, err := currency.ParseISO(code); err != nil {
		return fmt.Errorf("unknown currency %q: %w", code, err)
	}
	return nil
}

// FormatCurrency renders amount with digit grouping and two decimals,
// prefixed by the currency's symbol ("$1,234.50"). Currencies without a
// known symbol use their code ("CHF 10.00").
func FormatCurrency(amount float64, code string) string {
	code = strings.ToUpper(code)
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	num := printer.Sprintf("%.2f", amount)
	if sym, ok := symbols[code]; ok {
		return sign + sym + num
	}
	return sign + code + " " + num
}
