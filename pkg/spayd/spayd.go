// Package spayd builds Short Payment Descriptor strings, the
// payment-request mini-language Czech banking apps understand when rendered
// as a QR code.
package spayd

import (
	"errors"
	"fmt"
	"strings"
)

const version = "SPD*1.0"

var ErrMissingAccount = errors.New("spayd: account identifier is required")

// Payment describes one payment request. Amount must already be rounded to
// the currency's minor unit.
type Payment struct {
	Account        string  // IBAN, optionally with a +BIC suffix
	Amount         float64 // currency units, two decimals
	Currency       string  // ISO 4217 code, e.g. CZK
	Message        string  // free-text message for the recipient
	VariableSymbol string  // Czech domestic payment reference
}

// Encode serializes the payment into the SPD*1.0 wire form. The '*' field
// separator is stripped from all values.
func (p Payment) Encode() (string, error) {
	if strings.TrimSpace(p.Account) == "" {
		return "", ErrMissingAccount
	}
	fields := []string{version, "ACC:" + sanitize(p.Account)}
	if p.Amount > 0 {
		fields = append(fields, fmt.Sprintf("AM:%.2f", p.Amount))
	}
	if p.Currency != "" {
		fields = append(fields, "CC:"+sanitize(strings.ToUpper(p.Currency)))
	}
	if p.Message != "" {
		fields = append(fields, "MSG:"+sanitize(p.Message))
	}
	if p.VariableSymbol != "" {
		fields = append(fields, "X-VS:"+sanitize(p.VariableSymbol))
	}
	return strings.Join(fields, "*"), nil
}

func sanitize(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), "*", "")
}
