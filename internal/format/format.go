// Package format holds the pt-BR presentation helpers shared by the PDF
// generator, the report builder and the API client. Monetary values travel
// through the system as int64 centavos; only here do they become strings.
package format

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// ISODate is the wire format for every calendar date: no time component,
// no timezone shift.
const ISODate = "2006-01-02"

var printer = message.NewPrinter(language.BrazilianPortuguese)

// FormatarValor renders centavos as pt-BR currency: 12345 → "R$ 123,45",
// 123456789 → "R$ 1.234.567,89".
func FormatarValor(centavos int64) string {
	d := number.Decimal(float64(centavos)/100,
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2))
	return printer.Sprintf("R$ %v", d)
}

// FormatarData renders a calendar date the way pt-BR users read it.
func FormatarData(data time.Time) string {
	return data.Format("02/01/2006")
}

// FormatarDataISO serializes a calendar date for transmission.
func FormatarDataISO(data time.Time) string {
	return data.Format(ISODate)
}

// ParseDataISO parses an ISO calendar date in UTC so the same calendar day
// comes back out regardless of the host timezone.
func ParseDataISO(s string) (time.Time, error) {
	return time.ParseInLocation(ISODate, s, time.UTC)
}
