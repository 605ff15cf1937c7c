package payments

import (
	"strings"
)

// Input formatters mirror the as-you-type behavior of the payment form.
// Each is idempotent: formatting already-formatted input returns it unchanged.

// digitsOnly keeps ASCII digits only. Other numeric scripts are stripped
// like any non-digit, so downstream length checks count real card digits.
func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatCardNumber strips non-digits and groups the result in blocks of
// four separated by single spaces.
func FormatCardNumber(input string) string {
	digits := digitsOnly(input)
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && i%4 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// FormatExpiry strips non-digits, caps at four digits and inserts the
// MM/YY separator once two digits are present. Two raw digits already
// yield the trailing slash ("12" -> "12/").
func FormatExpiry(input string) string {
	digits := digitsOnly(input)
	if len(digits) > 4 {
		digits = digits[:4]
	}
	if len(digits) < 2 {
		return digits
	}
	return digits[:2] + "/" + digits[2:]
}

// FormatCVV strips non-digits and caps at three digits.
func FormatCVV(input string) string {
	digits := digitsOnly(input)
	if len(digits) > 3 {
		digits = digits[:3]
	}
	return digits
}

// FormatCardholderName uppercases the name as typed.
func FormatCardholderName(input string) string {
	return strings.ToUpper(input)
}

// CardDetails holds the formatted card fields as stored in the wizard.
type CardDetails struct {
	Number     string `json:"number"`
	Expiry     string `json:"expiry"`
	CVV        string `json:"cvv"`
	HolderName string `json:"holder_name"`
}

// Normalize applies the input formatters to every field.
func (d CardDetails) Normalize() CardDetails {
	return CardDetails{
		Number:     FormatCardNumber(d.Number),
		Expiry:     FormatExpiry(d.Expiry),
		CVV:        FormatCVV(d.CVV),
		HolderName: FormatCardholderName(d.HolderName),
	}
}

// Complete reports whether the card fields pass the submission guard:
// 16 card digits, a 5-character MM/YY expiry, a 3-digit CVV and a
// non-empty holder name.
func (d CardDetails) Complete() bool {
	return len(digitsOnly(d.Number)) == 16 &&
		len(d.Expiry) == 5 &&
		len(d.CVV) == 3 &&
		strings.TrimSpace(d.HolderName) != ""
}
