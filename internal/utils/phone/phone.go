// Package phone normalizes customer phone numbers for M-Pesa STK push
// initiation. Safaricom's API wants the MSISDN as 254XXXXXXXXX.
package phone

import (
	"fmt"
	"strings"

	"github.com/ttacon/libphonenumber"
)

const kenyaRegion = "KE"

// NormalizeKenyan converts the accepted local formats (07XX..., 7XX...,
// 1XX..., 2547XX..., +2547XX...) into the canonical 254XXXXXXXXX form,
// 12 digits. The candidate is checked against the KE numbering plan before
// being accepted.
func NormalizeKenyan(raw string) (string, error) {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '(', ')':
			return -1
		}
		return r
	}, raw)

	if cleaned == "" {
		return "", fmt.Errorf("phone number is required")
	}

	var candidate string
	switch {
	case strings.HasPrefix(cleaned, "+254"):
		candidate = cleaned[1:]
	case strings.HasPrefix(cleaned, "254"):
		candidate = cleaned
	case strings.HasPrefix(cleaned, "0") && len(cleaned) == 10:
		candidate = "254" + cleaned[1:]
	case (strings.HasPrefix(cleaned, "7") || strings.HasPrefix(cleaned, "1")) && len(cleaned) == 9:
		candidate = "254" + cleaned
	default:
		return "", fmt.Errorf("unrecognized phone number format: %s", raw)
	}

	if len(candidate) != 12 {
		return "", fmt.Errorf("phone number must normalize to 12 digits, got %q", candidate)
	}
	for _, r := range candidate {
		if r < '0' || r > '9' {
			return "", fmt.Errorf("phone number %q contains non-digit characters", raw)
		}
	}

	parsed, err := libphonenumber.Parse("+"+candidate, kenyaRegion)
	if err != nil {
		return "", fmt.Errorf("invalid phone number %q: %w", raw, err)
	}
	if !libphonenumber.IsPossibleNumber(parsed) {
		return "", fmt.Errorf("phone number %q is not a possible Kenyan number", raw)
	}

	return candidate, nil
}
