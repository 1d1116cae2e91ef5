package domain

import (
	"fmt"
	"strings"
)

const defaultCardType = "visa"

var cardTypes = map[string]string{
	"visa":             "visa",
	"american express": "amex",
	"mastercard":       "mc",
	"discover":         "disc",
	"jcb":              "jcb",
	"diners club":      "dc-cb",
}

// NormalizeBrand maps a processor card brand onto the host's card type code.
func NormalizeBrand(brand string) string {
	if t, ok := cardTypes[strings.ToLower(strings.TrimSpace(brand))]; ok {
		return t
	}
	return defaultCardType
}

// FormatExpiration renders yyyymm. Sources without an expiry (bank accounts) yield "".
func FormatExpiration(year, month int64) string {
	if year == 0 && month == 0 {
		return ""
	}
	return fmt.Sprintf("%04d%02d", year, month)
}

// AchAccountType reports the host account type for a bank account holder type.
func AchAccountType(holderType string) AccountType {
	if holderType == "company" {
		return AccountTypeBusinessChecking
	}
	return AccountTypeChecking
}
