package domain

import (
	"errors"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
)

// zeroDecimalCurrencies are charged in whole units by the processor.
var zeroDecimalCurrencies = map[string]struct{}{
	"BIF": {}, "CLP": {}, "DJF": {}, "GNF": {}, "JPY": {},
	"KMF": {}, "KRW": {}, "MGA": {}, "PYG": {}, "RWF": {},
	"VND": {}, "VUV": {}, "XAF": {}, "XOF": {}, "XPF": {},
}

var hundred = decimal.NewFromInt(100)

func IsZeroDecimalCurrency(currency string) bool {
	_, ok := zeroDecimalCurrencies[strings.ToUpper(currency)]
	return ok
}

// ToMinorUnits converts a decimal amount into the processor's integer representation.
// Unknown currencies are scaled by 100. Rounding is half away from zero.
func ToMinorUnits(amount decimal.Decimal, currency string) int64 {
	if !IsZeroDecimalCurrency(currency) {
		amount = amount.Mul(hundred)
	}
	return amount.Round(0).IntPart()
}

// MinorUnitsFromString is ToMinorUnits for raw host input. Input that is not a number
// is never scaled: its leading integer part is used, or zero when there is none.
func MinorUnitsFromString(raw, currency string) int64 {
	raw = strings.TrimSpace(raw)
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return leadingInteger(raw)
	}
	return ToMinorUnits(amount, currency)
}

// HostAmount is an amount exactly as the host sent it, from a JSON number or string.
// It is converted only when the processor request is built.
type HostAmount string

var errAmountType = errors.New("amount must be a number or a string")

func (a *HostAmount) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))
	switch {
	case raw == "null":
		return nil
	case strings.HasPrefix(raw, `"`):
		var s string
		if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(b, &s); err != nil {
			return err
		}
		*a = HostAmount(s)
	case strings.HasPrefix(raw, "{"), strings.HasPrefix(raw, "["):
		return errAmountType
	default:
		*a = HostAmount(raw)
	}
	return nil
}

// MinorUnits converts the amount with MinorUnitsFromString.
func (a HostAmount) MinorUnits(currency string) int64 {
	return MinorUnitsFromString(string(a), currency)
}

func leadingInteger(s string) int64 {
	var (
		n   int64
		neg bool
		i   int
	)
	if i < len(s) && (s[i] == '-' || s[i] == '+') {
		neg = s[i] == '-'
		i++
	}
	for ; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		n = n*10 + int64(s[i]-'0')
	}
	if neg {
		return -n
	}
	return n
}
