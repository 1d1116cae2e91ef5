package calllog

import (
	"bytes"
	"fmt"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// maskedFields are masked wherever they appear, at any depth. Matching is exact and case-sensitive.
var maskedFields = map[string]struct{}{
	"number":    {},
	"exp_month": {},
	"exp_year":  {},
	"cvc":       {},
}

// Mask returns a generic copy of v (maps, slices, scalars) with sensitive fields masked.
func Mask(v any) (any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}

	var generic any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&generic); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}

	return maskRecursive(generic), nil
}

// MaskJSON masks v and renders it as a JSON document.
func MaskJSON(v any) (string, error) {
	masked, err := Mask(v)
	if err != nil {
		return "", err
	}
	out, err := json.Marshal(masked)
	if err != nil {
		return "", fmt.Errorf("marshal masked payload: %w", err)
	}
	return string(out), nil
}

func maskRecursive(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for key, val := range t {
			if _, ok := maskedFields[key]; ok {
				t[key] = maskValue(val)
				continue
			}
			t[key] = maskRecursive(val)
		}
		return t
	case []any:
		for i, val := range t {
			t[i] = maskRecursive(val)
		}
		return t
	default:
		return v
	}
}

func maskValue(v any) any {
	switch t := v.(type) {
	case nil:
		return nil
	case map[string]any, []any:
		return "xxxx"
	default:
		s := fmt.Sprint(t)
		if s == "" {
			return s
		}
		return strings.Repeat("x", len(s))
	}
}
