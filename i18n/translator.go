package i18n

import "fmt"

// Translator retrieves human-readable messages for Issue codes.
// params provides optional structured data to embed in the message
// (for example "min", "max", or "got").
type Translator interface {
	Message(code string, params map[string]any) string
}

// catalogTranslator is the built-in English Translator.
type catalogTranslator struct{}

func (catalogTranslator) Message(code string, params map[string]any) string {
	base := ""
	switch code {
	case "invalid_type":
		base = "invalid type"
	case "required":
		base = "required field missing"
	case "unknown_key":
		base = "unknown key"
	case "too_small":
		base = withBound("value too small", "min", params)
	case "too_big":
		base = withBound("value too big", "max", params)
	case "too_short":
		base = withBound("too short", "min", params)
	case "too_long":
		base = withBound("too long", "max", params)
	case "no_union_match":
		base = "no union member matched"
	case "parse_error":
		base = "parse error"
	case "custom":
		base = "validation failed"
	default:
		base = code
	}
	return base
}

func withBound(base, key string, params map[string]any) string {
	if params == nil {
		return base
	}
	v, ok := params[key]
	if !ok {
		return base
	}
	return fmt.Sprintf("%s (%s %v)", base, key, v)
}

var current Translator = catalogTranslator{}

// SetTranslator replaces the Translator implementation. Passing nil restores
// the built-in English catalog.
func SetTranslator(tr Translator) {
	if tr == nil {
		current = catalogTranslator{}
		return
	}
	current = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, params map[string]any) string { return current.Message(code, params) }
