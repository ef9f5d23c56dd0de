package i18n

// Translator retrieves localized messages for Issue codes. Specifics such as
// the offending value travel in the Issue's Hint and Params, not here.
type Translator interface {
	Message(code string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{}

func (dictTranslator) Message(code string) string {
	switch code {
	case "unknown_schema":
		return "no schema registered for this type/format_version pair"
	case "invalid_type":
		return "invalid type"
	case "required":
		return "required property missing"
	case "unknown_key":
		return "unknown key"
	case "too_small":
		return "too small"
	case "too_big":
		return "too big"
	case "too_short":
		return "too short"
	case "too_long":
		return "too long"
	case "pattern":
		return "value does not match the required pattern"
	case "invalid_enum":
		return "value is not one of the allowed literals"
	case "invalid_format":
		return "invalid format"
	case "parse_error":
		return "parse error"
	case "cross_field":
		return "cross-field rule violated"
	case "duplicate_value":
		return "duplicate value"
	}
	return code
}

var currentTranslator Translator = dictTranslator{}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version). Passing nil restores the built-in dictionary.
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string) string { return currentTranslator.Message(code) }
