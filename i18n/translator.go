package i18n

// Translator retrieves localized messages for violation codes.
// data provides optional metadata to embed in the message (for example,
// "allowed" or "bound").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "unknown_property":
			return "未知のプロパティです"
		case "invalid_color":
			return "色の値が不正です"
		case "invalid_length":
			return "長さの値が不正です"
		case "invalid_enum":
			return "許可されていない値です"
		case "invalid_number":
			return "数値が不正です"
		case "out_of_range":
			return "範囲外の値です"
		case "too_many_layers":
			return "シャドウのレイヤー数が多すぎます"
		case "relation_cycle":
			return "リレーションが循環しています"
		}
	default: // "en"
		switch code {
		case "unknown_property":
			return "unknown property"
		case "invalid_color":
			return "invalid color value"
		case "invalid_length":
			return "invalid length value"
		case "invalid_enum":
			return "value not in allowed set"
		case "invalid_number":
			return "invalid numeric value"
		case "out_of_range":
			return "value out of range"
		case "too_many_layers":
			return "too many shadow layers"
		case "relation_cycle":
			return "relation cycle detected"
		}
	}
	return code
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
