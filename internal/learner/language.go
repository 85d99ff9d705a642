package learner

var languageCodes = map[string]string{
	"English":   "en",
	"Hindi":     "hi",
	"Tamil":     "ta",
	"Malayalam": "ml",
}

// Languages lists the supported content languages in display order.
var Languages = []string{"English", "Hindi", "Tamil", "Malayalam"}

// LanguageCode maps a display language to the code sent to the content
// generator. Unknown names map to "en".
func LanguageCode(name string) string {
	if c, ok := languageCodes[name]; ok {
		return c
	}
	return "en"
}

// LanguageName is the inverse of LanguageCode. Unknown codes map to
// "English".
func LanguageName(code string) string {
	for name, c := range languageCodes {
		if c == code {
			return name
		}
	}
	return DefaultLanguage
}
