package translate

// Language pairs a two-letter code with the name shown in dropdowns and
// spelled out in example-generation prompts.
type Language struct {
	Code string
	Name string
}

// Languages returns the selectable language set.
func Languages() []Language {
	return []Language{
		{Code: "de", Name: "German"},
		{Code: "en", Name: "English"},
		{Code: "es", Name: "Spanish"},
		{Code: "fr", Name: "French"},
		{Code: "it", Name: "Italian"},
		{Code: "nl", Name: "Dutch"},
		{Code: "pl", Name: "Polish"},
		{Code: "pt", Name: "Portuguese"},
		{Code: "ru", Name: "Russian"},
		{Code: "ja", Name: "Japanese"},
	}
}

// LanguageName resolves a two-letter code to its full name, falling back to
// the code itself for anything unknown.
func LanguageName(code string) string {
	for _, l := range Languages() {
		if l.Code == code {
			return l.Name
		}
	}
	return code
}
