package validation

import (
	"fmt"

	"golang.org/x/text/language"
)

// Locales the form messages are available in, default first
var supportedLocales = []language.Tag{
	language.English,
	language.French,
}

var localeMatcher = language.NewMatcher(supportedLocales)

// MatchLocale picks the supported locale that best fits an Accept-Language
// header. Empty or unparseable headers get the default locale.
func MatchLocale(acceptLanguage string) language.Tag {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return DefaultLocale()
	}
	_, idx, _ := localeMatcher.Match(tags...)
	return supportedLocales[idx]
}

// DefaultLocale is used when the caller expresses no preference
func DefaultLocale() language.Tag {
	return supportedLocales[0]
}

type messageCatalog struct {
	required    string
	invalidType string
	fallback    string
	kinds       map[string]string
	rules       map[string]string
}

var catalogs = map[string]*messageCatalog{
	"en": {
		required:    "Required",
		invalidType: "Expected string, received %s",
		fallback:    "Invalid value",
		kinds:       map[string]string{},
		rules: map[string]string{
			"name.min":    "Name must be at least 2 characters",
			"email.email": "Invalid email format",
			"service.min": "Service selection is required",
			"message.min": "Message must be at least 10 characters",
		},
	},
	"fr": {
		required:    "Ce champ est requis",
		invalidType: "Texte attendu, reçu : %s",
		fallback:    "Valeur invalide",
		kinds: map[string]string{
			"string":  "texte",
			"number":  "nombre",
			"boolean": "booléen",
			"object":  "objet",
			"array":   "tableau",
		},
		rules: map[string]string{
			"name.min":    "Le nom doit contenir au moins 2 caractères",
			"email.email": "Email invalide",
			"service.min": "Veuillez sélectionner un service",
			"message.min": "Le message doit contenir au moins 10 caractères",
		},
	},
}

func catalogFor(locale language.Tag) *messageCatalog {
	base, _ := locale.Base()
	if c, ok := catalogs[base.String()]; ok {
		return c
	}
	return catalogs["en"]
}

func (c *messageCatalog) typeMismatch(kind string) string {
	if translated, ok := c.kinds[kind]; ok {
		kind = translated
	}
	return fmt.Sprintf(c.invalidType, kind)
}

func (c *messageCatalog) rule(field, tag string) string {
	if msg, ok := c.rules[field+"."+tag]; ok {
		return msg
	}
	return c.fallback
}
