package middleware

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"

	"github.com/lessensdelharmonie/harmonie/internal/api/constants"
	"github.com/lessensdelharmonie/harmonie/internal/api/validation"
)

// Locale negotiates the language of field messages from Accept-Language
func Locale() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(constants.ContextKeyLocale, validation.MatchLocale(c.GetHeader("Accept-Language")))
		c.Writer.Header().Add("Vary", "Accept-Language")
		c.Next()
	}
}

// LocaleFrom returns the negotiated locale, or the default when Locale did not run
func LocaleFrom(c *gin.Context) language.Tag {
	if v, ok := c.Get(constants.ContextKeyLocale); ok {
		if tag, ok := v.(language.Tag); ok {
			return tag
		}
	}
	return validation.MatchLocale(c.GetHeader("Accept-Language"))
}
