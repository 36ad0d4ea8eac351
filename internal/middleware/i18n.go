// internal/middleware/i18n.go
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// LangCookie is where the language switcher persists its choice.
const LangCookie = "site_lang"

// I18nMiddleware resolves the request language: an explicit ?lang= wins,
// then the switcher cookie, then Accept-Language. Only en and vi are
// served; anything else falls back to English.
func I18nMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := normalizeLang(c.Query("lang"))

		if lang == "" {
			if cookie, err := c.Cookie(LangCookie); err == nil {
				lang = normalizeLang(cookie)
			}
		}

		if lang == "" {
			lang = fromAcceptLanguage(c.GetHeader("Accept-Language"))
		}

		if lang == "" {
			lang = "en"
		}

		c.Set("lang", lang)
		c.Next()
	}
}

func normalizeLang(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "en", "en-us", "en-gb":
		return "en"
	case "vi", "vi-vn":
		return "vi"
	}
	return ""
}

func fromAcceptLanguage(header string) string {
	// Handle values like "vi-VN,vi;q=0.9,en;q=0.8"
	for _, part := range strings.Split(header, ",") {
		tag := strings.TrimSpace(strings.Split(part, ";")[0])
		if lang := normalizeLang(tag); lang != "" {
			return lang
		}
	}
	return ""
}
