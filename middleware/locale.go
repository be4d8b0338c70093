package middleware

import (
	"net/http"
	"strings"
	"time"

	"faculty_directory_go/config"
	"faculty_directory_go/services/i18n"

	"github.com/labstack/echo/v4"
)

// Locale middleware handles language detection and persistence.
// Priority:
// 1. Query param "lang" (sets cookie)
// 2. Cookie "lang"
// 3. Accept-Language header
// 4. Configured default
func Locale(cfg *config.Config) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			lang := ""

			if q := c.QueryParam("lang"); q != "" {
				lang = supportedOr(q, cfg.DefaultLang)
				SetLanguageCookie(c, cfg, lang)
			} else if cookie, err := c.Cookie("lang"); err == nil {
				lang = supportedOr(cookie.Value, "")
			}

			if lang == "" {
				lang = fromAcceptLanguage(c.Request().Header.Get("Accept-Language"), cfg.DefaultLang)
			}

			c.Set("locale", lang)
			c.SetRequest(c.Request().WithContext(i18n.WithLocale(c.Request().Context(), lang)))

			return next(c)
		}
	}
}

// SetLanguageCookie persists the chosen language for a year
func SetLanguageCookie(c echo.Context, cfg *config.Config, lang string) {
	cookie := new(http.Cookie)
	cookie.Name = "lang"
	cookie.Value = lang
	cookie.Expires = time.Now().Add(24 * 365 * time.Hour)
	cookie.Path = "/"
	cookie.HttpOnly = true
	cookie.SameSite = http.SameSiteLaxMode
	cookie.Secure = cfg.Environment == "production"
	c.SetCookie(cookie)
}

// GetLocale returns the current locale from context
func GetLocale(c echo.Context) string {
	if lang, ok := c.Get("locale").(string); ok && lang != "" {
		return lang
	}
	return "en"
}

func supportedOr(lang, fallback string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	for _, known := range i18n.Languages() {
		if lang == known {
			return lang
		}
	}
	return fallback
}

// fromAcceptLanguage picks the first supported primary tag in header order
func fromAcceptLanguage(header, fallback string) string {
	for _, part := range strings.Split(header, ",") {
		tag, _, _ := strings.Cut(strings.TrimSpace(part), ";")
		primary, _, _ := strings.Cut(tag, "-")
		if lang := supportedOr(primary, ""); lang != "" {
			return lang
		}
	}
	if fallback == "" {
		return "en"
	}
	return fallback
}
