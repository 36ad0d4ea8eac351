// internal/handlers/pages.go
package handlers

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/abccorp/corpsite-web/internal/i18n"
	"github.com/abccorp/corpsite-web/internal/models"
	"github.com/abccorp/corpsite-web/internal/session"
	"github.com/abccorp/corpsite-web/internal/settings"
	"github.com/abccorp/corpsite-web/internal/upstream"
	"github.com/abccorp/corpsite-web/internal/utils"
)

// Banner feeds the notification bar partial. Duration drives the marquee
// CSS variable.
type Banner struct {
	Active      bool
	Text        string
	DurationSec float64
	Height      int
}

// Nav is the chrome every page template receives.
type Nav struct {
	Lang    string
	IsAdmin bool
	Banner  Banner
	Labels  map[string]string
	Path    string
}

func buildNav(c *gin.Context, sess *session.Store, doc models.Settings) Nav {
	lang := utils.GetLangFromContext(c)

	nav := Nav{
		Lang:    lang,
		IsAdmin: sess.IsAdmin(),
		Path:    c.Request.URL.Path,
		Labels: map[string]string{
			"home":      i18n.T(lang, i18n.KeyNavHome),
			"products":  i18n.T(lang, i18n.KeyNavProducts),
			"showcases": i18n.T(lang, i18n.KeyNavShowcases),
			"login":     i18n.T(lang, i18n.KeyNavLogin),
			"logout":    i18n.T(lang, i18n.KeyNavLogout),
			"admin":     i18n.T(lang, i18n.KeyNavAdmin),
		},
	}

	if doc.Notification.IsActive {
		text := doc.Notification.Text.Get(lang)
		nav.Banner = Banner{
			Active:      true,
			Text:        text,
			DurationSec: settings.MarqueeDuration(text, isMobile(c)).Seconds(),
			Height:      settings.BannerHeight,
		}
	}

	return nav
}

// fetchSettingsDoc loads the settings document for page rendering.
// Failures are silent beyond a log line: the page falls back to defaults,
// the way the banner quietly stays hidden when the API is unreachable.
func fetchSettingsDoc(c *gin.Context, api *upstream.Client) models.Settings {
	doc := models.DefaultSettings()

	raw, err := api.FetchSettings(c.Request.Context())
	if err != nil {
		logrus.WithError(err).Warn("Failed to fetch settings for page render")
		return doc
	}
	if err := doc.Merge(raw); err != nil {
		logrus.WithError(err).Warn("Failed to decode settings for page render")
		return models.DefaultSettings()
	}
	return doc
}

func isMobile(c *gin.Context) bool {
	ua := strings.ToLower(c.GetHeader("User-Agent"))
	return strings.Contains(ua, "mobile") || strings.Contains(ua, "android")
}

// safeReturnPath keeps redirects on-site.
func safeReturnPath(path string) string {
	if path == "" || !strings.HasPrefix(path, "/") || strings.HasPrefix(path, "//") {
		return "/"
	}
	return path
}

// flashFromQuery reads the post-redirect feedback carried in the query
// string: "notice" holds a translation key, "error" an already-rendered
// message (server-supplied text must not be re-translated).
func flashFromQuery(c *gin.Context, lang string) (notice, errMsg string) {
	if key := c.Query("notice"); key != "" {
		notice = i18n.T(lang, key)
	}
	return notice, c.Query("error")
}

// redirectNotice and redirectError implement the POST/redirect/GET flash
// convention used by every admin form handler.
func redirectNotice(c *gin.Context, path, key string) {
	c.Redirect(http.StatusSeeOther, path+"?notice="+url.QueryEscape(key))
}

func redirectError(c *gin.Context, path, message string) {
	c.Redirect(http.StatusSeeOther, path+"?error="+url.QueryEscape(message))
}
