// internal/handlers/settings.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/abccorp/corpsite-web/internal/i18n"
	"github.com/abccorp/corpsite-web/internal/models"
	"github.com/abccorp/corpsite-web/internal/session"
	"github.com/abccorp/corpsite-web/internal/settings"
	"github.com/abccorp/corpsite-web/internal/upstream"
	"github.com/abccorp/corpsite-web/internal/utils"
)

// settingsTextPaths are the localized leaves the admin form edits, one
// bilingual input pair per path.
var settingsTextPaths = []string{
	"landingPageTitle",
	"landingPageDescription",
	"sections.contact.address",
	"sections.contact.phone",
	"sections.contact.email",
	"sections.workingHours.weekdays",
	"sections.workingHours.saturday",
	"sections.workingHours.sunday",
	"notification.text",
}

// SettingsHandler serves the bilingual site-settings editor.
type SettingsHandler struct {
	session *session.Store
	editor  *settings.Editor
}

func NewSettingsHandler(sess *session.Store, editor *settings.Editor) *SettingsHandler {
	return &SettingsHandler{session: sess, editor: editor}
}

// ShowSettings loads the current document and renders the editor. A load
// failure still renders, over whatever state the editor last held.
func (h *SettingsHandler) ShowSettings(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	notice, errMsg := flashFromQuery(c, lang)

	if err := h.editor.Load(c.Request.Context()); err != nil {
		logrus.WithError(err).Warn("Settings load failed")
		if errMsg == "" {
			errMsg = i18n.T(lang, i18n.KeySettingsLoadFailed)
		}
	}

	doc := h.editor.Document()
	pendingLogo, pendingLanding := h.editor.PendingFiles()

	c.HTML(http.StatusOK, "admin_settings.html", gin.H{
		"Nav":            buildNav(c, h.session, doc),
		"Doc":            doc,
		"Languages":      models.SupportedLanguages,
		"PendingLogo":    pendingLogo,
		"PendingLanding": pendingLanding,
		"Busy":           h.editor.Busy(),
		"Notice":         notice,
		"Error":          errMsg,
	})
}

// SaveSettings applies the posted form field by field, stages any newly
// chosen images, and submits the whole document.
func (h *SettingsHandler) SaveSettings(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	for _, path := range settingsTextPaths {
		for _, l := range models.SupportedLanguages {
			field := path + "." + l
			if _, ok := c.GetPostForm(field); !ok {
				continue
			}
			if err := h.editor.SetField(field, c.PostForm(field)); err != nil {
				logrus.WithError(err).WithField("field", field).Warn("Settings field rejected")
			}
		}
	}
	if err := h.editor.SetField("notification.isActive", c.PostForm("notification.isActive") == "on"); err != nil {
		logrus.WithError(err).Warn("Notification flag rejected")
	}

	logo, err := readFormFile(c, "logo")
	if err != nil {
		logrus.WithError(err).Warn("Unreadable logo upload")
		redirectError(c, "/admin/settings", i18n.T(lang, i18n.KeyValidationInvalid, "logo file"))
		return
	}
	if logo != nil {
		if err := h.editor.AttachLogo(*logo); err != nil {
			// Type/size violations block locally with their specific
			// message; nothing was sent.
			redirectError(c, "/admin/settings", err.Error())
			return
		}
	}

	landing, err := readFormFile(c, "landingPageImage")
	if err != nil {
		logrus.WithError(err).Warn("Unreadable landing image upload")
		redirectError(c, "/admin/settings", i18n.T(lang, i18n.KeyValidationInvalid, "image file"))
		return
	}
	if landing != nil {
		h.editor.AttachLandingImage(*landing)
	}

	if err := h.editor.Submit(c.Request.Context()); err != nil {
		redirectError(c, "/admin/settings", settingsMessage(lang, err))
		return
	}
	redirectNotice(c, "/admin/settings", i18n.KeySettingsUpdated)
}

func settingsMessage(lang string, err error) string {
	var reqErr *upstream.RequestError

	switch {
	case errors.Is(err, session.ErrNotAuthenticated):
		return i18n.T(lang, i18n.KeyAdminAccessDenied)
	case errors.Is(err, settings.ErrBusy):
		return i18n.T(lang, i18n.KeyAdminBusy)
	case errors.As(err, &reqErr):
		return reqErr.DisplayMessage(i18n.T(lang, i18n.KeySettingsUpdateFailed))
	default:
		return i18n.T(lang, i18n.KeySettingsUpdateFailed)
	}
}
