// internal/handlers/auth.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/abccorp/corpsite-web/internal/i18n"
	"github.com/abccorp/corpsite-web/internal/middleware"
	"github.com/abccorp/corpsite-web/internal/models"
	"github.com/abccorp/corpsite-web/internal/session"
	"github.com/abccorp/corpsite-web/internal/upstream"
	"github.com/abccorp/corpsite-web/internal/utils"
)

// AuthHandler serves login/logout, the first-run setup flow, and the
// language switcher.
type AuthHandler struct {
	api     *upstream.Client
	session *session.Store
}

func NewAuthHandler(api *upstream.Client, sess *session.Store) *AuthHandler {
	return &AuthHandler{api: api, session: sess}
}

type setupForm struct {
	Email      string `form:"email" validate:"required"`
	Password   string `form:"password" validate:"required,min=8"`
	SetupToken string `form:"setup_token" validate:"required"`
}

// ShowLogin renders the token entry form, or skips straight to the admin
// area when a valid session is already loaded.
func (h *AuthHandler) ShowLogin(c *gin.Context) {
	if h.session.IsAdmin() {
		c.Redirect(http.StatusSeeOther, "/admin/products")
		return
	}

	lang := utils.GetLangFromContext(c)
	_, errMsg := flashFromQuery(c, lang)
	c.HTML(http.StatusOK, "login.html", gin.H{
		"Nav":   buildNav(c, h.session, fetchSettingsDoc(c, h.api)),
		"Error": errMsg,
	})
}

// Login verifies the pasted access token against the remote API and, on
// success, persists it as the active admin session.
func (h *AuthHandler) Login(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	token := c.PostForm("token")
	if token == "" {
		redirectError(c, "/login", i18n.T(lang, i18n.KeyAuthLoginFailed))
		return
	}

	admin, err := h.api.VerifyToken(c.Request.Context(), token)
	if err != nil || !admin {
		if err != nil {
			logrus.WithError(err).Warn("Token verification failed")
		}
		redirectError(c, "/login", i18n.T(lang, i18n.KeyAuthLoginFailed))
		return
	}

	if err := h.session.Login(token, admin); err != nil {
		logrus.WithError(err).Error("Failed to persist session token")
	}
	redirectNotice(c, "/admin/products", i18n.KeyAuthLoginSuccess)
}

// Logout drops the session and its persisted token.
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.session.Logout(); err != nil {
		logrus.WithError(err).Warn("Failed to clear persisted session token")
	}
	c.Redirect(http.StatusSeeOther, "/")
}

// ShowSetup renders the first-run admin creation form, but only while the
// remote API still reports the site as un-set-up.
func (h *AuthHandler) ShowSetup(c *gin.Context) {
	done, err := h.api.CheckSetup(c.Request.Context())
	if err != nil {
		logrus.WithError(err).Warn("Setup check failed")
	}
	if done {
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}

	lang := utils.GetLangFromContext(c)
	_, errMsg := flashFromQuery(c, lang)
	c.HTML(http.StatusOK, "setup.html", gin.H{
		"Nav":   buildNav(c, h.session, fetchSettingsDoc(c, h.api)),
		"Error": errMsg,
	})
}

// Setup creates the first admin account and logs the returned token in
// immediately.
func (h *AuthHandler) Setup(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var form setupForm
	if err := c.ShouldBind(&form); err != nil {
		redirectError(c, "/setup", i18n.T(lang, i18n.KeyValidationInvalid, "input"))
		return
	}
	if err := utils.ValidateStruct(form); err != nil {
		errs := utils.GetValidationErrors(err)
		if len(errs) > 0 {
			redirectError(c, "/setup", errs[0].Message)
			return
		}
		redirectError(c, "/setup", i18n.T(lang, i18n.KeyValidationInvalid, "input"))
		return
	}

	token, err := h.api.Setup(c.Request.Context(), form.Email, form.Password, form.SetupToken)
	if err != nil || token == "" {
		logrus.WithError(err).Warn("Initial setup failed")
		redirectError(c, "/setup", i18n.T(lang, i18n.KeyAuthSetupFailed))
		return
	}

	if err := h.session.Login(token, true); err != nil {
		logrus.WithError(err).Error("Failed to persist session token after setup")
	}
	redirectNotice(c, "/admin/settings", i18n.KeyAuthSetupDone)
}

// SwitchLanguage sets the language cookie and bounces back to the
// originating page.
func (h *AuthHandler) SwitchLanguage(c *gin.Context) {
	to := c.Query("to")
	if to != models.LangEnglish && to != models.LangVietnamese {
		to = models.LangEnglish
	}
	c.SetCookie(middleware.LangCookie, to, 365*24*3600, "/", "", false, false)
	c.Redirect(http.StatusSeeOther, safeReturnPath(c.Query("from")))
}
