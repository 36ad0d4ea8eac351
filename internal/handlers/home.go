// internal/handlers/home.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abccorp/corpsite-web/internal/session"
	"github.com/abccorp/corpsite-web/internal/upstream"
	"github.com/abccorp/corpsite-web/internal/utils"
)

// SiteHandler serves the public content pages rendered straight from the
// remote settings document.
type SiteHandler struct {
	api     *upstream.Client
	session *session.Store
}

func NewSiteHandler(api *upstream.Client, sess *session.Store) *SiteHandler {
	return &SiteHandler{api: api, session: sess}
}

// Home renders the landing page: hero image, bilingual title and
// description, contact block, and working hours.
func (h *SiteHandler) Home(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	doc := fetchSettingsDoc(c, h.api)

	c.HTML(http.StatusOK, "home.html", gin.H{
		"Nav":         buildNav(c, h.session, doc),
		"Logo":        doc.Logo,
		"HeroImage":   doc.LandingPageImage,
		"Title":       doc.LandingPageTitle.Get(lang),
		"Description": doc.LandingPageDescription.Get(lang),
		"Contact":     doc.Sections.Contact,
		"Hours":       doc.Sections.WorkingHours,
	})
}

// Health is the liveness probe.
func (h *SiteHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
