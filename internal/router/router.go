// internal/router/router.go
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/abccorp/corpsite-web/internal/catalog"
	"github.com/abccorp/corpsite-web/internal/config"
	"github.com/abccorp/corpsite-web/internal/handlers"
	"github.com/abccorp/corpsite-web/internal/middleware"
	"github.com/abccorp/corpsite-web/internal/session"
	"github.com/abccorp/corpsite-web/internal/settings"
	"github.com/abccorp/corpsite-web/internal/upstream"
)

// Initialize wires stores, handlers, and middleware into the Gin engine.
func Initialize(cfg *config.Config, api *upstream.Client, sess *session.Store) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	store := catalog.NewStore(api)
	pipeline := catalog.NewPipeline(api, sess, store)
	editor := settings.NewEditor(api, sess)

	siteHandler := handlers.NewSiteHandler(api, sess)
	productHandler := handlers.NewProductHandler(api, sess, store, pipeline)
	settingsHandler := handlers.NewSettingsHandler(sess, editor)
	authHandler := handlers.NewAuthHandler(api, sess)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.Web.AllowOrigins))
	r.Use(middleware.I18nMiddleware())
	r.Use(middleware.GeneralRateLimit())

	if cfg.Web.TemplatesGlob != "" {
		r.LoadHTMLGlob(cfg.Web.TemplatesGlob)
	}
	if cfg.Web.StaticDir != "" {
		r.Static("/static", cfg.Web.StaticDir)
	}

	r.GET("/health", siteHandler.Health)
	r.GET("/", siteHandler.Home)
	r.GET("/products", productHandler.ListProducts)
	r.GET("/lang", authHandler.SwitchLanguage)

	auth := r.Group("/")
	auth.Use(middleware.AuthRateLimit())
	{
		auth.GET("/login", authHandler.ShowLogin)
		auth.POST("/login", authHandler.Login)
		auth.POST("/logout", authHandler.Logout)
		auth.GET("/setup", authHandler.ShowSetup)
		auth.POST("/setup", authHandler.Setup)
	}

	admin := r.Group("/admin")
	admin.Use(middleware.AdminRequired(sess))
	{
		admin.GET("/products", productHandler.AdminProducts)
		admin.GET("/settings", settingsHandler.ShowSettings)

		mutations := admin.Group("/")
		mutations.Use(middleware.MutationRateLimit())
		{
			mutations.POST("/products", productHandler.CreateProduct)
			mutations.POST("/products/:id/update", productHandler.UpdateProduct)
			mutations.POST("/products/:id/delete", productHandler.DeleteProduct)
			mutations.POST("/products/:id/select", productHandler.ToggleSelect)
			mutations.POST("/products/selection/clear", productHandler.ClearSelection)
			mutations.POST("/products/bulk-delete", productHandler.BulkDelete)
			mutations.POST("/settings", settingsHandler.SaveSettings)
		}
	}

	return r
}
