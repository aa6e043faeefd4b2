package handlers

import (
	"net/http"

	"campaign-site/pkg/config"
	"campaign-site/pkg/services"
	"campaign-site/static"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

// Handler serves the blog and the location preview.
type Handler struct {
	Catalog    *services.Catalog
	Subscriber services.Subscriber
	Map        services.MapOptions
}

func NewHandler(catalog *services.Catalog, sub services.Subscriber, mapOpts services.MapOptions) *Handler {
	return &Handler{Catalog: catalog, Subscriber: sub, Map: mapOpts}
}

// SessionMiddleware keeps the blog view state in a signed cookie.
func SessionMiddleware(secret string) gin.HandlerFunc {
	store := cookie.NewStore([]byte(secret))
	store.Options(sessions.Options{Path: "/", HttpOnly: true, SameSite: http.SameSiteLaxMode})
	return sessions.Sessions(sessionName, store)
}

// Routes registers every endpoint. subscribeLimit guards the signup
// endpoints and may be nil.
func (h *Handler) Routes(r *gin.Engine, subscribeLimit gin.HandlerFunc) {
	if subscribeLimit == nil {
		subscribeLimit = func(c *gin.Context) { c.Next() }
	}

	r.GET("/", func(c *gin.Context) { c.Redirect(http.StatusFound, "/blog") })
	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.StaticFS("/images", static.Images())

	blog := r.Group("/blog")
	{
		blog.GET("", h.BlogPage)
		blog.GET("/articles/:id", h.SelectArticle)
		blog.POST("/close", h.ClearSelection)
		blog.POST("/subscribe", subscribeLimit, h.SubscribeForm)
		blog.GET("/feed", h.Feed)
	}

	r.POST("/location-preview", h.LocationPreviewPage)

	api := r.Group("/api")
	{
		api.GET("/articles", h.ListArticles)
		api.GET("/articles/featured", h.GetFeatured)
		api.GET("/articles/:id", h.GetArticle)
		api.GET("/categories", h.ListCategories)
		api.POST("/subscribe", subscribeLimit, h.SubscribeJSON)
		api.POST("/location-preview", h.LocationPreview)
	}
}

func siteTitle() string {
	return config.SiteTitle
}
