package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/memberhub/media-api/internal/interfaces/httpserver/handlers"
)

// Routes encapsulates versioned route registration.
type Routes struct {
	handlers *handlers.Provider
}

func NewRoutes(provider *handlers.Provider) *Routes {
	return &Routes{handlers: provider}
}

// Register attaches all v1 routes under the /v1 prefix.
func (r *Routes) Register(router gin.IRouter) {
	group := router.Group("/v1")
	group.POST("/media", r.handlers.Media.Upload)
	group.GET("/media", r.handlers.Media.Search)
	group.GET("/media/:id", r.handlers.Media.Get)
	group.GET("/media/:id/content", r.handlers.Media.Content)
	group.GET("/media/:id/thumbnail", r.handlers.Media.Thumbnail)
	group.GET("/media/:id/url", r.handlers.Media.URL)
	group.GET("/media/:id/stats", r.handlers.Media.Stats)
	group.GET("/media/:id/events", r.handlers.Media.Events)
	group.PATCH("/media/:id", r.handlers.Media.Update)
	group.DELETE("/media/:id", r.handlers.Media.Delete)
}
