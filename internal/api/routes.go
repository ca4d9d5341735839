package api

import (
	"github.com/gin-gonic/gin"
	"github.com/sandeepkv93/stickynotes/internal/gallery"
	"github.com/sandeepkv93/stickynotes/internal/platform/web/handler"
	"go.uber.org/zap"
)

// API exposes the galleries over HTTP.
type API struct {
	galleries *gallery.Set
	log       *zap.SugaredLogger
}

func New(galleries *gallery.Set, log *zap.SugaredLogger) *API {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &API{galleries: galleries, log: log}
}

func MapDefaults(r *gin.Engine) {
	r.GET("/v1/healthcheck", handler.Wrapper(Healthcheck))
}

func (a *API) MapApi(r *gin.Engine) {
	r.GET("/v1/galleries", handler.Wrapper(a.ListGalleries))

	notes := r.Group("/v1/galleries/:gallery/notes")
	notes.GET("", handler.Wrapper(a.ListNotes))
	notes.POST("", handler.Wrapper(a.CreateNote))
	notes.DELETE("", handler.Wrapper(a.ResetGallery))
	notes.GET("/:id", handler.Wrapper(a.GetNote))
	notes.PUT("/:id", handler.Wrapper(a.UpdateNote))
	notes.DELETE("/:id", handler.Wrapper(a.DeleteNote))
	notes.PUT("/:id/image", handler.Wrapper(a.AttachImage))

	r.PUT("/v1/settings/reminders", handler.Wrapper(a.SetReminders))
	r.PUT("/v1/settings/defaults", handler.Wrapper(a.SetDefaults))
}

// NewRouter builds the gin engine the serve command runs.
func NewRouter(a *API) *gin.Engine {
	router := gin.New()
	router.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		SkipPaths: []string{"/v1/healthcheck"},
	}), gin.Recovery())

	MapDefaults(router)
	a.MapApi(router)
	return router
}
