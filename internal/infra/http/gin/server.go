package ginserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	gin "github.com/gin-gonic/gin"

	"github.com/pinball19/bus-app-2/internal/infra/config"
	"github.com/pinball19/bus-app-2/internal/infra/obs"
)

type BoardHTTP interface {
	Get(c *gin.Context)
	Export(c *gin.Context)
}

type ScheduleHTTP interface {
	Create(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
	RenameVehicle(c *gin.Context)
}

type DriverHTTP interface {
	List(c *gin.Context)
	Create(c *gin.Context)
	Update(c *gin.Context)
	Deactivate(c *gin.Context)
	Duty(c *gin.Context)
}

type MessageHTTP interface {
	List(c *gin.Context)
	Post(c *gin.Context)
}

type Handlers struct {
	Board    BoardHTTP
	Schedule ScheduleHTTP
	Driver   DriverHTTP
	Message  MessageHTTP
}

func NewServer(cfg config.Config, obsMW obs.Middleware, health obs.HealthHandlers, h Handlers) *http.Server {
	mode := configureGinMode(cfg.Env)
	if obsMW.Logger != nil {
		obsMW.Logger.Info("gin initialized", "mode", mode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(obsMW.RequestID())
	router.Use(obsMW.LoggerMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length", "Content-Type", "Content-Disposition", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}))

	router.GET("/livez", health.Livez)
	router.GET("/readyz", health.Readyz)

	api := router.Group("/api/v1")
	if h.Board != nil {
		api.GET("/board", h.Board.Get)
		api.GET("/board/export", h.Board.Export)
	}
	if h.Schedule != nil {
		api.POST("/schedules", h.Schedule.Create)
		api.PUT("/schedules/:id", h.Schedule.Update)
		api.DELETE("/schedules/:id", h.Schedule.Delete)
		api.PUT("/vehicles/:name", h.Schedule.RenameVehicle)
	}
	if h.Message != nil {
		api.GET("/schedules/:id/messages", h.Message.List)
		api.POST("/schedules/:id/messages", h.Message.Post)
	}
	if h.Driver != nil {
		driverGroup := api.Group("/drivers")
		driverGroup.GET("", h.Driver.List)
		driverGroup.POST("", h.Driver.Create)
		driverGroup.PUT("/:id", h.Driver.Update)
		driverGroup.DELETE("/:id", h.Driver.Deactivate)
		driverGroup.GET("/name/:name/duty", h.Driver.Duty)
	}

	return &http.Server{Addr: cfg.HTTPAddr, Handler: router}
}

func configureGinMode(env string) string {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "debug":
		gin.SetMode(gin.DebugMode)
		return gin.DebugMode
	case "test", "testing":
		gin.SetMode(gin.TestMode)
		return gin.TestMode
	default:
		gin.SetMode(gin.ReleaseMode)
		return gin.ReleaseMode
	}
}
