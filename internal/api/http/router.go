package http

import (
	"github.com/gin-gonic/gin"

	"github.com/wardenhq/warden-server/internal/api/http/handler"
	"github.com/wardenhq/warden-server/internal/api/http/middleware"
	"github.com/wardenhq/warden-server/internal/auth"
	"github.com/wardenhq/warden-server/internal/certs"
	"github.com/wardenhq/warden-server/internal/controlplane"
	"github.com/wardenhq/warden-server/internal/notify"
	"github.com/wardenhq/warden-server/internal/registry"
	"github.com/wardenhq/warden-server/internal/store"
	"github.com/wardenhq/warden-server/internal/users"
)

type Config struct {
	Port      uint   `mapstructure:"port"`
	JWTSecret string `mapstructure:"jwt_secret"`
}

type Services struct {
	ControlPlane *controlplane.Server
	Store        store.Store
	Registry     *registry.Registry
	Hub          *notify.Hub
	CertService  *certs.Service
	Distributor  *certs.Distributor
	Auth         *auth.Service
	Users        *users.Service
}

func SetupRoute(engine *gin.Engine, cfg Config, srvs *Services) {
	engine.Use(middleware.RequestLogger())

	healthHandler := handler.NewHealthHandler()
	engine.GET("/health", healthHandler.Check)

	// Agent-facing control channel. Agents authenticate in-band with their
	// first frame, not with a dashboard JWT.
	engine.GET("/ws/agent", gin.WrapF(srvs.ControlPlane.HandleWS))

	// Dashboard push channel; token travels as a query parameter because
	// browsers cannot set headers on WebSocket upgrades.
	engine.GET("/ws/dashboard", gin.WrapF(srvs.Hub.HandleWS))

	devicesHandler := handler.NewDevicesHandler(srvs.ControlPlane, srvs.Store, srvs.Registry)
	sessionsHandler := handler.NewSessionsHandler(srvs.ControlPlane)
	filesHandler := handler.NewFilesHandler(srvs.ControlPlane)
	webrtcHandler := handler.NewWebRTCHandler(srvs.ControlPlane)
	certsHandler := handler.NewCertsHandler(srvs.CertService, srvs.Distributor)
	authHandler := handler.NewAuthHandler(srvs.Auth)
	usersHandler := handler.NewUsersHandler(srvs.Users)

	engine.POST("/api/v1/auth/login", authHandler.Login)

	api := engine.Group("/api/v1")
	api.Use(middleware.JWTAuth(cfg.JWTSecret))
	{
		devices := api.Group("/devices/:device_id")
		{
			devices.GET("/status", devicesHandler.Status)
			devices.POST("/commands", devicesHandler.ExecuteCommand)
			devices.POST("/ping", devicesHandler.Ping)
			devices.PUT("/metrics-interval", devicesHandler.SetMetricsInterval)

			devices.POST("/terminal", sessionsHandler.StartTerminal)
			devices.POST("/webrtc", webrtcHandler.Start)

			devices.GET("/drives", filesHandler.Drives)
			devices.GET("/files", filesHandler.List)
			devices.POST("/files/scan", filesHandler.Scan)
			devices.GET("/files/download", filesHandler.Download)
			devices.POST("/files/upload", filesHandler.Upload)
		}

		sessions := api.Group("/sessions/:session_id")
		{
			sessions.POST("/input", sessionsHandler.Input)
			sessions.POST("/resize", sessionsHandler.Resize)
			sessions.POST("/webrtc/signal", webrtcHandler.Signal)
			sessions.PUT("/webrtc/quality", webrtcHandler.SetQuality)
			sessions.DELETE("", sessionsHandler.Close)
		}

		admin := api.Group("")
		admin.Use(middleware.RequireRole("admin"))
		{
			admin.POST("/devices/:device_id/disable", devicesHandler.Disable)
			admin.POST("/devices/:device_id/enable", devicesHandler.Enable)
			admin.POST("/devices/:device_id/uninstall", devicesHandler.Uninstall)
			admin.POST("/certificates/distribute", certsHandler.Distribute)
			admin.POST("/auth/register", authHandler.Register)
			admin.GET("/users", usersHandler.List)
			admin.DELETE("/users/:user_id", usersHandler.Delete)
		}
	}
}
