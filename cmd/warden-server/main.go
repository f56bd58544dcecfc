package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	internalhttp "github.com/wardenhq/warden-server/internal/api/http"
	"github.com/wardenhq/warden-server/internal/auth"
	"github.com/wardenhq/warden-server/internal/certs"
	"github.com/wardenhq/warden-server/internal/controlplane"
	"github.com/wardenhq/warden-server/internal/dataplane"
	"github.com/wardenhq/warden-server/internal/notify"
	"github.com/wardenhq/warden-server/internal/registry"
	"github.com/wardenhq/warden-server/internal/store"
	"github.com/wardenhq/warden-server/internal/transport"
	"github.com/wardenhq/warden-server/internal/users"
)

var AppVersion string

func main() {
	InitConfig()

	slog.Info("Warden Server", "version", AppVersion)

	if err := store.RunMigrations(config.Database.URL); err != nil {
		slog.Error("Migrations failed", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	st, err := store.Connect(ctx, config.Database.URL)
	if err != nil {
		slog.Error("Database connection failed", "error", err)
		os.Exit(1)
	}
	defer st.Close()

	var ips []net.IP
	for _, raw := range ParseCommaSeparated(config.Certs.IPAddresses) {
		if ip := net.ParseIP(raw); ip != nil {
			ips = append(ips, ip)
		}
	}
	certService, err := certs.New(
		config.Certs.CaCertFile,
		config.Certs.CaKeyFile,
		config.Certs.ServerCertFile,
		config.Certs.ServerKeyFile,
		&certs.Options{
			DomainNames: ParseCommaSeparated(config.Certs.DomainNames),
			IPAddresses: ips,
		},
	)
	if err != nil {
		slog.Error("Certificate setup failed", "error", err)
		os.Exit(1)
	}

	tlsMode, err := transport.ParseMode(config.Grpc.TLS.Mode)
	if err != nil {
		slog.Error("Invalid TLS configuration", "error", err)
		os.Exit(1)
	}
	creds, err := transport.ServerCredentials(transport.Config{
		Mode:     tlsMode,
		CertFile: config.Grpc.TLS.CertFile,
		KeyFile:  config.Grpc.TLS.KeyFile,
		CAFile:   config.Grpc.TLS.CAFile,
	})
	if err != nil {
		slog.Error("TLS setup failed", "error", err)
		os.Exit(1)
	}

	tokenLifetime, _ := time.ParseDuration(config.Auth.TokenLifetime)
	authService := auth.NewService(st, auth.Config{
		Secret:   config.Http.JWTSecret,
		Issuer:   config.Auth.Issuer,
		Lifetime: tokenLifetime,
	})
	if err := authService.EnsureDefaultAdmin(ctx, config.Auth.AdminUsername, config.Auth.AdminPassword); err != nil {
		slog.Error("Admin bootstrap failed", "error", err)
		os.Exit(1)
	}
	userService := users.NewService(st)

	reg := registry.New()
	hub := notify.NewHub(auth.Verifier{Secret: config.Http.JWTSecret})
	sessions := controlplane.NewSessionManager()

	cpServer := controlplane.NewServer(reg, st, hub, sessions)
	dpServer := dataplane.NewServer(config.Grpc.Port, reg, st, hub, creds)
	distributor := certs.NewDistributor(cpServer, st)

	services := &internalhttp.Services{
		ControlPlane: cpServer,
		Store:        st,
		Registry:     reg,
		Hub:          hub,
		CertService:  certService,
		Distributor:  distributor,
		Auth:         authService,
		Users:        userService,
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"PUT", "PATCH", "GET", "POST", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	engine.Use(gin.Recovery())
	internalhttp.SetupRoute(engine, config.Http, services)

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", config.Http.Port),
		Handler: engine,
	}

	errChan := make(chan error, 2)
	go func() {
		slog.Info("Starting HTTP server", "address", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	go func() {
		if err := dpServer.Start(); err != nil {
			errChan <- fmt.Errorf("data-plane server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errChan:
		slog.Error("Server error", "error", err)
	case sig := <-sigChan:
		slog.Info("Received shutdown signal", "signal", sig)
	}

	slog.Info("Shutting down servers...")

	var wg sync.WaitGroup
	shutdownTimeout := 10 * time.Second

	wg.Add(1)
	go func() {
		defer wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(ctx); err != nil {
			slog.Error("HTTP server shutdown error", "error", err)
		} else {
			slog.Info("HTTP server stopped")
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := dpServer.Stop(ctx); err != nil {
			slog.Error("data-plane server shutdown error", "error", err)
		}
	}()

	cpServer.Stop()

	wg.Wait()
	slog.Info("Shutdown complete")
}
