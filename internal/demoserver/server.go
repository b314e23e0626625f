// Package demoserver is the in-memory fixture backend used for local
// development and contract tests. It speaks the same REST surface the
// client targets, seeded with the demo company and accounts.
package demoserver

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"backoffice-client/internal/config"
	"backoffice-client/internal/middleware"
	"backoffice-client/internal/pkg/jwt"
)

type Server struct {
	cfg    config.AppConfig
	engine *gin.Engine
	logger *zap.Logger
	tokens *jwt.Manager
	state  *state
	http   *http.Server
}

func NewServer(cfg config.AppConfig, logger *zap.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	s := &Server{
		cfg:    cfg,
		engine: engine,
		logger: logger,
		tokens: jwt.NewManager(jwt.Config{Secret: cfg.JWTSecret, Issuer: "backoffice-demo", TTL: 24 * time.Hour}),
		state:  newState(),
	}

	engine.Use(
		middleware.RecoveryMiddleware(logger),
		middleware.LoggingMiddleware(logger),
		middleware.CORSMiddleware(),
	)
	s.routes()
	return s
}

func (s *Server) routes() {
	authMW := middleware.NewAuthMiddleware(s.tokens)

	api := s.engine.Group("/api")
	{
		api.POST("/auth/login/", s.handleLogin)
		api.POST("/auth/logout/", s.handleLogout)
		api.POST("/register/empresa-user/", s.handleRegisterEmpresaUser)

		authed := api.Group("")
		authed.Use(authMW.Auth())
		{
			authed.GET("/profile/", s.handleProfile)

			authed.GET("/clients/", s.handleListClientes)
			authed.POST("/clients/", s.handleCreateCliente)

			authed.GET("/Creditos/creditos", s.handleListTipos)
			authed.POST("/Creditos/creditos", s.handleCreateTipo)

			authed.GET("/empresa/", s.handleListEmpresas)
			authed.GET("/empresa/:id/", s.handleGetEmpresa)

			authed.GET("/suscripcion/", s.handleListSuscripciones)
			authed.POST("/suscripcion/", s.handleCreateSuscripcion)
			authed.PUT("/suscripcion/:id/", s.handleUpdateSuscripcion)
			authed.PATCH("/suscripcion/:id/", s.handleUpdateSuscripcion)
		}
	}
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) Start() error {
	s.http = &http.Server{Addr: s.cfg.HTTPAddr, Handler: s.engine}
	s.logger.Info("demo server listening", zap.String("addr", s.cfg.HTTPAddr))
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}
