package restservice

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/orbital-network/auction/internal/config"
	"github.com/orbital-network/auction/internal/core/application"
	interfaces "github.com/orbital-network/auction/internal/interface"
	"github.com/orbital-network/auction/internal/infrastructure/metrics"
	log "github.com/sirupsen/logrus"
)

const shutdownTimeout = 5 * time.Second

type service struct {
	config    Config
	appConfig *config.Config
	server    *http.Server
}

func NewService(svcConfig Config, appConfig *config.Config) (interfaces.Service, error) {
	if err := svcConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid service config: %s", err)
	}
	if err := appConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid app config: %s", err)
	}

	return &service{svcConfig, appConfig, nil}, nil
}

func (s *service) Start() error {
	appSvc, err := s.appConfig.AppService()
	if err != nil {
		return err
	}
	if err := appSvc.Start(); err != nil {
		return fmt.Errorf("failed to start app service: %s", err)
	}
	log.Info("started app service")

	s.server = &http.Server{
		Addr:              s.config.address(),
		Handler:           NewRouter(appSvc, s.config.JWTSecret, s.appConfig.Metrics()),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Error("rest server stopped unexpectedly")
		}
	}()
	log.Infof("started listening at %s", s.config.address())

	return nil
}

func (s *service) Stop() {
	if s.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		//nolint:all
		s.server.Shutdown(ctx)
		log.Info("stopped rest server")
	}

	appSvc, _ := s.appConfig.AppService()
	if appSvc != nil {
		appSvc.Stop()
		log.Info("stopped app service")
	}
}

// NewRouter wires the public queries, the authenticated operations and the
// operational endpoints.
func NewRouter(
	appSvc application.Service, jwtSecret string, m *metrics.Metrics,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	if m != nil {
		router.Use(m.GinMiddleware())
		router.GET("/metrics", gin.WrapH(m.Handler()))
	}
	router.GET("/healthz", healthz)

	h := newHandler(appSvc)

	v1 := router.Group("/v1")
	{
		v1.GET("/info", h.getInfo)
		v1.GET("/config", h.getAuctionConfig)
		v1.GET("/batch", h.getActiveBatch)
		v1.GET("/batches/:id", h.getBatch)
		v1.GET("/orderbook", h.getOrderbook)
		v1.GET("/bond/:solver", h.getBond)
		v1.GET("/settlements/:id", h.getSettlement)
		v1.GET("/accounts", h.getAccounts)

		protected := v1.Group("")
		protected.Use(authMiddleware(jwtSecret))
		{
			protected.POST("/orders", h.addOrder)
			protected.POST("/bond", h.postBond)
			protected.DELETE("/bond", h.withdrawBond)
			protected.POST("/bid", h.bid)
			protected.POST("/tick", h.tick)
			protected.POST("/settlements/:id/confirm", h.confirmSettlement)
			protected.POST("/settlements/:id/slash", h.slashSettlement)
			protected.POST("/accounts/:domain/confirm", h.confirmAccount)
		}
	}

	return router
}
