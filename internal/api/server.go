// Package api is the HTTP routing/dispatch layer: it authenticates, parses
// input, invokes one engine operation and translates its result into a
// transport response. It owns nothing but the request/response values it
// marshals.
package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/shopbot/goshop/internal/engine"
	"github.com/shopbot/goshop/internal/metrics"
)

type Config struct {
	// APIKey gates order creation and patching (X-API-Key header).
	APIKey string
}

type Server struct {
	cfg    Config
	engine *engine.Engine
	reg    *metrics.Registry
	log    *logrus.Entry
}

func New(cfg Config, eng *engine.Engine, reg *metrics.Registry) (*Server, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("api key is required")
	}
	if eng == nil {
		return nil, errors.New("engine is required")
	}
	return &Server{
		cfg:    cfg,
		engine: eng,
		reg:    reg,
		log:    logrus.WithField("component", "api"),
	}, nil
}

func (s *Server) Router() http.Handler {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(s.recovery())
	r.Use(s.requestMetrics())

	r.GET("/", s.handleHome)
	r.GET("/health", s.handleHealth)
	r.GET("/metrics", gin.WrapH(s.reg.Handler()))

	orders := r.Group("/orders")
	orders.POST("", s.requireAPIKey("unauthorized_access"), s.handleOrderCreate)
	orders.GET("", s.handleOrdersList)
	orders.GET("/:orderID", s.handleOrderGet)
	orders.PUT("/:orderID/status", s.handleOrderStatusUpdate)
	orders.PATCH("/:orderID", s.requireAPIKey("unauthorized_access_patch"), s.handleOrderPatch)

	return r
}
