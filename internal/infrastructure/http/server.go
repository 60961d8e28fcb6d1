package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	handlers "github.com/openagora/settlement/internal/adapter/handler/http"
	"github.com/openagora/settlement/internal/config"
	"github.com/openagora/settlement/internal/middleware/auth"
	"github.com/openagora/settlement/internal/usecase"
	"go.uber.org/zap"
)

type Server struct {
	config   *config.Config
	logger   *zap.Logger
	echo     *echo.Echo
	payments *usecase.PaymentService
	orders   *usecase.OrderService
	shipping *usecase.ShippingService
}

// requestValidator adapts go-playground/validator to echo's Validator hook.
type requestValidator struct {
	validate *validator.Validate
}

func (v *requestValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	payments *usecase.PaymentService,
	orders *usecase.OrderService,
	shipping *usecase.ShippingService,
) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Validator = &requestValidator{validate: validator.New()}

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{cfg.Service.ClientURL},
		AllowMethods: []string{echo.GET, echo.POST, echo.PUT, echo.DELETE},
	}))

	return &Server{
		config:   cfg,
		logger:   logger,
		echo:     e,
		payments: payments,
		orders:   orders,
		shipping: shipping,
	}
}

func (s *Server) Start() error {
	s.setupRoutes()

	addr := fmt.Sprintf("%s:%d", s.config.Server.HTTP.Host, s.config.Server.HTTP.Port)
	s.logger.Info("Starting HTTP server", zap.String("address", addr))

	return s.echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) setupRoutes() {
	s.echo.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "healthy",
			"service": "settlement",
		})
	})

	paymentHandler := handlers.NewPaymentHandler(s.payments, s.logger)
	orderHandler := handlers.NewOrderHandler(s.orders, s.logger)
	shippingHandler := handlers.NewShippingHandler(s.shipping, s.logger)

	jwtConfig := auth.JWTConfig{
		Secret: s.config.Service.JWTSecret,
		Logger: s.logger,
		SkipPaths: []string{
			"/health",
		},
	}

	v1 := s.echo.Group("/api/v1")
	protected := v1.Group("", auth.JWTMiddleware(jwtConfig))

	payments := protected.Group("/payments")
	payments.POST("", paymentHandler.Initiate)
	payments.GET("", paymentHandler.List)
	payments.GET("/:id", paymentHandler.Get)
	payments.POST("/:id/check", paymentHandler.CheckStatus)
	payments.POST("/:id/confirm", paymentHandler.Confirm)

	orders := protected.Group("/orders")
	orders.GET("", orderHandler.List)
	orders.GET("/:id", orderHandler.Get)
	orders.POST("/:id/ship", orderHandler.Ship)
	orders.POST("/:id/complete", orderHandler.Complete)
	orders.POST("/:id/cancel", orderHandler.Cancel)
	orders.PUT("/:id/note", orderHandler.SetNote)

	addresses := protected.Group("/shipping-addresses")
	addresses.POST("", shippingHandler.Create)
	addresses.GET("", shippingHandler.List)
	addresses.PUT("/:id", shippingHandler.Update)
	addresses.DELETE("/:id", shippingHandler.Delete)
	addresses.POST("/:id/default", shippingHandler.SetDefault)
}
