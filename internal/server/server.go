package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hanseo-dev/jasoseo-ai/internal/ai"
	"github.com/hanseo-dev/jasoseo-ai/internal/payment"
	"github.com/hanseo-dev/jasoseo-ai/internal/session"
)

// Config carries the settings the HTTP layer needs.
type Config struct {
	// Listen is the address gin binds to, e.g. ":8080".
	Listen string
	// ClientKey is the publishable Toss key handed to the browser SDK.
	// Unlike the secret key it is safe to expose.
	ClientKey string
}

// Server wires the generation writer, the payment confirmer and the session
// store behind the HTTP API.
type Server struct {
	cfg       Config
	writer    ai.Writer
	confirmer payment.Confirmer
	sessions  *session.Store
	logger    *zap.Logger
	engine    *gin.Engine
}

func New(cfg Config, writer ai.Writer, confirmer payment.Confirmer, sessions *session.Store, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &Server{
		cfg:       cfg,
		writer:    writer,
		confirmer: confirmer,
		sessions:  sessions,
		logger:    logger,
		engine:    engine,
	}
	s.routes()

	return s
}

func (s *Server) routes() {
	s.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	api := s.engine.Group("/api")
	api.POST("/generate", s.handleGenerate)
	api.GET("/result", s.handleResult)
	api.POST("/payment", s.handlePaymentPrepare)
	api.POST("/payment/confirm", s.handlePaymentConfirm)

	s.engine.GET("/payment/success", s.handlePaymentSuccess)
	s.engine.GET("/payment/fail", s.handlePaymentFail)
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run blocks serving HTTP on the configured address.
func (s *Server) Run() error {
	s.logger.Info("starting http server", zap.String("listen", s.cfg.Listen))
	return s.engine.Run(s.cfg.Listen)
}
