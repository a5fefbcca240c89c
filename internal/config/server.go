package config

import (
	"fmt"
	"time"

	"ProjectDevanagari/internal/api/recognition"
	recognitionHandler "ProjectDevanagari/internal/api/recognition/handler"
	recognitionService "ProjectDevanagari/internal/api/recognition/service"
	"ProjectDevanagari/internal/middleware"
	"ProjectDevanagari/pkg/inference"
	"ProjectDevanagari/pkg/metrics"
	"ProjectDevanagari/pkg/preprocess"
	"ProjectDevanagari/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"
)

const shutdownTimeout = 10 * time.Second

type ServerOption func(*Server) error

type Server struct {
	engine       *fiber.App
	log          *logrus.Logger
	env          *Env
	middleware   middleware.Middleware
	utils        utils.IUtils
	model        *inference.Model
	preprocessor *preprocess.Preprocessor
	metrics      *metrics.Metrics
	handlers     []handler
	mounted      bool
}

type handler interface {
	Start(srv fiber.Router)
}

func NewServer(options ...ServerOption) (*Server, error) {
	server := &Server{}

	for _, option := range options {
		if err := option(server); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if server.engine == nil {
		return nil, fmt.Errorf("fiber app is required")
	}
	if server.log == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if server.env == nil {
		return nil, fmt.Errorf("env is required")
	}
	if server.model == nil {
		return nil, fmt.Errorf("model is required")
	}
	if server.metrics == nil {
		server.metrics = metrics.New()
	}
	if server.preprocessor == nil {
		server.preprocessor = preprocess.New(preprocess.WithMaxPixels(server.env.MaxImagePixels))
	}
	if server.utils == nil {
		server.utils = utils.New(server.env.MaxUploadSize)
	}
	if server.middleware == nil {
		server.middleware = newMiddleware(server)
	}

	return server, nil
}

func WithFiber(fiberApp *fiber.App) ServerOption {
	return func(s *Server) error {
		s.engine = fiberApp
		return nil
	}
}

func WithLogger(logger *logrus.Logger) ServerOption {
	return func(s *Server) error {
		s.log = logger
		return nil
	}
}

func WithEnv(env *Env) ServerOption {
	return func(s *Server) error {
		s.env = env
		return nil
	}
}

func WithModel(model *inference.Model) ServerOption {
	return func(s *Server) error {
		s.model = model
		return nil
	}
}

func WithPreprocessor(preprocessor *preprocess.Preprocessor) ServerOption {
	return func(s *Server) error {
		s.preprocessor = preprocessor
		return nil
	}
}

func WithMetrics(m *metrics.Metrics) ServerOption {
	return func(s *Server) error {
		s.metrics = m
		return nil
	}
}

func WithMiddleware() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before middleware")
		}
		if s.env == nil {
			return fmt.Errorf("env must be initialized before middleware")
		}
		s.middleware = newMiddleware(s)
		return nil
	}
}

func WithUtils() ServerOption {
	return func(s *Server) error {
		if s.env == nil {
			return fmt.Errorf("env must be initialized before utils")
		}
		s.utils = utils.New(s.env.MaxUploadSize)
		return nil
	}
}

func newMiddleware(s *Server) middleware.Middleware {
	return middleware.New(s.log, middleware.Config{
		RateLimit: s.env.RateLimitRPS,
		RateBurst: s.env.RateLimitBurst,
	}, s.metrics)
}

func (s *Server) RegisterHandler() {
	// Recognition
	recognitionServices := recognitionService.NewRecognitionService(s.log, s.model, s.preprocessor, s.metrics)
	recognitionHandlers := recognitionHandler.New(s.log, s.middleware, recognitionServices, s.utils)

	s.handlers = append(s.handlers, recognitionHandlers)
}

// Mount installs the global middleware and every registered handler. It is
// called by Run and is safe to call more than once.
func (s *Server) Mount() {
	if s.mounted {
		return
	}
	s.mounted = true

	s.engine.Use(recover.New(recover.Config{
		EnableStackTrace: s.env.AppDebug,
	}))
	s.engine.Use(cors.New(cors.Config{
		AllowOrigins: s.env.CorsAllowOrigins,
	}))
	s.engine.Use(s.middleware.NewRequestIDMiddleware())
	s.engine.Use(s.middleware.NewLoggingMiddleware())
	s.engine.Use(s.middleware.NewMetricsMiddleware())

	s.setupHealthCheck()
	s.engine.Get("/metrics", adaptor.HTTPHandler(s.metrics.Handler()))

	for _, h := range s.handlers {
		h.Start(s.engine)
	}
}

func (s *Server) Run() error {
	s.Mount()

	return s.engine.Listen(fmt.Sprintf(":%s", s.env.AppPort))
}

func (s *Server) Shutdown() error {
	err := s.engine.ShutdownWithTimeout(shutdownTimeout)

	if closeErr := s.model.Close(); closeErr != nil {
		s.log.Errorf("Error closing model: %v", closeErr)
	}

	return err
}

func (s *Server) setupHealthCheck() {
	health := func(ctx *fiber.Ctx) error {
		return ctx.JSON(recognition.HealthResponse{
			Status: "healthy",
			Model:  s.model.State().String(),
		})
	}

	s.engine.Get("/", health)
	s.engine.Get("/health", health)
}
