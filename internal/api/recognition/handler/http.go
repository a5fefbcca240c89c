package recognitionHandler

import (
	recognitionService "ProjectDevanagari/internal/api/recognition/service"
	"ProjectDevanagari/internal/middleware"
	"ProjectDevanagari/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/sirupsen/logrus"
)

type RecognitionHandler struct {
	log                *logrus.Logger
	middleware         middleware.Middleware
	recognitionService recognitionService.IRecognitionService
	utils              utils.IUtils
}

func New(
	log *logrus.Logger,
	middleware middleware.Middleware,
	rs recognitionService.IRecognitionService,
	utils utils.IUtils,
) *RecognitionHandler {
	return &RecognitionHandler{
		recognitionService: rs,
		log:                log,
		middleware:         middleware,
		utils:              utils,
	}
}

func (h *RecognitionHandler) Start(srv fiber.Router) {
	wsMiddleware := func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	}

	srv.Post("/predict", h.middleware.NewRateLimiter, h.Predict)

	predict := srv.Group("/predict")
	predict.Use("/ws", wsMiddleware)
	predict.Get("/ws", websocket.New(h.handlePredictWebSocket))

	srv.Get("/labels", h.Labels)
}
