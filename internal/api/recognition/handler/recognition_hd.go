package recognitionHandler

import (
	"ProjectDevanagari/internal/api/recognition"
	contextPkg "ProjectDevanagari/pkg/context"
	"ProjectDevanagari/pkg/handlerUtil"
	"ProjectDevanagari/pkg/log"
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

const (
	wsReadTimeout  = 60 * time.Second
	wsWriteTimeout = 10 * time.Second
)

func (h *RecognitionHandler) Predict(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c := contextPkg.FromFiberCtx(ctx)

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing prediction request")

	if err := h.recognitionService.Ready(); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "model_ready")
	}

	file, err := ctx.FormFile("image")
	if err != nil {
		return errHandler.Handle(ctx, requestID,
			fmt.Errorf("%w: %v", recognition.ErrNoImageUploaded, err), ctx.Path(), "form_file")
	}

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
		"file_name":  file.Filename,
		"file_size":  file.Size,
	}).Debug("Processing file upload")

	image, err := h.utils.ReadUploadedFile(file)
	if err != nil {
		return errHandler.Handle(ctx, requestID,
			fmt.Errorf("%w: %v", recognition.ErrInvalidImageFile, err), ctx.Path(), "read_file")
	}

	result, err := h.recognitionService.Predict(c, image)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "predict")
	}

	h.log.WithFields(log.Fields{
		"request_id":       requestID,
		"path":             ctx.Path(),
		"prediction":       result.Label,
		"extracted_number": result.ExtractedNumber,
	}).Info("Prediction successful")

	return errHandler.HandleSuccess(ctx, fiber.StatusOK, recognition.PredictResponse{
		Prediction:      result.Label,
		ExtractedNumber: result.ExtractedNumber,
	})
}

func (h *RecognitionHandler) Labels(ctx *fiber.Ctx) error {
	return handlerUtil.New(h.log).HandleSuccess(ctx, fiber.StatusOK, h.recognitionService.Labels())
}

// handlePredictWebSocket classifies every binary frame as one image and
// answers with the same JSON bodies as POST /predict.
func (h *RecognitionHandler) handlePredictWebSocket(c *websocket.Conn) {
	requestID, _ := c.Locals(contextPkg.LocalsRequestIDKey).(string)
	entry := h.log.WithField("request_id", requestID)

	entry.Info("Prediction WebSocket client connected")
	defer entry.Info("Prediction WebSocket client disconnected")

	c.SetPingHandler(func(data string) error {
		entry.Debug("Received ping, sending pong")
		if err := c.WriteControl(websocket.PongMessage, []byte(data), time.Now().Add(5*time.Second)); err != nil {
			entry.Errorf("Error sending pong: %v", err)
		}
		return nil
	})

	// Frames larger than an upload close the connection with 1009.
	c.SetReadLimit(h.utils.MaxFileSize())

	ctx := contextPkg.WithRequestID(context.Background(), requestID)

	for {
		if err := c.SetReadDeadline(time.Now().Add(wsReadTimeout)); err != nil {
			entry.Errorf("Error setting read deadline: %v", err)
			break
		}

		messageType, message, err := c.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				entry.Errorf("Prediction WebSocket error: %v", err)
			} else {
				entry.Info("Prediction WebSocket connection closed")
			}
			break
		}

		if messageType != websocket.BinaryMessage {
			entry.Warnf("Received unexpected message type: %d", messageType)
			continue
		}

		var reply interface{}
		result, err := h.recognitionService.Predict(ctx, message)
		if err != nil {
			_, msg := handlerUtil.Resolve(err)
			entry.WithField("error", err.Error()).Warn("Prediction over WebSocket failed")
			reply = recognition.ErrorResponse{Error: msg}
		} else {
			reply = recognition.PredictResponse{
				Prediction:      result.Label,
				ExtractedNumber: result.ExtractedNumber,
			}
		}

		if err := c.SetWriteDeadline(time.Now().Add(wsWriteTimeout)); err != nil {
			entry.Errorf("Error setting write deadline: %v", err)
			break
		}

		if err := c.WriteJSON(reply); err != nil {
			entry.Errorf("Error writing JSON response: %v", err)
			break
		}

		if err := c.SetWriteDeadline(time.Time{}); err != nil {
			entry.Errorf("Error resetting write deadline: %v", err)
			break
		}
	}
}
