package config

import (
	"errors"

	"ProjectDevanagari/pkg/log"
	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

func NewFiber(logger *logrus.Logger, env *Env) *fiber.App {
	app := fiber.New(
		fiber.Config{
			AppName:           env.AppName,
			BodyLimit:         int(env.MaxUploadSize),
			DisableKeepalive:  false,
			EnablePrintRoutes: env.AppDebug,
			JSONEncoder:       jsoniter.Marshal,
			JSONDecoder:       jsoniter.Unmarshal,
			ErrorHandler:      newErrorHandler(logger),
		})

	return app
}

// newErrorHandler answers errors that escape a handler, recovered panics
// included, with a JSON body instead of fiber's plain text.
func newErrorHandler(logger *logrus.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "An unexpected error occurred"

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			code = fiberErr.Code
			message = fiberErr.Message
		}

		logger.WithFields(log.Fields{
			"path":   c.Path(),
			"method": c.Method(),
			"code":   code,
			"error":  err.Error(),
		}).Error("Unhandled request error")

		return c.Status(code).JSON(fiber.Map{
			"error": message,
		})
	}
}
