package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
)

type Env struct {
	AppName  string `validate:"required"`
	AppEnv   string `validate:"required,oneof=development production test"`
	AppPort  string `validate:"required,numeric"`
	AppDebug bool
	LogDir   string `validate:"required"`

	ModelPath        string `validate:"required"`
	ModelInputName   string `validate:"required"`
	ModelOutputName  string `validate:"required"`
	OnnxRuntimeLib   string
	ResizeFilter     string  `validate:"oneof=nearest bilinear linear bicubic lanczos"`
	MaxUploadSize    int64   `validate:"gt=0"`
	MaxImagePixels   int64   `validate:"gt=0"`
	RateLimitRPS     float64 `validate:"gte=0"`
	RateLimitBurst   int     `validate:"gte=0"`
	CorsAllowOrigins string  `validate:"required"`

	ModelS3Bucket      string
	ModelS3Key         string `validate:"required_with=ModelS3Bucket"`
	AWSRegion          string `validate:"required_with=ModelS3Bucket"`
	AWSAccessKeyID     string
	AWSSecretAccessKey string `validate:"required_with=AWSAccessKeyID"`
	AWSS3Endpoint      string
}

// LoadEnv reads the process environment, falling back to defaults for
// anything unset.
func LoadEnv() (*Env, error) {
	debug, err := strconv.ParseBool(getEnv("APP_DEBUG", "true"))
	if err != nil {
		return nil, fmt.Errorf("APP_DEBUG: %w", err)
	}

	maxUpload, err := strconv.ParseInt(getEnv("MAX_UPLOAD_SIZE", "10485760"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("MAX_UPLOAD_SIZE: %w", err)
	}

	maxPixels, err := strconv.ParseInt(getEnv("MAX_IMAGE_PIXELS", "178956970"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("MAX_IMAGE_PIXELS: %w", err)
	}

	rps, err := strconv.ParseFloat(getEnv("RATE_LIMIT_RPS", "0"), 64)
	if err != nil {
		return nil, fmt.Errorf("RATE_LIMIT_RPS: %w", err)
	}

	burst, err := strconv.Atoi(getEnv("RATE_LIMIT_BURST", "100"))
	if err != nil {
		return nil, fmt.Errorf("RATE_LIMIT_BURST: %w", err)
	}

	return &Env{
		AppName:  getEnv("APP_NAME", "Devanagari Recognizer"),
		AppEnv:   getEnv("APP_ENV", "development"),
		AppPort:  getEnv("APP_PORT", "5003"),
		AppDebug: debug,
		LogDir:   getEnv("LOG_DIR", "./storage/logs"),

		ModelPath:        getEnv("MODEL_PATH", "model.onnx"),
		ModelInputName:   getEnv("MODEL_INPUT_NAME", "input"),
		ModelOutputName:  getEnv("MODEL_OUTPUT_NAME", "output"),
		OnnxRuntimeLib:   os.Getenv("ONNXRUNTIME_LIB_PATH"),
		ResizeFilter:     getEnv("RESIZE_FILTER", "bicubic"),
		MaxUploadSize:    maxUpload,
		MaxImagePixels:   maxPixels,
		RateLimitRPS:     rps,
		RateLimitBurst:   burst,
		CorsAllowOrigins: getEnv("CORS_ALLOW_ORIGINS", "*"),

		ModelS3Bucket:      os.Getenv("MODEL_S3_BUCKET"),
		ModelS3Key:         os.Getenv("MODEL_S3_KEY"),
		AWSRegion:          os.Getenv("AWS_REGION"),
		AWSAccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
		AWSSecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		AWSS3Endpoint:      os.Getenv("AWS_S3_ENDPOINT"),
	}, nil
}

func (e *Env) Validate(v *validator.Validate) error {
	if err := v.Struct(e); err != nil {
		return fmt.Errorf("invalid environment: %w", err)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}
