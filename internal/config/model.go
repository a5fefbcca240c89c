package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"ProjectDevanagari/pkg/inference"
	"ProjectDevanagari/pkg/log"
	"ProjectDevanagari/pkg/s3"
	"github.com/sirupsen/logrus"
)

const modelDownloadTimeout = 5 * time.Minute

// NewModelDownloader returns nil when no bucket is configured.
func NewModelDownloader(env *Env) (s3.ItfS3, error) {
	if env.ModelS3Bucket == "" {
		return nil, nil
	}

	return s3.New(s3.Config{
		Region:          env.AWSRegion,
		Bucket:          env.ModelS3Bucket,
		Endpoint:        env.AWSS3Endpoint,
		AccessKeyID:     env.AWSAccessKeyID,
		SecretAccessKey: env.AWSSecretAccessKey,
	})
}

// NewModel loads the classifier once. A load failure is logged and leaves the
// model in the failed state; the server still starts and reports it per request.
func NewModel(logger *logrus.Logger, env *Env, downloader s3.ItfS3) *inference.Model {
	if err := fetchModel(logger, env, downloader); err != nil {
		logger.WithFields(log.Fields{
			"model_path": env.ModelPath,
			"bucket":     env.ModelS3Bucket,
			"key":        env.ModelS3Key,
			"error":      err.Error(),
		}).Error("Error downloading model")
	}

	model := inference.NewModel()
	err := model.Load(inference.ONNXLoader(inference.ONNXConfig{
		ModelPath:         env.ModelPath,
		SharedLibraryPath: env.OnnxRuntimeLib,
		InputName:         env.ModelInputName,
		OutputName:        env.ModelOutputName,
	}))
	if err != nil {
		logger.WithFields(log.Fields{
			"model_path": env.ModelPath,
			"error":      err.Error(),
		}).Error("Error loading model")
		return model
	}

	logger.WithField("model_path", env.ModelPath).Info("Model loaded successfully")
	return model
}

// fetchModel downloads the model only when a downloader is configured and the
// file is not already on disk.
func fetchModel(logger *logrus.Logger, env *Env, downloader s3.ItfS3) error {
	if downloader == nil {
		return nil
	}

	_, err := os.Stat(env.ModelPath)
	if err == nil {
		return nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("stat model: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), modelDownloadTimeout)
	defer cancel()

	n, err := downloader.DownloadFile(ctx, env.ModelS3Key, env.ModelPath)
	if err != nil {
		return err
	}

	logger.WithFields(log.Fields{
		"model_path": env.ModelPath,
		"bytes":      n,
	}).Info("Model downloaded")
	return nil
}
