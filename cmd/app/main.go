package main

import (
	"ProjectDevanagari/internal/config"
	"ProjectDevanagari/pkg/log"
	"ProjectDevanagari/pkg/metrics"
	"ProjectDevanagari/pkg/preprocess"
	"github.com/joho/godotenv"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	envErr := godotenv.Load()

	logger := log.NewLogger()
	if envErr != nil {
		logger.Warnf("No .env file loaded, using process environment: %v", envErr)
	}

	env, err := config.LoadEnv()
	if err != nil {
		logger.Fatalf("Error reading environment: %v", err)
	}

	validator := config.NewValidator()
	if err := env.Validate(validator); err != nil {
		logger.Fatal(err)
	}

	filter, err := preprocess.ParseFilter(env.ResizeFilter)
	if err != nil {
		logger.Fatal(err)
	}

	downloader, err := config.NewModelDownloader(env)
	if err != nil {
		logger.Errorf("Failed to initialize S3 client: %v", err)
	}

	fiberApp := config.NewFiber(logger, env)
	model := config.NewModel(logger, env, downloader)

	server, err := config.NewServer(
		config.WithFiber(fiberApp),
		config.WithLogger(logger),
		config.WithEnv(env),
		config.WithModel(model),
		config.WithPreprocessor(preprocess.New(
			preprocess.WithFilter(filter),
			preprocess.WithMaxPixels(env.MaxImagePixels),
		)),
		config.WithMetrics(metrics.New()),
		config.WithMiddleware(),
		config.WithUtils(),
	)
	if err != nil {
		logger.Fatal(err)
	}

	server.RegisterHandler()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.Run(); err != nil {
			logger.Fatalf("Error starting server: %v", err)
		}
	}()

	logger.Infof("Server started on port %s", env.AppPort)

	<-sigChan
	logger.Info("Shutting down server...")

	if err := server.Shutdown(); err != nil {
		logger.Errorf("Error during shutdown: %v", err)
	}
}
