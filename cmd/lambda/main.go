package main

import (
	"os"
	"strconv"

	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"

	"github.com/papercomputeco/chatrelay/forwarder"
	"github.com/papercomputeco/chatrelay/pkg/logger"
)

func main() {
	debug, _ := strconv.ParseBool(os.Getenv("LOG_DEBUG"))

	// Set up logger
	logger := logger.NewLambdaLogger(debug)
	defer logger.Sync()

	config := forwarder.LoadConfig()
	logger.Info("chatrelay lambda starting",
		zap.String("inference_url", config.InferenceURL),
		zap.Duration("timeout", config.Timeout),
		zap.Bool("debug", debug),
	)

	f, err := forwarder.New(config, logger)
	if err != nil {
		logger.Fatal("failed to create forwarder", zap.Error(err))
	}

	lambda.Start(f.Handle)
}
