// Lambda entry point for the API Gateway request authorizer.
package main

import (
	"github.com/aws/aws-lambda-go/lambda"

	"github.com/okelab/line-bot-lambda/internal/authorizer"
	"github.com/okelab/line-bot-lambda/internal/config"
	"github.com/okelab/line-bot-lambda/internal/logging"
)

func main() {
	cfg := config.LoadConfig()
	logger := logging.NewDefault(cfg.LogLevel)

	lambda.Start(authorizer.New(logger).Handle)
}
