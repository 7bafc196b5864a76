// Lambda entry point for the LINE webhook handler. Client handles are
// built once per execution environment and reused across invocations;
// credentials are still resolved per invocation inside the handler.
package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"

	"github.com/okelab/line-bot-lambda/internal/bot"
	"github.com/okelab/line-bot-lambda/internal/config"
	"github.com/okelab/line-bot-lambda/internal/logging"
	"github.com/okelab/line-bot-lambda/internal/secrets"
	"github.com/okelab/line-bot-lambda/internal/storage"
	"github.com/okelab/line-bot-lambda/internal/webhook"
)

func main() {
	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.NewDefault(cfg.LogLevel)

	if cfg.SecretName == "" {
		log.Fatal("SECRET_NAME is not set")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		log.Fatalf("loading AWS config: %v", err)
	}

	resolver := secrets.NewResolver(secretsmanager.NewFromConfig(awsCfg), cfg.SecretName)

	var uploader webhook.Uploader
	if cfg.UploadBucket != "" {
		uploader = storage.NewUploader(newS3Client(awsCfg, cfg), cfg.UploadBucket)
		logger.Info(ctx, "file uploads enabled", "bucket", cfg.UploadBucket)
	}

	factory := bot.Factory(func(channelSecret, channelToken string) (bot.Messenger, error) {
		return bot.NewLineMessenger(channelSecret, channelToken)
	})

	handler := webhook.NewHandler(resolver, factory, uploader, logger)
	lambda.Start(handler.Handle)
}

// newS3Client returns the regular client, or one aimed at a custom
// endpoint with static credentials for local object storage (MinIO-style).
func newS3Client(awsCfg aws.Config, cfg *config.Config) *s3.Client {
	if cfg.S3Endpoint == "" {
		return s3.NewFromConfig(awsCfg)
	}

	awsCfg.Credentials = credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, "")
	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.S3Endpoint)
		o.UsePathStyle = true
	})
}
