package database

import (
	"context"

	appconfig "topspot/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// ConnectDynamoDB creates a DynamoDB client. When cfg.Endpoint is set (for
// example http://dynamodb:8000) requests go to that local endpoint.
func ConnectDynamoDB(ctx context.Context, cfg appconfig.DynamoDBConfig) (*dynamodb.Client, error) {
	awsCfg, err := NewAWSConfig(ctx, cfg.Region, cfg.AccessKeyID, cfg.SecretAccessKey)
	if err != nil {
		return nil, err
	}
	return dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	}), nil
}

// NewAWSConfig loads the shared AWS configuration. Static credentials are
// used when both keys are given, otherwise the default chain applies.
func NewAWSConfig(ctx context.Context, region, accessKeyID, secretAccessKey string) (aws.Config, error) {
	loadOpts := []func(*config.LoadOptions) error{
		config.WithRegion(region),
	}
	// Local DynamoDB does not validate credentials, but the AWS SDK requires them.
	if accessKeyID != "" && secretAccessKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKeyID, secretAccessKey, ""),
		))
	}
	return config.LoadDefaultConfig(ctx, loadOpts...)
}
