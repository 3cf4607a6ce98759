package database

import (
	"context"

	"scmicro_tracker/internal/infrastructure/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/pkg/errors"
)

// ConnectDynamoDB creates a DynamoDB client from the service config.
//
// Static credentials are always set: DynamoDB Local ignores them but the SDK
// refuses to sign without them.
func ConnectDynamoDB(ctx context.Context, opts config.DynamoDBOptions) (*dynamodb.Client, error) {
	cfg, err := NewAWSConfig(ctx, opts)
	if err != nil {
		return nil, errors.Wrap(err, "load aws config")
	}
	return dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
		}
	}), nil
}

func NewAWSConfig(ctx context.Context, opts config.DynamoDBOptions) (aws.Config, error) {
	creds := credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, "")
	return awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(opts.Region),
		awsconfig.WithCredentialsProvider(creds),
	)
}
