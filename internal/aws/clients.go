package aws

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
)

// Clients bundles the AWS service clients the relay uses.
type Clients struct {
	CloudWatch *cloudwatch.Client
}

// NewClients loads AWS config and returns concrete service clients.
func NewClients(ctx context.Context) (*Clients, error) {
	cfg, err := LoadConfig(ctx)
	if err != nil {
		return nil, err
	}

	return &Clients{
		CloudWatch: cloudwatch.NewFromConfig(cfg),
	}, nil
}
