package metrics

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
)

const namespace = "FBRInvoiceRelay"

// Submission outcomes recorded as a metric dimension.
const (
	OutcomeSuccess      = "success"
	OutcomeFailed       = "failed"
	OutcomeUnauthorized = "unauthorized"
	OutcomeUnreachable  = "unreachable"
)

// CloudWatchAPI is the subset of the CloudWatch client the publisher uses.
type CloudWatchAPI interface {
	PutMetricData(ctx context.Context, params *cloudwatch.PutMetricDataInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error)
}

// Publisher emits one counter per submission, dimensioned by client and
// outcome. A nil Publisher (or nil client) is a no-op so local runs need
// no AWS credentials.
type Publisher struct {
	client CloudWatchAPI
}

// NewPublisher returns a Publisher bound to a CloudWatch client.
func NewPublisher(client CloudWatchAPI) *Publisher {
	return &Publisher{client: client}
}

// RecordSubmission counts one submission for clientID with the given outcome.
func (p *Publisher) RecordSubmission(ctx context.Context, clientID, outcome string) error {
	if p == nil || p.client == nil {
		return nil
	}

	input := &cloudwatch.PutMetricDataInput{
		Namespace: awsString(namespace),
		MetricData: []cwtypes.MetricDatum{
			{
				MetricName: awsString("InvoiceSubmission"),
				Value:      awsFloat64(1),
				Unit:       cwtypes.StandardUnitCount,
				Dimensions: []cwtypes.Dimension{
					{Name: awsString("ClientID"), Value: awsString(clientID)},
					{Name: awsString("Outcome"), Value: awsString(outcome)},
				},
			},
		},
	}

	if _, err := p.client.PutMetricData(ctx, input); err != nil {
		return fmt.Errorf("put metric data: %w", err)
	}
	return nil
}

// helpers
func awsString(s string) *string    { return &s }
func awsFloat64(f float64) *float64 { return &f }
