// internal/cloud/aws/client.go
package aws

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	"github.com/aws/aws-sdk-go-v2/config"
	awscreds "github.com/aws/aws-sdk-go-v2/credentials"

	"github.com/captainpacket/fwd/internal/models"
)

// maxRetryAttempts bounds the SDK's standard retryer. Throttling beyond
// this surfaces as an ordinary error in the account's outcome instead of
// blocking the task indefinitely.
const maxRetryAttempts = 6

// LoadConfig builds an AWS config bound to the given static or session
// credentials, with bounded standard-mode retries.
func LoadConfig(ctx context.Context, creds models.Credentials) (aws.Config, error) {
	return config.LoadDefaultConfig(ctx,
		config.WithCredentialsProvider(
			awscreds.NewStaticCredentialsProvider(creds.AccessKeyID, creds.SecretAccessKey, creds.SessionToken),
		),
		config.WithRetryer(func() aws.Retryer {
			return retry.NewStandard(func(o *retry.StandardOptions) {
				o.MaxAttempts = maxRetryAttempts
			})
		}),
		config.WithRegion("us-east-1"),
	)
}
