package provision

import (
	"context"
	"fmt"
	"io"
	"log"

	awsiam "github.com/aws/aws-sdk-go-v2/service/iam"

	cloudaws "github.com/captainpacket/fwd/internal/cloud/aws"
	"github.com/captainpacket/fwd/internal/models"
)

// CredentialSource resolves per-account credentials for the runner.
type CredentialSource interface {
	ForAccount(ctx context.Context, accountID string) (models.Credentials, error)
}

// AccountClient is the per-account IAM surface the operations run against.
// *cloudaws.IAMClient implements it; tests substitute fakes.
type AccountClient interface {
	RoleExists(ctx context.Context, roleName string) (bool, error)
	PolicyExists(ctx context.Context, policyName string) (bool, error)
	CreatePolicy(ctx context.Context, policyName, document string) (string, error)
	CreateRole(ctx context.Context, roleName, trustDocument, policyName string) error
	DeletePolicy(ctx context.Context, policyName string) error
	DeleteRole(ctx context.Context, roleName, policyName string) error
	RoleArn(roleName string) string
}

// ClientFactory builds an AccountClient scoped to one account's
// credentials.
type ClientFactory func(ctx context.Context, account models.Account, creds models.Credentials) (AccountClient, error)

// NewAWSClientFactory returns the production factory: an IAM client over a
// fresh AWS config bound to the account's session credentials.
func NewAWSClientFactory() ClientFactory {
	return func(ctx context.Context, account models.Account, creds models.Credentials) (AccountClient, error) {
		cfg, err := cloudaws.LoadConfig(ctx, creds)
		if err != nil {
			return nil, &models.CredentialError{AccountID: account.ID, Cause: err}
		}
		return cloudaws.NewIAMClient(awsiam.NewFromConfig(cfg), account.ID), nil
	}
}

// Runner executes the per-account operation sequences. Out receives the
// user-visible status lines; Debug receives diagnostics and is discarded
// unless verbose mode is on.
type Runner struct {
	Creds     CredentialSource
	NewClient ClientFactory
	Out       io.Writer
	Debug     *log.Logger
}

// client resolves the account's credentials and builds its IAM client.
func (r *Runner) client(ctx context.Context, account models.Account) (AccountClient, error) {
	creds, err := r.Creds.ForAccount(ctx, account.ID)
	if err != nil {
		return nil, err
	}
	r.Debug.Printf("resolved credentials for account %s", account.ID)
	return r.NewClient(ctx, account, creds)
}

func (r *Runner) statusf(format string, args ...any) {
	fmt.Fprintf(r.Out, format+"\n", args...)
}
