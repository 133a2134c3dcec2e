package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	"github.com/captainpacket/fwd/internal/config"
	"github.com/captainpacket/fwd/internal/models"
)

// STSAPI is the subset of the STS client used by the credential resolver.
type STSAPI interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
	AssumeRole(ctx context.Context, params *sts.AssumeRoleInput, optFns ...func(*sts.Options)) (*sts.AssumeRoleOutput, error)
}

// CredentialResolver produces per-account credentials by assuming the
// organization access role with the management credentials. The management
// account itself is served the management credentials verbatim, no network
// call involved.
type CredentialResolver struct {
	api               STSAPI
	management        models.Credentials
	managementAccount string
}

// NewCredentialResolver builds a resolver backed by an STS client running
// under the management credentials.
func NewCredentialResolver(api STSAPI, management models.Credentials, managementAccount string) *CredentialResolver {
	return &CredentialResolver{
		api:               api,
		management:        management,
		managementAccount: managementAccount,
	}
}

// ForAccount returns credentials scoped to the given account.
func (r *CredentialResolver) ForAccount(ctx context.Context, accountID string) (models.Credentials, error) {
	if accountID == r.managementAccount {
		return r.management, nil
	}

	out, err := r.api.AssumeRole(ctx, &sts.AssumeRoleInput{
		RoleArn:         aws.String(fmt.Sprintf("arn:aws:iam::%s:role/%s", accountID, config.OrganizationAccessRole)),
		RoleSessionName: aws.String("AssumeRole-" + accountID),
	})
	if err != nil {
		return models.Credentials{}, &models.CredentialError{AccountID: accountID, Cause: err}
	}

	c := out.Credentials
	return models.Credentials{
		AccessKeyID:     aws.ToString(c.AccessKeyId),
		SecretAccessKey: aws.ToString(c.SecretAccessKey),
		SessionToken:    aws.ToString(c.SessionToken),
	}, nil
}

// CurrentAccount returns the account ID the given STS client operates in.
func CurrentAccount(ctx context.Context, api STSAPI) (string, error) {
	out, err := api.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return "", &models.CredentialError{Cause: err}
	}
	return aws.ToString(out.Account), nil
}
