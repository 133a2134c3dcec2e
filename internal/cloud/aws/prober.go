package aws

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsiam "github.com/aws/aws-sdk-go-v2/service/iam"
	iamtypes "github.com/aws/aws-sdk-go-v2/service/iam/types"

	"github.com/captainpacket/fwd/internal/models"
)

// IAMAPI is the subset of the IAM client used by the prober and mutator.
type IAMAPI interface {
	ListRoles(ctx context.Context, params *awsiam.ListRolesInput, optFns ...func(*awsiam.Options)) (*awsiam.ListRolesOutput, error)
	ListPolicies(ctx context.Context, params *awsiam.ListPoliciesInput, optFns ...func(*awsiam.Options)) (*awsiam.ListPoliciesOutput, error)
	CreatePolicy(ctx context.Context, params *awsiam.CreatePolicyInput, optFns ...func(*awsiam.Options)) (*awsiam.CreatePolicyOutput, error)
	CreateRole(ctx context.Context, params *awsiam.CreateRoleInput, optFns ...func(*awsiam.Options)) (*awsiam.CreateRoleOutput, error)
	AttachRolePolicy(ctx context.Context, params *awsiam.AttachRolePolicyInput, optFns ...func(*awsiam.Options)) (*awsiam.AttachRolePolicyOutput, error)
	DetachRolePolicy(ctx context.Context, params *awsiam.DetachRolePolicyInput, optFns ...func(*awsiam.Options)) (*awsiam.DetachRolePolicyOutput, error)
	DeletePolicy(ctx context.Context, params *awsiam.DeletePolicyInput, optFns ...func(*awsiam.Options)) (*awsiam.DeletePolicyOutput, error)
	DeleteRole(ctx context.Context, params *awsiam.DeleteRoleInput, optFns ...func(*awsiam.Options)) (*awsiam.DeleteRoleOutput, error)
}

// IAMClient performs all role and policy operations inside one account's
// credential scope. accountID is the account the credentials belong to and
// is used to reconstruct policy ARNs without extra lookups.
type IAMClient struct {
	api       IAMAPI
	accountID string
}

func NewIAMClient(api IAMAPI, accountID string) *IAMClient {
	return &IAMClient{api: api, accountID: accountID}
}

// RoleExists reports whether an IAM role with the given name exists in the
// account. All pages of the role listing are consulted.
func (c *IAMClient) RoleExists(ctx context.Context, roleName string) (bool, error) {
	var marker *string
	for {
		out, err := c.api.ListRoles(ctx, &awsiam.ListRolesInput{Marker: marker})
		if err != nil {
			return false, &models.ProbeError{AccountID: c.accountID, Resource: "role", Cause: err}
		}
		for _, r := range out.Roles {
			if aws.ToString(r.RoleName) == roleName {
				return true, nil
			}
		}
		if !out.IsTruncated {
			return false, nil
		}
		marker = out.Marker
	}
}

// PolicyExists reports whether a customer-managed policy with the given
// name exists in the account.
func (c *IAMClient) PolicyExists(ctx context.Context, policyName string) (bool, error) {
	var marker *string
	for {
		out, err := c.api.ListPolicies(ctx, &awsiam.ListPoliciesInput{
			Scope:      iamtypes.PolicyScopeTypeLocal,
			PathPrefix: aws.String("/"),
			Marker:     marker,
		})
		if err != nil {
			return false, &models.ProbeError{AccountID: c.accountID, Resource: "policy", Cause: err}
		}
		for _, p := range out.Policies {
			if aws.ToString(p.PolicyName) == policyName {
				return true, nil
			}
		}
		if !out.IsTruncated {
			return false, nil
		}
		marker = out.Marker
	}
}
