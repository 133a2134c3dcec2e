package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsiam "github.com/aws/aws-sdk-go-v2/service/iam"

	"github.com/captainpacket/fwd/internal/models"
)

// policyArn reconstructs the ARN of a customer-managed policy from the
// account the client is scoped to. Avoids one lookup call per mutation.
func (c *IAMClient) policyArn(policyName string) string {
	return fmt.Sprintf("arn:aws:iam::%s:policy/%s", c.accountID, policyName)
}

// RoleArn returns the ARN the given role has (or would have) in this
// account.
func (c *IAMClient) RoleArn(roleName string) string {
	return fmt.Sprintf("arn:aws:iam::%s:role/%s", c.accountID, roleName)
}

// CreatePolicy creates a customer-managed policy and returns its ARN. The
// caller is expected to have probed non-existence first; creating an
// existing policy surfaces the API's already-exists error wrapped in a
// MutationError.
func (c *IAMClient) CreatePolicy(ctx context.Context, policyName, document string) (string, error) {
	out, err := c.api.CreatePolicy(ctx, &awsiam.CreatePolicyInput{
		PolicyName:     aws.String(policyName),
		Path:           aws.String("/"),
		PolicyDocument: aws.String(document),
	})
	if err != nil {
		return "", &models.MutationError{AccountID: c.accountID, Resource: "policy", Operation: "create", Cause: err}
	}
	return aws.ToString(out.Policy.Arn), nil
}

// CreateRole creates a role with the given trust document and attaches the
// named policy to it. If the attachment fails the just-created role is
// deleted again so a retry starts from a clean slate; the attach error is
// surfaced either way.
func (c *IAMClient) CreateRole(ctx context.Context, roleName, trustDocument, policyName string) error {
	_, err := c.api.CreateRole(ctx, &awsiam.CreateRoleInput{
		RoleName:                 aws.String(roleName),
		Path:                     aws.String("/"),
		AssumeRolePolicyDocument: aws.String(trustDocument),
	})
	if err != nil {
		return &models.MutationError{AccountID: c.accountID, Resource: "role", Operation: "create", Cause: err}
	}

	_, err = c.api.AttachRolePolicy(ctx, &awsiam.AttachRolePolicyInput{
		RoleName:  aws.String(roleName),
		PolicyArn: aws.String(c.policyArn(policyName)),
	})
	if err != nil {
		attachErr := &models.MutationError{AccountID: c.accountID, Resource: "policy", Operation: "attach", Cause: err}
		if _, derr := c.api.DeleteRole(ctx, &awsiam.DeleteRoleInput{RoleName: aws.String(roleName)}); derr != nil {
			return &models.MutationError{
				AccountID: c.accountID,
				Resource:  "role",
				Operation: "create",
				Cause:     fmt.Errorf("%w; cleanup of orphaned role also failed: %v", attachErr, derr),
			}
		}
		return attachErr
	}
	return nil
}

// DeletePolicy deletes the customer-managed policy by reconstructed ARN.
func (c *IAMClient) DeletePolicy(ctx context.Context, policyName string) error {
	_, err := c.api.DeletePolicy(ctx, &awsiam.DeletePolicyInput{
		PolicyArn: aws.String(c.policyArn(policyName)),
	})
	if err != nil {
		return &models.MutationError{AccountID: c.accountID, Resource: "policy", Operation: "delete", Cause: err}
	}
	return nil
}

// DeleteRole detaches the named policy from the role and deletes the role.
func (c *IAMClient) DeleteRole(ctx context.Context, roleName, policyName string) error {
	_, err := c.api.DetachRolePolicy(ctx, &awsiam.DetachRolePolicyInput{
		RoleName:  aws.String(roleName),
		PolicyArn: aws.String(c.policyArn(policyName)),
	})
	if err != nil {
		return &models.MutationError{AccountID: c.accountID, Resource: "policy", Operation: "detach", Cause: err}
	}

	_, err = c.api.DeleteRole(ctx, &awsiam.DeleteRoleInput{
		RoleName: aws.String(roleName),
	})
	if err != nil {
		return &models.MutationError{AccountID: c.accountID, Resource: "role", Operation: "delete", Cause: err}
	}
	return nil
}
