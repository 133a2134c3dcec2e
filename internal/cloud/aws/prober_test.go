package aws

import (
	"context"
	"errors"
	"testing"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	awsiam "github.com/aws/aws-sdk-go-v2/service/iam"
	iamtypes "github.com/aws/aws-sdk-go-v2/service/iam/types"

	"github.com/captainpacket/fwd/internal/models"
)

// mockIAMAPI satisfies IAMAPI with overridable behavior per call.
type mockIAMAPI struct {
	listRolesFunc        func(ctx context.Context, params *awsiam.ListRolesInput, optFns ...func(*awsiam.Options)) (*awsiam.ListRolesOutput, error)
	listPoliciesFunc     func(ctx context.Context, params *awsiam.ListPoliciesInput, optFns ...func(*awsiam.Options)) (*awsiam.ListPoliciesOutput, error)
	createPolicyFunc     func(ctx context.Context, params *awsiam.CreatePolicyInput, optFns ...func(*awsiam.Options)) (*awsiam.CreatePolicyOutput, error)
	createRoleFunc       func(ctx context.Context, params *awsiam.CreateRoleInput, optFns ...func(*awsiam.Options)) (*awsiam.CreateRoleOutput, error)
	attachRolePolicyFunc func(ctx context.Context, params *awsiam.AttachRolePolicyInput, optFns ...func(*awsiam.Options)) (*awsiam.AttachRolePolicyOutput, error)
	detachRolePolicyFunc func(ctx context.Context, params *awsiam.DetachRolePolicyInput, optFns ...func(*awsiam.Options)) (*awsiam.DetachRolePolicyOutput, error)
	deletePolicyFunc     func(ctx context.Context, params *awsiam.DeletePolicyInput, optFns ...func(*awsiam.Options)) (*awsiam.DeletePolicyOutput, error)
	deleteRoleFunc       func(ctx context.Context, params *awsiam.DeleteRoleInput, optFns ...func(*awsiam.Options)) (*awsiam.DeleteRoleOutput, error)
}

func (m *mockIAMAPI) ListRoles(ctx context.Context, params *awsiam.ListRolesInput, optFns ...func(*awsiam.Options)) (*awsiam.ListRolesOutput, error) {
	return m.listRolesFunc(ctx, params, optFns...)
}

func (m *mockIAMAPI) ListPolicies(ctx context.Context, params *awsiam.ListPoliciesInput, optFns ...func(*awsiam.Options)) (*awsiam.ListPoliciesOutput, error) {
	return m.listPoliciesFunc(ctx, params, optFns...)
}

func (m *mockIAMAPI) CreatePolicy(ctx context.Context, params *awsiam.CreatePolicyInput, optFns ...func(*awsiam.Options)) (*awsiam.CreatePolicyOutput, error) {
	return m.createPolicyFunc(ctx, params, optFns...)
}

func (m *mockIAMAPI) CreateRole(ctx context.Context, params *awsiam.CreateRoleInput, optFns ...func(*awsiam.Options)) (*awsiam.CreateRoleOutput, error) {
	return m.createRoleFunc(ctx, params, optFns...)
}

func (m *mockIAMAPI) AttachRolePolicy(ctx context.Context, params *awsiam.AttachRolePolicyInput, optFns ...func(*awsiam.Options)) (*awsiam.AttachRolePolicyOutput, error) {
	return m.attachRolePolicyFunc(ctx, params, optFns...)
}

func (m *mockIAMAPI) DetachRolePolicy(ctx context.Context, params *awsiam.DetachRolePolicyInput, optFns ...func(*awsiam.Options)) (*awsiam.DetachRolePolicyOutput, error) {
	return m.detachRolePolicyFunc(ctx, params, optFns...)
}

func (m *mockIAMAPI) DeletePolicy(ctx context.Context, params *awsiam.DeletePolicyInput, optFns ...func(*awsiam.Options)) (*awsiam.DeletePolicyOutput, error) {
	return m.deletePolicyFunc(ctx, params, optFns...)
}

func (m *mockIAMAPI) DeleteRole(ctx context.Context, params *awsiam.DeleteRoleInput, optFns ...func(*awsiam.Options)) (*awsiam.DeleteRoleOutput, error) {
	return m.deleteRoleFunc(ctx, params, optFns...)
}

func TestRoleExistsAcrossPages(t *testing.T) {
	mock := &mockIAMAPI{
		listRolesFunc: func(ctx context.Context, params *awsiam.ListRolesInput, optFns ...func(*awsiam.Options)) (*awsiam.ListRolesOutput, error) {
			if params.Marker == nil {
				return &awsiam.ListRolesOutput{
					Roles:       []iamtypes.Role{{RoleName: awssdk.String("SomeOtherRole")}},
					IsTruncated: true,
					Marker:      awssdk.String("m1"),
				}, nil
			}
			return &awsiam.ListRolesOutput{
				Roles: []iamtypes.Role{{RoleName: awssdk.String("ForwardReadOnlyAccess")}},
			}, nil
		},
	}

	client := NewIAMClient(mock, "111111111111")
	exists, err := client.RoleExists(context.Background(), "ForwardReadOnlyAccess")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !exists {
		t.Error("expected role on second page to be found")
	}

	exists, err = client.RoleExists(context.Background(), "NoSuchRole")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if exists {
		t.Error("expected missing role to not be found")
	}
}

func TestPolicyExistsScopesToLocal(t *testing.T) {
	mock := &mockIAMAPI{
		listPoliciesFunc: func(ctx context.Context, params *awsiam.ListPoliciesInput, optFns ...func(*awsiam.Options)) (*awsiam.ListPoliciesOutput, error) {
			if params.Scope != iamtypes.PolicyScopeTypeLocal {
				t.Errorf("Scope = %v, want Local", params.Scope)
			}
			return &awsiam.ListPoliciesOutput{
				Policies: []iamtypes.Policy{{PolicyName: awssdk.String("Forward_Enterprise")}},
			}, nil
		},
	}

	client := NewIAMClient(mock, "111111111111")
	exists, err := client.PolicyExists(context.Background(), "Forward_Enterprise")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !exists {
		t.Error("expected policy to be found")
	}
}

func TestProbeFailureWrapsProbeError(t *testing.T) {
	cause := errors.New("AccessDenied")
	mock := &mockIAMAPI{
		listRolesFunc: func(ctx context.Context, params *awsiam.ListRolesInput, optFns ...func(*awsiam.Options)) (*awsiam.ListRolesOutput, error) {
			return nil, cause
		},
	}

	client := NewIAMClient(mock, "222222222222")
	_, err := client.RoleExists(context.Background(), "ForwardReadOnlyAccess")

	var probeErr *models.ProbeError
	if !errors.As(err, &probeErr) {
		t.Fatalf("expected ProbeError, got %T: %v", err, err)
	}
	if probeErr.AccountID != "222222222222" || probeErr.Resource != "role" {
		t.Errorf("ProbeError = %+v", probeErr)
	}
}
