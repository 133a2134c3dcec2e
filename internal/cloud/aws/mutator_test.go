package aws

import (
	"context"
	"errors"
	"testing"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	awsiam "github.com/aws/aws-sdk-go-v2/service/iam"
	iamtypes "github.com/aws/aws-sdk-go-v2/service/iam/types"
	"github.com/aws/smithy-go"

	"github.com/captainpacket/fwd/internal/models"
)

func TestCreatePolicyReturnsArn(t *testing.T) {
	mock := &mockIAMAPI{
		createPolicyFunc: func(ctx context.Context, params *awsiam.CreatePolicyInput, optFns ...func(*awsiam.Options)) (*awsiam.CreatePolicyOutput, error) {
			if awssdk.ToString(params.Path) != "/" {
				t.Errorf("Path = %q, want /", awssdk.ToString(params.Path))
			}
			return &awsiam.CreatePolicyOutput{
				Policy: &iamtypes.Policy{
					Arn: awssdk.String("arn:aws:iam::111111111111:policy/Forward_Enterprise"),
				},
			}, nil
		},
	}

	client := NewIAMClient(mock, "111111111111")
	arn, err := client.CreatePolicy(context.Background(), "Forward_Enterprise", "{}")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if arn != "arn:aws:iam::111111111111:policy/Forward_Enterprise" {
		t.Errorf("arn = %s", arn)
	}
}

func TestCreateRoleAttachesReconstructedPolicyArn(t *testing.T) {
	var attachedArn string
	mock := &mockIAMAPI{
		createRoleFunc: func(ctx context.Context, params *awsiam.CreateRoleInput, optFns ...func(*awsiam.Options)) (*awsiam.CreateRoleOutput, error) {
			return &awsiam.CreateRoleOutput{}, nil
		},
		attachRolePolicyFunc: func(ctx context.Context, params *awsiam.AttachRolePolicyInput, optFns ...func(*awsiam.Options)) (*awsiam.AttachRolePolicyOutput, error) {
			attachedArn = awssdk.ToString(params.PolicyArn)
			return &awsiam.AttachRolePolicyOutput{}, nil
		},
	}

	client := NewIAMClient(mock, "222222222222")
	if err := client.CreateRole(context.Background(), "ForwardReadOnlyAccess", "{}", "Forward_Enterprise"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if attachedArn != "arn:aws:iam::222222222222:policy/Forward_Enterprise" {
		t.Errorf("attached policy arn = %s", attachedArn)
	}
}

func TestCreateRoleCompensatesFailedAttach(t *testing.T) {
	deletedRole := ""
	mock := &mockIAMAPI{
		createRoleFunc: func(ctx context.Context, params *awsiam.CreateRoleInput, optFns ...func(*awsiam.Options)) (*awsiam.CreateRoleOutput, error) {
			return &awsiam.CreateRoleOutput{}, nil
		},
		attachRolePolicyFunc: func(ctx context.Context, params *awsiam.AttachRolePolicyInput, optFns ...func(*awsiam.Options)) (*awsiam.AttachRolePolicyOutput, error) {
			return nil, &smithy.GenericAPIError{Code: "NoSuchEntity", Message: "policy not found"}
		},
		deleteRoleFunc: func(ctx context.Context, params *awsiam.DeleteRoleInput, optFns ...func(*awsiam.Options)) (*awsiam.DeleteRoleOutput, error) {
			deletedRole = awssdk.ToString(params.RoleName)
			return &awsiam.DeleteRoleOutput{}, nil
		},
	}

	client := NewIAMClient(mock, "222222222222")
	err := client.CreateRole(context.Background(), "ForwardReadOnlyAccess", "{}", "Forward_Enterprise")
	if err == nil {
		t.Fatal("expected attach failure to surface")
	}
	if deletedRole != "ForwardReadOnlyAccess" {
		t.Errorf("expected orphaned role to be deleted, DeleteRole called with %q", deletedRole)
	}

	var mutErr *models.MutationError
	if !errors.As(err, &mutErr) {
		t.Fatalf("expected MutationError, got %T: %v", err, err)
	}
	if mutErr.Operation != "attach" {
		t.Errorf("Operation = %s, want attach", mutErr.Operation)
	}
}

func TestDeleteRoleDetachesFirst(t *testing.T) {
	var calls []string
	mock := &mockIAMAPI{
		detachRolePolicyFunc: func(ctx context.Context, params *awsiam.DetachRolePolicyInput, optFns ...func(*awsiam.Options)) (*awsiam.DetachRolePolicyOutput, error) {
			calls = append(calls, "detach")
			if awssdk.ToString(params.PolicyArn) != "arn:aws:iam::333333333333:policy/Forward_Enterprise" {
				t.Errorf("detach arn = %s", awssdk.ToString(params.PolicyArn))
			}
			return &awsiam.DetachRolePolicyOutput{}, nil
		},
		deleteRoleFunc: func(ctx context.Context, params *awsiam.DeleteRoleInput, optFns ...func(*awsiam.Options)) (*awsiam.DeleteRoleOutput, error) {
			calls = append(calls, "delete")
			return &awsiam.DeleteRoleOutput{}, nil
		},
	}

	client := NewIAMClient(mock, "333333333333")
	if err := client.DeleteRole(context.Background(), "ForwardReadOnlyAccess", "Forward_Enterprise"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(calls) != 2 || calls[0] != "detach" || calls[1] != "delete" {
		t.Errorf("calls = %v, want [detach delete]", calls)
	}
}

func TestErrorClassification(t *testing.T) {
	exists := &smithy.GenericAPIError{Code: "EntityAlreadyExists", Message: "already there"}
	missing := &smithy.GenericAPIError{Code: "NoSuchEntity", Message: "gone"}

	if !IsAlreadyExists(exists) || IsAlreadyExists(missing) {
		t.Error("IsAlreadyExists misclassified")
	}
	if !IsNotFound(missing) || IsNotFound(exists) {
		t.Error("IsNotFound misclassified")
	}

	// Wrapped inside a MutationError the classification still holds.
	wrapped := &models.MutationError{AccountID: "1", Resource: "policy", Operation: "create", Cause: exists}
	if !IsAlreadyExists(wrapped) {
		t.Error("expected classification through MutationError wrapper")
	}
}
