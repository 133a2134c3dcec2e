package provision

import (
	"context"

	cloudaws "github.com/captainpacket/fwd/internal/cloud/aws"
	"github.com/captainpacket/fwd/internal/config"
	"github.com/captainpacket/fwd/internal/models"
)

// SetupAccount provisions the read-only policy and role in one account.
// Whatever already exists is left alone, so re-running setup on a fully
// provisioned account reports "exists" for both resources and creates
// nothing.
func (r *Runner) SetupAccount(ctx context.Context, account models.Account, trustDocument string) models.AccountOutcome {
	outcome := models.AccountOutcome{Account: account, Operation: models.OperationSetup}

	client, err := r.client(ctx, account)
	if err != nil {
		outcome.Err = err
		return outcome
	}

	policyExists, err := client.PolicyExists(ctx, config.ReadOnlyPolicyName)
	if err != nil {
		outcome.Err = err
		return outcome
	}
	if policyExists {
		r.statusf("Read-only policy exists in account %s", account.ID)
	} else {
		_, err := client.CreatePolicy(ctx, config.ReadOnlyPolicyName, config.ReadOnlyPolicyDocument)
		switch {
		case err == nil:
			r.statusf("Read-only policy created in account %s", account.ID)
		case cloudaws.IsAlreadyExists(err):
			// Created by a concurrent run between probe and create.
			r.statusf("Read-only policy exists in account %s", account.ID)
		default:
			outcome.Err = err
			return outcome
		}
	}

	roleExists, err := client.RoleExists(ctx, config.ReadOnlyRoleName)
	if err != nil {
		outcome.Err = err
		return outcome
	}
	if roleExists {
		r.statusf("Read-only role   exists in account %s", account.ID)
	} else {
		err := client.CreateRole(ctx, config.ReadOnlyRoleName, trustDocument, config.ReadOnlyPolicyName)
		switch {
		case err == nil:
			r.statusf("Read-only role   created in account %s", account.ID)
		case cloudaws.IsAlreadyExists(err):
			r.statusf("Read-only role   exists in account %s", account.ID)
		default:
			outcome.Err = err
			return outcome
		}
	}

	outcome.RoleArn = client.RoleArn(config.ReadOnlyRoleName)
	return outcome
}
