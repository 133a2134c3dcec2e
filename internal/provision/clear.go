package provision

import (
	"context"

	cloudaws "github.com/captainpacket/fwd/internal/cloud/aws"
	"github.com/captainpacket/fwd/internal/config"
	"github.com/captainpacket/fwd/internal/models"
)

// ClearAccount removes the read-only role and policy from one account. The
// role goes first since the policy cannot be deleted while attached. A
// resource that is already gone is reported as such, so clearing a
// half-provisioned account still cleans up the remainder.
func (r *Runner) ClearAccount(ctx context.Context, account models.Account) models.AccountOutcome {
	outcome := models.AccountOutcome{Account: account, Operation: models.OperationClear}

	client, err := r.client(ctx, account)
	if err != nil {
		outcome.Err = err
		return outcome
	}

	roleExists, err := client.RoleExists(ctx, config.ReadOnlyRoleName)
	if err != nil {
		outcome.Err = err
		return outcome
	}
	if roleExists {
		err := client.DeleteRole(ctx, config.ReadOnlyRoleName, config.ReadOnlyPolicyName)
		switch {
		case err == nil:
			r.statusf("Read-only role   deleted in account %s", account.ID)
		case cloudaws.IsNotFound(err):
			// Deleted by a concurrent run between probe and delete.
			r.statusf("Read-only role   does not exist in account %s", account.ID)
		default:
			outcome.Err = err
			return outcome
		}
	} else {
		r.statusf("Read-only role   does not exist in account %s", account.ID)
	}

	policyExists, err := client.PolicyExists(ctx, config.ReadOnlyPolicyName)
	if err != nil {
		outcome.Err = err
		return outcome
	}
	if policyExists {
		err := client.DeletePolicy(ctx, config.ReadOnlyPolicyName)
		switch {
		case err == nil:
			r.statusf("Read-only policy deleted in account %s", account.ID)
		case cloudaws.IsNotFound(err):
			r.statusf("Read-only policy does not exist in account %s", account.ID)
		default:
			outcome.Err = err
			return outcome
		}
	} else {
		r.statusf("Read-only policy does not exist in account %s", account.ID)
	}

	return outcome
}
