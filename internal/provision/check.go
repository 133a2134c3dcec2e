package provision

import (
	"context"

	"github.com/captainpacket/fwd/internal/config"
	"github.com/captainpacket/fwd/internal/models"
)

// CheckAccount reports whether the read-only role and policy exist in one
// account. Probe-only, nothing is mutated.
func (r *Runner) CheckAccount(ctx context.Context, account models.Account) models.AccountOutcome {
	outcome := models.AccountOutcome{Account: account, Operation: models.OperationCheck}

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
		r.statusf("Read-only role   exists in account %s", account.ID)
		outcome.RoleArn = client.RoleArn(config.ReadOnlyRoleName)
	} else {
		r.statusf("Read-only role   does not exist in account %s", account.ID)
	}

	policyExists, err := client.PolicyExists(ctx, config.ReadOnlyPolicyName)
	if err != nil {
		outcome.Err = err
		return outcome
	}
	if policyExists {
		r.statusf("Read-only policy exists in account %s", account.ID)
	} else {
		r.statusf("Read-only policy does not exist in account %s", account.ID)
	}

	return outcome
}
