package provision

import (
	"bytes"
	"context"
	"io"
	"log"

	"github.com/captainpacket/fwd/internal/models"
)

// fakeCredentialSource hands out zero-value credentials, or an error for
// accounts listed in deny.
type fakeCredentialSource struct {
	deny map[string]error
}

func (f *fakeCredentialSource) ForAccount(ctx context.Context, accountID string) (models.Credentials, error) {
	if err, ok := f.deny[accountID]; ok {
		return models.Credentials{}, err
	}
	return models.Credentials{AccessKeyID: "AKIA-" + accountID}, nil
}

// fakeAccountClient simulates one account's IAM surface with in-memory
// state. Error fields inject failures per call site.
type fakeAccountClient struct {
	accountID string

	roleExists   bool
	policyExists bool

	roleProbeErr    error
	policyProbeErr  error
	createPolicyErr error
	createRoleErr   error
	deletePolicyErr error
	deleteRoleErr   error

	policiesCreated int
	rolesCreated    int
}

func (f *fakeAccountClient) RoleExists(ctx context.Context, roleName string) (bool, error) {
	if f.roleProbeErr != nil {
		return false, f.roleProbeErr
	}
	return f.roleExists, nil
}

func (f *fakeAccountClient) PolicyExists(ctx context.Context, policyName string) (bool, error) {
	if f.policyProbeErr != nil {
		return false, f.policyProbeErr
	}
	return f.policyExists, nil
}

func (f *fakeAccountClient) CreatePolicy(ctx context.Context, policyName, document string) (string, error) {
	if f.createPolicyErr != nil {
		return "", f.createPolicyErr
	}
	f.policyExists = true
	f.policiesCreated++
	return "arn:aws:iam::" + f.accountID + ":policy/" + policyName, nil
}

func (f *fakeAccountClient) CreateRole(ctx context.Context, roleName, trustDocument, policyName string) error {
	if f.createRoleErr != nil {
		return f.createRoleErr
	}
	f.roleExists = true
	f.rolesCreated++
	return nil
}

func (f *fakeAccountClient) DeletePolicy(ctx context.Context, policyName string) error {
	if f.deletePolicyErr != nil {
		return f.deletePolicyErr
	}
	f.policyExists = false
	return nil
}

func (f *fakeAccountClient) DeleteRole(ctx context.Context, roleName, policyName string) error {
	if f.deleteRoleErr != nil {
		return f.deleteRoleErr
	}
	f.roleExists = false
	return nil
}

func (f *fakeAccountClient) RoleArn(roleName string) string {
	return "arn:aws:iam::" + f.accountID + ":role/" + roleName
}

// newTestRunner wires a Runner over fake clients, one per account ID, with
// status lines captured in the returned buffer.
func newTestRunner(clients map[string]*fakeAccountClient, deny map[string]error) (*Runner, *bytes.Buffer) {
	var out bytes.Buffer
	runner := &Runner{
		Creds: &fakeCredentialSource{deny: deny},
		NewClient: func(ctx context.Context, account models.Account, creds models.Credentials) (AccountClient, error) {
			client, ok := clients[account.ID]
			if !ok {
				client = &fakeAccountClient{accountID: account.ID}
				clients[account.ID] = client
			}
			client.accountID = account.ID
			return client, nil
		},
		Out:   &out,
		Debug: log.New(io.Discard, "", 0),
	}
	return runner, &out
}
