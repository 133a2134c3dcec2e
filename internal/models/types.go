package models

// Credentials is a set of AWS API credentials. Management credentials are
// read from the setup CSV and carry an empty session token; per-account
// credentials come from STS and are session-scoped.
type Credentials struct {
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
}

// Account identifies one member account of the organization.
type Account struct {
	ID   string
	Name string
}

// Operation is the provisioning action performed against an account.
type Operation string

const (
	OperationSetup Operation = "setup"
	OperationCheck Operation = "check"
	OperationClear Operation = "clear"
)

// AccountOutcome records the result of running one operation against one
// account. Exactly one outcome exists per account per run; a failed account
// keeps its slot with Err set instead of being dropped.
type AccountOutcome struct {
	Account   Account
	Operation Operation
	RoleArn   string
	Err       error
}

// Succeeded reports whether the account's task completed without error.
func (o AccountOutcome) Succeeded() bool {
	return o.Err == nil
}

// RunContext carries the per-run parameters every account task needs. It is
// built once in the command action and treated as immutable afterwards.
type RunContext struct {
	ManagementAccount string
	TrustedAccount    string
	ExternalID        string
	Credentials       Credentials
	Concurrency       int
}

// AssumeRoleInfo is one entry of the inventory payload's assumeRoleInfos
// array. Enabled is a pointer so a failed account serializes as null rather
// than false, which is what the inventory API expects.
type AssumeRoleInfo struct {
	AccountID   string  `json:"accountId"`
	AccountName string  `json:"accountName"`
	ExternalID  *string `json:"externalId"`
	Enabled     *bool   `json:"enabled"`
	RoleArn     string  `json:"roleArn,omitempty"`
}

// CloudAccountPayload is the body posted to the inventory API and written
// verbatim to the local artifact file.
type CloudAccountPayload struct {
	Name            string           `json:"name"`
	Type            string           `json:"type"`
	Collect         bool             `json:"collect"`
	AssumeRoleInfos []AssumeRoleInfo `json:"assumeRoleInfos"`
	Regions         map[string]int64 `json:"regions"`
	ProxyServerID   string           `json:"proxyServerId,omitempty"`
}

// ProxyDescriptor is the response of the inventory API's proxy lookup.
type ProxyDescriptor struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}
