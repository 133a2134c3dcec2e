package config

// FwdAccountID is the Forward Networks AWS account trusted with read-only
// access when an external ID is used.
const FwdAccountID = "453418124061"

// Defaults for the Forward Enterprise instance that receives the inventory.
const (
	DefaultAppHost   = "fwd.app"
	DefaultNetworkID = "154820"
	DefaultSetupID   = "aws_collect"
)

// Default input and output file names, resolved against the working
// directory unless overridden.
const (
	DefaultSetupCSV       = "fwd_setup.csv"
	DefaultRegionsFile    = "regions.txt"
	DefaultAppCredsFile   = "creds.txt"
	DefaultOutputFilename = "fwd_accounts_data.json"
)

// ReadOnlyPolicyName is the customer-managed policy created in every
// account of the organization.
const ReadOnlyPolicyName = "Forward_Enterprise"

// ReadOnlyPolicyDocument grants the read-only actions the collector needs.
const ReadOnlyPolicyDocument = `{ "Version": "2012-10-17", ` +
	`"Statement": [{ "Effect": "Allow", ` +
	`"Action": [ "autoscaling:Describe*", "cloudwatch:ListMetrics", ` +
	`"cloudwatch:GetMetricStatistics", "cloudwatch:Describe*", ` +
	`"directconnect:Describe*", "ec2:Describe*", "ec2:Get*", "ec2:Search*", ` +
	`"globalaccelerator:List*", "workspaces:Describe*", ` +
	`"elasticloadbalancing:Describe*", "network-firewall:Describe*", ` +
	`"network-firewall:List*", "organizations:ListAccounts"], ` +
	`"Resource": "*"}]}`

// ReadOnlyRoleName is the IAM role created in every account of the
// organization.
const ReadOnlyRoleName = "ForwardReadOnlyAccess"

// TrustedAccountPlaceholder and ExternalIDPlaceholder are the substitution
// markers inside the two trust-document templates.
const (
	TrustedAccountPlaceholder = "###TRUSTED ACCOUNT ID###"
	ExternalIDPlaceholder     = "###EXTERNAL ID###"
)

// AssumeRolePolicyDocument trusts an account inside the organization.
const AssumeRolePolicyDocument = `{ "Version": "2012-10-17", ` +
	`"Statement": [{ "Effect": "Allow", ` +
	`"Principal": { "AWS": "arn:aws:iam::` + TrustedAccountPlaceholder + `:root"}, ` +
	`"Action": "sts:AssumeRole", "Condition": {}}]}`

// AssumeRolePolicyDocumentExternalID trusts the Forward Networks account,
// gated on an sts:ExternalId condition.
const AssumeRolePolicyDocumentExternalID = `{ "Version": "2012-10-17", ` +
	`"Statement": [{ "Effect": "Allow", ` +
	`"Principal": { "AWS": "arn:aws:iam::` + FwdAccountID + `:root"}, ` +
	`"Action": "sts:AssumeRole", ` +
	`"Condition": {"StringEquals": {"sts:ExternalId": "` + ExternalIDPlaceholder + `"}}}]}`

// OrganizationAccessRole is the role that exists by default in every member
// account and allows admin access from the management account.
const OrganizationAccessRole = "OrganizationAccountAccessRole"
