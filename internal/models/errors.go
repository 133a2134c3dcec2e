package models

import "fmt"

// CredentialError represents a failure to obtain usable credentials for an
// account. For a member account it is fatal for that account only; for the
// management account it is fatal for the whole run.
type CredentialError struct {
	AccountID string
	Cause     error
}

func (e *CredentialError) Error() string {
	if e.AccountID != "" {
		return fmt.Sprintf("cannot obtain credentials for account %s: %v", e.AccountID, e.Cause)
	}
	return fmt.Sprintf("cannot obtain management credentials: %v", e.Cause)
}

func (e *CredentialError) Unwrap() error {
	return e.Cause
}

// DirectoryError represents a failure to enumerate the accounts of the
// organization. Always fatal for the run.
type DirectoryError struct {
	Cause error
}

func (e *DirectoryError) Error() string {
	return fmt.Sprintf("cannot list organization accounts: %v", e.Cause)
}

func (e *DirectoryError) Unwrap() error {
	return e.Cause
}

// ProbeError represents a failed existence check of a role or policy in one
// account. Recorded in that account's outcome; never aborts sibling tasks.
type ProbeError struct {
	AccountID string
	Resource  string // "role" or "policy"
	Cause     error
}

func (e *ProbeError) Error() string {
	return fmt.Sprintf("cannot check %s in account %s: %v", e.Resource, e.AccountID, e.Cause)
}

func (e *ProbeError) Unwrap() error {
	return e.Cause
}

// MutationError represents a failed create or delete of a role or policy in
// one account.
type MutationError struct {
	AccountID string
	Resource  string // "role" or "policy"
	Operation string // "create", "delete", "attach", "detach"
	Cause     error
}

func (e *MutationError) Error() string {
	return fmt.Sprintf("cannot %s %s in account %s: %v", e.Operation, e.Resource, e.AccountID, e.Cause)
}

func (e *MutationError) Unwrap() error {
	return e.Cause
}

// PublishError represents a failed reconciliation with the inventory API.
// Fatal for the run, but the local artifact has been written by then so the
// payload is recoverable.
type PublishError struct {
	Step  string // "proxy-lookup", "artifact", "delete", "post"
	Cause error
}

func (e *PublishError) Error() string {
	return fmt.Sprintf("inventory publish failed during %s: %v", e.Step, e.Cause)
}

func (e *PublishError) Unwrap() error {
	return e.Cause
}
