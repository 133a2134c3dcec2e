package aws

import (
	"errors"

	"github.com/aws/smithy-go"
)

// IAM error codes the operations care about. Listed resources can change
// between a probe and the following mutation, so both sides of the race
// need to be recognizable.
const (
	errCodeEntityAlreadyExists = "EntityAlreadyExists"
	errCodeNoSuchEntity        = "NoSuchEntity"
)

// IsAlreadyExists reports whether err is the IAM already-exists error.
func IsAlreadyExists(err error) bool {
	return hasErrorCode(err, errCodeEntityAlreadyExists)
}

// IsNotFound reports whether err is the IAM no-such-entity error.
func IsNotFound(err error) bool {
	return hasErrorCode(err, errCodeNoSuchEntity)
}

func hasErrorCode(err error, code string) bool {
	var apiErr smithy.APIError
	return errors.As(err, &apiErr) && apiErr.ErrorCode() == code
}
