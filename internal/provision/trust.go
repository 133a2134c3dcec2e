package provision

import (
	"strings"

	"github.com/captainpacket/fwd/internal/config"
)

// TrustDocument renders the assume-role policy document for this run.
// Exactly one of the two templates applies: with an external ID the role
// trusts the Forward Networks account under an sts:ExternalId condition;
// without one it trusts the given account unconditionally. The choice is
// made once per run, not per account.
func TrustDocument(trustedAccount, externalID string) string {
	if externalID != "" {
		return strings.ReplaceAll(config.AssumeRolePolicyDocumentExternalID, config.ExternalIDPlaceholder, externalID)
	}
	return strings.ReplaceAll(config.AssumeRolePolicyDocument, config.TrustedAccountPlaceholder, trustedAccount)
}
