package aws

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/organizations"

	"github.com/captainpacket/fwd/internal/models"
)

// OrganizationsAPI is the subset of the Organizations client used by the
// account directory.
type OrganizationsAPI interface {
	ListAccounts(ctx context.Context, params *organizations.ListAccountsInput, optFns ...func(*organizations.Options)) (*organizations.ListAccountsOutput, error)
}

// Directory enumerates the member accounts of the organization. Requires
// management-account credentials with organizations:ListAccounts.
type Directory struct {
	api OrganizationsAPI
}

func NewDirectory(api OrganizationsAPI) *Directory {
	return &Directory{api: api}
}

// ListAccounts returns every member account as (id, name). The listing is
// paginated; all pages are consumed before returning.
func (d *Directory) ListAccounts(ctx context.Context) ([]models.Account, error) {
	var accounts []models.Account
	var nextToken *string

	for {
		out, err := d.api.ListAccounts(ctx, &organizations.ListAccountsInput{
			NextToken: nextToken,
		})
		if err != nil {
			return nil, &models.DirectoryError{Cause: err}
		}

		for _, a := range out.Accounts {
			accounts = append(accounts, models.Account{
				ID:   aws.ToString(a.Id),
				Name: aws.ToString(a.Name),
			})
		}

		if out.NextToken == nil {
			break
		}
		nextToken = out.NextToken
	}

	return accounts, nil
}
