package inventory

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/captainpacket/fwd/internal/models"
)

// Archiver optionally stores a copy of the artifact in durable storage.
type Archiver interface {
	Archive(ctx context.Context, setupID string, data []byte) (string, error)
}

// Publisher builds the cloudAccounts payload from the run's outcomes,
// writes the local artifact, and reconciles the inventory entry with the
// remote API.
type Publisher struct {
	Client     *Client
	SetupID    string
	OutputFile string

	// Archiver is nil unless an artifact bucket was requested.
	Archiver Archiver

	Out   io.Writer
	Debug *log.Logger
}

// BuildPayload derives one AssumeRoleInfo per account from the setup
// outcomes. Every listed account appears exactly once: a failed account
// keeps its entry with enabled null and no role ARN. Outcomes are expected
// sorted by account ID; the payload preserves that order.
func BuildPayload(setupID string, outcomes []models.AccountOutcome, externalID string, regions []string, now time.Time) *models.CloudAccountPayload {
	var extID *string
	if externalID != "" {
		extID = &externalID
	}

	infos := make([]models.AssumeRoleInfo, 0, len(outcomes))
	for _, o := range outcomes {
		info := models.AssumeRoleInfo{
			AccountID:   o.Account.ID,
			AccountName: o.Account.Name,
			ExternalID:  extID,
		}
		if o.Succeeded() {
			enabled := true
			info.Enabled = &enabled
			info.RoleArn = o.RoleArn
		}
		infos = append(infos, info)
	}

	regionMap := make(map[string]int64, len(regions))
	for _, region := range regions {
		regionMap[region] = now.Unix()
	}

	return &models.CloudAccountPayload{
		Name:            setupID,
		Type:            "AWS",
		Collect:         true,
		AssumeRoleInfos: infos,
		Regions:         regionMap,
	}
}

// Publish attaches the proxy reference if one is configured, writes the
// artifact file, then replaces the remote inventory entry. The artifact is
// written before any network reconciliation so the payload survives a
// failed publish. The remote step is delete-then-post with no transaction
// between the two; a failed post leaves the old entry gone, and the
// artifact is the recovery path.
func (p *Publisher) Publish(ctx context.Context, payload *models.CloudAccountPayload) error {
	proxy, err := p.Client.GetProxy(ctx)
	if err != nil {
		return &models.PublishError{Step: "proxy-lookup", Cause: err}
	}
	if proxy != nil {
		fmt.Fprintf(p.Out, "There is a Proxy: %s\n", proxy.ID)
		payload.ProxyServerID = proxy.ID
	} else {
		fmt.Fprintln(p.Out, "There is no Proxy")
	}

	data, err := json.MarshalIndent(payload, "", "    ")
	if err != nil {
		return &models.PublishError{Step: "artifact", Cause: err}
	}
	if err := os.WriteFile(p.OutputFile, data, 0o644); err != nil {
		return &models.PublishError{Step: "artifact", Cause: err}
	}
	p.Debug.Printf("wrote artifact %s (%d bytes)", p.OutputFile, len(data))

	if p.Archiver != nil {
		key, err := p.Archiver.Archive(ctx, p.SetupID, data)
		if err != nil {
			return &models.PublishError{Step: "artifact", Cause: err}
		}
		p.Debug.Printf("archived artifact as %s", key)
	}

	if err := p.Client.DeleteCloudAccount(ctx, p.SetupID); err != nil {
		return &models.PublishError{Step: "delete", Cause: err}
	}
	if err := p.Client.PostCloudAccount(ctx, payload); err != nil {
		return &models.PublishError{Step: "post", Cause: err}
	}

	fmt.Fprintf(p.Out, "Inventory entry %s updated with %d accounts\n", p.SetupID, len(payload.AssumeRoleInfos))
	return nil
}
