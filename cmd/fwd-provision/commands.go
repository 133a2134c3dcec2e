package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/AlecAivazis/survey/v2"
	awsorgs "github.com/aws/aws-sdk-go-v2/service/organizations"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	awssts "github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/urfave/cli/v2"

	cloudaws "github.com/captainpacket/fwd/internal/cloud/aws"
	"github.com/captainpacket/fwd/internal/config"
	"github.com/captainpacket/fwd/internal/inventory"
	"github.com/captainpacket/fwd/internal/models"
	"github.com/captainpacket/fwd/internal/provision"
)

// runEnv is everything the three commands share: configuration, management
// credentials, the account list, and a runner wired to real AWS clients.
type runEnv struct {
	cfg      *config.Config
	run      models.RunContext
	accounts []models.Account
	runner   *provision.Runner
	debug    *log.Logger
}

// bootstrap resolves management credentials, determines the management
// account, and lists the organization. Any failure here is fatal for the
// whole run: without credentials or an account list there is nothing to do.
func bootstrap(c *cli.Context) (*runEnv, error) {
	debugOut := io.Discard
	if c.Bool("verbose") {
		debugOut = os.Stderr
	}
	debug := log.New(debugOut, "fwd-provision: ", log.LstdFlags)

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	creds, err := config.LoadCSVCredentials(c.String("file"))
	if err != nil {
		return nil, err
	}

	ctx := c.Context
	awsCfg, err := cloudaws.LoadConfig(ctx, creds)
	if err != nil {
		return nil, &models.CredentialError{Cause: err}
	}

	stsClient := awssts.NewFromConfig(awsCfg)
	mgmtAccount, err := cloudaws.CurrentAccount(ctx, stsClient)
	if err != nil {
		return nil, err
	}
	debug.Printf("management account is %s", mgmtAccount)

	directory := cloudaws.NewDirectory(awsorgs.NewFromConfig(awsCfg))
	accounts, err := directory.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}
	debug.Printf("organization has %d accounts", len(accounts))

	run := models.RunContext{
		ManagementAccount: mgmtAccount,
		Credentials:       creds,
		Concurrency:       c.Int("concurrency"),
	}

	runner := &provision.Runner{
		Creds:     cloudaws.NewCredentialResolver(stsClient, creds, mgmtAccount),
		NewClient: provision.NewAWSClientFactory(),
		Out:       os.Stdout,
		Debug:     debug,
	}

	return &runEnv{cfg: cfg, run: run, accounts: accounts, runner: runner, debug: debug}, nil
}

// reportFailures prints one error summary per failed account and returns
// how many accounts failed.
func reportFailures(outcomes []models.AccountOutcome) int {
	failed := 0
	for _, o := range outcomes {
		if !o.Succeeded() {
			failed++
			fmt.Fprintln(os.Stderr, o.Err)
		}
	}
	return failed
}

func setupCommand(c *cli.Context) error {
	trusted := c.String("account")
	externalID := c.String("external-id")
	if (trusted == "") == (externalID == "") {
		return cli.Exit("setup requires exactly one of --account or --external-id", 2)
	}

	env, err := bootstrap(c)
	if err != nil {
		return cli.Exit(err, 2)
	}

	env.run.ExternalID = externalID
	if externalID != "" {
		env.run.TrustedAccount = config.FwdAccountID
	} else {
		env.run.TrustedAccount = trusted
	}
	trustDocument := provision.TrustDocument(env.run.TrustedAccount, env.run.ExternalID)
	env.debug.Printf("trusting account %s", env.run.TrustedAccount)

	orchestrator := provision.NewOrchestrator(env.run.Concurrency)
	outcomes := orchestrator.RunForEachAccount(c.Context, env.accounts,
		func(ctx context.Context, account models.Account) models.AccountOutcome {
			return env.runner.SetupAccount(ctx, account, trustDocument)
		})
	reportFailures(outcomes)

	if err := publish(c, env, outcomes); err != nil {
		return cli.Exit(err, 2)
	}
	return nil
}

// publish builds the inventory payload from the setup outcomes, writes the
// artifact, and reconciles the remote entry.
func publish(c *cli.Context, env *runEnv, outcomes []models.AccountOutcome) error {
	ctx := c.Context

	regions, err := config.LoadRegions(env.cfg.RegionsFile)
	if err != nil {
		return err
	}
	username, password, err := config.LoadAppCredentials(env.cfg.AppCredsFile)
	if err != nil {
		return err
	}

	payload := inventory.BuildPayload(env.cfg.SetupID, outcomes, env.run.ExternalID, regions, time.Now())

	publisher := &inventory.Publisher{
		Client:     inventory.NewClient(env.cfg.AppHost, env.cfg.NetworkID, username, password),
		SetupID:    env.cfg.SetupID,
		OutputFile: env.cfg.OutputFile,
		Out:        os.Stdout,
		Debug:      env.debug,
	}

	if bucket := c.String("artifact-bucket"); bucket != "" {
		awsCfg, err := cloudaws.LoadConfig(ctx, env.run.Credentials)
		if err != nil {
			return &models.CredentialError{Cause: err}
		}
		publisher.Archiver = cloudaws.NewArtifactArchiver(awss3.NewFromConfig(awsCfg), bucket)
	}

	return publisher.Publish(ctx, payload)
}

func checkCommand(c *cli.Context) error {
	env, err := bootstrap(c)
	if err != nil {
		return cli.Exit(err, 2)
	}

	orchestrator := provision.NewOrchestrator(env.run.Concurrency)
	outcomes := orchestrator.RunForEachAccount(c.Context, env.accounts,
		func(ctx context.Context, account models.Account) models.AccountOutcome {
			return env.runner.CheckAccount(ctx, account)
		})

	// Per-account failures do not fail a check run.
	reportFailures(outcomes)
	return nil
}

func clearCommand(c *cli.Context) error {
	if !c.Bool("yes") {
		confirmed := false
		prompt := &survey.Confirm{
			Message: "Delete the read-only role and policy from every account in the organization?",
		}
		if err := survey.AskOne(prompt, &confirmed); err != nil {
			return cli.Exit(err, 2)
		}
		if !confirmed {
			fmt.Println("Aborted.")
			return nil
		}
	}

	env, err := bootstrap(c)
	if err != nil {
		return cli.Exit(err, 2)
	}

	orchestrator := provision.NewOrchestrator(env.run.Concurrency)
	outcomes := orchestrator.RunForEachAccount(c.Context, env.accounts,
		func(ctx context.Context, account models.Account) models.AccountOutcome {
			return env.runner.ClearAccount(ctx, account)
		})
	reportFailures(outcomes)
	return nil
}
