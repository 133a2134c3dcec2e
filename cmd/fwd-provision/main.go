package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/captainpacket/fwd/internal/config"
	"github.com/captainpacket/fwd/internal/provision"
)

func main() {
	app := &cli.App{
		Name:  "fwd-provision",
		Usage: "Provision read-only access to all accounts in an AWS organization",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "increase output verbosity",
			},
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "file with admin user credentials",
				Value:   config.DefaultSetupCSV,
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "setup",
				Usage: "setup read-only policies and roles",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "account",
						Aliases: []string{"a"},
						Usage:   "account to set as a trusted one",
					},
					&cli.StringFlag{
						Name:    "external-id",
						Aliases: []string{"e"},
						Usage:   "External-ID to use with the Forward Networks account as a trusted one",
					},
					&cli.IntFlag{
						Name:  "concurrency",
						Usage: "number of accounts processed in parallel",
						Value: provision.DefaultConcurrency,
					},
					&cli.StringFlag{
						Name:  "artifact-bucket",
						Usage: "S3 bucket to archive a copy of the inventory payload",
					},
				},
				Action: setupCommand,
			},
			{
				Name:  "check",
				Usage: "check if read-only policies and roles are created",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "concurrency",
						Usage: "number of accounts processed in parallel",
						Value: provision.DefaultConcurrency,
					},
				},
				Action: checkCommand,
			},
			{
				Name:  "clear",
				Usage: "remove read-only policies and roles that were created",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "concurrency",
						Usage: "number of accounts processed in parallel",
						Value: provision.DefaultConcurrency,
					},
					&cli.BoolFlag{
						Name:    "yes",
						Aliases: []string{"y"},
						Usage:   "skip the confirmation prompt",
					},
				},
				Action: clearCommand,
			},
		},
		Action: func(c *cli.Context) error {
			return cli.ShowAppHelp(c)
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
}
