// Command api runs the account service.
//
//	@title						Account API
//	@version					1.0
//	@description				Credential authentication and per-user account management.
//	@BasePath					/
//	@securityDefinitions.apikey	CookieAuth
//	@in							cookie
//	@name						access_token
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "account-api",
		Usage: "Authenticate users and serve their accounts",
		Commands: []*cli.Command{
			serveCmd(),
			migrateCmd(),
		},
		// Running without a subcommand serves.
		Action: func(c *cli.Context) error {
			_ = godotenv.Load()
			return serve(c.Context)
		},
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := app.RunContext(ctx, os.Args); err != nil {
		log.Error().Err(err).Msg("application failed")
		os.Exit(1)
	}
}
