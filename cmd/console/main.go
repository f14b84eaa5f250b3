// Command console is the staff console for the LED content API: it lists
// and edits catalog content, works the lead queue and watches the backend.
//
// Usage:
//
//	console status
//	console leads list|status <id> <status>|note <id> <text>|export [--out=file]
//	console products|solutions|cases list|delete <id>
//	console catalog [--type=indoor] [--purpose=a,b] [--pitch=2.5,2.0] [--max-price=N|--any-price]
//	console create <kind> [--image=path] field=value...
//	console edit <kind> <id> [--image=path] field=value...
//	console lead submit --name=... --phone=... --city=... [--source=...]
//	console watch
//
// LED_API_URL points the console at the backend.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Almas2004/led/internal/config"
	"github.com/Almas2004/led/internal/console"
	"github.com/Almas2004/led/internal/contentapi"
	"github.com/Almas2004/led/internal/lead"
)

var errUsage = errors.New("usage: console <status|leads|products|solutions|cases|catalog|create|edit|lead|watch> ...")

func main() {
	cfg, err := config.LoadConsole()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	setupLogger(cfg.Debug)

	policy, err := lead.ParsePolicy(cfg.LeadPolicy)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid LEAD_POLICY: %v\n", err)
		os.Exit(1)
	}

	client := contentapi.NewClient(contentapi.Config{
		BaseURL: cfg.APIBaseURL,
		Timeout: cfg.Timeout,
		Debug:   cfg.Debug,
	})
	app := &app{
		cfg: cfg,
		con: console.New(client, console.Options{Target: client.BaseURL(), Policy: policy}),
		out: os.Stdout,
	}

	if err := app.run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if b := app.con.Banner(); b != "" {
			fmt.Fprintln(os.Stderr, b)
		}
		os.Exit(1)
	}
}

type app struct {
	cfg *config.ConsoleConfig
	con *console.Console
	out io.Writer
}

func (a *app) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "status":
		return a.status(ctx)
	case "leads":
		return a.leads(ctx, rest)
	case "products", "solutions", "cases":
		return a.content(ctx, cmd, rest)
	case "catalog":
		return a.catalog(ctx, rest)
	case "create":
		return a.create(ctx, rest)
	case "edit":
		return a.edit(ctx, rest)
	case "lead":
		return a.submitLead(ctx, rest)
	case "watch":
		return a.watch(ctx)
	}
	return errUsage
}

func setupLogger(debug bool) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).With().Timestamp().Logger()
}
