package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/docdesk/internal/client/cli"
	"github.com/dmitrijs2005/docdesk/internal/client/config"
	"github.com/dmitrijs2005/docdesk/internal/flagx"
	"github.com/dmitrijs2005/docdesk/internal/logging"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(2)
	}

	log, err := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging: %v\n", err)
		os.Exit(2)
	}

	root := newRootCmd(cfg, log)
	// config.Load owns its flags; cobra only sees the command words.
	root.SetArgs(flagx.RemoveArgs(os.Args[1:], config.FlagNames, config.SwitchNames))

	if err := root.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(cfg *config.Config, log logging.Logger) *cobra.Command {
	// newApp opens the state file and resolves the persisted session. The
	// caller must Close the app.
	newApp := func(ctx context.Context) (*cli.App, error) {
		a, err := cli.NewApp(ctx, cfg, log)
		if err != nil {
			return nil, fmt.Errorf("initializing app: %w", err)
		}
		if err := a.Start(ctx); err != nil {
			a.Close()
			return nil, fmt.Errorf("restoring session: %w", err)
		}
		return a, nil
	}

	// oneShot runs fn against a started app.
	oneShot := func(fn func(ctx context.Context, a *cli.App, args []string) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()
			return fn(cmd.Context(), a, args)
		}
	}

	root := &cobra.Command{
		Use:   "docdesk",
		Short: "Document management client",
		Long: `docdesk talks to a document management server: upload documents,
ask questions about them and manage your profile.

Without a command it starts an interactive shell. Settings come from
defaults, a JSON file (-c), DOCDESK_* environment variables and the
flags -a -p -s -t -i -l -d, in that order.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := cli.NewApp(cmd.Context(), cfg, log)
			if err != nil {
				return fmt.Errorf("initializing app: %w", err)
			}
			return a.Run(cmd.Context())
		},
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "whoami",
			Short: "Show the signed-in user",
			Args:  cobra.NoArgs,
			RunE: oneShot(func(ctx context.Context, a *cli.App, _ []string) error {
				return a.Whoami(ctx)
			}),
		},
		&cobra.Command{
			Use:   "docs [filter]",
			Short: "List documents, optionally filtered by title or file name",
			Args:  cobra.ArbitraryArgs,
			RunE: oneShot(func(ctx context.Context, a *cli.App, args []string) error {
				return a.ListDocuments(ctx, strings.Join(args, " "))
			}),
		},
		&cobra.Command{
			Use:   "ask <doc-id> <question>",
			Short: "Ask a question about one document",
			Args:  cobra.MinimumNArgs(2),
			RunE: oneShot(func(ctx context.Context, a *cli.App, args []string) error {
				return a.AskDocument(ctx, args[0], strings.Join(args[1:], " "))
			}),
		},
		&cobra.Command{
			Use:   "logout",
			Short: "Sign out and forget the stored token",
			Args:  cobra.NoArgs,
			RunE: oneShot(func(ctx context.Context, a *cli.App, _ []string) error {
				return a.Logout(ctx)
			}),
		},
	)

	return root
}
