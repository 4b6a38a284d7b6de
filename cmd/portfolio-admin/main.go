// Command portfolio-admin manages portfolio content from the terminal:
// login, collection CRUD, section visibility, hero content, the contact
// inbox, and page-view stats.
package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	portfolio "github.com/goliatone/go-portfolio"
	"github.com/goliatone/go-portfolio/pkg/api"
	"github.com/goliatone/go-portfolio/pkg/tui"
)

var (
	flagAPI     string
	flagVerbose bool
)

func main() {
	root := &cobra.Command{
		Use:           "portfolio-admin",
		Short:         "Manage portfolio content from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flagAPI, "api", "", "API base URL (default $PORTFOLIO_API or "+api.DefaultBaseURL+")")
	root.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		loginCmd(),
		logoutCmd(),
		whoamiCmd(),
		manageCmd(),
		sectionsCmd(),
		inboxCmd(),
		heroCmd(),
		statsCmd(),
	)

	if err := root.Execute(); err != nil {
		if errors.Is(err, tui.ErrAborted) {
			os.Exit(130)
		}
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func buildApp() (*portfolio.App, *tui.Session, error) {
	log := zap.NewNop()
	if flagVerbose {
		dev, err := zap.NewDevelopment()
		if err != nil {
			return nil, nil, fmt.Errorf("build logger: %w", err)
		}
		log = dev
	}

	baseURL := flagAPI
	if baseURL == "" {
		baseURL = os.Getenv("PORTFOLIO_API")
	}

	app, err := portfolio.New(
		portfolio.WithBaseURL(baseURL),
		portfolio.WithLogger(log),
	)
	if err != nil {
		return nil, nil, err
	}
	session := tui.NewSession(tui.NewSurveyDriver(), tui.WithSessionLogger(log))
	return app, session, nil
}

func loginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Authenticate against the API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, session, err := buildApp()
			if err != nil {
				return err
			}
			return session.Login(cmd.Context(), app.Client())
		},
	}
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Invalidate the stored token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := buildApp()
			if err != nil {
				return err
			}
			if err := app.Client().Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Println("Logged out.")
			return nil
		},
	}
}

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the authenticated user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := buildApp()
			if err != nil {
				return err
			}
			user, err := app.Client().CurrentUser(cmd.Context())
			if err != nil {
				if errors.Is(err, api.ErrUnauthorized) {
					return fmt.Errorf("not logged in")
				}
				return err
			}
			fmt.Printf("%s <%s>\n", user.Name, user.Email)
			return nil
		},
	}
}

func manageCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "manage <collection>",
		Short: "Create, edit, delete, and reorder collection entries",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, session, err := buildApp()
			if err != nil {
				return err
			}
			ed, err := app.Editor(args[0])
			if err != nil {
				return fmt.Errorf("%w (known: %s)", err, strings.Join(app.Registry().Endpoints(), ", "))
			}
			return session.Manage(cmd.Context(), ed)
		},
	}
}

func sectionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sections",
		Short: "Toggle which site sections are visible",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, session, err := buildApp()
			if err != nil {
				return err
			}
			return session.Visibility(cmd.Context(), app.Visibility())
		},
	}
}

func inboxCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inbox",
		Short: "Read and manage contact messages",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, session, err := buildApp()
			if err != nil {
				return err
			}
			return session.Inbox(cmd.Context(), app.Inbox())
		},
	}
}

func heroCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hero",
		Short: "Edit the site hero content",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, session, err := buildApp()
			if err != nil {
				return err
			}
			return session.Hero(cmd.Context(), app.Hero())
		},
	}
}

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show page-view analytics",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, session, err := buildApp()
			if err != nil {
				return err
			}
			return session.Stats(cmd.Context(), app.Client(), app.Registry())
		},
	}
}
