// Package cli implements the alexis back-office commands. Every data command
// runs against a single Store per process; demo mode swaps its backend for
// the bundled fixture dataset.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"alexis-backoffice/internal/catalog"
	"alexis-backoffice/internal/endpoint"
	"alexis-backoffice/internal/prefs"
	"alexis-backoffice/internal/session"
	"alexis-backoffice/internal/store"
)

// App wires the preference files, the endpoint resolver, the reactive store
// and the session manager for one CLI invocation.
type App struct {
	Prefs    *prefs.Prefs
	Resolver *endpoint.Resolver
	Store    *store.Store
	Session  *session.Manager

	loaded bool
}

// NewApp builds the object graph without touching the network.
func NewApp() (*App, error) {
	p, err := prefs.New()
	if err != nil {
		return nil, fmt.Errorf("opening preferences: %w", err)
	}

	resolver := endpoint.New("", p)
	st := store.NewFromPrefs(resolver.BaseURL(), p, func() string {
		if sess, ok := p.Session(); ok {
			return sess.Token
		}
		return ""
	})

	return &App{Prefs: p, Resolver: resolver, Store: st}, nil
}

// Load pulls the initial dataset and rehydrates the session. Connectivity
// failure is reported through the banner, not a hard stop, so read commands
// can still surface the notice.
func (a *App) Load(ctx context.Context) error {
	if a.loaded {
		return nil
	}
	a.loaded = true

	err := a.Store.Initialize(ctx)
	a.Session = session.NewManager(ctx, a.Store, a.Prefs)

	if err != nil {
		banner := a.Store.Banner.Get()
		fmt.Fprintf(os.Stderr, "warning: %s\n", banner.Reason)
		if banner.Action == catalog.BannerActionDemo {
			fmt.Fprintln(os.Stderr, "hint: run 'alexis demo on' to work with sample data offline")
		}
		return err
	}
	return nil
}

// RootCommand assembles the full command tree.
func RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "alexis",
		Short:         "Alexis Autos back-office CLI",
		Long:          "Manage the Alexis Autos inventory, tyre stock, bookings and site content.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		LoginCommand(),
		LogoutCommand(),
		WhoamiCommand(),
		StatusCommand(),
		CarsCommand(),
		TyresCommand(),
		BrandsCommand(),
		ServicesCommand(),
		BookingsCommand(),
		UsersCommand(),
		SettingsCommand(),
		ConfigCommand(),
		DemoCommand(),
		AskCommand(),
	)
	return root
}

// Execute runs the root command and reports failures on stderr.
func Execute() {
	if err := RootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadedApp is the common preamble for data commands.
func loadedApp(ctx context.Context) (*App, error) {
	app, err := NewApp()
	if err != nil {
		return nil, err
	}
	if err := app.Load(ctx); err != nil {
		// Cached state may still be usable; commands decide what to do
		// with an empty store.
		return app, nil
	}
	return app, nil
}
