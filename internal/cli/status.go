package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// StatusCommand summarizes connectivity, mode and session in one view.
func StatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show API endpoint, mode, session and site banner",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadedApp(cmd.Context())
			if err != nil {
				return err
			}

			mode := "live"
			if app.Store.DemoMode() {
				mode = "demo"
			}
			fmt.Printf("API endpoint: %s\n", app.Resolver.BaseURL())
			fmt.Printf("Mode:         %s\n", mode)
			fmt.Printf("Theme:        %s\n", app.Store.Theme.Get())

			if app.Session.IsLoggedIn() {
				fmt.Printf("Session:      %s\n", app.Session.CurrentUser())
			} else {
				fmt.Printf("Session:      not logged in\n")
			}

			banner := app.Store.Banner.Get()
			if banner.Active {
				fmt.Printf("Banner:       %s\n", banner.Reason)
			} else {
				fmt.Printf("Banner:       inactive\n")
			}

			fmt.Printf("Inventory:    %d cars, %d tyre lines, %d services\n",
				len(app.Store.Inventory.Get()), len(app.Store.Tyres.Get()), len(app.Store.Services.Get()))
			return nil
		},
	}
}
