package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// LoginCommand authenticates and stores the session for later commands.
func LoginCommand() *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "login <username>",
		Short: "Authenticate against the Alexis Autos API",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadedApp(cmd.Context())
			if err != nil {
				return err
			}

			if password == "" {
				if password, err = promptPassword("Password"); err != nil {
					return err
				}
			}

			if err := app.Session.Login(cmd.Context(), args[0], password); err != nil {
				return fmt.Errorf("login failed: %w", err)
			}
			fmt.Printf("Logged in as %s\n", app.Session.CurrentUser())
			return nil
		},
	}

	cmd.Flags().StringVarP(&password, "password", "p", "", "Password (prompted when omitted)")
	return cmd
}

// LogoutCommand clears the stored session.
func LogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := NewApp()
			if err != nil {
				return err
			}
			if err := app.Prefs.ClearSession(); err != nil {
				return err
			}
			fmt.Println("Logged out")
			return nil
		},
	}
}

// WhoamiCommand prints the stored identity without a network round trip.
func WhoamiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in username",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := NewApp()
			if err != nil {
				return err
			}
			sess, ok := app.Prefs.Session()
			if !ok {
				fmt.Println("Not logged in")
				return nil
			}
			fmt.Println(sess.Username)
			return nil
		},
	}
}
