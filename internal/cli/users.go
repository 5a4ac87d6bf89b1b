package cli

import (
	"fmt"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// UsersCommand manages admin accounts.
func UsersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage admin accounts",
	}
	cmd.AddCommand(usersAddCommand(), usersPasswdCommand())
	return cmd
}

func promptPassword(label string) (string, error) {
	fmt.Printf("%s: ", label)
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return string(raw), nil
}

func usersAddCommand() *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "add <username>",
		Short: "Create an admin account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadedApp(cmd.Context())
			if err != nil {
				return err
			}
			if password == "" {
				if password, err = promptPassword("New password"); err != nil {
					return err
				}
			}
			if err := app.Store.AddUser(cmd.Context(), args[0], password); err != nil {
				return err
			}
			fmt.Printf("Created user %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVarP(&password, "password", "p", "", "Password (prompted when omitted)")
	return cmd
}

func usersPasswdCommand() *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "passwd <username>",
		Short: "Change an account password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadedApp(cmd.Context())
			if err != nil {
				return err
			}
			if password == "" {
				if password, err = promptPassword("New password"); err != nil {
					return err
				}
			}
			if err := app.Store.ChangePassword(cmd.Context(), args[0], password); err != nil {
				return err
			}
			fmt.Printf("Password updated for %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVarP(&password, "password", "p", "", "New password (prompted when omitted)")
	return cmd
}
