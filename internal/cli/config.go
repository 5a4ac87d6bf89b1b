package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// ConfigCommand manages durable client preferences.
func ConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage client preferences",
	}
	cmd.AddCommand(apiURLCommand(), themeCommand())
	return cmd
}

func apiURLCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "api-url",
		Short: "Show or change the API endpoint override",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "get",
			Short: "Show the override and the effective endpoint",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				app, err := NewApp()
				if err != nil {
					return err
				}
				override := app.Prefs.APIURL()
				if override == "" {
					fmt.Println("Override:  (none)")
				} else {
					fmt.Printf("Override:  %s\n", override)
				}
				fmt.Printf("Effective: %s\n", app.Resolver.BaseURL())
				return nil
			},
		},
		&cobra.Command{
			Use:   "set <url>",
			Short: "Pin the API endpoint, bypassing auto-detection",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				app, err := NewApp()
				if err != nil {
					return err
				}
				restart, err := app.Resolver.SaveOverride(args[0])
				if err != nil {
					return err
				}
				fmt.Println("API endpoint override saved")
				if restart {
					fmt.Println("Takes effect on the next invocation")
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "reset",
			Short: "Clear the override and return to auto-detection",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				app, err := NewApp()
				if err != nil {
					return err
				}
				restart, err := app.Resolver.ResetOverride()
				if err != nil {
					return err
				}
				fmt.Println("API endpoint override cleared")
				if restart {
					fmt.Println("Takes effect on the next invocation")
				}
				return nil
			},
		},
	)
	return cmd
}

func themeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "theme [dark|light]",
		Short: "Show or set the UI theme preference",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := NewApp()
			if err != nil {
				return err
			}
			if len(args) == 0 {
				theme := app.Prefs.Theme()
				if theme == "" {
					theme = "dark (default)"
				}
				fmt.Println(theme)
				return nil
			}
			if err := app.Store.SetTheme(args[0]); err != nil {
				return err
			}
			fmt.Printf("Theme set to %s\n", args[0])
			return nil
		},
	}
}

// DemoCommand toggles the offline sample dataset.
func DemoCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo on|off",
		Short: "Toggle demo mode with bundled sample data",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := NewApp()
			if err != nil {
				return err
			}
			switch args[0] {
			case "on":
				if err := app.Store.EnableDemoMode(cmd.Context()); err != nil {
					return err
				}
				fmt.Println("Demo mode enabled: working with sample data")
			case "off":
				restart, err := app.Store.DisableDemoMode()
				if err != nil {
					return err
				}
				fmt.Println("Demo mode disabled")
				if restart {
					fmt.Println("Live data loads on the next invocation")
				}
			default:
				return fmt.Errorf("expected 'on' or 'off', got %q", args[0])
			}
			return nil
		},
	}
	return cmd
}
