package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// BrandsCommand manages the tyre brand list shown on the site.
func BrandsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "brands",
		Short: "Manage the tyre brand list",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List tyre brands",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				app, err := loadedApp(cmd.Context())
				if err != nil {
					return err
				}
				for _, b := range app.Store.TyreBrands.Get() {
					fmt.Println(b.Name)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "add <name>",
			Short: "Add a tyre brand",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				app, err := loadedApp(cmd.Context())
				if err != nil {
					return err
				}
				brand, err := app.Store.AddTyreBrand(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				fmt.Printf("Added brand %s\n", brand.Name)
				return nil
			},
		},
		&cobra.Command{
			Use:   "remove <name>",
			Short: "Remove a tyre brand",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				app, err := loadedApp(cmd.Context())
				if err != nil {
					return err
				}
				if err := app.Store.RemoveTyreBrand(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Printf("Removed brand %s\n", args[0])
				return nil
			},
		},
	)
	return cmd
}
