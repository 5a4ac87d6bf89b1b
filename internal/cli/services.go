package cli

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"alexis-backoffice/internal/catalog"
)

// ServicesCommand manages the workshop service list.
func ServicesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "services",
		Short: "Manage workshop services",
	}
	cmd.AddCommand(servicesListCommand(), servicesAddCommand(),
		servicesUpdateCommand(), servicesDeleteCommand())
	return cmd
}

func servicesListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List offered services",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadedApp(cmd.Context())
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tDESCRIPTION")
			for _, s := range app.Store.Services.Get() {
				fmt.Fprintf(w, "%d\t%s\t%s\n", s.ID, s.Name, s.Description)
			}
			return w.Flush()
		},
	}
}

func servicesAddCommand() *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a workshop service",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadedApp(cmd.Context())
			if err != nil {
				return err
			}
			created, err := app.Store.AddService(cmd.Context(), catalog.ServiceItem{
				Name:        args[0],
				Description: description,
			})
			if err != nil {
				return err
			}
			fmt.Printf("Added service %d: %s\n", created.ID, created.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "Service description")
	return cmd
}

func servicesUpdateCommand() *cobra.Command {
	var name, description string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a workshop service",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid service id %q", args[0])
			}
			app, err := loadedApp(cmd.Context())
			if err != nil {
				return err
			}

			var patch catalog.ServicePatch
			if cmd.Flags().Changed("name") {
				patch.Name = &name
			}
			if cmd.Flags().Changed("description") {
				patch.Description = &description
			}

			updated, err := app.Store.UpdateService(cmd.Context(), id, patch)
			if err != nil {
				return err
			}
			fmt.Printf("Updated service %d: %s\n", updated.ID, updated.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Service name")
	cmd.Flags().StringVar(&description, "description", "", "Service description")
	return cmd
}

func servicesDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a workshop service",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid service id %q", args[0])
			}
			app, err := loadedApp(cmd.Context())
			if err != nil {
				return err
			}
			if err := app.Store.RemoveService(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Printf("Removed service %d\n", id)
			return nil
		},
	}
}
