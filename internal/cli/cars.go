package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"alexis-backoffice/internal/catalog"
)

// CarsCommand groups the vehicle inventory operations.
func CarsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cars",
		Short: "Manage the vehicle sales inventory",
	}
	cmd.AddCommand(carsListCommand(), carsAddCommand(), carsUpdateCommand(),
		carsSellCommand(), carsDeleteCommand())
	return cmd
}

func carsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List cars for sale",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadedApp(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tMODEL\tYEAR\tPRICE\tMILEAGE\tSOLD")
			for _, c := range app.Store.Inventory.Get() {
				fmt.Fprintf(w, "%d\t%s\t%d\t£%.0f\t%d\t%v\n",
					c.ID, c.Model, c.Year, c.Price, c.Mileage, c.Sold)
			}
			return w.Flush()
		},
	}
}

func carsAddCommand() *cobra.Command {
	var car catalog.Car
	var features string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a car to the inventory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadedApp(cmd.Context())
			if err != nil {
				return err
			}
			if features != "" {
				car.Features = splitList(features)
			}

			created, err := app.Store.AddCar(cmd.Context(), car)
			if err != nil {
				return err
			}
			fmt.Printf("Added car %d: %s\n", created.ID, created.Model)
			return nil
		},
	}

	cmd.Flags().StringVar(&car.Model, "model", "", "Model name")
	cmd.Flags().IntVar(&car.Year, "year", 0, "Model year")
	cmd.Flags().StringVar(&car.Engine, "engine", "", "Engine description")
	cmd.Flags().Float64Var(&car.Price, "price", 0, "Asking price")
	cmd.Flags().StringVar(&car.Image, "image", "", "Image URL")
	cmd.Flags().IntVar(&car.Mileage, "mileage", 0, "Mileage")
	cmd.Flags().StringVar(&car.Transmission, "transmission", catalog.TransmissionAutomatic, "Automatic or Manual")
	cmd.Flags().StringVar(&car.Description, "description", "", "Listing description")
	cmd.Flags().StringVar(&features, "features", "", "Comma-separated feature list")
	_ = cmd.MarkFlagRequired("model")
	_ = cmd.MarkFlagRequired("year")
	_ = cmd.MarkFlagRequired("price")
	return cmd
}

func carsUpdateCommand() *cobra.Command {
	var (
		model, engine, image, transmission, description, features string
		year, mileage                                             int
		price                                                     float64
		sold                                                      bool
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update fields of a listed car",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid car id %q", args[0])
			}
			app, err := loadedApp(cmd.Context())
			if err != nil {
				return err
			}

			var patch catalog.CarPatch
			if cmd.Flags().Changed("model") {
				patch.Model = &model
			}
			if cmd.Flags().Changed("year") {
				patch.Year = &year
			}
			if cmd.Flags().Changed("engine") {
				patch.Engine = &engine
			}
			if cmd.Flags().Changed("price") {
				patch.Price = &price
			}
			if cmd.Flags().Changed("image") {
				patch.Image = &image
			}
			if cmd.Flags().Changed("sold") {
				patch.Sold = &sold
			}
			if cmd.Flags().Changed("mileage") {
				patch.Mileage = &mileage
			}
			if cmd.Flags().Changed("transmission") {
				patch.Transmission = &transmission
			}
			if cmd.Flags().Changed("description") {
				patch.Description = &description
			}
			if cmd.Flags().Changed("features") {
				list := splitList(features)
				patch.Features = &list
			}

			updated, err := app.Store.UpdateCar(cmd.Context(), id, patch)
			if err != nil {
				return err
			}
			fmt.Printf("Updated car %d: %s\n", updated.ID, updated.Model)
			return nil
		},
	}

	cmd.Flags().StringVar(&model, "model", "", "Model name")
	cmd.Flags().IntVar(&year, "year", 0, "Model year")
	cmd.Flags().StringVar(&engine, "engine", "", "Engine description")
	cmd.Flags().Float64Var(&price, "price", 0, "Asking price")
	cmd.Flags().StringVar(&image, "image", "", "Image URL")
	cmd.Flags().BoolVar(&sold, "sold", false, "Sold flag")
	cmd.Flags().IntVar(&mileage, "mileage", 0, "Mileage")
	cmd.Flags().StringVar(&transmission, "transmission", "", "Automatic or Manual")
	cmd.Flags().StringVar(&description, "description", "", "Listing description")
	cmd.Flags().StringVar(&features, "features", "", "Comma-separated feature list")
	return cmd
}

func carsSellCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sell <id>",
		Short: "Mark a car as sold",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid car id %q", args[0])
			}
			app, err := loadedApp(cmd.Context())
			if err != nil {
				return err
			}
			sold := true
			updated, err := app.Store.UpdateCar(cmd.Context(), id, catalog.CarPatch{Sold: &sold})
			if err != nil {
				return err
			}
			fmt.Printf("Marked %s as sold\n", updated.Model)
			return nil
		},
	}
}

func carsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a car from the inventory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid car id %q", args[0])
			}
			app, err := loadedApp(cmd.Context())
			if err != nil {
				return err
			}
			if err := app.Store.RemoveCar(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Printf("Removed car %d\n", id)
			return nil
		},
	}
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
