package cli

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"alexis-backoffice/internal/catalog"
)

// TyresCommand groups the tyre stock operations.
func TyresCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tyres",
		Short: "Manage tyre products and stock levels",
	}
	cmd.AddCommand(tyresListCommand(), tyresSearchCommand(), tyresAddCommand(),
		tyresUpdateCommand(), tyresStockCommand(), tyresDeleteCommand())
	return cmd
}

func printTyres(tyres []catalog.TyreProduct) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tBRAND\tMODEL\tSIZE\tPRICE\tOFFER\tQTY\tCATEGORY")
	for _, t := range tyres {
		offer := "-"
		if t.HasOffer() {
			offer = fmt.Sprintf("£%.2f", *t.OfferPrice)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t£%.2f\t%s\t%d\t%s\n",
			t.ID, t.Brand, t.Model, t.Size, t.Price, offer, t.Quantity, t.Category)
	}
	return w.Flush()
}

func tyresListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stocked tyre products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadedApp(cmd.Context())
			if err != nil {
				return err
			}
			return printTyres(app.Store.Tyres.Get())
		},
	}
}

func tyresSearchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search tyres by brand, model, size or category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadedApp(cmd.Context())
			if err != nil {
				return err
			}
			results := app.Store.SearchTyres(args[0])
			if len(results) == 0 {
				fmt.Println("No matching tyres (queries need at least 2 characters)")
				return nil
			}
			return printTyres(results)
		},
	}
}

func tyresAddCommand() *cobra.Command {
	var tyre catalog.TyreProduct
	var offer float64

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a tyre product",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadedApp(cmd.Context())
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("offer-price") {
				tyre.OfferPrice = &offer
			}

			created, err := app.Store.AddTyreProduct(cmd.Context(), tyre)
			if err != nil {
				return err
			}
			fmt.Printf("Added tyre %d: %s %s %s\n", created.ID, created.Brand, created.Model, created.Size)
			return nil
		},
	}

	cmd.Flags().StringVar(&tyre.Brand, "brand", "", "Brand name")
	cmd.Flags().StringVar(&tyre.Model, "model", "", "Tyre model")
	cmd.Flags().StringVar(&tyre.Size, "size", "", "Size, e.g. 225/40 R18")
	cmd.Flags().Float64Var(&tyre.Price, "price", 0, "List price")
	cmd.Flags().Float64Var(&offer, "offer-price", 0, "Discounted price")
	cmd.Flags().IntVar(&tyre.Quantity, "quantity", 0, "Initial stock")
	cmd.Flags().StringVar(&tyre.Category, "category", catalog.CategoryBudget, "Premium, Mid-Range or Budget")
	cmd.Flags().StringVar(&tyre.Image, "image", "", "Image URL")
	cmd.Flags().StringVar(&tyre.Specs.Fuel, "fuel", "", "EU label fuel rating")
	cmd.Flags().StringVar(&tyre.Specs.Wet, "wet", "", "EU label wet grip rating")
	cmd.Flags().IntVar(&tyre.Specs.Noise, "noise", 0, "EU label noise in dB")
	_ = cmd.MarkFlagRequired("brand")
	_ = cmd.MarkFlagRequired("model")
	_ = cmd.MarkFlagRequired("size")
	_ = cmd.MarkFlagRequired("price")
	return cmd
}

func tyresUpdateCommand() *cobra.Command {
	var (
		brand, model, size, category, image string
		price, offer                        float64
		quantity                            int
		clearOffer                          bool
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update fields of a tyre product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid tyre id %q", args[0])
			}
			app, err := loadedApp(cmd.Context())
			if err != nil {
				return err
			}

			var patch catalog.TyrePatch
			if cmd.Flags().Changed("brand") {
				patch.Brand = &brand
			}
			if cmd.Flags().Changed("model") {
				patch.Model = &model
			}
			if cmd.Flags().Changed("size") {
				patch.Size = &size
			}
			if cmd.Flags().Changed("price") {
				patch.Price = &price
			}
			if cmd.Flags().Changed("offer-price") {
				p := &offer
				patch.OfferPrice = &p
			}
			if clearOffer {
				var none *float64
				patch.OfferPrice = &none
			}
			if cmd.Flags().Changed("quantity") {
				patch.Quantity = &quantity
			}
			if cmd.Flags().Changed("category") {
				patch.Category = &category
			}
			if cmd.Flags().Changed("image") {
				patch.Image = &image
			}

			updated, err := app.Store.UpdateTyreProduct(cmd.Context(), id, patch)
			if err != nil {
				return err
			}
			fmt.Printf("Updated tyre %d: %s %s\n", updated.ID, updated.Brand, updated.Model)
			return nil
		},
	}

	cmd.Flags().StringVar(&brand, "brand", "", "Brand name")
	cmd.Flags().StringVar(&model, "model", "", "Tyre model")
	cmd.Flags().StringVar(&size, "size", "", "Size")
	cmd.Flags().Float64Var(&price, "price", 0, "List price")
	cmd.Flags().Float64Var(&offer, "offer-price", 0, "Discounted price")
	cmd.Flags().BoolVar(&clearOffer, "clear-offer", false, "Remove the discount")
	cmd.Flags().IntVar(&quantity, "quantity", 0, "Absolute stock level")
	cmd.Flags().StringVar(&category, "category", "", "Premium, Mid-Range or Budget")
	cmd.Flags().StringVar(&image, "image", "", "Image URL")
	return cmd
}

func tyresStockCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stock <id> <delta>",
		Short: "Adjust stock by a relative amount (never below zero)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid tyre id %q", args[0])
			}
			delta, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid delta %q", args[1])
			}
			app, err := loadedApp(cmd.Context())
			if err != nil {
				return err
			}
			if err := app.Store.UpdateTyreStock(cmd.Context(), id, delta); err != nil {
				return err
			}
			for _, t := range app.Store.Tyres.Get() {
				if t.ID == id {
					fmt.Printf("Stock for %s %s is now %d\n", t.Brand, t.Model, t.Quantity)
					break
				}
			}
			return nil
		},
	}
}

func tyresDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a tyre product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid tyre id %q", args[0])
			}
			app, err := loadedApp(cmd.Context())
			if err != nil {
				return err
			}
			if err := app.Store.RemoveTyreProduct(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Printf("Removed tyre %d\n", id)
			return nil
		},
	}
}
