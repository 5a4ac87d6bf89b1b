package cli

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"alexis-backoffice/internal/catalog"
)

// BookingsCommand manages customer booking requests.
func BookingsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bookings",
		Short: "View and progress customer bookings",
	}
	cmd.AddCommand(bookingsListCommand(), bookingsBookCommand(), bookingsSetStatusCommand())
	return cmd
}

func bookingsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List bookings (requires login)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadedApp(cmd.Context())
			if err != nil {
				return err
			}
			if !app.Session.IsLoggedIn() && !app.Store.DemoMode() {
				return fmt.Errorf("bookings are admin-only: run 'alexis login' first")
			}
			if err := app.Store.LoadBookings(cmd.Context()); err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tCUSTOMER\tSERVICE\tDATE\tSTATUS")
			for _, b := range app.Store.Bookings.Get() {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
					b.ID, b.CustomerName, b.ServiceType, b.Date, b.Status)
			}
			return w.Flush()
		},
	}
}

func bookingsBookCommand() *cobra.Command {
	var booking catalog.Booking

	cmd := &cobra.Command{
		Use:   "book",
		Short: "Submit a booking request",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadedApp(cmd.Context())
			if err != nil {
				return err
			}
			created, err := app.Store.CreateBooking(cmd.Context(), booking)
			if err != nil {
				return err
			}
			fmt.Printf("Booking %d submitted (%s)\n", created.ID, created.Status)
			return nil
		},
	}

	cmd.Flags().StringVar(&booking.CustomerName, "name", "", "Customer name")
	cmd.Flags().StringVar(&booking.Contact, "contact", "", "Phone or email")
	cmd.Flags().StringVar(&booking.ServiceType, "service", "", "Requested service")
	cmd.Flags().StringVar(&booking.Date, "date", "", "Preferred date")
	cmd.Flags().StringVar(&booking.Notes, "notes", "", "Extra notes")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("contact")
	_ = cmd.MarkFlagRequired("service")
	_ = cmd.MarkFlagRequired("date")
	return cmd
}

func bookingsSetStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set-status <id> <Pending|Confirmed|Completed|Cancelled>",
		Short: "Progress a booking",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid booking id %q", args[0])
			}
			app, err := loadedApp(cmd.Context())
			if err != nil {
				return err
			}
			if err := app.Store.LoadBookings(cmd.Context()); err != nil {
				return err
			}
			if err := app.Store.UpdateBookingStatus(cmd.Context(), id, args[1]); err != nil {
				return err
			}
			fmt.Printf("Booking %d is now %s\n", id, args[1])
			return nil
		},
	}
}
