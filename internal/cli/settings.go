package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"alexis-backoffice/internal/catalog"
)

// SettingsCommand manages the site content aggregates (banner, company info).
func SettingsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Manage site banner and company information",
	}
	cmd.AddCommand(settingsShowCommand(), settingsBannerCommand(),
		settingsContactCommand(), settingsHoursCommand(),
		settingsAddressCommand(), settingsFacilitiesCommand())
	return cmd
}

func settingsShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the current site settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadedApp(cmd.Context())
			if err != nil {
				return err
			}

			banner := app.Store.Banner.Get()
			if banner.Active {
				fmt.Printf("Banner: ACTIVE - %s\n", banner.Reason)
			} else {
				fmt.Println("Banner: inactive")
			}

			info := app.Store.CompanyInfo.Get()
			fmt.Printf("Email:    %s\n", info.Contact.Email)
			fmt.Printf("Phone:    %s\n", info.Contact.Phone)
			fmt.Printf("WhatsApp: %s\n", info.Contact.Whatsapp)
			fmt.Printf("Address:  %s\n", strings.Join(info.Address.Lines, ", "))
			for _, h := range info.OpeningHours {
				fmt.Printf("Hours:    %s %s\n", h.Day, h.Hours)
			}
			fmt.Printf("Facilities: %s\n", strings.Join(info.Facilities, ", "))
			return nil
		},
	}
}

func settingsBannerCommand() *cobra.Command {
	var reason string
	var off bool

	cmd := &cobra.Command{
		Use:   "banner",
		Short: "Raise or clear the site-wide banner",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadedApp(cmd.Context())
			if err != nil {
				return err
			}
			if off {
				if err := app.Store.UpdateBanner(cmd.Context(), false, ""); err != nil {
					return err
				}
				fmt.Println("Banner cleared")
				return nil
			}
			if reason == "" {
				return fmt.Errorf("either --reason or --off is required")
			}
			if err := app.Store.UpdateBanner(cmd.Context(), true, reason); err != nil {
				return err
			}
			fmt.Println("Banner raised")
			return nil
		},
	}

	cmd.Flags().StringVar(&reason, "reason", "", "Banner text")
	cmd.Flags().BoolVar(&off, "off", false, "Clear the banner")
	return cmd
}

func settingsContactCommand() *cobra.Command {
	var contact catalog.ContactInfo

	cmd := &cobra.Command{
		Use:   "contact",
		Short: "Update the published contact details",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadedApp(cmd.Context())
			if err != nil {
				return err
			}
			current := app.Store.CompanyInfo.Get().Contact
			if !cmd.Flags().Changed("email") {
				contact.Email = current.Email
			}
			if !cmd.Flags().Changed("phone") {
				contact.Phone = current.Phone
			}
			if !cmd.Flags().Changed("whatsapp") {
				contact.Whatsapp = current.Whatsapp
			}
			if err := app.Store.UpdateCompanyContact(cmd.Context(), contact); err != nil {
				return err
			}
			fmt.Println("Contact details updated")
			return nil
		},
	}

	cmd.Flags().StringVar(&contact.Email, "email", "", "Contact email")
	cmd.Flags().StringVar(&contact.Phone, "phone", "", "Contact phone")
	cmd.Flags().StringVar(&contact.Whatsapp, "whatsapp", "", "WhatsApp number")
	return cmd
}

func settingsHoursCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "hours <day=hours> ...",
		Short: "Replace the opening hours table",
		Long:  `Replace the opening hours table, e.g. "Mon - Fri=09:00 - 18:00" "Sat=09:00 - 16:00".`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadedApp(cmd.Context())
			if err != nil {
				return err
			}
			hours := make([]catalog.OpeningHours, 0, len(args))
			for _, arg := range args {
				day, hrs, ok := strings.Cut(arg, "=")
				if !ok {
					return fmt.Errorf("expected day=hours, got %q", arg)
				}
				hours = append(hours, catalog.OpeningHours{Day: day, Hours: hrs})
			}
			if err := app.Store.SetOpeningHours(cmd.Context(), hours); err != nil {
				return err
			}
			fmt.Println("Opening hours updated")
			return nil
		},
	}
}

func settingsAddressCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "address <line> ...",
		Short: "Replace the published address lines",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadedApp(cmd.Context())
			if err != nil {
				return err
			}
			if err := app.Store.SetAddressLines(cmd.Context(), args); err != nil {
				return err
			}
			fmt.Println("Address updated")
			return nil
		},
	}
}

func settingsFacilitiesCommand() *cobra.Command {
	var add, remove string

	cmd := &cobra.Command{
		Use:   "facilities",
		Short: "Add or remove a listed facility",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadedApp(cmd.Context())
			if err != nil {
				return err
			}
			switch {
			case add != "":
				if err := app.Store.AddFacility(cmd.Context(), add); err != nil {
					return err
				}
				fmt.Printf("Added facility %q\n", add)
			case remove != "":
				if err := app.Store.RemoveFacility(cmd.Context(), remove); err != nil {
					return err
				}
				fmt.Printf("Removed facility %q\n", remove)
			default:
				for _, f := range app.Store.CompanyInfo.Get().Facilities {
					fmt.Println(f)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&add, "add", "", "Facility to add")
	cmd.Flags().StringVar(&remove, "remove", "", "Facility to remove")
	return cmd
}
