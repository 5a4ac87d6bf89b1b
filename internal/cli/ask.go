package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"alexis-backoffice/internal/concierge"
)

// AskCommand sends one message to the Alexis virtual assistant.
func AskCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ask <message>",
		Short: "Ask the Alexis virtual assistant",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := concierge.New(cmd.Context(), concierge.APIKey())
			if err != nil {
				return err
			}
			if c == nil {
				return fmt.Errorf("assistant unavailable: set GEMINI_API_KEY")
			}
			defer c.Close()

			reply, err := c.Ask(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Println(reply)
			return nil
		},
	}
}
