package cli

import (
	"fmt"

	"github.com/franciscosanchezn/gin-pizza-console/internal/console"
	"github.com/spf13/cobra"
)

// menuCommand creates the "menu" command printing the customer menu
func (c *CLI) menuCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Print the menu: available pizzas with their prices and the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := c.newAPI()
			if err != nil {
				return err
			}
			con := console.New(api)

			var page console.MenuPage
			con.Menu.Load(cmd.Context(), page.Collect)
			if err := cmd.Context().Err(); err != nil {
				return err
			}

			fmt.Fprint(c.out, renderMenu(&page))
			if len(page.Errors) == len(menuSections) {
				return fmt.Errorf("backend at %s is unreachable", c.cfg.APIURL)
			}
			return nil
		},
	}
}
