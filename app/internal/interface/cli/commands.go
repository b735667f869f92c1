package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"example.com/storefront/app/internal/interface/tui"
)

func newProductsCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "products",
		Short: "List the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := rt.newApp(rt.printer)
			if err != nil {
				return err
			}
			products, err := app.ReloadCatalog(cmd.Context())
			if err != nil {
				return err
			}
			renderProducts(rt.stdout, products)
			return nil
		},
	}
}

func newSearchCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "search <text>",
		Short: "Search products by name or category",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := rt.newApp(rt.printer)
			if err != nil {
				return err
			}
			// The catalog is what a failed search falls back to.
			if _, err := app.ReloadCatalog(cmd.Context()); err != nil {
				return err
			}
			products, err := app.Search(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			renderProducts(rt.stdout, products)
			return nil
		},
	}
}

func newCartCommand(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Show the cart of the logged in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := rt.newApp(rt.printer)
			if err != nil {
				return err
			}
			view, err := app.Load(cmd.Context())
			if err != nil {
				return err
			}
			if view.Session == nil {
				fmt.Fprintln(rt.stdout, mutedStyle.Render("Not logged in. Run \"storefront login <username>\" to see your cart."))
				return nil
			}
			renderCart(rt.stdout, view.Cart)
			return nil
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "add <product-id>",
			Short: "Add one unit of a product to the cart",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				app, err := rt.newApp(rt.printer)
				if err != nil {
					return err
				}
				if _, err := app.Load(cmd.Context()); err != nil {
					return err
				}
				items, err := app.AddToCart(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				renderCart(rt.stdout, items)
				return nil
			},
		},
		&cobra.Command{
			Use:   "set <product-id> <qty>",
			Short: "Set the quantity of a product in the cart",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				qty, err := strconv.ParseInt(args[1], 10, 64)
				if err != nil || qty < 0 {
					return fmt.Errorf("invalid quantity %q: must be a whole number >= 0", args[1])
				}
				app, err := rt.newApp(rt.printer)
				if err != nil {
					return err
				}
				if _, err := app.Load(cmd.Context()); err != nil {
					return err
				}
				items, err := app.SetQuantity(cmd.Context(), args[0], qty)
				if err != nil {
					return err
				}
				renderCart(rt.stdout, items)
				return nil
			},
		},
		&cobra.Command{
			Use:     "remove <product-id>",
			Aliases: []string{"rm"},
			Short:   "Remove a product from the cart",
			Args:    cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				app, err := rt.newApp(rt.printer)
				if err != nil {
					return err
				}
				if _, err := app.Load(cmd.Context()); err != nil {
					return err
				}
				items, err := app.Remove(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				renderCart(rt.stdout, items)
				return nil
			},
		},
	)
	return cmd
}

func newLoginCommand(rt *runtime) *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "login <username>",
		Short: "Log in and remember the session",
		Long: `Log in to the storefront. The password is read from --password or,
when the flag is absent, from the first line of standard input.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("password") {
				p, err := readLine(rt.stdin)
				if err != nil {
					return fmt.Errorf("read password: %w", err)
				}
				password = p
			}

			app, err := rt.newApp(rt.printer)
			if err != nil {
				return err
			}
			// A catalog failure is already reported; the login itself can
			// still succeed.
			_, _ = app.ReloadCatalog(cmd.Context())

			view, err := app.Login(cmd.Context(), args[0], password)
			if err != nil {
				return err
			}
			if view.Session != nil {
				fmt.Fprintf(rt.stdout, "%s %s\n", headerStyle.Render(view.Session.Username),
					mutedStyle.Render(fmt.Sprintf("wallet $%d, %d item(s) in cart", view.Session.Balance, len(view.Cart))))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&password, "password", "p", "", "password (read from stdin when omitted)")
	return cmd
}

func newLogoutCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := rt.newApp(rt.printer)
			if err != nil {
				return err
			}
			return app.Logout(cmd.Context())
		},
	}
}

func newWhoamiCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := rt.newApp(rt.printer)
			if err != nil {
				return err
			}
			sess, err := app.Session(cmd.Context())
			if err != nil {
				return err
			}
			if sess == nil {
				fmt.Fprintln(rt.stdout, mutedStyle.Render("Not logged in"))
				return nil
			}
			line := fmt.Sprintf("%s (wallet $%d)", sess.Username, sess.Balance)
			if !sess.ExpiresAt.IsZero() {
				line += mutedStyle.Render(" expires " + sess.ExpiresAt.Local().Format("2006-01-02 15:04"))
			}
			fmt.Fprintln(rt.stdout, line)
			return nil
		},
	}
}

func newBrowseCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Open the interactive storefront browser",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			delay, err := rt.cfg.DebounceDelay()
			if err != nil {
				return err
			}
			events := make(chan tea.Msg, tui.EventBuffer)
			app, err := rt.newApp(tui.NewNotifier(events))
			if err != nil {
				return err
			}
			return tui.Run(cmd.Context(), app, events, delay)
		},
	}
}

func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
