// Package cli is the storefront command line.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"example.com/storefront/app/internal/domain/notice"
	"example.com/storefront/app/internal/infra/config"
	"example.com/storefront/app/internal/infra/logging"
)

type options struct {
	configPath string
	endpoint   string
	verbose    bool
}

// runtime carries what PersistentPreRunE prepared for the subcommands.
type runtime struct {
	cfg     *config.Config
	logger  *zap.Logger
	printer *printer
	stdout  io.Writer
	stdin   io.Reader
}

func newRootCommand(rt *runtime) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "storefront",
		Short: "Browse the QKart catalog and manage your cart from the terminal",
		Long: `storefront talks to a QKart backend: list and search products,
log in, and add or change items in your cart.

Run "storefront browse" for the interactive browser.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			if opts.endpoint != "" {
				cfg.Endpoint = opts.endpoint
				if err := cfg.Validate(); err != nil {
					return err
				}
			}
			level := cfg.Logging.Level
			if opts.verbose {
				level = "debug"
			}

			// The browser owns the terminal, so its logs go to a file.
			var outputs []string
			if cmd.Name() == "browse" && cfg.Logging.File != "" {
				outputs = []string{cfg.Logging.File}
			}
			logger, err := logging.New(level, cfg.Logging.Format, outputs...)
			if err != nil {
				return err
			}

			rt.cfg = cfg
			rt.logger = logger
			rt.stdout = cmd.OutOrStdout()
			rt.stdin = cmd.InOrStdin()
			rt.printer = newPrinter(cmd.ErrOrStderr())
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if rt.logger != nil {
				_ = rt.logger.Sync()
			}
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", config.DefaultConfigPath(), "path to config file")
	cmd.PersistentFlags().StringVar(&opts.endpoint, "endpoint", "", "API root, overrides config (e.g. http://localhost:8082/api/v1)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	cmd.AddCommand(
		newProductsCommand(rt),
		newSearchCommand(rt),
		newCartCommand(rt),
		newLoginCommand(rt),
		newLogoutCommand(rt),
		newWhoamiCommand(rt),
		newBrowseCommand(rt),
	)

	return cmd
}

// Execute runs the storefront command line and returns the process exit
// code. A failure the user has already seen as a notice is not printed a
// second time; any other failure is.
func Execute(ctx context.Context, args []string) int {
	rt := &runtime{}
	cmd := newRootCommand(rt)
	cmd.SetArgs(args)
	return execute(ctx, cmd)
}

func execute(ctx context.Context, cmd *cobra.Command) int {
	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}
	if !notice.WasShown(err) {
		fmt.Fprintln(cmd.ErrOrStderr(), errorStyle.Render("error")+": "+err.Error())
	}
	return 1
}
