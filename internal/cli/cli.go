// Package cli implements the pizza-console command-line interface.
package cli

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/franciscosanchezn/gin-pizza-console/internal/client"
	"github.com/franciscosanchezn/gin-pizza-console/internal/config"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	appName = "pizza-console"

	// requestTimeout bounds every backend call made by the console
	requestTimeout = 15 * time.Second
)

// CLI holds shared state for all commands
type CLI struct {
	out        io.Writer
	viper      *viper.Viper
	configFile string
	cfg        *config.ConsoleConfig
}

// New creates a CLI printing to out
func New(out io.Writer) *CLI {
	return &CLI{out: out, viper: config.NewConsoleViper()}
}

// RootCommand creates the root cobra command with all subcommands registered
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           appName,
		Short:         "Operator console for the pizza catalog",
		Long:          `pizza-console manages sizes, sauces, crusts, toppings and designer pizzas through the pizza API, and shows the customer menu.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConsoleConfig(c.viper, c.configFile)
			if err != nil {
				return err
			}
			c.cfg = cfg
			setUpLogger(cfg.LogLevel)
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&c.configFile, "config", "", "config file (default ./pizza-console.yaml)")
	flags.String("api-url", "", "backend base URL")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	_ = c.viper.BindPFlag("api_url", flags.Lookup("api-url"))
	_ = c.viper.BindPFlag("log_level", flags.Lookup("log-level"))

	root.AddCommand(c.serveCommand())
	root.AddCommand(c.menuCommand())

	return root
}

// newAPI builds the resource clients against the configured backend
func (c *CLI) newAPI() (*client.API, error) {
	cl, err := client.New(client.Config{
		BaseURL:    c.cfg.APIURL,
		HTTPClient: &http.Client{Timeout: requestTimeout},
		UserAgent:  appName,
	})
	if err != nil {
		return nil, fmt.Errorf("creating API client: %w", err)
	}
	return client.NewAPI(cl), nil
}

func setUpLogger(level string) {
	log.SetFormatter(&log.JSONFormatter{})
	parsed, err := log.ParseLevel(level)
	if err != nil {
		log.WithField("level", level).Warn("Unknown log level, using info")
		parsed = log.InfoLevel
	}
	log.SetLevel(parsed)
}
