package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/franciscosanchezn/gin-pizza-console/internal/console"
	"github.com/franciscosanchezn/gin-pizza-console/internal/web"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

// serveCommand creates the "serve" command running the web console
func (c *CLI) serveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web console",
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := c.newAPI()
			if err != nil {
				return err
			}
			return c.serve(cmd.Context(), console.New(api))
		},
	}

	cmd.Flags().String("host", "", "listen host")
	cmd.Flags().Int("port", 0, "listen port")
	_ = c.viper.BindPFlag("host", cmd.Flags().Lookup("host"))
	_ = c.viper.BindPFlag("port", cmd.Flags().Lookup("port"))

	return cmd
}

// serve runs the web console until ctx ends, sweeping orphaned images meanwhile
func (c *CLI) serve(ctx context.Context, con *console.Console) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if c.cfg.OrphanSweepInterval > 0 {
		go con.Composer.Orphans().Run(ctx, c.cfg.OrphanSweepInterval)
	}

	srv := &http.Server{
		Addr:              c.cfg.Addr(),
		Handler:           web.NewServer(con, c.cfg.ImageBase()).Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithFields(log.Fields{"addr": srv.Addr, "api_url": c.cfg.APIURL}).Info("Starting web console")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down web console")
	shutdownCtx, done := context.WithTimeout(context.Background(), shutdownTimeout)
	defer done()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	pending := len(con.Composer.Orphans().Pending())
	if pending > 0 {
		log.WithField("orphans", pending).Warn("Stopping with unreclaimed images")
	}
	return nil
}
