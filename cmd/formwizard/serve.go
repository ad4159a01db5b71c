package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formwizard/pkg/server"
)

const shutdownTimeout = 5 * time.Second

func newServeCommand(a *app) *cobra.Command {
	var (
		source schemaFlags
		addr   string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a wizard over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			s, err := source.load(ctx)
			if err != nil {
				return err
			}
			st, err := a.cfg.OpenStore()
			if err != nil {
				return err
			}
			defer st.Close()

			handler, err := server.New(s,
				server.WithStore(st),
				server.WithLogger(a.logger),
			)
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("addr") {
				addr = a.cfg.Addr
			}
			srv := &http.Server{
				Addr:              addr,
				Handler:           handler,
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				a.logger.Info("serving wizard", "address", addr, "schema", s.ID, "store", a.cfg.Store)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
				a.logger.Info("shutting down")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				return srv.Shutdown(shutdownCtx)
			}
		},
	}

	source.register(cmd)
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	return cmd
}
