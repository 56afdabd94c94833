package main

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/spf13/cobra"
	"github.com/tigerwill90/trail"
	"github.com/tigerwill90/trail/config"
	"github.com/tigerwill90/trail/internal/slogpretty"
)

func matchCmd() *cobra.Command {
	var (
		configPath string
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "match PATH...",
		Short: "Resolve paths against a routing configuration",
		Long: `Resolve each path with the router described by the configuration and print
the resulting route. An unresolved path is not an error.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			var opts []trail.Option
			if verbose {
				opts = append(opts, trail.WithLogger(slogpretty.New(cmd.ErrOrStderr(), cmd.ErrOrStderr(), slog.LevelDebug)))
			}

			r, err := cfg.Router(opts...)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, path := range args {
				req := (&http.Request{
					Method: http.MethodGet,
					URL:    &url.URL{Path: path},
					Header: make(http.Header),
				}).WithContext(cmd.Context())

				route, err := r.Match(req)
				if err != nil {
					return fmt.Errorf("failed to match %q: %w", path, err)
				}
				printRoute(out, path, route)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "routes.yaml", "Path to the routing configuration")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log every routing pass on stderr")

	return cmd
}

func printRoute(w io.Writer, path string, route *trail.Route) {
	if route.IsFound() {
		success(w, "%s", path)
	} else {
		warn(w, "%s (not found)", path)
	}
	info(w, "matched: %s", route.MatchedPath())
	info(w, "missing: %s", route.MissingPath())

	params := route.Params()
	if len(params) == 0 {
		return
	}
	info(w, "params:")
	for k, v := range params.All() {
		info(w, "  %s = %v", k, v)
	}
}
