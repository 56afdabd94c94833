package main

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/tigerwill90/trail/config"
)

func checkCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate a routing configuration",
		Long: `Build every matcher of the configuration, compiling all patterns, and report
the registered matchers and the router chain.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			reg, _, err := cfg.Build()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			success(out, "%s is valid", configPath)
			for _, name := range reg.Names() {
				m := cfg.Matchers[name]
				switch m.Type {
				case config.TypeNamespace:
					info(out, "%s: %s %s [%s]", name, m.Type, m.Prefix, strings.Join(m.Matchers, ", "))
				default:
					info(out, "%s: %s (%d routes)", name, m.Type, len(m.Routes))
				}
			}
			info(out, "router: [%s]", strings.Join(cfg.Router, ", "))
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "routes.yaml", "Path to the routing configuration")

	return cmd
}
