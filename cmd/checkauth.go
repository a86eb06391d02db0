package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCheckAuthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check-auth",
		Short: "Verify the configured provider accepts the API key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			provider, closer, err := newProvider(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer closer()

			if err := provider.CheckAuth(cmd.Context()); err != nil {
				return fmt.Errorf("%s authentication failed: %w", provider.Name(), err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "OK: %s authentication successful\n", provider.Name())
			return nil
		},
	}
}
