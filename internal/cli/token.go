package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/stashlog/internal/config"
	"github.com/terraincognita07/stashlog/internal/security"
)

func tokenCommand(runner Runner, cfg func() config.Config) *cobra.Command {
	var ttl time.Duration

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token with the configured secret key",
		RunE: func(cmd *cobra.Command, args []string) error {
			auth := cfg().Auth
			if !auth.Enabled() {
				return errors.New("SECRET_KEY is not configured")
			}
			if ttl <= 0 {
				ttl = auth.TokenTTL
			}

			token, expiresAt, err := security.IssueToken([]byte(auth.SecretKey), ttl, runner.Now())
			if err != nil {
				return fmt.Errorf("issue token: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			fmt.Fprintf(cmd.ErrOrStderr(), "expires %s\n", expiresAt.UTC().Format(time.RFC3339))
			return nil
		},
	}
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "Token lifetime (defaults to TOKEN_TTL)")
	return cmd
}
