package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/SscSPs/ledger_engine/internal/middleware"
)

var (
	tokenSubject string
	tokenTTL     time.Duration
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue an API bearer token",
	Long: `Sign a JWT for the given subject with JWT_SECRET and JWT_ISSUER. The
subject is recorded as the creator of everything posted with the token.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ttl := tokenTTL
		if ttl <= 0 {
			ttl = appCfg.JWTExpiryDuration
		}
		token, err := middleware.IssueToken(middleware.AuthConfig{Secret: appCfg.JWTSecret, Issuer: appCfg.JWTIssuer}, tokenSubject, ttl, time.Now())
		if err != nil {
			return fmt.Errorf("failed to sign token: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenSubject, "subject", "", "user id placed in the sub claim")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 0, "token lifetime (default JWT_EXPIRY_DURATION)")
	_ = tokenCmd.MarkFlagRequired("subject")
}
