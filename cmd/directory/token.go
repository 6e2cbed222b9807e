// cmd/directory/token.go
package main

import (
	"bufio"
	"fmt"
	"strings"
	"time"

	"github.com/dangerclosesec/directory/internal/auth"
	"github.com/dangerclosesec/directory/internal/config"
	"github.com/spf13/cobra"
)

var (
	tokenUsername string
	tokenExpiry   time.Duration
)

func init() {
	tokenCmd.Flags().StringVarP(&tokenUsername, "username", "u", "", "Principal to issue the token for (defaults to ADMIN_USERNAME)")
	tokenCmd.Flags().DurationVarP(&tokenExpiry, "expiry", "e", 0, "Token lifetime (defaults to JWT_EXPIRY)")
}

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a bearer token with the configured JWT secret",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()

		username := tokenUsername
		if username == "" {
			username = cfg.Admin.Username
		}
		expiry := tokenExpiry
		if expiry == 0 {
			expiry = cfg.JWT.ExpiryPeriod
		}

		token, err := auth.NewTokenManager(cfg.JWT.Secret, expiry).Generate(username)
		if err != nil {
			return fmt.Errorf("generating token: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

var hashPasswordCmd = &cobra.Command{
	Use:   "hash-password",
	Short: "Read a password from stdin and print its argon2id hash for ADMIN_PASSWORD_HASH",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if err != nil && line == "" {
			return fmt.Errorf("reading password: %w", err)
		}

		password := strings.TrimRight(line, "\r\n")
		if password == "" {
			return fmt.Errorf("empty password")
		}

		hash, err := auth.NewPasswordHasher().Hash(password)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), hash)
		return nil
	},
}
