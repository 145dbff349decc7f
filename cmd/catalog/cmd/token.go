package cmd

import (
	"fmt"
	"time"

	"github.com/mastermind-fa/product-inventory-api/internal/auth"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a bearer token signed with JWT_SECRET",
	RunE:  runToken,
}

func init() {
	rootCmd.AddCommand(tokenCmd)
	tokenCmd.Flags().String("subject", "", "Token subject (required)")
	tokenCmd.Flags().Duration("ttl", 24*time.Hour, "Token lifetime")
	_ = tokenCmd.MarkFlagRequired("subject")
}

func runToken(cmd *cobra.Command, _ []string) error {
	subject, _ := cmd.Flags().GetString("subject")
	ttl, _ := cmd.Flags().GetDuration("ttl")
	if ttl <= 0 {
		return fmt.Errorf("ttl must be positive")
	}

	issuer, err := auth.NewIssuer(viper.GetString("JWT_SECRET"), viper.GetString("JWT_ISSUER"))
	if err != nil {
		return err
	}

	token, err := issuer.Issue(subject, ttl)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
