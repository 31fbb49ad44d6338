package main

import (
	"fmt"

	"github.com/ikkim/certificate-validator/internal/db"
	"github.com/spf13/cobra"
)

var defaultsCmd = &cobra.Command{
	Use:   "defaults",
	Short: "Load the demo certificates and statistics",
	Long: `Load the 14 demo certificates, the dashboard statistics and the recent
verification list. Tables that already hold rows are left untouched.`,
	Args: cobra.NoArgs,
	RunE: runDefaults,
}

func runDefaults(cmd *cobra.Command, args []string) error {
	closeDB, err := openDatabase()
	if err != nil {
		return err
	}
	defer closeDB()

	if err := db.Seed(); err != nil {
		return fmt.Errorf("seed failed: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Demo data loaded (%d certificates)\n", len(db.SeedCertificates()))
	return nil
}
