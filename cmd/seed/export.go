package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ikkim/certificate-validator/internal/app/repository"
	"github.com/ikkim/certificate-validator/internal/app/service"
	"github.com/ikkim/certificate-validator/internal/db"
	"github.com/ikkim/certificate-validator/pkg/clock"
	"github.com/spf13/cobra"
)

var (
	exportFormat string
	exportDir    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the database export to a file",
	Long: `Write the same export the admin tab downloads, as JSON or XLSX.
The XLSX file can be fed back to the import command.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "Export format (json, xlsx)")
	exportCmd.Flags().StringVarP(&exportDir, "output-dir", "o", ".", "Directory to write the export to")
}

func runExport(cmd *cobra.Command, args []string) error {
	closeDB, err := openDatabase()
	if err != nil {
		return err
	}
	defer closeDB()

	clk := clock.New()
	notifications := service.NewNotificationService(service.DefaultNotificationOptions(), clk, nil)
	exports := service.NewExportService(
		repository.NewCertificateRepository(db.GetDB()),
		repository.NewVerificationRepository(db.GetDB()),
		notifications, nil, clk,
	)

	var file *service.ExportFile
	switch exportFormat {
	case "json":
		file, err = exports.ExportJSON()
	case "xlsx":
		file, err = exports.ExportXLSX()
	default:
		return fmt.Errorf("unknown format %q", exportFormat)
	}
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	path := filepath.Join(exportDir, file.Filename)
	if err := os.WriteFile(path, file.Body, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Export written: %s (%d bytes)\n", path, len(file.Body))
	return nil
}
