package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/ikkim/certificate-validator/internal/app/repository"
	"github.com/ikkim/certificate-validator/internal/app/service"
	"github.com/ikkim/certificate-validator/internal/db"
	"github.com/ikkim/certificate-validator/pkg/clock"
	"github.com/spf13/cobra"
)

var (
	importYes    bool
	importDryRun bool
)

var importCmd = &cobra.Command{
	Use:   "import <certificates.xlsx>",
	Short: "Import certificates from a spreadsheet",
	Long: `Import certificates from an XLSX file. The layout matches the
admin export: a header row naming the columns (certificate_id,
student_name, roll_number, course, institution, college,
year_of_passing, grade, type) followed by one certificate per row.

Rows are validated like the admin form. Invalid rows and duplicate
certificate IDs are reported and skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().BoolVarP(&importYes, "yes", "y", false, "Import without asking for confirmation")
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Parse and report without writing")
}

func runImport(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", args[0], err)
	}
	defer f.Close()

	fmt.Fprintf(out, "Reading XLSX file: %s\n", args[0])
	rows, err := service.ReadCertificateWorkbook(f)
	if err != nil {
		return err
	}

	parseErrors := 0
	for _, row := range rows {
		if row.Err != nil {
			parseErrors++
			fmt.Fprintf(out, "  skip: %v\n", row.Err)
		}
	}
	fmt.Fprintf(out, "Rows read: %d (%d unreadable)\n", len(rows), parseErrors)
	if importDryRun {
		return nil
	}

	// 사용자 확인
	if !importYes {
		fmt.Fprint(out, "Do you want to proceed with the import? (yes/no): ")
		answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		answer = strings.ToLower(strings.TrimSpace(answer))
		if answer != "yes" && answer != "y" {
			fmt.Fprintln(out, "Import cancelled.")
			return nil
		}
	}

	closeDB, err := openDatabase()
	if err != nil {
		return err
	}
	defer closeDB()

	clk := clock.New()
	notifications := service.NewNotificationService(service.DefaultNotificationOptions(), clk, nil)
	certificates := service.NewCertificateService(
		repository.NewCertificateRepository(db.GetDB()), notifications, nil, clk, nil,
	)

	imported, failed := 0, 0
	for _, row := range rows {
		if row.Err != nil {
			continue
		}
		if _, err := certificates.Create(row.Input); err != nil {
			failed++
			fmt.Fprintf(out, "  row %d (%s): %v\n", row.Line, row.Input.CertificateID, err)
			continue
		}
		imported++
	}

	fmt.Fprintf(out, "\nSummary:\n")
	fmt.Fprintf(out, "  Imported: %d\n", imported)
	fmt.Fprintf(out, "  Rejected: %d\n", failed)
	fmt.Fprintf(out, "  Unreadable: %d\n", parseErrors)
	return nil
}
