package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jens-platform/ifc-match/internal/config"
	"github.com/jens-platform/ifc-match/internal/export"
	"github.com/jens-platform/ifc-match/internal/ingest"
	"github.com/jens-platform/ifc-match/internal/recon"
	"github.com/jens-platform/ifc-match/internal/store"
	"github.com/jens-platform/ifc-match/internal/web"
)

func main() {
	if err := config.LoadEnv(); err != nil {
		log.Printf("Warning: failed to load .env: %v", err)
	}

	rootCmd := &cobra.Command{
		Use:   "ifc-match",
		Short: "Jens Platform IFC/Schedule Reconciliation",
		Long:  `Links building elements from an IFC model to rows of a schedule export, producing a confidence-scored match map with coverage and diagnostics`,
	}

	rootCmd.AddCommand(createRunCmd())
	rootCmd.AddCommand(createExportCmd())
	rootCmd.AddCommand(createServeCmd())
	rootCmd.AddCommand(createPingCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// createRunCmd creates the run subcommand
func createRunCmd() *cobra.Command {
	var elementsPath, schedulePath, runLabel, exportDir string
	var save, localDebug bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run reconciliation against an element manifest and a schedule export",
		Long:  `Reads an element manifest CSV and a schedule export (CSV or XLSX), reconciles them, and prints summary statistics. Optionally persists the run and exports result CSVs`,
		Run: func(cmd *cobra.Command, args []string) {
			result := runReconciliation(localDebug, elementsPath, schedulePath)

			exporter := export.NewExporter(result)
			exporter.PrintSummary()

			if exportDir != "" {
				if err := exporter.ExportAll(exportDir); err != nil {
					log.Fatalf("Export failed: %v", err)
				}
			}

			if save {
				if runLabel == "" {
					runLabel = fmt.Sprintf("run-%d", time.Now().Unix())
				}
				saveRun(runLabel, result)
			}
		},
	}

	cmd.Flags().StringVar(&elementsPath, "elements", "", "Element manifest CSV path (required)")
	cmd.Flags().StringVar(&schedulePath, "schedule", "", "Schedule export path, CSV or XLSX (required)")
	cmd.Flags().StringVar(&runLabel, "label", "", "Label for this run when saving")
	cmd.Flags().StringVar(&exportDir, "export-dir", "", "Directory to write result CSVs into")
	cmd.Flags().BoolVar(&save, "save", false, "Persist the run to the database")
	cmd.Flags().BoolVar(&localDebug, "debug", false, "Print per-element matching trace")
	cmd.MarkFlagRequired("elements")
	cmd.MarkFlagRequired("schedule")

	return cmd
}

// createExportCmd creates the export subcommand
func createExportCmd() *cobra.Command {
	var elementsPath, schedulePath, outputDir string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Run reconciliation and export the result as CSVs",
		Run: func(cmd *cobra.Command, args []string) {
			result := runReconciliation(false, elementsPath, schedulePath)

			exporter := export.NewExporter(result)
			exporter.PrintSummary()
			if err := exporter.ExportAll(outputDir); err != nil {
				log.Fatalf("Export failed: %v", err)
			}
		},
	}

	cmd.Flags().StringVar(&elementsPath, "elements", "", "Element manifest CSV path (required)")
	cmd.Flags().StringVar(&schedulePath, "schedule", "", "Schedule export path, CSV or XLSX (required)")
	cmd.Flags().StringVar(&outputDir, "output", "export", "Output directory for CSV files")
	cmd.MarkFlagRequired("elements")
	cmd.MarkFlagRequired("schedule")

	return cmd
}

// createServeCmd creates the serve subcommand
func createServeCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the reconciliation report API",
		Run: func(cmd *cobra.Command, args []string) {
			cfg := web.DefaultConfig()
			if configPath != "" {
				loaded, err := web.LoadConfig(configPath)
				if err != nil {
					log.Fatalf("Failed to load config %s: %v", configPath, err)
				}
				cfg = loaded
			}

			// Environment overrides take precedence over file config.
			cfg.Server.Port = config.GetEnvInt("PORT", cfg.Server.Port)
			cfg.Server.Host = config.GetEnv("HOST", cfg.Server.Host)
			cfg.Features.ExportEnabled = config.GetEnvBool("EXPORT_ENABLED", cfg.Features.ExportEnabled)

			server := web.NewServer(cfg)
			if err := server.Start(); err != nil {
				log.Fatalf("Server failed: %v", err)
			}
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "JSON config file path")

	return cmd
}

// createPingCmd creates a command to test database connectivity
func createPingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Test database connectivity",
		Run: func(cmd *cobra.Command, args []string) {
			conn, err := store.NewConnection()
			if err != nil {
				log.Fatalf("Failed to connect to database: %v", err)
			}
			defer conn.Close()

			fmt.Println("Database connection successful!")

			var count int
			if err := conn.DB.QueryRow("SELECT COUNT(*) FROM recon_run").Scan(&count); err != nil {
				log.Printf("Error counting recon_run records: %v", err)
			} else {
				fmt.Printf("Reconciliation runs recorded: %d\n", count)
			}
		},
	}
}

func runReconciliation(localDebug bool, elementsPath, schedulePath string) *recon.MatchResult {
	elements, skippedElements, err := ingest.ReadElementManifest(elementsPath)
	if err != nil {
		log.Fatalf("Failed to read element manifest: %v", err)
	}

	rows, skippedRows, err := ingest.ReadSchedule(schedulePath)
	if err != nil {
		log.Fatalf("Failed to read schedule: %v", err)
	}

	fmt.Printf("Loaded %d elements (%d lines skipped), %d schedule rows (%d lines skipped)\n",
		len(elements), skippedElements, len(rows), skippedRows)

	engine := recon.NewEngine()
	return engine.Reconcile(localDebug, elements, rows)
}

func saveRun(runLabel string, result *recon.MatchResult) {
	conn, err := store.NewConnection()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer conn.Close()

	runStore := store.NewRunStore(conn.DB)

	run, err := runStore.CreateRun(runLabel, "CLI reconciliation run")
	if err != nil {
		log.Fatalf("Failed to create run: %v", err)
	}

	if err := runStore.SaveResult(run, result); err != nil {
		log.Fatalf("Failed to save result: %v", err)
	}

	if err := runStore.CompleteRun(run, result.Totals); err != nil {
		log.Fatalf("Failed to complete run: %v", err)
	}

	fmt.Printf("Saved run %s (%s)\n", run.RunID, runLabel)
}
