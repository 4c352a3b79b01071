package main

import (
	"fmt"
	"os"
	"path/filepath"

	firebase "firebase.google.com/go/v4"
	"github.com/spf13/cobra"

	"github.com/intriguedcoder/ai-document-generator/config"
	"github.com/intriguedcoder/ai-document-generator/internal/auth"
	"github.com/intriguedcoder/ai-document-generator/internal/bootstrap"
	"github.com/intriguedcoder/ai-document-generator/internal/export"
	"github.com/intriguedcoder/ai-document-generator/internal/projects/service"
)

var (
	exportProject string
	exportUser    string
	exportFormat  string
	exportOut     string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Render a stored project to a file",
	Example: `  docctl export --project 3f2a... --user uid123 --format docx
  docctl export --project 3f2a... --user uid123 --format xlsx --out ./reports`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportProject, "project", "", "project id")
	exportCmd.Flags().StringVar(&exportUser, "user", "", "owner user id")
	exportCmd.Flags().StringVar(&exportFormat, "format", "docx", "docx, pptx or xlsx")
	exportCmd.Flags().StringVar(&exportOut, "out", ".", "output directory")
	_ = exportCmd.MarkFlagRequired("project")
	_ = exportCmd.MarkFlagRequired("user")
}

func runExport(cmd *cobra.Command, args []string) error {
	format, err := export.ParseFormat(exportFormat)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx := cmd.Context()

	var app *firebase.App
	if cfg.Store.Driver == config.StoreFirestore {
		app, err = auth.InitializeFirebase(ctx, &cfg.Firebase)
		if err != nil {
			return err
		}
	}
	st, closeStore, err := bootstrap.OpenStore(ctx, cfg.Store, app, nil)
	if err != nil {
		return err
	}
	defer closeStore()

	file, err := service.NewExportService(st, nil, nil).Export(ctx, exportUser, exportProject, format)
	if err != nil {
		return err
	}

	path := filepath.Join(exportOut, file.Name)
	if err := os.WriteFile(path, file.Data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes)\n", path, len(file.Data))
	return nil
}
