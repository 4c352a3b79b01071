package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/intriguedcoder/ai-document-generator/config"
	"github.com/intriguedcoder/ai-document-generator/internal/bootstrap"
	"github.com/intriguedcoder/ai-document-generator/internal/projects/domain"
)

var (
	outlineTopic    string
	outlineType     string
	outlineSections int
)

var outlineCmd = &cobra.Command{
	Use:   "outline",
	Short: "Suggest a section outline for a topic",
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := domain.ParseDocKind(outlineType)
		if err != nil {
			return err
		}
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		writer, err := bootstrap.NewWriter(cfg.LLM, nil)
		if err != nil {
			return err
		}

		outline := writer.SuggestOutline(cmd.Context(), outlineTopic, kind, outlineSections)
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(outline)
	},
}

func init() {
	outlineCmd.Flags().StringVar(&outlineTopic, "topic", "", "document topic")
	outlineCmd.Flags().StringVar(&outlineType, "type", "word", "word or slides")
	outlineCmd.Flags().IntVar(&outlineSections, "sections", 5, "number of sections")
	_ = outlineCmd.MarkFlagRequired("topic")
}
