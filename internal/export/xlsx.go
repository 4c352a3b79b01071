package export

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/intriguedcoder/ai-document-generator/internal/projects/domain"
)

const (
	summarySheet  = "Sections"
	versionsSheet = "Versions"
)

// HistoryReport writes a workbook with one summary row per section and one
// row per version, including feedback and comments.
type HistoryReport struct{}

func (HistoryReport) Render(w io.Writer, p *domain.Project, at time.Time) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return err
	}
	if _, err := f.NewSheet(versionsSheet); err != nil {
		return err
	}
	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	sections := sortedSections(p)

	summary := [][]interface{}{
		{"Project", p.Title},
		{"Topic", p.Topic},
		{"Type", string(p.Kind)},
		{"Exported", at.UTC().Format(time.RFC3339)},
		{},
		{"Order", "Section", "Versions", "Likes", "Dislikes", "Current content"},
	}
	for _, s := range sections {
		likes, dislikes := countFeedback(s.Versions)
		summary = append(summary, []interface{}{s.Order, s.Title, len(s.Versions), likes, dislikes, s.Content})
	}
	if err := writeRows(f, summarySheet, summary); err != nil {
		return err
	}
	if err := f.SetCellStyle(summarySheet, "A6", "F6", header); err != nil {
		return err
	}

	versions := [][]interface{}{
		{"Section", "Version", "Timestamp", "Prompt", "Feedback", "Comment", "Content"},
	}
	for _, s := range sections {
		for _, v := range s.Versions {
			fb := ""
			if v.Feedback != nil {
				fb = string(*v.Feedback)
			}
			versions = append(versions, []interface{}{
				s.Title, v.Number, v.Timestamp.UTC().Format(time.RFC3339), v.Prompt, fb, v.Comment, v.Content,
			})
		}
	}
	if err := writeRows(f, versionsSheet, versions); err != nil {
		return err
	}
	if err := f.SetCellStyle(versionsSheet, "A1", "G1", header); err != nil {
		return err
	}
	if err := f.SetColWidth(versionsSheet, "D", "G", 40); err != nil {
		return err
	}

	f.SetActiveSheet(0)
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		r := row
		if err := f.SetSheetRow(sheet, cell, &r); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

func countFeedback(versions []domain.Version) (likes, dislikes int) {
	for _, v := range versions {
		if v.Feedback == nil {
			continue
		}
		switch *v.Feedback {
		case domain.FeedbackLike:
			likes++
		case domain.FeedbackDislike:
			dislikes++
		}
	}
	return likes, dislikes
}
