package dataset

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
	"vocab-annotator-go/internal/logger"
	"vocab-annotator-go/internal/types"
)

const (
	SheetJobs       = "Jobs"
	SheetVocabulary = "Vocabulary"
	SheetEntities   = "Entities"
)

// WriteResults exports batch results as a workbook with one sheet per
// annotation kind plus a per-job summary sheet.
func WriteResults(path string, results []types.JobResult) error {
	log := logger.New().Component("dataset").WithField("path", path)

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetJobs); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	for _, s := range []string{SheetVocabulary, SheetEntities} {
		if _, err := f.NewSheet(s); err != nil {
			return fmt.Errorf("new sheet %s: %w", s, err)
		}
	}

	jobs := [][]any{{"job_id", "video_id", "start", "end", "vocab_count", "entity_count", "duration_ms", "error"}}
	vocab := [][]any{{"job_id", "video_id", "term", "timestamp", "explanation", "synonyms"}}
	entities := [][]any{{"job_id", "video_id", "entity", "type", "timestamp", "summary"}}

	for _, r := range results {
		jobs = append(jobs, []any{r.Job.ID, r.Job.VideoID, r.Job.Window.Start, r.Job.Window.End,
			len(r.Result.VocabExplanations), len(r.Result.ContextEntities), r.DurationMs, r.Error})
		for _, v := range r.Result.VocabExplanations {
			vocab = append(vocab, []any{r.Job.ID, r.Job.VideoID, v.Term, v.Timestamp, v.Explanation, strings.Join(v.Synonyms, ", ")})
		}
		for _, e := range r.Result.ContextEntities {
			entities = append(entities, []any{r.Job.ID, r.Job.VideoID, e.Entity, string(e.Type), e.Timestamp, e.Summary})
		}
	}

	for sheet, rows := range map[string][][]any{SheetJobs: jobs, SheetVocabulary: vocab, SheetEntities: entities} {
		if err := writeRows(f, sheet, rows); err != nil {
			return err
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	log.WithField("jobs", len(results)).WithField("vocab_rows", len(vocab)-1).WithField("entity_rows", len(entities)-1).Info("results exported")
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		addr, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, addr, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
