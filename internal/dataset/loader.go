package dataset

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"vocab-annotator-go/internal/logger"
	"vocab-annotator-go/internal/types"
)

// LoadJobs reads batch jobs from the first sheet of an .xlsx workbook.
// Columns are detected from the header row: a video id or URL column, start
// and end columns (seconds or clock values) and an optional id column.
func LoadJobs(path string) ([]types.Job, error) {
	log := logger.New().Component("dataset").WithField("path", path)

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	if len(rows) <= 1 {
		return nil, fmt.Errorf("no data rows")
	}

	videoIdx, startIdx, endIdx, idIdx := -1, -1, -1, -1
	for i, h := range rows[0] {
		l := strings.ToLower(strings.TrimSpace(h))
		switch {
		case strings.Contains(l, "video") || strings.Contains(l, "youtube") || strings.Contains(l, "url"):
			if videoIdx == -1 {
				videoIdx = i
			}
		case strings.Contains(l, "start"):
			if startIdx == -1 {
				startIdx = i
			}
		case strings.Contains(l, "end"):
			if endIdx == -1 {
				endIdx = i
			}
		case l == "id" || strings.Contains(l, "job"):
			if idIdx == -1 {
				idIdx = i
			}
		}
	}
	if videoIdx == -1 || startIdx == -1 || endIdx == -1 {
		return nil, fmt.Errorf("header must name video, start and end columns")
	}

	var out []types.Job
	for i, r := range rows[1:] {
		rowLog := log.WithField("row", i+2)
		videoID := VideoID(cell(r, videoIdx))
		if videoID == "" {
			continue
		}
		start, err := types.ParseSeconds(cell(r, startIdx))
		if err != nil {
			rowLog.WithField("error", err.Error()).Warn("skipping row with bad start")
			continue
		}
		end, err := types.ParseSeconds(cell(r, endIdx))
		if err != nil {
			rowLog.WithField("error", err.Error()).Warn("skipping row with bad end")
			continue
		}
		w := types.TimeWindow{Start: start, End: end}
		if err := w.Validate(); err != nil {
			rowLog.WithField("error", err.Error()).Warn("skipping row with bad window")
			continue
		}
		id := cell(r, idIdx)
		if id == "" {
			id = uuid.New().String()
		}
		out = append(out, types.Job{ID: id, VideoID: videoID, Window: w})
	}
	log.WithField("jobs", len(out)).Info("batch jobs loaded")
	return out, nil
}

func cell(r []string, idx int) string {
	if idx < 0 || idx >= len(r) {
		return ""
	}
	return strings.TrimSpace(r[idx])
}

// VideoID accepts a bare id or a youtube.com / youtu.be URL.
func VideoID(s string) string {
	s = strings.TrimSpace(s)
	if !strings.Contains(s, "/") {
		return s
	}
	u, err := url.Parse(s)
	if err != nil {
		return ""
	}
	if v := u.Query().Get("v"); v != "" {
		return v
	}
	host := strings.TrimPrefix(u.Hostname(), "www.")
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	switch {
	case host == "youtu.be" && parts[0] != "":
		return parts[0]
	case len(parts) == 2 && (parts[0] == "shorts" || parts[0] == "embed" || parts[0] == "live"):
		return parts[1]
	}
	return ""
}
