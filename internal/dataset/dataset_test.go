package dataset

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
	"vocab-annotator-go/internal/types"
)

func writeSheet(t *testing.T, rows [][]any) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		addr, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow("Sheet1", addr, &row); err != nil {
			t.Fatal(err)
		}
	}
	path := filepath.Join(t.TempDir(), "jobs.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadJobs(t *testing.T) {
	path := writeSheet(t, [][]any{
		{"Job ID", "YouTube URL", "Start", "End"},
		{"j1", "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=10", "0", "120"},
		{"", "abc123", "1:00", "2:30"},
		{"j3", "", "0", "10"},
		{"j4", "xyz", "soon", "10"},
		{"j5", "xyz", "50", "10"},
		{"j6", "https://youtu.be/short1", 5, 15.5},
	})

	jobs, err := LoadJobs(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(jobs) != 3 {
		t.Fatalf("jobs = %+v", jobs)
	}
	if jobs[0].ID != "j1" || jobs[0].VideoID != "dQw4w9WgXcQ" || jobs[0].Window != (types.TimeWindow{Start: 0, End: 120}) {
		t.Errorf("job 0 = %+v", jobs[0])
	}
	if jobs[1].ID == "" || jobs[1].VideoID != "abc123" || jobs[1].Window != (types.TimeWindow{Start: 60, End: 150}) {
		t.Errorf("job 1 = %+v", jobs[1])
	}
	if jobs[2].VideoID != "short1" || jobs[2].Window.End != 15.5 {
		t.Errorf("job 2 = %+v", jobs[2])
	}
}

func TestLoadJobsRequiresColumns(t *testing.T) {
	path := writeSheet(t, [][]any{{"name", "notes"}, {"a", "b"}})
	if _, err := LoadJobs(path); err == nil {
		t.Error("expected header error")
	}
	if _, err := LoadJobs(filepath.Join(t.TempDir(), "missing.xlsx")); err == nil {
		t.Error("expected open error")
	}
}

func TestVideoID(t *testing.T) {
	cases := []struct{ in, want string }{
		{"dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/watch?v=abc", "abc"},
		{"https://youtu.be/xyz?t=3", "xyz"},
		{"https://www.youtube.com/shorts/s1", "s1"},
		{"https://www.youtube.com/embed/e1", "e1"},
		{"https://example.com/some/other/path", ""},
		{"", ""},
	}
	for _, c := range cases {
		if got := VideoID(c.in); got != c.want {
			t.Errorf("VideoID(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestWriteResults(t *testing.T) {
	results := []types.JobResult{
		{
			Job: types.Job{ID: "j1", VideoID: "v1", Window: types.TimeWindow{Start: 0, End: 60}},
			Result: types.PipelineResult{
				VocabExplanations: []types.VocabAnnotation{{Term: "ephemeral", Explanation: "brief", Synonyms: []string{"brief", "fleeting"}, Timestamp: 12.5}},
				ContextEntities:   []types.ContextEntity{{Entity: "Apple", Type: types.EntityOrganization, Timestamp: 8, Summary: "A company."}},
			},
			DurationMs: 42,
		},
		{Job: types.Job{ID: "j2", VideoID: "v2", Window: types.TimeWindow{Start: 0, End: 60}}, Error: "no transcript available for this video"},
	}
	path := filepath.Join(t.TempDir(), "out.xlsx")
	if err := WriteResults(path, results); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	jobs, _ := f.GetRows(SheetJobs)
	if len(jobs) != 3 || jobs[2][7] != "no transcript available for this video" {
		t.Errorf("jobs sheet = %v", jobs)
	}
	vocab, _ := f.GetRows(SheetVocabulary)
	if len(vocab) != 2 || vocab[1][2] != "ephemeral" || vocab[1][5] != "brief, fleeting" {
		t.Errorf("vocabulary sheet = %v", vocab)
	}
	entities, _ := f.GetRows(SheetEntities)
	if len(entities) != 2 || entities[1][3] != "organization" || entities[1][5] != "A company." {
		t.Errorf("entities sheet = %v", entities)
	}
}
