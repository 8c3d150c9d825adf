package cmd

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pterm/pterm"

	"github.com/Tiliavir/togglpie/internal/config"
	"github.com/Tiliavir/togglpie/internal/timecalc"
)

const scenarioEntries = `[
  {"id": 1, "description": "coding", "tags": ["dev"], "duration": 3600},
  {"id": 2, "description": "standup", "tags": ["dev", "meeting"], "duration": 1800},
  {"id": 3, "description": "lunch", "tags": [], "duration": 2700}
]`

// fakeToggl serves body and records the query of every request.
func fakeToggl(t *testing.T, status int, body string) (*httptest.Server, *[]url.Values) {
	t.Helper()
	var queries []url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		queries = append(queries, r.URL.Query())
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &queries
}

func run(t *testing.T, baseURL string, args ...string) (string, error) {
	t.Helper()
	return runWithToken(t, "tok", baseURL, args...)
}

// runWithToken executes the root command with fresh flag values, a private
// config directory and a fixed clock at 2026-02-27 15:00 MSK.
func runWithToken(t *testing.T, token, baseURL string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("API_TOKEN", token)
	t.Setenv("TOGGL_BASE_URL", baseURL)
	t.Setenv("TOGGLPIE_TZ", "Europe/Moscow")
	t.Setenv("TOGGLPIE_HOURS_PER_WORKDAY", "")

	configPath, inputPath, verbose = "", "", false
	csvWorkdays, pngWorkdays, tableWorkdays = 0, 0, 0
	pngFilename = ""

	prevNow := now
	now = func() time.Time { return time.Date(2026, 2, 27, 12, 0, 0, 0, time.UTC) }
	t.Cleanup(func() { now = prevNow })

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCSVScenario(t *testing.T) {
	srv, queries := fakeToggl(t, http.StatusOK, scenarioEntries)

	out, err := run(t, srv.URL, "csv", "2026-02-27", "--workdays", "1")
	if err != nil {
		t.Fatalf("csv: %v", err)
	}
	want := "Interval: 2026-02-27T00:00:00+03:00, 2026-02-27T15:00:00+03:00\n" +
		"Workdays: 1\n" +
		"\n" +
		"dev,1.5\n" +
		"meeting,0.5\n" +
		"без разметки,6\n"
	if out != want {
		t.Errorf("csv output:\n%q\nwant:\n%q", out, want)
	}

	if len(*queries) != 1 {
		t.Fatalf("requests = %d, want 1", len(*queries))
	}
	q := (*queries)[0]
	if q.Get("start_date") != "2026-02-27T00:00:00+03:00" || q.Get("end_date") != "2026-02-27T15:00:00+03:00" {
		t.Errorf("query = %v", q)
	}
}

func TestCSVDerivesWorkdaysFromInterval(t *testing.T) {
	srv, _ := fakeToggl(t, http.StatusOK, `[]`)

	out, err := run(t, srv.URL, "csv", "2026-02-23", "2026-02-28")
	if err != nil {
		t.Fatalf("csv: %v", err)
	}
	if !strings.Contains(out, "Workdays: 5\n") || !strings.HasSuffix(out, "\nбез разметки,40\n") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestCSVDefaultIntervalFallsBackToOneDay(t *testing.T) {
	srv, _ := fakeToggl(t, http.StatusOK, `[]`)

	out, err := run(t, srv.URL, "csv")
	if err != nil {
		t.Fatalf("csv: %v", err)
	}
	if !strings.HasPrefix(out, "Interval: 2026-02-27T00:00:00+03:00, 2026-02-27T15:00:00+03:00\nWorkdays: 1\n") {
		t.Errorf("unexpected output:\n%s", out)
	}
	if !strings.HasSuffix(out, "\nбез разметки,8\n") {
		t.Errorf("empty entry list should leave only the unaccounted bucket:\n%s", out)
	}
}

func TestReport(t *testing.T) {
	srv, queries := fakeToggl(t, http.StatusOK, `[
		{"description": "standup", "tags": ["meeting"], "duration": 900},
		{"description": "review", "duration": 1500},
		{"description": "standup", "duration": 60}
	]`)

	out, err := run(t, srv.URL, "report", "2026-02-20")
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	want := "Interval: 2026-02-20T00:00:00+03:00, 2026-02-20T23:59:59+03:00\n" +
		"- standup / 00:16:00\n" +
		"- review / 00:25:00\n"
	if out != want {
		t.Errorf("report output:\n%q\nwant:\n%q", out, want)
	}
	if got := (*queries)[0].Get("end_date"); got != "2026-02-20T23:59:59+03:00" {
		t.Errorf("end_date = %q", got)
	}
}

func TestReportDefaultsToToday(t *testing.T) {
	srv, queries := fakeToggl(t, http.StatusOK, `[{"description": "standup", "duration": 900}]`)

	out, err := run(t, srv.URL, "report")
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if !strings.HasSuffix(out, "- standup / 00:15:00\n") {
		t.Errorf("report output:\n%s", out)
	}
	if got := (*queries)[0].Get("start_date"); got != "2026-02-27T00:00:00+03:00" {
		t.Errorf("start_date = %q", got)
	}
}

func TestPNG(t *testing.T) {
	srv, _ := fakeToggl(t, http.StatusOK, scenarioEntries)
	path := filepath.Join(t.TempDir(), "chart.png")

	out, err := run(t, srv.URL, "png", "2026-02-27", "--workdays", "1", "--filename", path)
	if err != nil {
		t.Fatalf("png: %v", err)
	}
	if !strings.HasSuffix(out, "Saved chart to "+path+"\n") {
		t.Errorf("png output:\n%s", out)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("chart not written: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("\x89PNG")) {
		t.Errorf("chart is not a PNG")
	}
}

func TestPNGDefaultFilename(t *testing.T) {
	srv, _ := fakeToggl(t, http.StatusOK, `[]`)
	dir := t.TempDir()
	chdir(t, dir)

	if _, err := run(t, srv.URL, "png"); err != nil {
		t.Fatalf("png: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, config.DefaultChartFilename)); err != nil {
		t.Errorf("default chart not written: %v", err)
	}
}

func TestTable(t *testing.T) {
	pterm.DisableStyling()
	defer pterm.EnableStyling()
	srv, _ := fakeToggl(t, http.StatusOK, scenarioEntries)

	out, err := run(t, srv.URL, "table", "2026-02-27", "--workdays", "1")
	if err != nil {
		t.Fatalf("table: %v", err)
	}
	for _, want := range []string{"dev", "1.50", "meeting", "без разметки", "75.00%"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}

func TestInputFileNeedsNoToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "entries.json")
	if err := os.WriteFile(path, []byte(scenarioEntries), 0o600); err != nil {
		t.Fatal(err)
	}

	out, err := runWithToken(t, "", "http://127.0.0.1:0", "csv", "--input", path, "--workdays", "1")
	if err != nil {
		t.Fatalf("csv --input: %v", err)
	}
	if !strings.HasSuffix(out, "dev,1.5\nmeeting,0.5\nбез разметки,6\n") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestErrors(t *testing.T) {
	srv, _ := fakeToggl(t, http.StatusOK, `[]`)
	broken, _ := fakeToggl(t, http.StatusInternalServerError, `boom`)
	garbage, _ := fakeToggl(t, http.StatusOK, `not json`)

	tests := []struct {
		name    string
		baseURL string
		args    []string
		check   func(error) bool
	}{
		{"bad timestamp", srv.URL, []string{"csv", "last week"}, func(err error) bool { return errors.Is(err, timecalc.ErrBadInstant) }},
		{"negative workdays", srv.URL, []string{"png", "--workdays", "-2"}, func(err error) bool { return strings.Contains(err.Error(), "--workdays") }},
		{"too many args", srv.URL, []string{"report", "2026-02-20", "2026-02-21"}, func(err error) bool { return err != nil }},
		{"server error", broken.URL, []string{"csv"}, func(err error) bool { return strings.Contains(err.Error(), "500") }},
		{"not json", garbage.URL, []string{"report"}, func(err error) bool { return strings.Contains(err.Error(), "decoding") }},
		{"missing input", srv.URL, []string{"csv", "--input", "/nonexistent/entries.json"}, func(err error) bool { return err != nil }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.baseURL, tt.args...)
			if err == nil || !tt.check(err) {
				t.Errorf("error = %v", err)
			}
		})
	}
}

func TestMissingToken(t *testing.T) {
	srv, queries := fakeToggl(t, http.StatusOK, `[]`)

	_, err := runWithToken(t, "", srv.URL, "csv")
	if !errors.Is(err, config.ErrMissingToken) {
		t.Fatalf("error = %v, want ErrMissingToken", err)
	}
	if len(*queries) != 0 {
		t.Errorf("no request should be sent without a token")
	}
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatalf("restore cwd: %v", err)
		}
	})
}
