package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/natal/internal/ui"
	"github.com/papapumpkin/natal/internal/watch"
)

const testChart = `ASC,Aries,0°00'
MC,Capricorn,5°00'
Sun,Leo,10°00'
Saturn,Aquarius,10°00'
Moon,Sagittarius,12°00'
`

func writeChart(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chart.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// setFlag sets a flag on a shared command and restores it after the test.
func setFlag(t *testing.T, c *cobra.Command, name, value string) {
	t.Helper()
	f := c.Flags().Lookup(name)
	if f == nil {
		t.Fatalf("no flag %q on %s", name, c.Name())
	}
	if err := c.Flags().Set(name, value); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
}

// captureOut points the command's stdout and stderr at buffers.
func captureOut(t *testing.T, c *cobra.Command) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var out, errOut bytes.Buffer
	c.SetOut(&out)
	c.SetErr(&errOut)
	t.Cleanup(func() {
		c.SetOut(nil)
		c.SetErr(nil)
	})
	return &out, &errOut
}

func TestCommands_Registered(t *testing.T) {
	t.Parallel()

	want := []string{"render", "snapshot", "inspect", "validate", "show", "tui", "watch", "events"}
	have := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		have[c.Name()] = true
	}
	for _, name := range want {
		if !have[name] {
			t.Errorf("expected %q subcommand to be registered on rootCmd", name)
		}
	}
}

func TestCommands_Flags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		cmd  *cobra.Command
		flag string
	}{
		{renderCmd, "output"},
		{renderCmd, "format"},
		{renderCmd, "size"},
		{renderCmd, "preset"},
		{renderCmd, "ascii"},
		{snapshotCmd, "format"},
		{inspectCmd, "x"},
		{inspectCmd, "y"},
		{inspectCmd, "body"},
		{inspectCmd, "touch"},
		{tuiCmd, "no-watch"},
		{watchCmd, "output"},
		{eventsCmd, "follow"},
	}
	for _, tt := range tests {
		t.Run(tt.cmd.Name()+"/"+tt.flag, func(t *testing.T) {
			t.Parallel()
			if tt.cmd.Flags().Lookup(tt.flag) == nil {
				t.Errorf("expected flag %q to be registered on %s", tt.flag, tt.cmd.Name())
			}
		})
	}

	for _, name := range []string{"config", "verbose", "interp", "aspects", "events"} {
		if rootCmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("expected persistent flag %q on rootCmd", name)
		}
	}
}

func TestResolveFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		format, output string
		want           string
		wantErr        bool
	}{
		{"", "", formatText, false},
		{"", "wheel.svg", formatSVG, false},
		{"", "wheel.PNG", formatPNG, false},
		{"svg", "wheel.png", formatSVG, false},
		{"text", "", formatText, false},
		{"", "wheel.pdf", "", true},
		{"gif", "", "", true},
	}
	for _, tt := range tests {
		got, err := resolveFormat(tt.format, tt.output)
		if (err != nil) != tt.wantErr {
			t.Errorf("resolveFormat(%q, %q) error = %v, wantErr %v", tt.format, tt.output, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("resolveFormat(%q, %q) = %q, want %q", tt.format, tt.output, got, tt.want)
		}
	}
}

func TestRunSnapshot_JSON(t *testing.T) {
	// Not parallel: uses shared command state.
	path := writeChart(t, testChart)
	out, _ := captureOut(t, snapshotCmd)

	if err := runSnapshot(snapshotCmd, []string{path}); err != nil {
		t.Fatalf("runSnapshot: %v", err)
	}

	var got struct {
		Generation uint64 `json:"generation"`
		Positions  []struct {
			Name string `json:"name"`
		} `json:"positions"`
		Options struct {
			Size float64 `json:"size"`
		} `json:"options"`
	}
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON output: %v\nraw: %s", err, out.String())
	}
	if got.Generation != 1 {
		t.Errorf("Generation = %d, want 1", got.Generation)
	}
	if got.Options.Size != 800 {
		t.Errorf("Size = %g, want 800", got.Options.Size)
	}
	names := map[string]bool{}
	for _, p := range got.Positions {
		names[p.Name] = true
	}
	for _, n := range []string{"Sun", "Moon", "Saturn", "ASC", "DSC", "MC", "IC"} {
		if !names[n] {
			t.Errorf("snapshot missing position %s", n)
		}
	}
}

func TestRunSnapshot_PresetFlag(t *testing.T) {
	path := writeChart(t, testChart)
	out, _ := captureOut(t, snapshotCmd)
	setFlag(t, snapshotCmd, "format", "yaml")
	setFlag(t, snapshotCmd, "preset", "mobile")

	if err := runSnapshot(snapshotCmd, []string{path}); err != nil {
		t.Fatalf("runSnapshot: %v", err)
	}
	if !strings.Contains(out.String(), "size: 350") {
		t.Errorf("yaml snapshot should carry the mobile size, got:\n%s", out.String())
	}
}

func TestRunSnapshot_ChartRecords(t *testing.T) {
	path := writeChart(t, testChart)
	out, _ := captureOut(t, snapshotCmd)
	setFlag(t, snapshotCmd, "format", "chart")

	if err := runSnapshot(snapshotCmd, []string{path}); err != nil {
		t.Fatalf("runSnapshot: %v", err)
	}
	if out.String() != testChart {
		t.Errorf("chart records = %q, want %q", out.String(), testChart)
	}
}

func TestRunValidate(t *testing.T) {
	good := writeChart(t, testChart)
	bad := writeChart(t, "Sun,Leo,10°00'\n")
	out, _ := captureOut(t, validateCmd)

	err := runValidate(validateCmd, []string{good, bad})
	if err == nil {
		t.Fatal("expected error when a chart is rejected")
	}
	if want := "1 of 2 charts rejected"; err.Error() != want {
		t.Errorf("error = %q, want %q", err.Error(), want)
	}
	got := out.String()
	if !strings.Contains(got, "✓ "+good) {
		t.Errorf("missing success line for %s:\n%s", good, got)
	}
	if !strings.Contains(got, "✗ "+bad) {
		t.Errorf("missing failure line for %s:\n%s", bad, got)
	}
	if !strings.Contains(got, "rule: missing_ascendant") {
		t.Errorf("failure should name the rule:\n%s", got)
	}
}

func TestRunValidate_MissingFile(t *testing.T) {
	captureOut(t, validateCmd)
	missing := filepath.Join(t.TempDir(), "nope.txt")
	if err := runValidate(validateCmd, []string{missing}); err == nil {
		t.Fatal("expected error for a missing file")
	}
}

func TestRunShow(t *testing.T) {
	path := writeChart(t, testChart)
	out, _ := captureOut(t, showCmd)

	if err := runShow(showCmd, []string{path}); err != nil {
		t.Fatalf("runShow: %v", err)
	}
	got := out.String()
	for _, want := range []string{"Sun", "Leo", "Saturn", "Aquarius"} {
		if !strings.Contains(got, want) {
			t.Errorf("report missing %q:\n%s", want, got)
		}
	}
}

func TestRunInspect_Body(t *testing.T) {
	path := writeChart(t, testChart)
	out, _ := captureOut(t, inspectCmd)
	setFlag(t, inspectCmd, "body", "Sun")

	if err := runInspect(inspectCmd, []string{path}); err != nil {
		t.Fatalf("runInspect: %v", err)
	}
	if !strings.Contains(out.String(), "Sun in Leo") {
		t.Errorf("tooltip = %q, want Sun in Leo", out.String())
	}
}

func TestRunInspect_Miss(t *testing.T) {
	path := writeChart(t, testChart)
	out, _ := captureOut(t, inspectCmd)
	setFlag(t, inspectCmd, "x", "1")
	setFlag(t, inspectCmd, "y", "1")

	if err := runInspect(inspectCmd, []string{path}); err != nil {
		t.Fatalf("runInspect: %v", err)
	}
	if strings.TrimSpace(out.String()) != "no hit" {
		t.Errorf("corner should miss, got %q", out.String())
	}
}

func TestRunInspect_NeedsPoint(t *testing.T) {
	path := writeChart(t, testChart)
	captureOut(t, inspectCmd)
	if err := runInspect(inspectCmd, []string{path}); err == nil {
		t.Fatal("expected error without --x/--y or --body")
	}
}

func TestRunRender_Text(t *testing.T) {
	path := writeChart(t, testChart)
	out, _ := captureOut(t, renderCmd)
	setFlag(t, renderCmd, "cols", "40")
	setFlag(t, renderCmd, "rows", "20")
	setFlag(t, renderCmd, "ascii", "true")

	if err := runRender(renderCmd, []string{path}); err != nil {
		t.Fatalf("runRender: %v", err)
	}
	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) != 20 {
		t.Errorf("rendered %d rows, want 20", len(lines))
	}
}

func TestRunRender_SVGFile(t *testing.T) {
	path := writeChart(t, testChart)
	_, errOut := captureOut(t, renderCmd)
	target := filepath.Join(t.TempDir(), "wheel.svg")
	setFlag(t, renderCmd, "output", target)

	if err := runRender(renderCmd, []string{path}); err != nil {
		t.Fatalf("runRender: %v", err)
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if !strings.Contains(string(data), `id="planet-Sun"`) {
		t.Error("svg output missing the Sun glyph")
	}
	if _, err := os.Stat(target + ".tmp"); !os.IsNotExist(err) {
		t.Error("temporary file left behind")
	}
	if !strings.Contains(errOut.String(), target) {
		t.Errorf("stderr should report the written file, got %q", errOut.String())
	}
}

func TestRunRender_BadFormat(t *testing.T) {
	path := writeChart(t, testChart)
	captureOut(t, renderCmd)
	setFlag(t, renderCmd, "format", "gif")
	if err := runRender(renderCmd, []string{path}); err == nil {
		t.Fatal("expected error for an unknown format")
	}
}

func TestWatchLoop_RerendersOnChange(t *testing.T) {
	path := writeChart(t, testChart)
	abs, err := filepath.Abs(path)
	if err != nil {
		t.Fatal(err)
	}
	target := filepath.Join(t.TempDir(), "wheel.svg")

	s, err := openSession(watchCmd)
	if err != nil {
		t.Fatalf("openSession: %v", err)
	}
	defer s.close()

	r := s.reloader(path)
	changes := make(chan watch.Change)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var status bytes.Buffer
	done := make(chan error, 1)
	go func() {
		done <- watchLoop(ctx, s, r, changes, target, renderOptions{Format: formatSVG}, ui.NewWriter(&status, false))
	}()

	waitFor(t, func() bool {
		data, err := os.ReadFile(target)
		return err == nil && strings.Contains(string(data), `id="planet-Sun"`)
	})

	// A rejected edit keeps the previous render.
	if err := os.WriteFile(path, []byte("Sun,Leo,10°00'\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	changes <- watch.Change{Kind: watch.ChangeModified, File: abs}

	if err := os.WriteFile(path, []byte(testChart+"Mars,Gemini,3°00'\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	changes <- watch.Change{Kind: watch.ChangeModified, File: abs}

	waitFor(t, func() bool {
		data, err := os.ReadFile(target)
		return err == nil && strings.Contains(string(data), `id="planet-Mars"`)
	})

	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("watchLoop = %v, want context.Canceled", err)
	}
	if !strings.Contains(status.String(), "rejected") {
		t.Errorf("status should report the rejected edit, got %q", status.String())
	}
	if s.store.Current().Generation != 2 {
		t.Errorf("Generation = %d, want 2", s.store.Current().Generation)
	}
}

func TestWatchLoop_WaitsForFirstValidChart(t *testing.T) {
	path := writeChart(t, "Sun,Leo,10°00'\n")
	abs, err := filepath.Abs(path)
	if err != nil {
		t.Fatal(err)
	}
	target := filepath.Join(t.TempDir(), "wheel.svg")

	s, err := openSession(watchCmd)
	if err != nil {
		t.Fatalf("openSession: %v", err)
	}
	defer s.close()

	changes := make(chan watch.Change)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var status bytes.Buffer
	done := make(chan error, 1)
	go func() {
		done <- watchLoop(ctx, s, s.reloader(path), changes, target, renderOptions{Format: formatSVG}, ui.NewWriter(&status, false))
	}()

	// The loop only receives after the initial load has been handled.
	changes <- watch.Change{Kind: watch.ChangeModified, File: abs}
	if _, err := os.Stat(target); !os.IsNotExist(err) {
		t.Fatalf("rendered before any chart loaded: %v", err)
	}

	if err := os.WriteFile(path, []byte(testChart), 0o644); err != nil {
		t.Fatal(err)
	}
	changes <- watch.Change{Kind: watch.ChangeModified, File: abs}
	waitFor(t, func() bool {
		_, err := os.Stat(target)
		return err == nil
	})

	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("watchLoop = %v, want context.Canceled", err)
	}
	if !strings.Contains(status.String(), "no chart") {
		t.Errorf("status should show no chart until a valid edit, got %q", status.String())
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestPrintEvent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		line string
		kind string
		want string
	}{
		{
			name: "chart loaded",
			line: `{"ts":"2026-03-01T10:04:05Z","kind":"chart_loaded","session":"0123456789abcdef","generation":3,"data":{"bodies":12,"aspects":9}}`,
			want: "[10:04:05] chart_loaded session=01234567 gen=3 aspects=9 bodies=12\n",
		},
		{
			name: "filtered out",
			line: `{"ts":"2026-03-01T10:04:05Z","kind":"render"}`,
			kind: "hit",
			want: "",
		},
		{
			name: "garbage",
			line: "not json",
			want: "??? not json\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			printEvent(&buf, tt.line, tt.kind)
			if buf.String() != tt.want {
				t.Errorf("printEvent = %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

func TestRunEvents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.jsonl")
	lines := `{"ts":"2026-03-01T10:04:05Z","kind":"session_start","session":"abc","data":{"command":"render"}}
{"ts":"2026-03-01T10:04:06Z","kind":"render","session":"abc","generation":1,"data":{"format":"svg","output":"w.svg"}}
`
	if err := os.WriteFile(path, []byte(lines), 0o644); err != nil {
		t.Fatal(err)
	}
	out, _ := captureOut(t, eventsCmd)

	if err := runEvents(eventsCmd, []string{path}); err != nil {
		t.Fatalf("runEvents: %v", err)
	}
	got := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(got) != 2 {
		t.Fatalf("printed %d events, want 2:\n%s", len(got), out.String())
	}
	if !strings.Contains(got[1], "render session=abc gen=1 format=svg output=w.svg") {
		t.Errorf("render event = %q", got[1])
	}
}
