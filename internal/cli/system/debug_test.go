package system

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/julianstephens/courtbook/internal/cli"
	"github.com/julianstephens/courtbook/internal/config"
	"github.com/julianstephens/courtbook/internal/schedule"
)

const savedPage = `<html><body><table role="grid"><tbody>
<tr role="row"><th><div class="resource-header-cell__name"><span>Pickleball 1</span></div></th>
<td></td><td></td><td></td><td></td><td></td><td></td><td></td><td></td>
<td></td><td></td><td></td><td></td><td></td><td></td><td></td><td></td></tr>
<tr role="row"><th><div class="resource-header-cell__name"><span>Tennis   Ct 1</span></div></th>
<td class="disabled"></td><td class="disabled"></td><td></td><td></td><td></td><td></td><td></td><td></td>
<td></td><td></td><td></td><td></td><td class="cell disabled"></td><td></td><td class="disabled"></td><td class="disabled"></td></tr>
</tbody></table></body></html>`

func setupDebug(t *testing.T) (*cli.Context, *bytes.Buffer) {
	var out bytes.Buffer
	return &cli.Context{
		Settings: config.DefaultSettings(),
		LogDir:   "/var/log/courtbook",
		LockPath: "/run/courtbook.lock",
		Out:      &out,
	}, &out
}

func TestDebugPathsCmd(t *testing.T) {
	ctx, out := setupDebug(t)

	if err := (&DebugPathsCmd{}).Run(ctx); err != nil {
		t.Fatalf("debug paths command failed: %v", err)
	}

	var got map[string]string
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out.String())
	}
	if got["lockfile"] != "/run/courtbook.lock" || got["log_dir"] != "/var/log/courtbook" {
		t.Errorf("unexpected paths: %v", got)
	}
}

func TestDebugSettingsCmd(t *testing.T) {
	ctx, out := setupDebug(t)
	ctx.Settings.Strategy = schedule.HourFirst

	if err := (&DebugSettingsCmd{}).Run(ctx); err != nil {
		t.Fatalf("debug settings command failed: %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if got["strategy"] != "hour-first" || got["timeout"] != "1m0s" || got["window"] != "1920x1080" {
		t.Errorf("unexpected settings: %v", got)
	}
}

func TestDebugGridCmd(t *testing.T) {
	ctx, out := setupDebug(t)
	path := filepath.Join(t.TempDir(), "page.html")
	if err := os.WriteFile(path, []byte(savedPage), 0o644); err != nil {
		t.Fatal(err)
	}

	cmd := &DebugGridCmd{File: path, Hours: "18,19,20"}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("debug grid command failed: %v", err)
	}

	var report gridReport
	if err := json.Unmarshal(out.Bytes(), &report); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out.String())
	}
	if len(report.Rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(report.Rows))
	}
	if report.Rows[0].Court || !report.Rows[1].Court {
		t.Errorf("court flags = %v, %v", report.Rows[0].Court, report.Rows[1].Court)
	}
	if report.Rows[1].Resource != "Tennis Ct 1" {
		t.Errorf("resource = %q, want whitespace collapsed", report.Rows[1].Resource)
	}
	if report.Choice != "Tennis Ct 1 @ 19:00" {
		t.Errorf("choice = %q, want Tennis Ct 1 @ 19:00 (picks %v)", report.Choice, report.Picks)
	}
	if len(report.Picks) != 1 {
		t.Errorf("picks = %v, want only 19:00", report.Picks)
	}
}

func TestDebugGridCmdOutOfRange(t *testing.T) {
	ctx, _ := setupDebug(t)
	path := filepath.Join(t.TempDir(), "page.html")
	if err := os.WriteFile(path, []byte(savedPage), 0o644); err != nil {
		t.Fatal(err)
	}

	err := (&DebugGridCmd{File: path, Hours: "23"}).Run(ctx)
	if err == nil {
		t.Fatal("expected an out-of-range error")
	}
}
