package system

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/cockroachdb/errors"

	"github.com/julianstephens/courtbook/internal/cli"
	"github.com/julianstephens/courtbook/internal/config"
	"github.com/julianstephens/courtbook/internal/lock"
	"github.com/julianstephens/courtbook/internal/schedule"
)

type DebugCmd struct {
	Paths    *DebugPathsCmd    `cmd:"" help:"Show log, lock and env file paths."`
	Settings *DebugSettingsCmd `cmd:"" help:"Dump effective settings as JSON."`
	Grid     *DebugGridCmd     `cmd:"" help:"Analyze a saved schedule page as JSON."`
}

func printJSON(ctx *cli.Context, v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to marshal output")
	}
	fmt.Fprintln(ctx.Stdout(), string(jsonBytes))
	return nil
}

type DebugPathsCmd struct{}

func (cmd *DebugPathsCmd) Run(ctx *cli.Context) error {
	lockPath := ctx.LockPath
	if lockPath == "" {
		var err error
		if lockPath, err = lock.DefaultPath(); err != nil {
			return err
		}
	}

	// Output in machine-readable format
	output := map[string]string{
		"log_dir":        ctx.LogDir,
		"lockfile":       lockPath,
		"env_file":       ctx.EnvFile,
		"screenshot_dir": ctx.ScreenshotDir,
	}
	return printJSON(ctx, output)
}

type DebugSettingsCmd struct{}

func (cmd *DebugSettingsCmd) Run(ctx *cli.Context) error {
	s := ctx.Settings
	return printJSON(ctx, map[string]any{
		"acceptable_hours": s.AcceptableHours,
		"timezone":         s.Timezone,
		"days_in_advance":  s.DaysInAdvance,
		"sign_in_at":       s.SignInAt,
		"timeout":          s.Timeout.String(),
		"resource_filter":  s.ResourceFilter,
		"strategy":         s.Strategy,
		"headless":         s.Headless,
		"window":           fmt.Sprintf("%dx%d", s.WindowWidth, s.WindowHeight),
		"chrome_path":      s.ChromePath,
	})
}

// DebugGridCmd runs the availability scan on an HTML file, for example one
// saved from the browser's developer tools.
type DebugGridCmd struct {
	File  string `arg:"" type:"existingfile" help:"Saved schedule page."`
	Hours string `help:"Acceptable hours (default: configured hours)."`
}

type gridRow struct {
	Position  int      `json:"position"`
	Resource  string   `json:"resource"`
	Court     bool     `json:"court"`
	Range     string   `json:"range"`
	Available []string `json:"available"`
}

type gridReport struct {
	Rows   []gridRow `json:"rows"`
	Hours  []int     `json:"hours"`
	Picks  []string  `json:"picks"`
	Choice string    `json:"choice,omitempty"`
}

func (cmd *DebugGridCmd) Run(ctx *cli.Context) error {
	hours := ctx.Settings.AcceptableHours
	if cmd.Hours != "" {
		var err error
		if hours, err = config.ParseHours(cmd.Hours); err != nil {
			return err
		}
	}

	f, err := os.Open(cmd.File)
	if err != nil {
		return errors.Wrap(err, "open schedule page")
	}
	defer f.Close()

	opts := []schedule.Option{}
	if ctx.Settings.ResourceFilter != "" {
		opts = append(opts, schedule.WithResourceFilter(ctx.Settings.ResourceFilter))
	}
	grid, err := schedule.Parse(f, opts...)
	if err != nil {
		return err
	}

	courts := make(map[int]bool)
	for _, row := range grid.Courts() {
		courts[row.Position] = true
	}

	report := gridReport{Hours: hours, Rows: []gridRow{}, Picks: []string{}}
	for _, row := range grid.Rows() {
		r := gridRow{
			Position:  row.Position,
			Resource:  row.Resource,
			Court:     courts[row.Position],
			Range:     row.Range().String(),
			Available: []string{},
		}
		for _, cell := range row.Cells() {
			if cell.IsAvailable() {
				r.Available = append(r.Available, cell.Time())
			}
		}
		report.Rows = append(report.Rows, r)
	}

	slots, err := grid.FindAvailable(hours)
	if err != nil {
		return err
	}
	for _, s := range ctx.Settings.Strategy.Order(slots, hours) {
		report.Picks = append(report.Picks, s.String())
	}
	if len(report.Picks) > 0 {
		report.Choice = report.Picks[0]
	}
	return printJSON(ctx, report)
}
