package ui

import (
	"fmt"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/jatinmourya/ng-angular-setup/environment"
	"github.com/jatinmourya/ng-angular-setup/pkg/resolver"
)

// SetupOutcome represents the final result of a setup session
type SetupOutcome int

const (
	OutcomeSuccess SetupOutcome = iota
	OutcomeUserCancelled
	OutcomeDryRun
	OutcomeError
)

func (o SetupOutcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeUserCancelled:
		return "user_cancelled"
	case OutcomeDryRun:
		return "dry_run"
	case OutcomeError:
		return "error"
	default:
		return "unknown"
	}
}

// ReportData captures what a setup session did, for the closing report.
// Pure data, no rendering logic.
type ReportData struct {
	ProjectName    string
	AngularVersion string
	StartTime      time.Time
	Duration       time.Duration

	Results      []*resolver.CompatibilityResult
	CreatedFiles []string

	Outcome SetupOutcome
}

// NewReportData creates a ReportData with the clock started.
func NewReportData() *ReportData {
	return &ReportData{
		StartTime: time.Now(),
		Outcome:   OutcomeSuccess,
	}
}

// Finalize sets the duration based on start time
func (r *ReportData) Finalize() {
	r.Duration = time.Since(r.StartTime)
}

// WarningCount returns how many libraries resolved with a warning.
func (r *ReportData) WarningCount() int {
	count := 0
	for _, result := range r.Results {
		if result.Warning {
			count++
		}
	}

	return count
}

// Report renders the closing session report based on verbosity level.
func Report(data *ReportData) {
	data.Finalize()

	if verbosityLevel == VerbosityLevelSilent && data.Outcome == OutcomeSuccess {
		return
	}

	switch data.Outcome {
	case OutcomeUserCancelled:
		fmt.Printf("%s %s\n", Colors.Yellow("✗"), Colors.Yellow("Setup cancelled by user"))
		return
	case OutcomeError:
		return // error handling prints its own output
	case OutcomeDryRun:
		fmt.Printf("%s %s\n", Colors.Cyan("○"), Colors.Cyan("Dry run completed, nothing was written"))
	}

	if len(data.Results) > 0 {
		RenderResolutionTable(data.Results)
	}

	summary := fmt.Sprintf("%s created with Angular %s in %s",
		data.ProjectName, data.AngularVersion, formatDuration(data.Duration))
	if warnings := data.WarningCount(); warnings > 0 {
		summary = fmt.Sprintf("%s (%d libraries need review)", summary, warnings)
	}

	fmt.Printf("%s %s\n", Colors.Green("✓"), Colors.Dim(summary))
}

// RenderResolutionTable prints the per-library resolution outcome as a
// table. The wizard shows it before asking for confirmation, and the
// resolve command uses it directly.
func RenderResolutionTable(results []*resolver.CompatibilityResult) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)

	t.AppendHeader(table.Row{"Library", "Version", "Source", "Notes"})

	for _, result := range results {
		notes := result.Reason
		if result.PeerDependency != "" {
			notes = fmt.Sprintf("%s (%s)", result.Reason, result.PeerDependency)
		}

		if result.Warning {
			notes = Colors.Yellow("⚠ %s", notes)
		}

		t.AppendRow(table.Row{result.Library, result.Version, result.Source.String(), notes})
	}

	t.Render()
}

// RenderEnvironmentTable prints the local toolchain check results, used
// by the doctor command and the wizard's environment step.
func RenderEnvironmentTable(statuses []environment.ToolStatus) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)

	t.AppendHeader(table.Row{"Tool", "Status", "Version", "Path"})

	for _, status := range statuses {
		state := Colors.Green("✓ installed")
		version := status.Version
		path := status.Path

		if !status.Installed {
			state = Colors.Red("✗ missing")
			version = "-"
			path = "-"
		}

		t.AppendRow(table.Row{status.Name, state, version, path})
	}

	t.Render()
}

func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}

	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}

	return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
}
