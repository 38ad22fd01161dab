package wizard

import (
	"fmt"

	"github.com/jatinmourya/ng-angular-setup/internal/ui"
	"github.com/jatinmourya/ng-angular-setup/pkg/resolver"
)

// SetupWizardInteraction is every point where the flow needs a person.
// Each field is optional, missing ones degrade to sensible defaults so
// a profile replay can run with no interaction wired at all.
type SetupWizardInteraction struct {
	// SetStatus shows a transient progress message in the UI
	SetStatus func(status string)

	// ClearStatus removes the progress message
	ClearStatus func()

	// ShowWarning surfaces a non-fatal problem to the user
	ShowWarning func(message string)

	// SelectOption asks the user to pick exactly one option and returns
	// its index
	SelectOption func(title string, options []ui.Option) (int, error)

	// MultiSelect asks the user to pick any number of options and
	// returns their indices
	MultiSelect func(title string, options []ui.Option, preselected []int) ([]int, error)

	// Confirm asks a yes/no question
	Confirm func(question string, defaultYes bool) (bool, error)

	// AskString asks for free text with a default answer
	AskString func(question, defaultValue string) (string, error)

	// ShowResolution renders the per-library resolution table so the
	// user has context before the warning review prompts
	ShowResolution func(results []*resolver.CompatibilityResult)

	// ShowReport renders the closing run report
	ShowReport func(data *ui.ReportData)
}

func (w *setupWizard) setStatus(status string) {
	if w.interaction.SetStatus == nil {
		return
	}

	w.interaction.SetStatus(status)
}

func (w *setupWizard) clearStatus() {
	if w.interaction.ClearStatus == nil {
		return
	}

	w.interaction.ClearStatus()
}

func (w *setupWizard) showWarning(message string) {
	if w.interaction.ShowWarning == nil {
		return
	}

	w.interaction.ShowWarning(message)
}

func (w *setupWizard) selectOption(title string, options []ui.Option) (int, error) {
	if w.interaction.SelectOption == nil {
		return 0, fmt.Errorf("no interaction available to answer: %s", title)
	}

	return w.interaction.SelectOption(title, options)
}

// multiSelect falls back to the preselected entries when no picker is
// wired.
func (w *setupWizard) multiSelect(title string, options []ui.Option, preselected []int) ([]int, error) {
	if w.interaction.MultiSelect == nil {
		return preselected, nil
	}

	return w.interaction.MultiSelect(title, options, preselected)
}

// confirm falls back to the default answer when no prompt is wired.
func (w *setupWizard) confirm(question string, defaultYes bool) (bool, error) {
	if w.interaction.Confirm == nil {
		return defaultYes, nil
	}

	return w.interaction.Confirm(question, defaultYes)
}

// askString falls back to the default answer when no prompt is wired.
func (w *setupWizard) askString(question, defaultValue string) (string, error) {
	if w.interaction.AskString == nil {
		return defaultValue, nil
	}

	return w.interaction.AskString(question, defaultValue)
}

func (w *setupWizard) showResolution(results []*resolver.CompatibilityResult) {
	if w.interaction.ShowResolution == nil {
		return
	}

	w.interaction.ShowResolution(results)
}

func (w *setupWizard) showReport(data *ui.ReportData) {
	if w.interaction.ShowReport == nil {
		return
	}

	w.interaction.ShowReport(data)
}
