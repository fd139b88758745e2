package staff

import "context"

// Confirmer asks the operator for interactive confirmation before a
// destructive action is sent. The deny, finalize and no-show actions all
// require it; confirm does not.
type Confirmer interface {
	Confirm(prompt string) bool
}

// Reloader reloads the dashboard after a successful mutation so the page
// refetches authoritative state. There is no partial local update.
type Reloader interface {
	Reload()
}

// Control is the UI state of the triggering button. The dashboard renders
// it as-is; the Runner owns its transitions.
type Control struct {
	Label    string
	Disabled bool

	originalLabel string
}

// NewControl creates an enabled control with its resting label.
func NewControl(label string) *Control {
	return &Control{Label: label}
}

func (c *Control) begin(workingLabel string) {
	c.originalLabel = c.Label
	c.Label = workingLabel
	c.Disabled = true
}

func (c *Control) restore() {
	c.Label = c.originalLabel
	c.Disabled = false
}

// Runner drives one staff action end to end: prompt, swap the control to
// its working state, send, then reload on success or restore on failure.
type Runner struct {
	confirmer Confirmer
	reloader  Reloader
}

// NewRunner builds a runner. confirmer may be nil when no action needs a
// prompt.
func NewRunner(confirmer Confirmer, reloader Reloader) *Runner {
	return &Runner{confirmer: confirmer, reloader: reloader}
}

// Run executes send with the button lifecycle around it. A non-empty
// prompt is put to the Confirmer first; a declined prompt aborts without
// sending and without touching the control. On success the control stays
// disabled and the page reloads; on failure the control is restored and
// the error is returned for the caller to surface.
func (r *Runner) Run(ctx context.Context, control *Control, workingLabel, prompt string, send func(context.Context) error) error {
	if prompt != "" && r.confirmer != nil && !r.confirmer.Confirm(prompt) {
		return nil
	}

	control.begin(workingLabel)
	if err := send(ctx); err != nil {
		control.restore()
		return err
	}

	if r.reloader != nil {
		r.reloader.Reload()
	}
	return nil
}
