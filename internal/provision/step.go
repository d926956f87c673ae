package provision

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/conn-castle/metrics-bootstrap/internal/messages"
)

// Step is one named unit of provisioning work. Fatal steps halt the run on
// failure; best-effort steps log a warning and let the run continue.
type Step struct {
	Name  string
	Fatal bool
	Run   func(ctx context.Context, st *State) error
}

// Outcome records how a step finished.
type Outcome struct {
	Name string
	Err  error
}

// Run executes steps in order, recording an outcome per executed step. It
// returns a non-nil error for the first failed fatal step; later steps are
// never attempted. Failed best-effort steps are warned and skipped over.
func Run(ctx context.Context, out io.Writer, steps []Step, st *State) ([]Outcome, error) {
	outcomes := make([]Outcome, 0, len(steps))
	for _, step := range steps {
		_, _ = fmt.Fprintf(out, messages.StepStartFmt, step.Name)
		err := step.Run(ctx, st)
		outcomes = append(outcomes, Outcome{Name: step.Name, Err: err})
		if err == nil {
			continue
		}
		if step.Fatal {
			return outcomes, fmt.Errorf(messages.StepFatalErrFmt, step.Name, err)
		}
		_, _ = fmt.Fprintln(out, color.YellowString(messages.StepWarnFmt, step.Name, err))
	}
	return outcomes, nil
}
