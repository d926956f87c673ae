package provision

import (
	"fmt"
	"os"

	"github.com/conn-castle/metrics-bootstrap/internal/messages"
)

// Workdir is the scoped temporary directory used for downloads and builds.
// Cleanup runs on every exit path; nothing in it survives the run.
type Workdir struct {
	Path string
}

// NewWorkdir creates a fresh temporary working directory.
func NewWorkdir() (*Workdir, error) {
	path, err := os.MkdirTemp("", "metrics-bootstrap-*")
	if err != nil {
		return nil, fmt.Errorf(messages.WorkdirCreateErrFmt, err)
	}
	return &Workdir{Path: path}, nil
}

// Cleanup removes the working directory and everything in it.
func (w *Workdir) Cleanup() {
	if w == nil || w.Path == "" {
		return
	}
	_ = os.RemoveAll(w.Path)
}
