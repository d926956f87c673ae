package systemd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/aymanbagabas/go-udiff"

	"github.com/conn-castle/metrics-bootstrap/internal/fsutil"
	"github.com/conn-castle/metrics-bootstrap/internal/messages"
)

// WriteResult describes what WriteUnit did to the unit file on disk.
type WriteResult int

const (
	// WriteUnchanged means the existing file already matched.
	WriteUnchanged WriteResult = iota
	// WriteCreated means no file existed before.
	WriteCreated
	// WriteUpdated means an existing file was overwritten with new content.
	WriteUpdated
)

// WriteUnit idempotently writes the rendered unit to path. Identical content
// is a no-op; when an existing unit differs, a unified diff of the change is
// printed to out before the overwrite.
func WriteUnit(out io.Writer, path string, unit Unit) (WriteResult, error) {
	rendered := unit.Render()

	existing, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		if err := fsutil.WriteFileAtomic(path, []byte(rendered), 0o644); err != nil {
			return WriteUnchanged, fmt.Errorf(messages.UnitWriteErrFmt, path, err)
		}
		return WriteCreated, nil
	case err != nil:
		return WriteUnchanged, fmt.Errorf(messages.UnitWriteErrFmt, path, err)
	}

	if string(existing) == rendered {
		return WriteUnchanged, nil
	}

	name := filepath.Base(path)
	if out != nil {
		_, _ = fmt.Fprintf(out, messages.UnitDiffHeaderFmt, path)
		_, _ = fmt.Fprint(out, udiff.Unified(name+" (installed)", name+" (new)", string(existing), rendered))
	}
	if err := fsutil.WriteFileAtomic(path, []byte(rendered), 0o644); err != nil {
		return WriteUnchanged, fmt.Errorf(messages.UnitWriteErrFmt, path, err)
	}
	return WriteUpdated, nil
}
