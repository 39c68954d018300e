package restyutil

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// FilesystemOutput writes each HTTP transcript to its own file under a
// per-session directory.
type FilesystemOutput struct {
	directory string
}

// NewFilesystemOutput creates `<dir>/<session uuid>/` and returns an output
// writing into it.
func NewFilesystemOutput(dir string) (FilesystemOutput, error) {
	session := filepath.Join(dir, uuid.NewString())
	err := os.MkdirAll(session, 0o755)
	if err != nil {
		return FilesystemOutput{}, fmt.Errorf("create dump directory: %w", err)
	}
	return FilesystemOutput{directory: session}, nil
}

func (o FilesystemOutput) Dir() string {
	return o.directory
}

func (o FilesystemOutput) Write(id string, contents string) {
	err := os.WriteFile(filepath.Join(o.directory, id+".txt"), []byte(contents), 0o600)
	if err != nil {
		slog.Warn("failed to write message info file", "id", id, "err", err)
	}
}
