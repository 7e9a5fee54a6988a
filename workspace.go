package logslice

import "os"

// workspace is the scratch directory owned by a single extraction run.
// It holds the fetched archive and the materialized log file and is
// removed when the run ends, whatever the outcome.
type workspace struct {
	dir string
}

func newWorkspace(parent string) (*workspace, error) {
	dir, err := os.MkdirTemp(parent, "logslice-*")
	if err != nil {
		return nil, err
	}
	return &workspace{dir: dir}, nil
}

// Close removes the workspace and everything in it. It is safe to call on
// a workspace whose contents were already partially removed.
func (ws *workspace) Close() error {
	return os.RemoveAll(ws.dir)
}
