package logslice

type options struct {
	logger        *Logger
	keepWorkspace bool
	workspaceDir  string
}

// Option configures an Extractor.
type Option func(*options)

// WithLogger configures the logger used for run progress.
//
// If nil is passed, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithKeepWorkspace disables removal of the per-run temp workspace.
// Useful for debugging a failed fetch or decompression; the workspace
// path is logged at the start of the run.
func WithKeepWorkspace() Option {
	return func(o *options) {
		o.keepWorkspace = true
	}
}

// WithWorkspaceDir sets the parent directory for per-run temp workspaces.
// Defaults to the OS temp directory.
func WithWorkspaceDir(dir string) Option {
	return func(o *options) {
		o.workspaceDir = dir
	}
}
