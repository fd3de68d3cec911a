// Package log provides structured diagnostic logging for this module's
// surfaces (the CLI and the gRPC service). It exists to log what happened
// at the decode boundary (which chain, how long, whether it failed), not
// what was decoded: logging the contents of a caller's transaction would
// turn a diagnostic log into a second, uncontrolled copy of data the
// policy engine/signer is supposed to be the sole judge of.
package log

import (
	"os"

	"github.com/sirupsen/logrus"
)

// base is the shared logger every surface pulls a field-scoped entry from.
// A package-level logger (rather than one threaded through every call)
// matches how orbas1-Synnergy's CLI commands each hold their own
// logrus.New() instance for diagnostics; this module only ever needs one.
var base = logrus.New()

func init() {
	base.SetOutput(os.Stderr)
	base.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	base.SetLevel(logrus.InfoLevel)
}

// SetLevel adjusts verbosity to any level name logrus parses ("debug" also
// logs successful rpc calls); an unrecognized name falls back to info.
func SetLevel(level string) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	base.SetLevel(lvl)
}

// Fields is a shorthand alias so callers outside this package don't need to
// import logrus directly just to build a log line.
type Fields = logrus.Fields

// WithFields returns an entry scoped to the given diagnostic fields (chain,
// duration, byte length; never raw transaction bytes or decoded field
// contents).
func WithFields(f Fields) *logrus.Entry {
	return base.WithFields(f)
}

// Infof and Errorf cover the common case of an unscoped diagnostic line.
func Infof(format string, args ...any)  { base.Infof(format, args...) }
func Errorf(format string, args ...any) { base.Errorf(format, args...) }
func Warnf(format string, args ...any)  { base.Warnf(format, args...) }
