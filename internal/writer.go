package internal

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Writer provides methods for output operations that library code needs.
// This allows callers to control where and how output is written, rather than
// forcing library code to use global state like fmt.Print or log.Fatal.
type Writer interface {
	// Warning writes a warning message to the error stream.
	Warning(v ...interface{})
	// Warningf writes a formatted warning message to the error stream.
	Warningf(format string, v ...interface{})
	// Errorf writes a formatted error message to the error stream. It does
	// not terminate the process.
	Errorf(format string, v ...interface{})
	// Debugf writes a trace message when debugging is enabled.
	Debugf(format string, v ...interface{})
	// GetWriter returns the underlying io.Writer for direct writing.
	GetWriter() io.Writer
}

// StandardWriter implements Writer using standard output/error streams.
type StandardWriter struct {
	out   io.Writer
	err   io.Writer
	debug zerolog.Logger
}

// NewStandardWriter creates a Writer that outputs to stdout and stderr.
func NewStandardWriter() *StandardWriter {
	return NewCustomWriter(os.Stdout, os.Stderr)
}

// NewCustomWriter creates a Writer with custom output streams.
// The out stream is used for normal output, while err is used for warnings,
// errors and debug traces. Debug traces are off until EnableDebug is called.
func NewCustomWriter(out, err io.Writer) *StandardWriter {
	return &StandardWriter{
		out:   out,
		err:   err,
		debug: zerolog.Nop(),
	}
}

// EnableDebug routes Debugf through a console logger on the error stream.
func (w *StandardWriter) EnableDebug(app string) {
	output := zerolog.ConsoleWriter{
		Out:        w.err,
		TimeFormat: time.RFC3339,
	}
	w.debug = zerolog.New(output).Level(zerolog.DebugLevel).With().Timestamp().Str("app", app).Logger()
}

// Warning writes a warning message to the error stream with a "Warning: " prefix.
func (w *StandardWriter) Warning(v ...interface{}) {
	fmt.Fprint(w.err, "Warning: ")
	fmt.Fprintln(w.err, v...)
}

// Warningf writes a formatted warning message to the error stream with a "Warning: " prefix.
func (w *StandardWriter) Warningf(format string, v ...interface{}) {
	fmt.Fprintf(w.err, "Warning: "+format+"\n", v...)
}

// Errorf writes a formatted error message to the error stream with an "Error: " prefix.
func (w *StandardWriter) Errorf(format string, v ...interface{}) {
	fmt.Fprintf(w.err, "Error: "+format+"\n", v...)
}

// Debugf writes a debug trace. It is a no-op unless EnableDebug was called.
func (w *StandardWriter) Debugf(format string, v ...interface{}) {
	w.debug.Debug().Msgf(format, v...)
}

// GetWriter returns the underlying io.Writer for direct writing to the output stream.
func (w *StandardWriter) GetWriter() io.Writer {
	return w.out
}
