// Package logging provides structured logging for tourline runs.
//
// This package wraps Go's log/slog to emit JSON-formatted diagnostics, such
// as search strings that could not be found in a step's source file. Logs go
// to stderr by default so that the run summary on stdout stays readable, or
// to a file when logging.file is configured.
//
// # Basic Usage
//
//	logger, err := logging.NewLogger("", "INFO")
//	if err != nil {
//	    return err
//	}
//	defer logger.Close()
//
//	logger.Warn("search string not found", "search", s, "file", f)
//
// # Context Propagation
//
// Child loggers carry persistent attributes:
//
//	tourLogger := logger.WithTour("onboarding.tour")
//	stepLogger := tourLogger.WithStep(3, "Routing")
//	stepLogger.Debug("resolved", "line", 42)
//
// Output:
//
//	{"time":"...","level":"DEBUG","msg":"resolved","tour":"onboarding.tour","step":3,"step_title":"Routing","line":42}
//
// # Testing
//
// Use [NopLogger] to discard output, or [NewLoggerWithWriter] with a
// bytes.Buffer to assert on log lines.
package logging
