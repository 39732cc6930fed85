// Package logging builds the slog logger used by the CLI and the MCP server.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Options selects the handler, level and destination of the logger.
type Options struct {
	Debug bool   // AXCORE_DEBUG=1
	JSON  bool   // AXCORE_LOG_JSON=1
	Time  bool   // AXCORE_LOG_TIME=1
	Dest  string // AXCORE_LOG_DEST: "stderr", "file:<path>" or "both:<path>"
}

// FromEnv reads Options from the environment through getenv.
func FromEnv(getenv func(string) string) Options {
	return Options{
		Debug: getenv("AXCORE_DEBUG") == "1",
		JSON:  getenv("AXCORE_LOG_JSON") == "1",
		Time:  getenv("AXCORE_LOG_TIME") == "1",
		Dest:  getenv("AXCORE_LOG_DEST"),
	}
}

// New creates a logger writing to stderr and/or a log file. The returned
// close function closes the log file, if one was opened.
func New(opts Options, stderr io.Writer) (*slog.Logger, func() error) {
	level := slog.LevelInfo
	if opts.Debug {
		level = slog.LevelDebug
	}

	var writers []io.Writer
	var file *os.File
	switch {
	case strings.HasPrefix(opts.Dest, "file:"):
		f, err := openLog(strings.TrimPrefix(opts.Dest, "file:"))
		if err != nil {
			fmt.Fprintf(stderr, "axcore: %v\n", err)
			writers = append(writers, stderr)
		} else {
			file = f
			writers = append(writers, f)
		}
	case strings.HasPrefix(opts.Dest, "both:"):
		writers = append(writers, stderr)
		f, err := openLog(strings.TrimPrefix(opts.Dest, "both:"))
		if err != nil {
			fmt.Fprintf(stderr, "axcore: %v\n", err)
		} else {
			file = f
			writers = append(writers, f)
		}
	default:
		writers = append(writers, stderr)
	}

	output := writers[0]
	if len(writers) > 1 {
		output = io.MultiWriter(writers...)
	}

	var handler slog.Handler
	if opts.JSON {
		handler = slog.NewJSONHandler(output, &slog.HandlerOptions{Level: level})
	} else {
		handler = slog.NewTextHandler(output, &slog.HandlerOptions{
			Level: level,
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				if a.Key == slog.TimeKey && !opts.Time && len(groups) == 0 {
					return slog.Attr{}
				}
				return a
			},
		})
	}

	closer := func() error { return nil }
	if file != nil {
		closer = file.Close
	}
	return slog.New(handler).With("component", "axcore"), closer
}

func openLog(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	return f, nil
}
