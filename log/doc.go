// Package log provides a concurrency-safe simplified logging interface
// based on [log/slog].
//
// The package offers configurable time formatting, caller information,
// and output formats that are applied at logger creation time using
// functional options.
//
// # Basic Usage
//
//	logger := log.Make(os.Stderr)
//	logger.Info("compiled", slog.String("source", "ledger.txt"))
//
// # Configuration
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithTimeLayout("RFC3339Nano"),
//		log.WithCaller(true))
//
// The package-level functions ([Info], [Error], ...) use a default logger
// that writes to standard error. It is reconfigured with [Config].
//
// # Levels
//
// In addition to the four [log/slog] levels the package defines
// [LevelTrace], used for per-stage diagnostics of the compiler.
//
// # Output Formats
//
// Two output formats are supported: [FormatText] (default) and
// [FormatJSON]. Either may be pretty printed ([WithPretty]), which colors
// keys and values using lipgloss styles. Colors are dropped automatically
// when the output is not a terminal.
package log
