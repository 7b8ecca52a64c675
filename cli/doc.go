// Package cli contains the command line interface for ledgerscript.
//
// # Usage
//
// Without a subcommand, the named documents are compiled into the target
// directory. Standard input is compiled to standard output:
//
//	ledgerscript budget.txt notes.txt
//	ledgerscript compile --target=out --watch budget.txt
//	echo '@=x[2*3] is @<' | ledgerscript
//
// The remaining subcommands inspect documents without writing them:
//
//	ledgerscript dump --format=yaml budget.txt
//	ledgerscript query 'total / 12' budget.txt
//	ledgerscript diff budget.txt
//	ledgerscript repl budget.txt
//
// # Configuration
//
// Flag defaults are read from config.yaml and config.json in the user config
// directory. The init subcommand writes the current flag values to
// config.yaml.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (text, json)
//   - --log-time-layout: Set timestamp format (RFC3339, RFC3339Nano, etc.)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Colorize text output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o ledgerscript .
//
// Flags:
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default:
//     ~/.cache/ledgerscript/pprof)
package cli
