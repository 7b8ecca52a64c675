// Package profile provides optional runtime profiling for ledgerscript.
//
// Profiling uses [github.com/pkg/profile] and is only compiled in with the
// "pprof" build tag:
//
//	go build -tags pprof .
//
// Without the tag, [Modes] is empty and [Profiler.Start] always returns a
// no-op [Stopper].
//
// # Modes
//
//   - allocs:    memory allocation profiling (all allocations)
//   - block:     block (synchronization) profiling
//   - clock:     wall-clock profiling
//   - cpu:       CPU profiling
//   - goroutine: goroutine profiling
//   - heap:      heap memory profiling (live allocations)
//   - mem:       general memory profiling
//   - mutex:     mutex contention profiling
//   - thread:    thread creation profiling
//   - trace:     execution trace profiling
//
// # Usage
//
//	ledgerscript --pprof-mode=cpu compile ledger/*.txt
//	go tool pprof -http=: ~/.cache/ledgerscript/pprof/cpu.pprof
//
// Profiles are written to the directory given by --pprof-dir, which defaults
// to the pprof directory under the user cache directory.
package profile

// Tag is the build tag required to enable profiling.
const Tag = `pprof`
