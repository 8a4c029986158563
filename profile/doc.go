// Package profile provides optional runtime profiling for envdiff.
//
// Profiling is backed by [github.com/pkg/profile] and compiled in only with
// the "pprof" build tag:
//
//	go build -tags pprof -o envdiff .
//
// Without the tag, [Modes] is empty and [Profiler.Start] returns a no-op
// [Stopper], so a default build carries no profiling code at all.
//
// # Modes
//
//   - allocs:    memory allocation profiling (all allocations)
//   - block:     block (synchronization) profiling
//   - clock:     wall-clock profiling
//   - cpu:       CPU profiling
//   - goroutine: goroutine profiling
//   - heap:      heap profiling (live allocations)
//   - mem:       general memory profiling
//   - mutex:     mutex contention profiling
//   - thread:    thread creation profiling
//   - trace:     execution trace
//
// # Usage
//
//	p := profile.Profiler{Mode: "cpu", Path: "/tmp/profiles", Quiet: true}
//	defer p.Start().Stop()
//
// From the command line:
//
//	envdiff --pprof-mode=cpu compare big-a.yaml big-b.yaml --values
//	envdiff --pprof-mode=allocs --pprof-dir=./profiles a.env b.env
//
// The default output directory is the "pprof" subdirectory of the envdiff
// cache directory, for example $XDG_CACHE_HOME/envdiff/pprof. Inspect the
// result with go tool pprof:
//
//	go tool pprof -http=: ./envdiff $XDG_CACHE_HOME/envdiff/pprof/cpu.pprof
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
