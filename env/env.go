// Package env provides the harness's environment-variable defaults and
// the lightweight Fatal/Print logging the core packages use. Grounded
// verbatim on the teacher's env/env.go: a handful of GetEnv-derived
// package vars plus a verbosity-gated Print and a panicking Fatal.
package env

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

var (
	Verbose = GetEnv("QPROBE_VERBOSE", "") == "true"

	// Port, when non-empty, overrides the --port flag's default.
	Port = GetEnv("QPROBE_PORT", "")
)

// GetEnv returns the named environment variable, or defval if unset or
// empty.
func GetEnv(name, defval string) string {
	if r := os.Getenv(name); r != "" {
		return r
	}
	return defval
}

// GetEnvInt parses the named environment variable as an int, or returns
// defval if unset or unparsable.
func GetEnvInt(name string, defval int) int {
	if r := os.Getenv(name); r != "" {
		if n, err := strconv.Atoi(r); err == nil {
			return n
		}
	}
	return defval
}

// GetEnvDuration parses the named environment variable with
// time.ParseDuration, or returns defval if unset or unparsable.
func GetEnvDuration(name string, defval time.Duration) time.Duration {
	if r := os.Getenv(name); r != "" {
		if d, err := time.ParseDuration(r); err == nil {
			return d
		}
	}
	return defval
}

// Fatal panics with its arguments formatted like fmt.Sprintln. The core
// is a benchmarking harness, not a long-running service: a crash here
// (e.g. the single queue worker panicking) is fatal by design, with no
// retry and no quorum to preserve (spec §4.B, §7).
func Fatal(x ...interface{}) {
	panic(fmt.Sprintln(x...))
}

// Print writes its arguments like fmt.Println, but only when Verbose is
// set. Used throughout the core instead of a full logging library so
// that importing internal/workqueue, internal/rpcserver, etc. doesn't
// drag in a logger with global flags (see SPEC_FULL §7 for why glog is
// kept at the CLI boundary only).
func Print(x ...interface{}) {
	if Verbose {
		fmt.Println(x...)
	}
}
