// Package config holds the core's CLI/env configuration layer: flag
// parsing layered over env-derived defaults, grounded on the teacher's
// env.GetEnv (env/env.go) and its own env-then-flag layering in
// cmd/controller/controller.go. Logging for the core packages goes
// through the package-level env.Print/env.Fatal directly (see env/env.go)
// rather than a separate type here, so that core packages depend on
// nothing more than that single shared package; a process-wide logging
// library stays at the CLI boundary only (see cmd/qprobe, which uses
// glog).
package config
