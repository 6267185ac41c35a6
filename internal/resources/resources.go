// Package resources snapshots process and host resource usage around a
// Concurrency Test Result's sampling window and flags windows where
// other-process activity may have skewed the measurement.
//
// Grounded on the teacher's bench.GetChildUsage/GetSelfUsage (bench/bench.go):
// a before/after CPU-timing snapshot whose delta feeds an interference
// check. That code read directly from syscall.Getrusage and /proc; here
// the snapshot is taken through github.com/shirou/gopsutil/v3/process
// instead, which is already a dependency of the wider retrieval pack
// (pulled transitively via lightstep-tracer-go in clients/go.mod) and
// avoids hand-parsing /proc/<pid>/stat for a detail the spec treats as
// "if available" (spec §3, Concurrency Test Result's resource snapshot).
package resources

import (
	"os"
	"runtime"
	"time"

	gopscpu "github.com/shirou/gopsutil/v3/cpu"
	gopsproc "github.com/shirou/gopsutil/v3/process"

	"github.com/queueprobe/qprobe/common"
)

// Snapshot captures this process's CPU/RSS usage, the host's aggregate
// CPU usage, and goroutine count as the "GC/thread-pool proxy" the
// spec's Concurrency Test Result calls for (spec §3).
type Snapshot struct {
	Process       common.Timing
	Host          common.Timing
	RSSBytes      uint64
	NumGoroutine  int
	NumGC         uint32
	HeapAllocByte uint64
	valid         bool
}

// Take reads a Snapshot for the current process and host. If gopsutil
// cannot read process or host stats (e.g. unsupported platform), it
// returns a Snapshot with valid=false, matching the teacher's own
// sentinel path in GetChildUsage for non-/proc platforms. Interference
// reports false whenever either snapshot is invalid, so a window whose
// stats could not be read is never flagged.
func Take() Snapshot {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	s := Snapshot{
		NumGoroutine:  runtime.NumGoroutine(),
		NumGC:         mem.NumGC,
		HeapAllocByte: mem.HeapAlloc,
	}

	proc, err := gopsproc.NewProcess(int32(os.Getpid()))
	if err != nil {
		return s
	}
	procTimes, err := proc.Times()
	if err != nil {
		return s
	}
	hostTimes, err := gopscpu.Times(false)
	if err != nil || len(hostTimes) == 0 {
		return s
	}
	if rss, merr := proc.MemoryInfo(); merr == nil && rss != nil {
		s.RSSBytes = rss.RSS
	}

	now := common.Time(float64(time.Now().UnixNano()) / 1e9)
	s.Process = common.Timing{Wall: now, User: common.Time(procTimes.User), Sys: common.Time(procTimes.System)}
	s.Host = common.Timing{Wall: now, User: common.Time(hostTimes[0].User), Sys: common.Time(hostTimes[0].System)}
	s.valid = true
	return s
}

// Interference reports whether other-process CPU activity observed
// between before and after exceeds thresholds (spec §3 "resource
// snapshot", SPEC_FULL §11 supplemented feature): it compares the
// host-wide CPU delta against this process's own delta, the same
// "other activity = host total minus self" formula as the teacher's
// formResult (clientlib/client_controller.go). It never changes an SLO
// verdict — it only annotates the Concurrency Test Result so an
// operator can discount a noisy window.
func Interference(before, after Snapshot, thresholds common.InterferenceThresholds) bool {
	if !before.valid || !after.valid {
		return false
	}
	hostUser := after.Host.User - before.Host.User
	hostSys := after.Host.Sys - before.Host.Sys
	procUser := after.Process.User - before.Process.User
	procSys := after.Process.Sys - before.Process.Sys

	otherUser := hostUser - procUser
	otherSys := hostSys - procSys

	if procUser.Seconds() <= 0 {
		return false
	}
	userRatio := (otherUser / hostUser).Seconds()
	sysRatio := (otherSys / procUser).Seconds()
	return userRatio > thresholds.UserInterferenceThreshold || sysRatio > thresholds.SysInterferenceThreshold
}
