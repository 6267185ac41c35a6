package resources

import (
	"testing"

	"github.com/queueprobe/qprobe/common"
)

func TestInterferenceFalseWhenSnapshotsInvalid(t *testing.T) {
	if Interference(Snapshot{}, Snapshot{}, common.DefaultInterferenceThresholds()) {
		t.Fatalf("expected no interference from invalid (zero) snapshots")
	}
}

func TestInterferenceDetectsHostNoise(t *testing.T) {
	before := Snapshot{
		valid:   true,
		Host:    common.Timing{User: 10, Sys: 5},
		Process: common.Timing{User: 9, Sys: 4},
	}
	after := Snapshot{
		valid: true,
		// Host user grew by 5 but this process only accounts for 1 of it:
		// the other 4 units came from elsewhere on the machine.
		Host:    common.Timing{User: 15, Sys: 5.2},
		Process: common.Timing{User: 10, Sys: 4.1},
	}
	thresholds := common.InterferenceThresholds{UserInterferenceThreshold: 0.1, SysInterferenceThreshold: 0.1}
	if !Interference(before, after, thresholds) {
		t.Fatalf("expected interference to be detected")
	}
}

func TestInterferenceQuietHost(t *testing.T) {
	before := Snapshot{valid: true, Host: common.Timing{User: 10}, Process: common.Timing{User: 9}}
	after := Snapshot{valid: true, Host: common.Timing{User: 11}, Process: common.Timing{User: 10}}
	thresholds := common.DefaultInterferenceThresholds()
	if Interference(before, after, thresholds) {
		t.Fatalf("expected no interference when host and process deltas track closely")
	}
}

func TestTakeReportsGoroutineCount(t *testing.T) {
	s := Take()
	if s.NumGoroutine < 1 {
		t.Fatalf("expected at least one goroutine reported, got %d", s.NumGoroutine)
	}
}
