package common

// InterferenceThresholds bounds how much other-process CPU activity a
// sampling window may show before internal/resources flags a
// Concurrency Test Result as InterferenceSuspected (SPEC_FULL §11,
// supplemented from the teacher's own Params.UserInterferenceThreshold /
// Params.SysInterferenceThreshold in common/types.go).
type InterferenceThresholds struct {
	UserInterferenceThreshold float64
	SysInterferenceThreshold  float64
}

// DefaultInterferenceThresholds matches the teacher's own fallback
// defaults, set in cmd/controller/controller.go when the params file
// leaves these fields zero.
func DefaultInterferenceThresholds() InterferenceThresholds {
	return InterferenceThresholds{
		UserInterferenceThreshold: 0.01,
		SysInterferenceThreshold:  0.02,
	}
}
