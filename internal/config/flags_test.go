package config

import "testing"

func TestParseDefaults(t *testing.T) {
	s, err := Parse(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Mode != "auto" {
		t.Fatalf("expected default mode auto, got %q", s.Mode)
	}
	if s.Client.ChannelPoolSize != 8 || s.Client.ConnsPerChannel != 4 {
		t.Fatalf("unexpected client defaults: %+v", s.Client)
	}
}

func TestParseManualConcurrency(t *testing.T) {
	s, err := Parse([]string{"--mode=manual", "--concurrency=20,40,80,160"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []int{20, 40, 80, 160}
	if len(s.ManualConcurrency) != len(want) {
		t.Fatalf("expected %v, got %v", want, s.ManualConcurrency)
	}
	for i, v := range want {
		if s.ManualConcurrency[i] != v {
			t.Fatalf("expected %v, got %v", want, s.ManualConcurrency)
		}
	}
}

func TestParseInvalidConcurrencyErrors(t *testing.T) {
	_, err := Parse([]string{"--mode=manual", "--concurrency=20,notanumber"})
	if err == nil {
		t.Fatalf("expected an error for an unparsable concurrency list")
	}
}

func TestParseRejectsOutOfRangeSuccessRate(t *testing.T) {
	for _, v := range []string{"0", "-0.1", "1.1"} {
		if _, err := Parse([]string{"--success-rate=" + v}); err == nil {
			t.Fatalf("expected an error for --success-rate=%s", v)
		}
	}
}

func TestParseAcceptsBoundarySuccessRate(t *testing.T) {
	s, err := Parse([]string{"--success-rate=1"})
	if err != nil {
		t.Fatalf("unexpected error for --success-rate=1: %v", err)
	}
	if s.Prober.Objective.MinSuccessRate != 1 {
		t.Fatalf("expected success rate 1, got %v", s.Prober.Objective.MinSuccessRate)
	}
}

func TestParseSurfacesBisectAndCeilingKnobs(t *testing.T) {
	s, err := Parse([]string{"--bisect-tolerance=5", "--recommended-ceiling-factor=0.7"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Prober.BisectTolerance != 5 {
		t.Fatalf("expected bisect tolerance 5, got %d", s.Prober.BisectTolerance)
	}
	if s.Prober.CeilingFactor != 0.7 {
		t.Fatalf("expected ceiling factor 0.7, got %v", s.Prober.CeilingFactor)
	}
}
