package config

import "testing"

func TestDefaultLimits(t *testing.T) {
	l := DefaultLimits()
	if l.MaxEventLogEntries != 4096 {
		t.Fatalf("MaxEventLogEntries = %d, want 4096", l.MaxEventLogEntries)
	}
	if l.TickChannelBufferSize != 0 {
		t.Fatalf("TickChannelBufferSize = %d, want 0 (unbuffered)", l.TickChannelBufferSize)
	}
}

func TestDefaultMatch(t *testing.T) {
	m := DefaultMatch()
	if m.DefaultHomeFormation != "4-4-2" || m.DefaultAwayFormation != "4-3-3" {
		t.Fatalf("unexpected default formations: %+v", m)
	}
}

func TestMatchFromEnvOverrides(t *testing.T) {
	t.Setenv("DEFAULT_HOME_FORMATION", "4-2-3-1")
	t.Setenv("DEFAULT_AWAY_FORMATION", "3-5-2")

	m := MatchFromEnv()
	if m.DefaultHomeFormation != "4-2-3-1" {
		t.Fatalf("DefaultHomeFormation = %q, want override", m.DefaultHomeFormation)
	}
	if m.DefaultAwayFormation != "3-5-2" {
		t.Fatalf("DefaultAwayFormation = %q, want override", m.DefaultAwayFormation)
	}
}

func TestMatchFromEnvFallsBackWhenUnset(t *testing.T) {
	m := MatchFromEnv()
	if m.DefaultHomeFormation != "4-4-2" {
		t.Fatalf("expected default when env unset, got %q", m.DefaultHomeFormation)
	}
}

func TestDefaultServer(t *testing.T) {
	s := DefaultServer()
	if s.Port != 3000 || s.MaxConcurrentSubs != 100 {
		t.Fatalf("unexpected defaults: %+v", s)
	}
}

func TestServerFromEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("MAX_CONCURRENT_SUBSCRIBERS", "250")

	s := ServerFromEnv()
	if s.Port != 8080 {
		t.Fatalf("Port = %d, want 8080", s.Port)
	}
	if s.MaxConcurrentSubs != 250 {
		t.Fatalf("MaxConcurrentSubs = %d, want 250", s.MaxConcurrentSubs)
	}
}

func TestServerFromEnvIgnoresInvalidValues(t *testing.T) {
	t.Setenv("PORT", "not-a-number")

	s := ServerFromEnv()
	if s.Port != 3000 {
		t.Fatalf("expected fallback to default on unparsable PORT, got %d", s.Port)
	}
}

func TestServerFromEnvIgnoresZeroAndNegative(t *testing.T) {
	t.Setenv("PORT", "0")
	t.Setenv("MAX_CONCURRENT_SUBSCRIBERS", "-5")

	s := ServerFromEnv()
	if s.Port != 3000 {
		t.Fatalf("expected default Port when env is 0, got %d", s.Port)
	}
	if s.MaxConcurrentSubs != 100 {
		t.Fatalf("expected default MaxConcurrentSubs when env is negative, got %d", s.MaxConcurrentSubs)
	}
}

func TestLoadAssemblesAllSections(t *testing.T) {
	cfg := Load()
	if cfg.Match.DefaultHomeFormation == "" {
		t.Fatal("expected Load to populate match defaults")
	}
	if cfg.Server.Port == 0 {
		t.Fatal("expected Load to populate server defaults")
	}
	if cfg.Limits.MaxEventLogEntries == 0 {
		t.Fatal("expected Load to populate resource limits")
	}
}
