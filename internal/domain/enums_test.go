package domain

import "testing"

func TestPhase_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		phase Phase
		want  bool
	}{
		{PhaseIdle, true},
		{PhaseAnalyzing, true},
		{PhasePersisting, true},
		{PhaseSucceeded, true},
		{PhaseFailed, true},
		{Phase(""), false},
		{Phase("idle"), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.phase), func(t *testing.T) {
			t.Parallel()
			if got := tt.phase.IsValid(); got != tt.want {
				t.Errorf("Phase(%q).IsValid() = %v, want %v", tt.phase, got, tt.want)
			}
		})
	}
}

func TestStatus_Message(t *testing.T) {
	t.Parallel()

	if StatusNone.Message() != "" {
		t.Errorf("StatusNone.Message() = %q, want empty", StatusNone.Message())
	}
	for _, s := range []Status{StatusAnalyzing, StatusSucceeded, StatusFailed} {
		if s.Message() == "" {
			t.Errorf("%s.Message() is empty", s)
		}
	}
	if StatusSucceeded.Message() == StatusFailed.Message() {
		t.Error("success and failure must be distinguishable")
	}
}

func TestAnalysisProvider_IsValid(t *testing.T) {
	t.Parallel()

	for _, p := range []AnalysisProvider{AnalysisProviderOpenAI, AnalysisProviderAnthropic, AnalysisProviderProxy} {
		if !p.IsValid() {
			t.Errorf("%q should be valid", p)
		}
	}
	if AnalysisProvider("gemini").IsValid() {
		t.Error("gemini should not be valid")
	}
}

func TestStoreBackend_IsValid(t *testing.T) {
	t.Parallel()

	if !StoreBackendPostgres.IsValid() || !StoreBackendSupabase.IsValid() {
		t.Error("postgres and supabase must be valid")
	}
	if StoreBackend("sqlite").IsValid() {
		t.Error("sqlite should not be valid")
	}
}
