package domain

// Phase is the discrete state of the current capture session.
type Phase string

const (
	PhaseIdle       Phase = "IDLE"
	PhaseAnalyzing  Phase = "ANALYZING"
	PhasePersisting Phase = "PERSISTING"
	PhaseSucceeded  Phase = "SUCCEEDED"
	PhaseFailed     Phase = "FAILED"
)

func (p Phase) String() string { return string(p) }

func (p Phase) IsValid() bool {
	switch p {
	case PhaseIdle, PhaseAnalyzing, PhasePersisting, PhaseSucceeded, PhaseFailed:
		return true
	}
	return false
}

// Status is the user-facing indicator derived from the last capture session.
type Status string

const (
	StatusNone      Status = ""
	StatusAnalyzing Status = "ANALYZING"
	StatusSucceeded Status = "SUCCEEDED"
	StatusFailed    Status = "FAILED"
)

func (s Status) String() string { return string(s) }

// Message returns the text shown to the user for the status.
// Failures are deliberately generic: the user does not learn whether the
// analysis or the save failed.
func (s Status) Message() string {
	switch s {
	case StatusAnalyzing:
		return "Analyzing..."
	case StatusSucceeded:
		return "Analysis complete ✅"
	case StatusFailed:
		return "Analysis failed ❌"
	}
	return ""
}

// AnalysisProvider identifies the completion backend used by the analysis gateway.
type AnalysisProvider string

const (
	AnalysisProviderOpenAI    AnalysisProvider = "openai"
	AnalysisProviderAnthropic AnalysisProvider = "anthropic"
	AnalysisProviderProxy     AnalysisProvider = "proxy"
)

func (p AnalysisProvider) IsValid() bool {
	switch p {
	case AnalysisProviderOpenAI, AnalysisProviderAnthropic, AnalysisProviderProxy:
		return true
	}
	return false
}

// StoreBackend identifies the hosted store used by the entry store gateway.
type StoreBackend string

const (
	StoreBackendPostgres StoreBackend = "postgres"
	StoreBackendSupabase StoreBackend = "supabase"
)

func (b StoreBackend) IsValid() bool {
	switch b {
	case StoreBackendPostgres, StoreBackendSupabase:
		return true
	}
	return false
}
