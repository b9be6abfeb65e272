package capture

import (
	"context"
	"sync"
)

var _ analyzer = &analyzerMock{}

type analyzerMock struct {
	AnalyzeFunc func(ctx context.Context, content string) (string, error)

	calls struct {
		Analyze []struct {
			Ctx     context.Context
			Content string
		}
	}
	lockAnalyze sync.RWMutex
}

func (mock *analyzerMock) Analyze(ctx context.Context, content string) (string, error) {
	if mock.AnalyzeFunc == nil {
		panic("analyzerMock.AnalyzeFunc: method is nil but analyzer.Analyze was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		Content string
	}{Ctx: ctx, Content: content}
	mock.lockAnalyze.Lock()
	mock.calls.Analyze = append(mock.calls.Analyze, callInfo)
	mock.lockAnalyze.Unlock()
	return mock.AnalyzeFunc(ctx, content)
}

func (mock *analyzerMock) AnalyzeCalls() []struct {
	Ctx     context.Context
	Content string
} {
	mock.lockAnalyze.RLock()
	calls := mock.calls.Analyze
	mock.lockAnalyze.RUnlock()
	return calls
}
