package capture

import (
	"context"
	"sync"

	"github.com/heartmarshall/mental-clarity/internal/domain"
)

var _ entryStore = &entryStoreMock{}

type entryStoreMock struct {
	InsertEntryFunc func(ctx context.Context, content string, analysis string) (*domain.Entry, error)
	ListEntriesFunc func(ctx context.Context) ([]domain.Entry, error)

	calls struct {
		InsertEntry []struct {
			Ctx      context.Context
			Content  string
			Analysis string
		}
		ListEntries []struct {
			Ctx context.Context
		}
	}
	lockInsertEntry sync.RWMutex
	lockListEntries sync.RWMutex
}

func (mock *entryStoreMock) InsertEntry(ctx context.Context, content string, analysis string) (*domain.Entry, error) {
	if mock.InsertEntryFunc == nil {
		panic("entryStoreMock.InsertEntryFunc: method is nil but entryStore.InsertEntry was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		Content  string
		Analysis string
	}{Ctx: ctx, Content: content, Analysis: analysis}
	mock.lockInsertEntry.Lock()
	mock.calls.InsertEntry = append(mock.calls.InsertEntry, callInfo)
	mock.lockInsertEntry.Unlock()
	return mock.InsertEntryFunc(ctx, content, analysis)
}

func (mock *entryStoreMock) InsertEntryCalls() []struct {
	Ctx      context.Context
	Content  string
	Analysis string
} {
	mock.lockInsertEntry.RLock()
	calls := mock.calls.InsertEntry
	mock.lockInsertEntry.RUnlock()
	return calls
}

func (mock *entryStoreMock) ListEntries(ctx context.Context) ([]domain.Entry, error) {
	if mock.ListEntriesFunc == nil {
		panic("entryStoreMock.ListEntriesFunc: method is nil but entryStore.ListEntries was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockListEntries.Lock()
	mock.calls.ListEntries = append(mock.calls.ListEntries, callInfo)
	mock.lockListEntries.Unlock()
	return mock.ListEntriesFunc(ctx)
}

func (mock *entryStoreMock) ListEntriesCalls() []struct {
	Ctx context.Context
} {
	mock.lockListEntries.RLock()
	calls := mock.calls.ListEntries
	mock.lockListEntries.RUnlock()
	return calls
}
