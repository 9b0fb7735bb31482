package collection

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/exp/slog"

	"folio/internal/domain/record"
	"folio/internal/render"
)

// MockStore is a mock implementation of the record.Store interface for testing
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Open(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockStore) Append(ctx context.Context, col record.Collection, rec *record.Record) (int64, error) {
	args := m.Called(ctx, col, rec)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStore) ListAll(ctx context.Context, col record.Collection) ([]record.Record, error) {
	args := m.Called(ctx, col)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]record.Record), args.Error(1)
}

func (m *MockStore) Clear(ctx context.Context, col record.Collection) error {
	args := m.Called(ctx, col)
	return args.Error(0)
}

func (m *MockStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

func journalManager(store record.Store) *Manager {
	return NewManager(Config{
		Collection: record.Journals,
		Bounds:     record.JournalBounds(),
		Template:   render.Journal(),
	}, store, slog.Default())
}

func projectManager(store record.Store) *Manager {
	return NewManager(Config{
		Collection:      record.Projects,
		Bounds:          record.ProjectBounds(),
		Template:        render.Project(),
		WithAttachments: true,
	}, store, slog.Default())
}

func TestManager_Submit_SavesAndRefreshes(t *testing.T) {
	mockStore := new(MockStore)
	m := journalManager(mockStore)

	saved := record.Record{
		ID:        1,
		Title:     "Day One",
		Body:      "first entry of the journal",
		CreatedAt: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
	}
	mockStore.On("Append", mock.Anything, record.Journals, mock.AnythingOfType("*record.Record")).
		Return(int64(1), nil)
	mockStore.On("ListAll", mock.Anything, record.Journals).
		Return([]record.Record{saved}, nil)

	m.SetDraft("Day One", "first entry of the journal")
	view, err := m.Submit(context.Background())

	assert.NoError(t, err)
	assert.Contains(t, view, "Day One")
	assert.Contains(t, view, "first entry of the journal")
	assert.Equal(t, StateIdle, m.State())
	assert.False(t, m.FormVisible())

	title, body := m.Draft()
	assert.Empty(t, title)
	assert.Empty(t, body)
	mockStore.AssertExpectations(t)
}

func TestManager_Submit_EscapesHTML(t *testing.T) {
	mockStore := new(MockStore)
	m := journalManager(mockStore)

	hostile := record.Record{
		ID:        1,
		Title:     "<script>alert('x')</script>",
		Body:      "<img src=x onerror=alert(1)>",
		CreatedAt: time.Now(),
	}
	mockStore.On("Append", mock.Anything, record.Journals, mock.Anything).Return(int64(1), nil)
	mockStore.On("ListAll", mock.Anything, record.Journals).Return([]record.Record{hostile}, nil)

	m.SetDraft(hostile.Title, hostile.Body)
	view, err := m.Submit(context.Background())

	assert.NoError(t, err)
	assert.NotContains(t, view, "<script>")
	assert.NotContains(t, view, "<img")
	assert.Contains(t, view, "&lt;script&gt;")
}

func TestManager_Submit_InvalidData(t *testing.T) {
	mockStore := new(MockStore)
	m := journalManager(mockStore)

	m.SetDraft("ab", "too short")
	_, err := m.Submit(context.Background())

	assert.ErrorIs(t, err, record.ErrValidation)
	// Rejected input never reaches the store.
	mockStore.AssertNotCalled(t, "Append", mock.Anything, mock.Anything, mock.Anything)

	// The draft survives for correction.
	title, body := m.Draft()
	assert.Equal(t, "ab", title)
	assert.Equal(t, "too short", body)
	assert.True(t, m.FormVisible())
}

func TestManager_Submit_StoreFailureRetainsDraft(t *testing.T) {
	mockStore := new(MockStore)
	m := journalManager(mockStore)

	mockStore.On("Append", mock.Anything, record.Journals, mock.Anything).
		Return(int64(0), record.ErrWriteFailed)

	m.SetDraft("Day One", "first entry of the journal")
	_, err := m.Submit(context.Background())

	assert.ErrorIs(t, err, record.ErrWriteFailed)
	assert.Equal(t, StateEditing, m.State())

	title, body := m.Draft()
	assert.Equal(t, "Day One", title)
	assert.Equal(t, "first entry of the journal", body)
}

func TestManager_Submit_Busy(t *testing.T) {
	mockStore := new(MockStore)
	m := journalManager(mockStore)

	m.SetDraft("Day One", "first entry of the journal")
	m.mu.Lock()
	m.state = StateSaving
	m.mu.Unlock()

	_, err := m.Submit(context.Background())

	assert.ErrorIs(t, err, record.ErrBusy)
	mockStore.AssertNotCalled(t, "Append", mock.Anything, mock.Anything, mock.Anything)
}

func TestManager_Refresh_NewestFirst(t *testing.T) {
	mockStore := new(MockStore)
	m := journalManager(mockStore)

	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	mockStore.On("ListAll", mock.Anything, record.Journals).Return([]record.Record{
		{ID: 1, Title: "Day One", Body: "the first day written up", CreatedAt: base},
		{ID: 2, Title: "Day Two", Body: "the second day written up", CreatedAt: base.Add(24 * time.Hour)},
	}, nil)

	view, err := m.Refresh(context.Background())

	assert.NoError(t, err)
	assert.Less(t, strings.Index(view, "Day Two"), strings.Index(view, "Day One"))
}

func TestManager_Refresh_EqualTimestampsHigherIDFirst(t *testing.T) {
	mockStore := new(MockStore)
	m := journalManager(mockStore)

	at := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	mockStore.On("ListAll", mock.Anything, record.Journals).Return([]record.Record{
		{ID: 1, Title: "Earlier Write", Body: "written first this second", CreatedAt: at},
		{ID: 2, Title: "Later Write", Body: "written second this second", CreatedAt: at},
	}, nil)

	view, err := m.Refresh(context.Background())

	assert.NoError(t, err)
	assert.Less(t, strings.Index(view, "Later Write"), strings.Index(view, "Earlier Write"))
}

func TestManager_Refresh_EmptyState(t *testing.T) {
	mockStore := new(MockStore)
	m := journalManager(mockStore)

	mockStore.On("ListAll", mock.Anything, record.Journals).Return([]record.Record{}, nil)

	view, err := m.Refresh(context.Background())

	assert.NoError(t, err)
	assert.Contains(t, view, "No journal entries yet")
}

func TestManager_Refresh_StoreError(t *testing.T) {
	mockStore := new(MockStore)
	m := journalManager(mockStore)

	listErr := errors.New("both backends down")
	mockStore.On("ListAll", mock.Anything, record.Journals).Return(nil, listErr)

	_, err := m.Refresh(context.Background())

	assert.ErrorIs(t, err, listErr)
}

func TestManager_Reset_Confirmed(t *testing.T) {
	mockStore := new(MockStore)
	m := journalManager(mockStore)

	mockStore.On("Clear", mock.Anything, record.Journals).Return(nil)
	mockStore.On("ListAll", mock.Anything, record.Journals).Return([]record.Record{}, nil)

	view, err := m.Reset(context.Background(), func() bool { return true })

	assert.NoError(t, err)
	assert.Contains(t, view, "No journal entries yet")
	assert.Equal(t, StateIdle, m.State())
	mockStore.AssertExpectations(t)
}

func TestManager_Reset_Declined(t *testing.T) {
	mockStore := new(MockStore)
	m := journalManager(mockStore)

	existing := record.Record{ID: 1, Title: "Day One", Body: "still here after decline", CreatedAt: time.Now()}
	mockStore.On("ListAll", mock.Anything, record.Journals).Return([]record.Record{existing}, nil)

	view, err := m.Reset(context.Background(), func() bool { return false })

	assert.NoError(t, err)
	assert.Contains(t, view, "Day One")
	mockStore.AssertNotCalled(t, "Clear", mock.Anything, mock.Anything)
}

func TestManager_Reset_Busy(t *testing.T) {
	mockStore := new(MockStore)
	m := journalManager(mockStore)

	m.mu.Lock()
	m.state = StateClearing
	m.mu.Unlock()

	_, err := m.Reset(context.Background(), func() bool { return true })

	assert.ErrorIs(t, err, record.ErrBusy)
	mockStore.AssertNotCalled(t, "Clear", mock.Anything, mock.Anything)
}

func TestManager_ToggleForm_HideDiscardsDraft(t *testing.T) {
	m := journalManager(new(MockStore))

	visible := m.ToggleForm()
	assert.True(t, visible)

	m.SetDraft("Day One", "first entry of the journal")

	visible = m.ToggleForm()
	assert.False(t, visible)

	title, body := m.Draft()
	assert.Empty(t, title)
	assert.Empty(t, body)
	assert.Equal(t, StateIdle, m.State())
}

func TestManager_Attach_OnlyWithAttachments(t *testing.T) {
	journal := journalManager(new(MockStore))
	err := journal.Attach("cv.pdf", []byte("data"))
	assert.Error(t, err)

	projects := projectManager(new(MockStore))
	err = projects.Attach("cv.pdf", []byte("data"))
	assert.NoError(t, err)
}

func TestManager_Submit_AttachmentsKeepUploadOrder(t *testing.T) {
	mockStore := new(MockStore)
	m := projectManager(mockStore)

	var got *record.Record
	mockStore.On("Append", mock.Anything, record.Projects, mock.Anything).
		Run(func(args mock.Arguments) {
			got = args.Get(2).(*record.Record)
		}).
		Return(int64(1), nil)
	mockStore.On("ListAll", mock.Anything, record.Projects).Return([]record.Record{}, nil)

	m.SetDraft("Portfolio Site", "a static site with a journal")
	assert.NoError(t, m.Attach("first.png", []byte{1}))
	assert.NoError(t, m.Attach("second.png", []byte{2}))

	_, err := m.Submit(context.Background())

	assert.NoError(t, err)
	if assert.Len(t, got.Attachments, 2) {
		assert.Equal(t, "first.png", got.Attachments[0].Name)
		assert.Equal(t, "second.png", got.Attachments[1].Name)
		assert.NotEmpty(t, got.Attachments[0].ID)
		assert.NotEqual(t, got.Attachments[0].ID, got.Attachments[1].ID)
	}
}
