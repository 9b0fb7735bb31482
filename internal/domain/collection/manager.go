package collection

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"

	"folio/internal/domain/record"
	"folio/internal/render"
)

// State is the manager's position in its submit/clear cycle.
type State string

const (
	StateIdle     State = "idle"
	StateEditing  State = "editing"
	StateSaving   State = "saving"
	StateClearing State = "clearing"
)

// Config parameterizes a Manager for one collection: its name, its field
// bounds and its view template. The journal and projects managers differ
// only in configuration.
type Config struct {
	Collection      record.Collection
	Bounds          record.Bounds
	Template        render.Template
	WithAttachments bool
}

// form holds the in-progress user input. It survives a failed save so
// the user never loses what they typed.
type form struct {
	visible     bool
	title       string
	body        string
	attachments []record.Attachment
}

// Manager mediates between user input, validation, the record store and
// the rendered view of one collection. Saving and clearing are
// serialized per collection: at most one write is in flight.
type Manager struct {
	cfg       Config
	store     record.Store
	validator *record.Validator
	log       *slog.Logger
	now       func() time.Time

	mu    sync.Mutex
	state State
	form  form
}

func NewManager(cfg Config, store record.Store, log *slog.Logger) *Manager {
	return &Manager{
		cfg:       cfg,
		store:     store,
		validator: record.NewValidator(cfg.Bounds),
		log:       log.With("component", "collection_manager", "collection", cfg.Collection.String()),
		now:       time.Now,
		state:     StateIdle,
	}
}

// State returns the current manager state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// FormVisible reports whether the input form is shown.
func (m *Manager) FormVisible() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.form.visible
}

// Draft returns the in-progress title and body.
func (m *Manager) Draft() (string, string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.form.title, m.form.body
}

// ToggleForm shows or hides the input form. Hiding discards any
// in-progress field values. The new visibility is returned.
func (m *Manager) ToggleForm() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.form.visible {
		m.form = form{}
		m.state = StateIdle
		return false
	}
	m.form.visible = true
	m.state = StateEditing
	return true
}

// SetDraft records the user's in-progress title and body.
func (m *Manager) SetDraft(title, body string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.form.visible = true
	m.form.title = title
	m.form.body = body
	if m.state == StateIdle {
		m.state = StateEditing
	}
}

// Attach adds an uploaded file to the draft, preserving upload order.
func (m *Manager) Attach(name string, data []byte) error {
	if !m.cfg.WithAttachments {
		return fmt.Errorf("%s records do not take attachments", m.cfg.Collection)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.form.attachments = append(m.form.attachments, record.Attachment{
		ID:   uuid.NewString(),
		Name: name,
		Data: data,
	})
	return nil
}

// Submit validates the draft and persists it as a new record. On success
// the form is cleared and hidden and the refreshed view is returned. On
// validation or store failure the draft is retained for correction and
// the prior displayed state is left unchanged.
func (m *Manager) Submit(ctx context.Context) (string, error) {
	m.mu.Lock()
	if m.state == StateSaving || m.state == StateClearing {
		m.mu.Unlock()
		return "", record.ErrBusy
	}

	title, body, err := m.validator.ValidateFields(m.form.title, m.form.body)
	if err != nil {
		m.mu.Unlock()
		return "", err
	}

	rec := &record.Record{
		Title:     title,
		Body:      body,
		CreatedAt: m.now(),
	}
	if m.cfg.WithAttachments && len(m.form.attachments) > 0 {
		rec.Attachments = append([]record.Attachment(nil), m.form.attachments...)
	}
	m.state = StateSaving
	m.mu.Unlock()

	_, err = m.store.Append(ctx, m.cfg.Collection, rec)

	m.mu.Lock()
	if err != nil {
		// Input retained so the user can correct and resubmit.
		m.state = StateEditing
		m.mu.Unlock()
		m.log.Error("failed to save record", "error", err)
		return "", fmt.Errorf("save %s record: %w", m.cfg.Collection, err)
	}
	m.form = form{}
	m.state = StateIdle
	m.mu.Unlock()

	m.log.Info("record saved", "record_id", rec.ID)
	return m.Refresh(ctx)
}

// Refresh reloads the collection, sorts it newest first and renders it
// through the configured template. Safe to call redundantly: the output
// depends only on the stored data.
func (m *Manager) Refresh(ctx context.Context) (string, error) {
	records, err := m.store.ListAll(ctx, m.cfg.Collection)
	if err != nil {
		m.log.Error("failed to list records", "error", err)
		return "", fmt.Errorf("list %s: %w", m.cfg.Collection, err)
	}

	sortNewestFirst(records)

	out, err := m.cfg.Template.Render(records)
	if err != nil {
		return "", fmt.Errorf("render %s: %w", m.cfg.Collection, err)
	}
	return out, nil
}

// Reset clears the whole collection after confirmation. Declining leaves
// the collection untouched and re-renders the current state.
func (m *Manager) Reset(ctx context.Context, confirm func() bool) (string, error) {
	if confirm != nil && !confirm() {
		return m.Refresh(ctx)
	}

	m.mu.Lock()
	if m.state == StateSaving || m.state == StateClearing {
		m.mu.Unlock()
		return "", record.ErrBusy
	}
	m.state = StateClearing
	m.mu.Unlock()

	err := m.store.Clear(ctx, m.cfg.Collection)

	m.mu.Lock()
	m.state = StateIdle
	m.mu.Unlock()

	if err != nil {
		m.log.Error("failed to clear collection", "error", err)
		return "", fmt.Errorf("clear %s: %w", m.cfg.Collection, err)
	}

	m.log.Info("collection cleared")
	return m.Refresh(ctx)
}

// sortNewestFirst orders records by CreatedAt descending; equal
// timestamps fall back to the higher (later-assigned) id first.
func sortNewestFirst(records []record.Record) {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].CreatedAt.Equal(records[j].CreatedAt) {
			return records[i].ID > records[j].ID
		}
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
}
