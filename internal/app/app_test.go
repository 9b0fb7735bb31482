package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"folio/internal/config"
	"folio/internal/infrastructure/storage"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dataDir := t.TempDir()
	return &config.Config{
		Env:        config.EnvLocal,
		LogLevel:   "debug",
		DataDir:    dataDir,
		DBPath:     filepath.Join(dataDir, "folio.db"),
		MirrorPath: filepath.Join(dataDir, "mirror"),
	}
}

func TestApp_JournalLifecycle(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)

	a, err := New(ctx, cfg, slog.Default())
	require.NoError(t, err)
	defer a.Close()

	a.Journal.SetDraft("Day One", "went hiking, saw a hawk")
	view, err := a.Journal.Submit(ctx)
	require.NoError(t, err)
	assert.Contains(t, view, "Day One")

	a.Journal.SetDraft("Day Two", "rained all day, stayed in")
	view, err = a.Journal.Submit(ctx)
	require.NoError(t, err)
	assert.Contains(t, view, "Day Two")
	assert.Contains(t, view, "Day One")

	view, err = a.Journal.Reset(ctx, func() bool { return true })
	require.NoError(t, err)
	assert.Contains(t, view, "No journal entries yet")
}

func TestApp_ProjectWithAttachment(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)

	a, err := New(ctx, cfg, slog.Default())
	require.NoError(t, err)
	defer a.Close()

	a.Projects.SetDraft("Portfolio Site", "a static site with a journal")
	require.NoError(t, a.Projects.Attach("screenshot.png", []byte{0x89, 0x50}))

	view, err := a.Projects.Submit(ctx)
	require.NoError(t, err)
	assert.Contains(t, view, "Portfolio Site")
	assert.Contains(t, view, "<li>screenshot.png</li>")
}

func TestApp_HostileInputStaysEscaped(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)

	a, err := New(ctx, cfg, slog.Default())
	require.NoError(t, err)
	defer a.Close()

	a.Journal.SetDraft("<script>alert('x')</script>", "body with <b>markup</b> inside")
	view, err := a.Journal.Submit(ctx)
	require.NoError(t, err)
	assert.NotContains(t, view, "<script>")
	assert.Contains(t, view, "&lt;script&gt;")
}

func TestApp_MirrorServesWhenStructuredUnavailable(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)

	a, err := New(ctx, cfg, slog.Default())
	require.NoError(t, err)

	a.Journal.SetDraft("Day One", "written while everything worked")
	_, err = a.Journal.Submit(ctx)
	require.NoError(t, err)
	require.NoError(t, a.Close())

	// Same mirror directory, but a database path that cannot be opened.
	cfg.DBPath = filepath.Join(cfg.DataDir, "missing", "nested", "folio.db")

	b, err := New(ctx, cfg, slog.Default())
	require.NoError(t, err)
	defer b.Close()

	dual, ok := b.Store.(*storage.DualStore)
	require.True(t, ok)
	assert.True(t, dual.Degraded())

	view, err := b.Journal.Refresh(ctx)
	require.NoError(t, err)
	assert.Contains(t, view, "Day One")
}

func TestApp_ProfilePersistsAcrossRestarts(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)

	a, err := New(ctx, cfg, slog.Default())
	require.NoError(t, err)
	require.NoError(t, a.Profile.SetIntro("Ada", "analyst"))
	require.NoError(t, a.Profile.SetCV("2020: started\n2021: shipped"))
	require.NoError(t, a.Close())

	b, err := New(ctx, cfg, slog.Default())
	require.NoError(t, err)
	defer b.Close()

	p, err := b.Profile.Get()
	require.NoError(t, err)
	assert.Equal(t, "Ada", p.Name)

	cv, err := b.Profile.RenderCV()
	require.NoError(t, err)
	assert.Equal(t, "2020: started<br>2021: shipped", cv)
}
