package enrich

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ArunMS01/ai-sales/internal/model"
	"github.com/ArunMS01/ai-sales/internal/pace"
	"github.com/ArunMS01/ai-sales/internal/store"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()
	st, err := store.NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() }) //nolint:errcheck
	require.NoError(t, st.Migrate(context.Background()))
	return st
}

func TestBulk_EnrichesLeadsMissingContact(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	needy := &model.Lead{Company: "Acme Fashions", Stage: model.StageNew}
	require.NoError(t, st.Insert(ctx, needy))

	complete := &model.Lead{Company: "Beta Textiles", Phone: "9123456780", Email: "b@beta.in", Stage: model.StageNew}
	require.NoError(t, st.Insert(ctx, complete))

	p := &stubProvider{name: "p", fields: []Field{FieldPhone, FieldEmail}, patch: Patch{Phone: "9876543210", Email: "sales@acme.co"}}
	b := NewBulk(st, NewCascade(time.Second, p), pace.None(), 10)

	res, err := b.Run(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, res.Processed) // the complete lead is skipped
	assert.Equal(t, 1, res.Enriched)
	assert.Empty(t, res.Errors)

	got, err := st.Get(ctx, needy.ID)
	require.NoError(t, err)
	assert.Equal(t, "9876543210", got.Phone)
	assert.Equal(t, "sales@acme.co", got.Email)
	assert.Equal(t, "https://wa.me/919876543210", got.WhatsAppURL)
}

func TestBulk_HonorsLimit(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"Alpha Co", "Beta Co", "Gamma Co"} {
		require.NoError(t, st.Insert(ctx, &model.Lead{Company: name, Stage: model.StageNew}))
	}

	p := &stubProvider{name: "p", fields: []Field{FieldPhone}, patch: Patch{Phone: "9876543210"}}
	b := NewBulk(st, NewCascade(time.Second, p), pace.None(), 2)

	res, err := b.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Processed)
}

func TestBulk_IncludesContactedLeads(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	lead := &model.Lead{Company: "Acme Fashions", Phone: "9876543210", Stage: model.StageNew}
	require.NoError(t, st.Insert(ctx, lead))
	require.NoError(t, st.UpdateStage(ctx, lead.ID, model.StageContacted))

	p := &stubProvider{name: "p", fields: []Field{FieldEmail}, patch: Patch{Email: "owner@acme.co"}}
	b := NewBulk(st, NewCascade(time.Second, p), pace.None(), 10)

	res, err := b.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Processed)
	assert.Equal(t, 1, res.Enriched)

	got, err := st.Get(ctx, lead.ID)
	require.NoError(t, err)
	assert.Equal(t, "owner@acme.co", got.Email)
	assert.Equal(t, model.StageContacted, got.Stage)
}

func TestBulk_NoCandidates(t *testing.T) {
	st := newTestStore(t)

	p := &stubProvider{name: "p", fields: []Field{FieldPhone}}
	b := NewBulk(st, NewCascade(time.Second, p), pace.None(), 10)

	res, err := b.Run(context.Background())
	require.NoError(t, err)
	assert.Zero(t, res.Processed)
	assert.Zero(t, p.calls)
}
