package repository

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flip-order-labels/db"
	"flip-order-labels/models"
)

// Runs against a real Postgres when TEST_DATABASE_URL is set.
func TestLabelDocumentRepository(t *testing.T) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	require.NoError(t, db.InitDB(ctx, url))
	t.Cleanup(func() { _ = db.CloseDB() })
	require.NoError(t, db.EnsureSchema(ctx))

	repo := NewLabelDocumentRepository(db.DB)
	prefix := fmt.Sprintf("test_%d", time.Now().UnixNano())
	t.Cleanup(func() {
		_, _ = db.DB.ExecContext(ctx, `DELETE FROM label_documents WHERE file_name LIKE $1`, prefix+"%")
	})

	base := time.Now().UTC().Truncate(time.Microsecond)
	first := &models.LabelDocument{FileName: prefix + "_a.pdf", LabelSize: "58x40", LabelCount: 3, OrderCount: 1, SizeBytes: 1024, CreatedAt: base}
	second := &models.LabelDocument{FileName: prefix + "_b.pdf", LabelSize: "30x20", LabelCount: 1, OrderCount: 1, SizeBytes: 512, CreatedAt: base.Add(time.Second)}
	require.NoError(t, repo.Insert(ctx, first))
	require.NoError(t, repo.Insert(ctx, second))
	assert.NotZero(t, first.ID)
	assert.Greater(t, second.ID, first.ID)

	assert.Error(t, repo.Insert(ctx, &models.LabelDocument{FileName: first.FileName, LabelSize: "58x40", CreatedAt: base}))

	docs, err := repo.ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, second.FileName, docs[0].FileName)
	assert.Equal(t, "30x20", docs[0].LabelSize)
	assert.Equal(t, first.FileName, docs[1].FileName)
}
