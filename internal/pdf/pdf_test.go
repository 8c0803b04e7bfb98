package pdf

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contentai/internal/models"
)

func TestRenderProducesPDF(t *testing.T) {
	r := NewRenderer()
	data, err := r.Render(models.ExportPDFRequest{
		Content: "# Quarterly Report\n\nIntro paragraph.\n\n## Findings\n\n- first point\n- second point\n\nClosing text.",
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
	assert.Greater(t, len(data), 500)
}

func TestRenderEmptyContent(t *testing.T) {
	r := NewRenderer()
	data, err := r.Render(models.ExportPDFRequest{ContentType: models.ContentTypeMessage})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestRenderHandlesPlainText(t *testing.T) {
	r := NewRenderer()
	data, err := r.Render(models.ExportPDFRequest{
		Content:     "Just a plain paragraph with no markdown structure at all.",
		ContentType: models.ContentTypeShortPost,
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}
