package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderQRPNG(t *testing.T) {
	png, err := RenderQRPNG("https://zhourt.in/ab12", 256)
	require.NoError(t, err)

	// PNG magic header
	assert.Equal(t, []byte{0x89, 0x50, 0x4E, 0x47}, png[:4])
}

func TestRenderQRPNG_DefaultSize(t *testing.T) {
	png, err := RenderQRPNG("https://zhourt.in/ab12", 0)
	require.NoError(t, err)
	assert.NotEmpty(t, png)
}

func TestRenderQRPNG_EmptyContent(t *testing.T) {
	_, err := RenderQRPNG("", 256)
	assert.Error(t, err)
}
