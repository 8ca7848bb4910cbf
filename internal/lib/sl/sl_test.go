package sl_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/foodgram/internal/lib/sl"
)

func TestErr_ReturnsCorrectAttr(t *testing.T) {
	attr := sl.Err(errors.New("something went wrong"))

	assert.Equal(t, "error", attr.Key)
	assert.Equal(t, slog.StringValue("something went wrong"), attr.Value)
}

func TestErr_NilError(t *testing.T) {
	attr := sl.Err(nil)

	assert.Equal(t, "error", attr.Key)
	assert.Equal(t, "", attr.Value.String())
}

func TestNew_LocalIsTextWithDebug(t *testing.T) {
	var buf bytes.Buffer
	log := sl.New(sl.EnvLocal, &buf)

	assert.True(t, log.Enabled(context.Background(), slog.LevelDebug))
	log.Info("hello", slog.String("k", "v"))
	assert.Contains(t, buf.String(), "k=v")
}

func TestNew_ProdIsJSON(t *testing.T) {
	var buf bytes.Buffer
	log := sl.New(sl.EnvProd, &buf)

	assert.False(t, log.Enabled(context.Background(), slog.LevelDebug))
	log.Info("hello", sl.Err(errors.New("boom")))

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "hello", record["msg"])
	assert.Equal(t, "boom", record["error"])
}
