package observability

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewLogger_JSONAndLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf, "prod", "warn")

	l.Info().Msg("dropped")
	require.Zero(t, buf.Len())

	l.Warn().Str("company", "Acme").Msg("kept")
	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	require.Equal(t, "kept", line["message"])
	require.Equal(t, "Acme", line["company"])
	require.Equal(t, "review-sentiment", line["service"])
}

func TestNewLogger_DefaultLevels(t *testing.T) {
	var buf bytes.Buffer
	prod := NewLogger(&buf, "prod", "")
	prod.Debug().Msg("hidden")
	require.Zero(t, buf.Len())

	dev := NewLogger(&buf, "dev", "bogus")
	dev.Debug().Msg("shown")
	require.Contains(t, buf.String(), "shown")
}
