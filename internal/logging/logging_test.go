package logging_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/jrsteele09/voc-portal/internal/logging"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	require.Equal(t, zerolog.DebugLevel, logging.ParseLevel("DEBUG"))
	require.Equal(t, zerolog.WarnLevel, logging.ParseLevel(" warn "))
	require.Equal(t, zerolog.InfoLevel, logging.ParseLevel("nonsense"))
	require.Equal(t, zerolog.InfoLevel, logging.ParseLevel(""))
}

func TestNew_JSONOutsideDev(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(&buf, "PROD", "info")

	logger.Debug().Msg("hidden")
	logger.Info().Str("scope", "abc").Msg("visible")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "visible", entry["message"])
	require.Equal(t, "abc", entry["scope"])
}
