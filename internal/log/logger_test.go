package log

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	l := New(WithOutput(&buf), WithLevel(DebugLevel), WithJSON())
	l.Debug().Str("class", "User").Msg("planned")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "debug", line["level"])
	assert.Equal(t, "User", line["class"])
	assert.Equal(t, "planned", line["message"])
	assert.Contains(t, line, "time")
}

func TestNewConsole(t *testing.T) {
	var buf bytes.Buffer
	l := New(WithOutput(&buf))
	l.Debug().Msg("hidden")
	l.Info().Int("files", 3).Msg("generated")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "| INFO |")
	assert.Contains(t, out, "generated")
	assert.Contains(t, out, "files=3")
}

func TestWithFile(t *testing.T) {
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "relgen.log")
	l := New(WithOutput(&buf), WithFile(Rotate{Filename: path, MaxSize: 1}))
	l.Warn().Msg("slow")

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), `"message":"slow"`)
	assert.Contains(t, buf.String(), "slow")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    Level
		wantErr bool
	}{
		{"debug", DebugLevel, false},
		{"WARN", WarnLevel, false},
		{"", InfoLevel, false},
		{"loud", InfoLevel, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDefault(t *testing.T) {
	prev := *Default()
	t.Cleanup(func() { SetDefault(prev) })

	var buf bytes.Buffer
	SetDefault(New(WithOutput(&buf), WithJSON()))
	Default().Info().Msg("hello")
	assert.Contains(t, buf.String(), `"message":"hello"`)
}
