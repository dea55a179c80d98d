package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	var testCases = []struct {
		description string
		yaml        string
		expect      *Config
		wantErr     bool
	}{
		{
			description: "defaults",
			yaml:        `inlineCode: true`,
			expect: &Config{
				InlineCode: true,
				Extensions: []string{".tsx", ".jsx"},
				Exclude:    []string{"node_modules", "dist", "build", ".git"},
			},
		},
		{
			description: "explicit",
			yaml: `target:
  - ^[a-z]+$
  - ^Card$
projectRoot: /work/app
embedSource: true
extensions: [tsx]
exclude: []
`,
			expect: &Config{
				Target:      []string{"^[a-z]+$", "^Card$"},
				ProjectRoot: "/work/app",
				EmbedSource: true,
				Extensions:  []string{".tsx"},
				Exclude:     []string{},
			},
		},
		{
			description: "invalid yaml",
			yaml:        "target: [",
			wantErr:     true,
		},
	}
	for _, testCase := range testCases {
		location := filepath.Join(t.TempDir(), DefaultFile)
		require.NoError(t, os.WriteFile(location, []byte(testCase.yaml), 0o644))
		actual, err := Load(context.Background(), location)
		if testCase.wantErr {
			assert.Error(t, err, testCase.description)
			continue
		}
		require.NoError(t, err, testCase.description)
		assert.EqualValues(t, testCase.expect, actual, testCase.description)
	}
}

func TestConfig_Supports(t *testing.T) {
	cfg := DefaultConfig()
	assert.True(t, cfg.Supports("/a/App.tsx"))
	assert.True(t, cfg.Supports("/a/App.JSX"))
	assert.False(t, cfg.Supports("/a/app.ts"))
	assert.True(t, cfg.Excluded("web/node_modules/react/index.jsx"))
	assert.False(t, cfg.Excluded("web/src/App.tsx"))
}

func TestConfig_Options(t *testing.T) {
	cfg := &Config{Target: []string{"("}}
	_, err := cfg.Options(nil)
	assert.Error(t, err)

	cfg = &Config{Target: []string{"^div$"}, InlineCode: true}
	options, err := cfg.Options(nil)
	assert.NoError(t, err)
	assert.Len(t, options, 4)
}
