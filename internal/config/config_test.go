package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sawada-k/github-activity/internal/domain"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const sampleConfig = `
github:
  commits:
    acme:
      token: env:ACME_TOKEN
      exclude:
        - repo: sandbox
          year: 2024
          month: 3
    umbrella:
      token: literal-token
      repos: [core, tools]
  issues:
    acme:
      token: env:ACME_TOKEN
`

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)
	assert.Len(t, cfg.GitHub.Commits, 2)
	assert.Len(t, cfg.GitHub.Issues, 1)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_MissingSections(t *testing.T) {
	_, err := Load(writeConfig(t, "other: {}\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing github.commits and github.issues")
}

func TestLoad_MalformedYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "github: [not a map\n"))
	assert.Error(t, err)
}

func TestConfig_OwnerFor(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	o, err := cfg.OwnerFor(domain.ActivityCommits, "umbrella")
	require.NoError(t, err)
	assert.Equal(t, "literal-token", o.Token)

	_, err = cfg.OwnerFor(domain.ActivityCommits, "unknown")
	assert.Error(t, err)

	_, err = cfg.OwnerFor(domain.ActivityIssues, "umbrella")
	assert.Error(t, err)
}

func TestConfig_Owners(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, []string{"acme", "umbrella"}, cfg.Owners(domain.ActivityCommits))
	assert.Equal(t, []string{"acme"}, cfg.Owners(domain.ActivityIssues))
}

func TestOwner_ResolveToken(t *testing.T) {
	t.Run("literal token", func(t *testing.T) {
		token, err := Owner{Token: "abc123"}.ResolveToken()
		require.NoError(t, err)
		assert.Equal(t, "abc123", token)
	})

	t.Run("env reference", func(t *testing.T) {
		t.Setenv("ACME_TOKEN", "from-env")
		token, err := Owner{Token: "env:ACME_TOKEN"}.ResolveToken()
		require.NoError(t, err)
		assert.Equal(t, "from-env", token)
	})

	t.Run("unset env reference", func(t *testing.T) {
		t.Setenv("ACME_TOKEN", "")
		_, err := Owner{Token: "env:ACME_TOKEN"}.ResolveToken()
		assert.Error(t, err)
	})

	t.Run("empty token", func(t *testing.T) {
		_, err := Owner{}.ResolveToken()
		assert.Error(t, err)
	})
}

func TestOwner_Includes(t *testing.T) {
	assert.True(t, Owner{}.Includes("anything"))
	o := Owner{Repos: []string{"core", "tools"}}
	assert.True(t, o.Includes("core"))
	assert.False(t, o.Includes("sandbox"))
}

func TestOwner_Excluded(t *testing.T) {
	o := Owner{Exclude: []Exclusion{
		{Repo: "sandbox", Year: 2024, Month: 3},
		{Repo: "legacy"},
	}}

	testCases := []struct {
		name     string
		repo     string
		year     int
		month    int
		expected bool
	}{
		{"exact match", "sandbox", 2024, 3, true},
		{"different month", "sandbox", 2024, 4, false},
		{"different year", "sandbox", 2023, 3, false},
		{"different repo", "widgets", 2024, 3, false},
		{"repo-wide exclusion matches any window", "legacy", 2021, 7, true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, o.Excluded(tc.repo, tc.year, tc.month))
		})
	}
}
