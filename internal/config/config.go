// Package config loads the per-owner YAML configuration that controls which
// repositories are included in activity reports, and resolves credentials.
package config

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/sawada-k/github-activity/internal/domain"
)

// Config is the root of the YAML configuration file.
type Config struct {
	GitHub GitHub `yaml:"github"`
}

// GitHub groups per-owner settings by activity type.
type GitHub struct {
	Commits map[string]Owner `yaml:"commits"`
	Issues  map[string]Owner `yaml:"issues"`
}

// Owner holds one owner's settings for one activity type.
type Owner struct {
	// Token is either a literal access token or an env:NAME reference.
	Token string `yaml:"token"`
	// Repos is an optional allowlist; empty means all repositories.
	Repos []string `yaml:"repos"`
	// Exclude lists owner/repo/month combinations to skip.
	Exclude []Exclusion `yaml:"exclude"`
}

// Exclusion marks a repo/month combination to skip. A zero Year or Month
// matches every window.
type Exclusion struct {
	Repo  string `yaml:"repo"`
	Year  int    `yaml:"year"`
	Month int    `yaml:"month"`
}

// Load reads and decodes the configuration file. A .env file next to the
// process is loaded best-effort first, so env: token references can resolve.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if cfg.GitHub.Commits == nil && cfg.GitHub.Issues == nil {
		return nil, fmt.Errorf("config %s: missing github.commits and github.issues sections", path)
	}
	return &cfg, nil
}

// OwnerFor returns the settings for the given owner and activity type.
// An unknown owner is a configuration error, fatal for the invocation.
func (c *Config) OwnerFor(activity domain.ActivityType, owner string) (Owner, error) {
	section, err := c.section(activity)
	if err != nil {
		return Owner{}, err
	}
	o, ok := section[owner]
	if !ok {
		return Owner{}, fmt.Errorf("owner %q is not configured under github.%s", owner, activity)
	}
	return o, nil
}

// Owners lists the configured owner names for an activity type, sorted for
// deterministic backfill ordering.
func (c *Config) Owners(activity domain.ActivityType) []string {
	section, err := c.section(activity)
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(section))
	for name := range section {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (c *Config) section(activity domain.ActivityType) (map[string]Owner, error) {
	var section map[string]Owner
	switch activity {
	case domain.ActivityCommits:
		section = c.GitHub.Commits
	case domain.ActivityIssues:
		section = c.GitHub.Issues
	default:
		return nil, fmt.Errorf("unknown activity type %q", activity)
	}
	if section == nil {
		return nil, fmt.Errorf("config has no github.%s section", activity)
	}
	return section, nil
}

// ResolveToken resolves the owner's token reference. env:NAME reads the
// named environment variable; anything else is used literally.
func (o Owner) ResolveToken() (string, error) {
	if name, ok := strings.CutPrefix(o.Token, "env:"); ok {
		v := os.Getenv(name)
		if v == "" {
			return "", fmt.Errorf("environment variable %s is not set", name)
		}
		return v, nil
	}
	if o.Token == "" {
		return "", fmt.Errorf("no token configured")
	}
	return o.Token, nil
}

// Includes reports whether the repo passes the allowlist. An empty list
// includes every repository.
func (o Owner) Includes(repo string) bool {
	if len(o.Repos) == 0 {
		return true
	}
	for _, r := range o.Repos {
		if r == repo {
			return true
		}
	}
	return false
}

// Excluded reports whether the repo/month combination is excluded.
func (o Owner) Excluded(repo string, year, month int) bool {
	for _, e := range o.Exclude {
		if e.Repo != repo {
			continue
		}
		if e.Year != 0 && e.Year != year {
			continue
		}
		if e.Month != 0 && e.Month != month {
			continue
		}
		return true
	}
	return false
}
