package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/tracker-tv/github-hygiene-bot/internal/risk"
	"github.com/tracker-tv/github-hygiene-bot/internal/state"
)

var (
	ErrMissingToken  = errors.New("missing GH_TOKEN or GITHUB_TOKEN")
	ErrInvalidConfig = errors.New("invalid configuration")
)

type Config struct {
	GHToken     string `env:"GH_TOKEN"`
	GithubToken string `env:"GITHUB_TOKEN"`

	Orgs         []string `env:"SCW_ORGS" envDefault:"StegVerse,StegVerse-Labs" envSeparator:","`
	PolicyPath   string   `env:"SCW_POLICY_PATH"`
	ReportPath   string   `env:"SCW_REPORT_PATH" envDefault:"reports/org_scan.json"`
	StateDir     string   `env:"SCW_STATE_DIR" envDefault:".steg/state"`
	FailFast     bool     `env:"SCW_FAIL_FAST" envDefault:"false"`
	MaxRepoPages int      `env:"SCW_MAX_REPO_PAGES" envDefault:"10"`
	LogLevel     string   `env:"SCW_LOG_LEVEL" envDefault:"info"`
	Workspace    string   `env:"GITHUB_WORKSPACE" envDefault:"."`

	Risk risk.Weights `envPrefix:"SCW_RISK_"`
	Run  state.RunContext
}

func Load() (*Config, error) {
	return parse(env.Options{})
}

func parse(opts env.Options) (*Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return nil, err
	}
	cfg.Orgs = normalize(cfg.Orgs)
	if err := cfg.Risk.Validate(); err != nil {
		return nil, fmt.Errorf("%w: SCW_RISK_*: %v", ErrInvalidConfig, err)
	}
	return &cfg, nil
}

// Token returns the first non-empty of GH_TOKEN and GITHUB_TOKEN.
func (c *Config) Token() (string, error) {
	for _, t := range []string{c.GHToken, c.GithubToken} {
		if t = strings.TrimSpace(t); t != "" {
			return t, nil
		}
	}
	return "", ErrMissingToken
}

func normalize(orgs []string) []string {
	out := make([]string, 0, len(orgs))
	for _, o := range orgs {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
