package nowplaying

import (
	"flag"
	"time"

	"github.com/zachfi/zkit/pkg/util"
)

const (
	defaultRequestTimeout = 10 * time.Second
	defaultICYTimeout     = 10 * time.Second
	defaultUserAgent      = "nowplaying/1.0"
)

type Config struct {
	PresetsFile            string        `yaml:"presets-file,omitempty"`
	WatchPresets           bool          `yaml:"watch-presets,omitempty"`
	RequestTimeout         time.Duration `yaml:"request-timeout,omitempty"`          // per endpoint request, connect included
	ICYTimeout             time.Duration `yaml:"icy-timeout,omitempty"`              // whole ICY probe
	UserAgent              string        `yaml:"user-agent,omitempty"`
	MaxConcurrentEndpoints int           `yaml:"max-concurrent-endpoints,omitempty"` // 0 is unbounded
	AllowCustomSources     bool          `yaml:"allow-custom-sources,omitempty"`     // POSTed schemas and ICY probes of arbitrary URLs
}

func (cfg *Config) RegisterFlagsAndApplyDefaults(prefix string, f *flag.FlagSet) {
	f.StringVar(&cfg.PresetsFile, util.PrefixConfig(prefix, "presets-file"), "", "YAML, TOML or JSON file with additional station presets.")
	f.BoolVar(&cfg.WatchPresets, util.PrefixConfig(prefix, "watch-presets"), false, "Reload the presets file when it changes.")
	f.DurationVar(&cfg.RequestTimeout, util.PrefixConfig(prefix, "request-timeout"), defaultRequestTimeout, "Timeout for a single upstream endpoint request.")
	f.DurationVar(&cfg.ICYTimeout, util.PrefixConfig(prefix, "icy-timeout"), defaultICYTimeout, "Timeout for reading ICY metadata from a stream.")
	f.StringVar(&cfg.UserAgent, util.PrefixConfig(prefix, "user-agent"), defaultUserAgent, "User-Agent sent to upstream JSON endpoints.")
	f.IntVar(&cfg.MaxConcurrentEndpoints, util.PrefixConfig(prefix, "max-concurrent-endpoints"), 0, "Maximum concurrent endpoint requests per fetch. 0 means unbounded.")
	f.BoolVar(&cfg.AllowCustomSources, util.PrefixConfig(prefix, "allow-custom-sources"), false, "Allow clients to submit schemas and stream URLs to fetch.")
}
