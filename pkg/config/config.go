package config

import (
	"github.com/golang/glog"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"os"
)

type (
	Config struct {
		HTTP  HTTP  `yaml:"http"`
		Slack Slack `yaml:"slack"`
	}

	HTTP struct {
		Addr string `yaml:"addr"`
	}

	Slack struct {
		// OAuth token; announcements go to the log only without it.
		Token string `yaml:"token"`
		// Channel name receiving counter announcements.
		Channel string `yaml:"channel"`
		// Signing secret used to verify slash command requests.
		SigningSecret string `yaml:"signingSecret"`
		// Mount the /slash and /actions endpoints. Independent of Token.
		Commands bool `yaml:"commands"`
	}
)

func Default() *Config {
	return &Config{
		HTTP: HTTP{Addr: ":3000"},
	}
}

// Load reads a YAML file over the defaults. An empty path yields the defaults.
func Load(path string) (cfg *Config, err error) {
	cfg = Default()
	if path == "" {
		return
	}
	b, err := os.ReadFile(path)
	if err != nil {
		err = errors.Wrapf(err, "config: read %v", path)
		return
	}
	if err = yaml.Unmarshal(b, cfg); err != nil {
		err = errors.Wrapf(err, "config: parse %v", path)
		return
	}
	glog.V(1).Infof("Loaded config from %v", path)
	return
}

func (c *Config) SlackEnabled() bool {
	return c.Slack.Token != ""
}
