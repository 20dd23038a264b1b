package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

var (
	LFJSON LogFormat = "json"
	LFText LogFormat = "text"
)

// Default returns a configuration with every value set
func Default() Config {
	c := Config{}

	c.Log.Level = "info"
	c.Log.Format = LFText

	c.Resolver.Timeout = Duration{duration: 5 * time.Second}
	c.Resolver.Retries = 2

	c.Telegram.APIURL = "https://api.telegram.org"
	c.Telegram.Timeout = Duration{duration: 10 * time.Second}
	c.Telegram.ChunkSize = 4000

	return c
}

// NewConfig reads fileName on top of Default. An empty fileName returns the defaults.
func NewConfig(fileName string) (Config, error) {
	c := Default()
	if fileName == "" {
		return c, nil
	}

	b, err := os.ReadFile(fileName)
	if err != nil {
		return c, fmt.Errorf("unable to open %q, reason: %w", fileName, err)
	}

	_, err = toml.Decode(string(b), &c)
	if err != nil {
		return c, fmt.Errorf("unable to unmarshal %q, reason: %w", fileName, err)
	}

	return c, nil
}

// Config holds the settings shared by the command line tools
type Config struct {
	Log struct {
		Level  string    `toml:"level"`
		Format LogFormat `toml:"format" usage:"The log output format \"json\" or \"text\""`
	} `toml:"log"`
	Resolver struct {
		Nameservers []string `toml:"nameservers" usage:"Nameservers to query directly, the system resolver is used when empty"`
		Timeout     Duration `toml:"timeout"`
		Retries     int      `toml:"retries"`
	} `toml:"resolver"`
	Telegram struct {
		Token     string   `toml:"token"`
		ChatID    string   `toml:"chatID"`
		APIURL    string   `toml:"apiURL"`
		Timeout   Duration `toml:"timeout"`
		Rate      float64  `toml:"rate" usage:"Messages per second when sending parts, 0 disables pacing"`
		ChunkSize int      `toml:"chunkSize"`
	} `toml:"telegram"`
}

type Duration struct {
	duration time.Duration
}

func NewDuration(d time.Duration) Duration {
	return Duration{duration: d}
}

func (d Duration) String() string {
	return d.duration.String()
}

func (d *Duration) Set(v string) error {
	var err error
	d.duration, err = time.ParseDuration(v)
	return err
}

func (d Duration) Type() string {
	return "duration"
}

func (d Duration) AsDuration() time.Duration {
	return d.duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	return d.Set(string(text))
}

type LogFormat string

func (lf LogFormat) String() string {
	return string(lf)
}

// Set accepts the same values as UnmarshalText, so that it can be used as a flag value
func (lf *LogFormat) Set(v string) error {
	return lf.UnmarshalText([]byte(v))
}

func (lf LogFormat) Type() string {
	return "format"
}

func (lf *LogFormat) UnmarshalText(value []byte) error {
	validTypes := []string{string(LFJSON), string(LFText)}
	v := string(value)
	for _, t := range validTypes {
		if t == v {
			*lf = LogFormat(v)
			return nil
		}
	}

	expected := strings.Join(validTypes, ", ")
	return fmt.Errorf("unsupported value %q for log format. Expected one of: %q", value, expected)
}
