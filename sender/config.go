package sender

import (
	"strings"
	"time"
)

const (
	DefaultAPIURL    = "https://api.telegram.org"
	DefaultTimeout   = 10 * time.Second
	DefaultChunkSize = 4000

	parseMode = "HTML"
)

// Config holds the credentials and delivery settings. It's read-only once passed to New.
type Config struct {
	Token  string
	ChatID string

	// APIURL is the Bot API root, without the /bot<token> suffix
	APIURL  string
	Timeout time.Duration

	// Rate limits chunk deliveries to this many messages per second, 0 disables pacing
	Rate float64

	// ChunkSize is the maximum message length, in characters
	ChunkSize int
}

func (c Config) withDefaults() Config {
	if c.APIURL == "" {
		c.APIURL = DefaultAPIURL
	}

	c.APIURL = strings.TrimRight(c.APIURL, "/")

	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}

	if c.ChunkSize <= 0 {
		c.ChunkSize = DefaultChunkSize
	}

	return c
}

// baseURL is the endpoint prefix for all bot methods
func (c Config) baseURL() string {
	return c.APIURL + "/bot" + c.Token
}
