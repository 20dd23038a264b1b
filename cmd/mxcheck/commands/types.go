package commands

import (
	"net"
	"time"

	"github.com/Dynom/eri-tools/config"
)

const (
	outputText = "text"
	outputJSON = "json"

	formatText = "text"
	formatCSV  = "csv"
)

// SampleEmails are always checked, before anything given on the command line
var SampleEmails = []string{
	"test@gmail.com",
	"user@example.com",
	"invalid@nonexistentdomain12345.ru",
	"another@yahoo.com",
}

type CheckResultFull struct {
	Email      string   `json:"email"`
	Domain     string   `json:"domain"`
	Status     string   `json:"status"`
	Valid      bool     `json:"valid"`
	Validated  bool     `json:"validated"`
	Checks     []string `json:"checks_run"`
	Passed     []string `json:"checks_passed"`
	Suggestion string   `json:"suggestion,omitempty"`
	Version    int      `json:"version"`
}

type CheckSettings struct {
	ConfigFile string
	Log        logOptions
	File       string
	Format     string
	Output     string
	Suggest    bool
	CSV        csvOptions
	Check      checkOptions
}

type logOptions struct {
	Level  string
	Format config.LogFormat
}

type checkOptions struct {
	Resolvers []net.IP
	Timeout   time.Duration
}

type csvOptions struct {
	skipRows uint64
	column   uint64
}
