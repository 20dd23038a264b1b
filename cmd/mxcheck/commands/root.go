package commands

import (
	"context"
	"os"

	"github.com/Dynom/eri-tools/resolver"
	"github.com/spf13/cobra"
)

var version string

func SetVersion(v string) {
	version = v
}

// NewRootCmd builds the mxcheck command. A nil resolver means one is picked based on flags and configuration.
func NewRootCmd(r resolver.Resolver) *cobra.Command {
	settings := &CheckSettings{}

	rootCmd := &cobra.Command{
		Use:   "mxcheck [email address...]",
		Short: "Check whether the domains of email addresses can receive mail",
		Long: `Checks the domain of every address: it must resolve and it must have MX records. A built-in list of
sample addresses is checked first, addresses given as arguments form a second batch. Use -- before addresses
that start with a dash.`,
		Args:          cobra.ArbitraryArgs,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, settings, r)
		},
	}

	flags := rootCmd.Flags()
	flags.StringVar(&settings.ConfigFile, "config", "", "Path to a TOML config file")
	flags.StringVar(&settings.Log.Level, "log-level", "info", "Log level, e.g.: debug, info or warn")
	flags.Var(&settings.Log.Format, "log-format", `The log output format "json" or "text"`)
	flags.StringVar(&settings.File, "file", "", `Check the addresses in this file, "-" reads from stdin`)
	flags.StringVar(&settings.Format, "format", formatText, "text or csv. Text means a single email address per line '\\n'")
	flags.Uint64Var(&settings.CSV.skipRows, "csv-skip-rows", 0, "Rows to skip, useful when wanting to skip the header in CSV files")
	flags.Uint64Var(&settings.CSV.column, "csv-column", 0, "The column to read email addresses from, 0-indexed")
	flags.IPSliceVar(&settings.Check.Resolvers, "resolver", nil, "Nameserver to query, can be repeated. The system resolver is used otherwise")
	flags.DurationVar(&settings.Check.Timeout, "timeout", 0, "Maximum duration of a single domain check, 0 leaves it to the resolver")
	flags.StringVar(&settings.Output, "output", outputText, "text or json, json writes one object per line")
	flags.BoolVar(&settings.Suggest, "suggest", false, "Suggest a well-known domain for domains that don't exist")

	rootCmd.SetVersionTemplate("{{.Version}}\n")

	return rootCmd
}

func Execute() {
	rootCmd := NewRootCmd(nil)
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		rootCmd.PrintErrln("Error:", err)
		os.Exit(1)
	}
}
