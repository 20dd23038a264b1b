package commands

import (
	"net"

	"github.com/Dynom/eri-tools/config"
	"github.com/Dynom/eri-tools/resolver"
	"github.com/spf13/cobra"
)

// newResolver returns a DNSResolver when nameservers are configured, and the system resolver otherwise. Resolvers
// given on the command line replace the ones from the config file.
func newResolver(conf config.Config, ips []net.IP) resolver.Resolver {
	nameservers := conf.Resolver.Nameservers
	if len(ips) > 0 {
		nameservers = make([]string, 0, len(ips))
		for _, ip := range ips {
			nameservers = append(nameservers, ip.String())
		}
	}

	if len(nameservers) == 0 {
		return resolver.NewStdResolver(nil)
	}

	return resolver.NewDNSResolver(resolver.DNSConfig{
		Nameservers: nameservers,
		Timeout:     conf.Resolver.Timeout.AsDuration(),
		Retries:     conf.Resolver.Retries,
	})
}

// loadConfig reads the config file and applies the log flags that were explicitly set
func loadConfig(cmd *cobra.Command, settings *CheckSettings) (config.Config, error) {
	conf, err := config.NewConfig(settings.ConfigFile)
	if err != nil {
		return conf, err
	}

	if cmd.Flags().Changed("log-level") {
		conf.Log.Level = settings.Log.Level
	}

	if cmd.Flags().Changed("log-format") {
		conf.Log.Format = settings.Log.Format
	}

	return conf, nil
}
