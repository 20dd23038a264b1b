package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"syscall"
	"time"

	"github.com/Dynom/eri-tools/config"
	"github.com/Dynom/eri-tools/runtimer"
	"github.com/Dynom/eri-tools/sender"
	"github.com/spf13/cobra"
)

// ErrFailed is returned after the failure has been reported to the user
var ErrFailed = errors.New("delivery failed")

var version string

func SetVersion(v string) {
	version = v
}

type SendSettings struct {
	Token      string
	ChatID     string
	File       string
	Setup      bool
	ConfigFile string
	EnvFile    string
	APIURL     string
	Timeout    time.Duration
	Rate       float64
	Log        struct {
		Level  string
		Format config.LogFormat
	}
}

func NewRootCmd() *cobra.Command {
	settings := &SendSettings{}

	rootCmd := &cobra.Command{
		Use:   "filepost",
		Short: "Send the content of a text file to a Telegram chat",
		Long: `Sends a UTF-8 text file to a Telegram chat using a bot. Texts longer than 4000 characters are sent as
numbered parts. When --env-file or --config is given, the token and chat id can also be set with
` + config.EnvTelegramToken + ` and ` + config.EnvTelegramChatID + ` or in the config file.`,
		Args:          cobra.NoArgs,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSend(cmd, settings)
		},
	}

	flags := rootCmd.Flags()
	flags.StringVar(&settings.Token, "token", "", "Telegram bot token")
	flags.StringVar(&settings.ChatID, "chat", "", "Chat id")
	flags.StringVar(&settings.File, "file", "", "Path to the file with the text")
	flags.BoolVar(&settings.Setup, "setup", false, "Show the setup instructions")
	flags.StringVar(&settings.ConfigFile, "config", "", "Path to a TOML config file")
	flags.StringVar(&settings.EnvFile, "env-file", "", "Dotenv file to read, it's fine if it doesn't exist. Setting this or --config enables reading the token and chat id from the environment")
	flags.StringVar(&settings.APIURL, "api-url", sender.DefaultAPIURL, "Bot API root")
	flags.DurationVar(&settings.Timeout, "timeout", sender.DefaultTimeout, "HTTP timeout per message")
	flags.Float64Var(&settings.Rate, "rate", 0, "Messages per second when sending parts, 0 disables pacing")
	flags.StringVar(&settings.Log.Level, "log-level", "info", "Log level, e.g.: debug, info or warn")
	flags.Var(&settings.Log.Format, "log-format", `The log output format "json" or "text"`)

	return rootCmd
}

func Execute() {
	rootCmd := NewRootCmd()
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		if !errors.Is(err, ErrFailed) {
			rootCmd.PrintErrln("Error:", err)
		}

		os.Exit(1)
	}
}

func runSend(cmd *cobra.Command, settings *SendSettings) error {
	if settings.Setup {
		sender.PrintSetupGuide(cmd.OutOrStdout(), cmd.Root().Name())
		return nil
	}

	if err := config.LoadEnvFile(settings.EnvFile); err != nil {
		return err
	}

	conf, err := loadConfig(cmd, settings)
	if err != nil {
		return err
	}

	token, chatID := credentials(cmd, settings, conf)

	if token == "" || chatID == "" {
		report(cmd, "❌ --token and --chat are required")
		report(cmd, "\nUse --setup for setup instructions")
		return ErrFailed
	}

	if settings.File == "" {
		report(cmd, "❌ --file is required")
		return ErrFailed
	}

	logger, err := conf.NewLogger(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	s, err := sender.New(sender.Config{
		Token:     token,
		ChatID:    chatID,
		APIURL:    conf.Telegram.APIURL,
		Timeout:   conf.Telegram.Timeout.AsDuration(),
		Rate:      conf.Telegram.Rate,
		ChunkSize: conf.Telegram.ChunkSize,
	}, sender.WithLogger(logger), sender.WithOutput(cmd.OutOrStdout()))

	if err != nil {
		return err
	}

	sh := runtimer.New(os.Interrupt, syscall.SIGTERM)
	defer sh.Stop()

	ctx, cancel := sh.Context(cmd.Context())
	defer cancel()

	if err := s.SendFromFile(ctx, settings.File); err != nil {
		report(cmd, "\n❌ Delivery failed")
		return ErrFailed
	}

	report(cmd, "\n✅ Delivery completed successfully!")
	return nil
}

// credentials returns the token and chat id. The environment and the config file are only consulted when --env-file
// or --config was given, otherwise the flags are the only source.
func credentials(cmd *cobra.Command, settings *SendSettings, conf config.Config) (string, string) {
	flags := cmd.Flags()
	if !flags.Changed("env-file") && !flags.Changed("config") {
		return settings.Token, settings.ChatID
	}

	token := config.FirstNonEmpty(settings.Token, os.Getenv(config.EnvTelegramToken), conf.Telegram.Token)
	chatID := config.FirstNonEmpty(settings.ChatID, os.Getenv(config.EnvTelegramChatID), conf.Telegram.ChatID)

	return token, chatID
}

// loadConfig reads the config file, flags that were explicitly set take precedence
func loadConfig(cmd *cobra.Command, settings *SendSettings) (config.Config, error) {
	conf, err := config.NewConfig(settings.ConfigFile)
	if err != nil {
		return conf, err
	}

	flags := cmd.Flags()
	if flags.Changed("api-url") {
		conf.Telegram.APIURL = settings.APIURL
	}

	if flags.Changed("timeout") {
		conf.Telegram.Timeout = config.NewDuration(settings.Timeout)
	}

	if flags.Changed("rate") {
		conf.Telegram.Rate = settings.Rate
	}

	if flags.Changed("log-level") {
		conf.Log.Level = settings.Log.Level
	}

	if flags.Changed("log-format") {
		conf.Log.Format = settings.Log.Format
	}

	return conf, nil
}

func report(cmd *cobra.Command, msg string) {
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), msg)
}
