package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
)

const (
	EnvTelegramToken  = "TELEGRAM_BOT_TOKEN"
	EnvTelegramChatID = "TELEGRAM_CHAT_ID"
)

// LoadEnvFile adds the variables from a dotenv file to the environment. Variables that are already set win. A
// missing file isn't an error.
func LoadEnvFile(fileName string) error {
	if fileName == "" {
		return nil
	}

	err := godotenv.Load(fileName)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	return fmt.Errorf("unable to load %q, reason: %w", fileName, err)
}

// FirstNonEmpty returns the first value that isn't empty, used for flag > environment > file precedence
func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}

	return ""
}

