package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/medibook/medibook-cli/internal/command"
)

func main() {
	// Optional .env with MEDIBOOK_* overrides; absence is fine.
	_ = godotenv.Load()

	if err := command.NewRoot().Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}
