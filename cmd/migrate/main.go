package main

import (
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	"roombook/config"
	"roombook/helper"
	"roombook/shared/logger"
)

const (
	argLength = 2
)

func main() {
	logger.InitLogger()

	if len(os.Args) < argLength {
		log.Fatal().Msgf("Migration action is required, use one of %s", strings.Join(helper.Actions(), ", "))
	}

	action := os.Args[1]

	if err := helper.Runner(config.Get(), action); err != nil {
		log.Fatal().Err(err).Str("action", action).Msg("Migration failed")
	}
}
