package appconfig

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"

	"github.com/swhelper/siege-backend/internal/app/appcontext"
)

const EnvPrefix = "siege"

func Parse(ctx appcontext.Ctx) (*Config, error) {
	err := godotenv.Load(".env")
	if err != nil {
		log.Warn().Err(err).Msg("failed to load .env file")
	}

	var config ConfigSpec
	err = envconfig.Process(EnvPrefix, &config)
	if err != nil {
		_ = envconfig.Usage(EnvPrefix, &config)
		return nil, fmt.Errorf("failed to parse configuration: %w. More info on how to configure this backend is located at https://pkg.go.dev/github.com/swhelper/siege-backend/internal/app/appconfig#ConfigSpec", err)
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return &Config{
		ConfigSpec: config,
		AppContext: ctx,
	}, nil
}
