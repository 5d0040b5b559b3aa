package config_fx

import (
	"go.uber.org/fx"

	"meetup/internal/config"
)

var Module = fx.Provide(config.Load)
