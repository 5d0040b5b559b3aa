package geocode_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"meetup/internal/config"
	"meetup/internal/services"
)

var Module = fx.Provide(ProvideGeocodeService)

func ProvideGeocodeService(cfg *config.Config, log *zap.Logger) services.GeocodeService {
	return services.NewGoogleGeocodeClient(services.GeocodeConfig{
		APIKey:    cfg.Maps.APIKey,
		BaseURL:   cfg.Maps.GeocodeBaseURL,
		Timeout:   cfg.Maps.Timeout,
		RateLimit: cfg.Maps.RateLimit,
		RateBurst: cfg.Maps.RateBurst,
	}, log)
}
