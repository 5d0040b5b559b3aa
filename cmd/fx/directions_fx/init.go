package directions_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"meetup/internal/config"
	"meetup/internal/services"
)

var Module = fx.Provide(ProvideDirectionsService)

func ProvideDirectionsService(cfg *config.Config, log *zap.Logger) services.DirectionsService {
	if cfg.Maps.APIKey == "" {
		log.Warn("GOOGLE_MAPS_API_KEY not set, travel legs will carry directions links only")
	}
	return services.NewGoogleDirectionsClient(services.DirectionsConfig{
		APIKey:    cfg.Maps.APIKey,
		BaseURL:   cfg.Maps.DirectionsBaseURL,
		Timeout:   cfg.Maps.Timeout,
		RateLimit: cfg.Maps.RateLimit,
		RateBurst: cfg.Maps.RateBurst,
	}, log)
}
