package session_fx

import (
	"context"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"meetup/internal/config"
	"meetup/internal/models/response_models"
	"meetup/internal/services"
	mem "meetup/pkg/memcache"
)

var Module = fx.Options(
	fx.Provide(ProvideSessionStore),
	fx.Provide(ProvideSessionService),
	fx.Invoke(RunJanitor),
)

func ProvideSessionStore() mem.SessionStore[response_models.ConversationTurn] {
	return mem.NewSessions[response_models.ConversationTurn]()
}

func ProvideSessionService(store mem.SessionStore[response_models.ConversationTurn], cfg *config.Config, log *zap.Logger) services.SessionServiceInterface {
	return services.NewSessionService(store, cfg.SessionSecret(), cfg.Session.TTL, log)
}

// RunJanitor sweeps expired sessions once a minute while the app runs.
func RunJanitor(lc fx.Lifecycle, store mem.SessionStore[response_models.ConversationTurn], log *zap.Logger) {
	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				ticker := time.NewTicker(time.Minute)
				defer ticker.Stop()
				for {
					select {
					case <-ctx.Done():
						return
					case <-ticker.C:
						if n := store.Sweep(); n > 0 {
							log.Debug("expired sessions removed", zap.Int("count", n))
						}
					}
				}
			}()
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			return nil
		},
	})
}
