// cmd/fx/llm_fx/init.go
package llm_fx

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"meetup/internal/config"
	"meetup/pkg/utils"
)

var Module = fx.Provide(ProvideTextGenerator)

// ProvideTextGenerator never fails on a bad credential: it logs the problem
// and provides an unavailable generator so only the features that need it are
// disabled.
func ProvideTextGenerator(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) (utils.TextGenerator, error) {
	keyName := cfg.LLMKeyName()
	if err := config.CheckCredential(keyName, cfg.LLMAPIKey()); err != nil {
		reason := fmt.Errorf("%s: %w", keyName, utils.ErrLLMCredentialMissing)
		if errors.Is(err, config.ErrMalformed) {
			reason = fmt.Errorf("%s: %w", keyName, utils.ErrCredentialMalformed)
		}
		log.Warn("text generation disabled", zap.String("provider", cfg.LLM.Provider), zap.Error(err))
		return utils.UnavailableGenerator{Reason: reason}, nil
	}

	gen, err := utils.NewTextGenerator(context.Background(), utils.TextGeneratorConfig{
		Provider: cfg.LLM.Provider,
		APIKey:   cfg.LLMAPIKey(),
		Model:    cfg.LLMModel(),
		BaseURL:  cfg.LLM.OpenAIURL,
	})
	if err != nil {
		return nil, err
	}
	log.Info("text generation client ready", zap.String("provider", cfg.LLM.Provider), zap.String("model", cfg.LLMModel()))

	if closer, ok := gen.(interface{ Close() error }); ok {
		lc.Append(fx.Hook{
			OnStop: func(context.Context) error { return closer.Close() },
		})
	}
	return gen, nil
}
