package recommend_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"meetup/internal/config"
	"meetup/internal/services"
	"meetup/pkg/utils"
)

var Module = fx.Provide(
	ProvideRanker,
	ProvideRecommendService,
	ProvideFollowupService)

func ProvideRanker(cfg *config.Config) *services.FairnessRanker {
	return services.NewFairnessRanker(cfg.Recommend.MissingLegPenaltySeconds)
}

func ProvideRecommendService(
	llm utils.TextGenerator,
	directions services.DirectionsService,
	ranker *services.FairnessRanker,
	cfg *config.Config,
	log *zap.Logger,
) services.RecommendServiceInterface {
	return services.NewRecommendService(llm, directions, ranker, services.RecommendOptions{
		MaxConcurrency: cfg.Recommend.MaxConcurrency,
		LLMTimeout:     cfg.LLM.Timeout,
	}, log)
}

func ProvideFollowupService(llm utils.TextGenerator, cfg *config.Config, log *zap.Logger) services.FollowupServiceInterface {
	return services.NewFollowupService(llm, cfg.LLM.Timeout, log)
}
