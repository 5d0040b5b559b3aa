package controllers_fx

import (
	"go.uber.org/fx"

	"meetup/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewRecommendController),
	fx.Provide(controllers.NewSessionController),
	fx.Provide(controllers.NewHealthController))
