package controller

import (
	"go.uber.org/fx"

	controllermeta "github.com/swhelper/siege-backend/internal/controller/meta"
	controllerv3 "github.com/swhelper/siege-backend/internal/controller/v3"
)

func Module() fx.Option {
	return fx.Module("controller",
		controllerv3.Module(),
		controllermeta.Module(),
	)
}
