//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"roombook/transport/http"
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
