//go:build wireinject

package app

import (
	"net/http"

	"github.com/google/wire"
	"github.com/gowvp/securesight/internal/conf"
	"github.com/gowvp/securesight/internal/data"
	"github.com/gowvp/securesight/internal/web/api"
)

func wireApp(bc *conf.Bootstrap) (http.Handler, func(), error) {
	panic(wire.Build(data.ProviderSet, api.ProviderSet))
}
