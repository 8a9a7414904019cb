//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"aura/internal/config"
	"aura/internal/dbmongo"
	"aura/internal/dbmysql"
	"aura/internal/feed"
	"aura/internal/user"
)

// InitializeApplication builds the whole object graph. Wire generates the
// real body in wire_gen.go.
func InitializeApplication() (*Application, error) {
	wire.Build(
		config.LoadConfig,
		dbmysql.NewMySQL,
		dbmongo.NewMongoConnection,
		dbmongo.NewMediaStorage,
		feed.NewFeedRepository,
		user.NewUserRepository,
		user.NewUserService,
		ProvideFeedService,
		ProvideFeedHandlers,
		user.NewHandler,
		ProvideMediaHandler,
		wire.Struct(new(Application), "*"),
	)
	return &Application{}, nil
}
