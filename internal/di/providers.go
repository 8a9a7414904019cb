package di

import (
	"aura/internal/config"
	"aura/internal/dbmongo"
	"aura/internal/feed"
	"aura/internal/media"
	"aura/internal/user"

	"gorm.io/gorm"
)

// Application holds everything the server process needs after wiring.
type Application struct {
	Config       *config.Config
	DB           *gorm.DB
	Mongo        *dbmongo.MongoClient
	FeedService  *feed.FeedService
	FeedHandlers *feed.FeedHandlers
	UserHandler  *user.Handler
	MediaHandler *media.Handler
}

// ProvideFeedService hands the repository to the service once per interface
// it implements; the user service doubles as the feed's user directory.
func ProvideFeedService(repo *feed.FeedRepository, users user.UserService) *feed.FeedService {
	return feed.NewFeedService(repo, repo, repo, users)
}

func ProvideFeedHandlers(svc *feed.FeedService) *feed.FeedHandlers {
	return feed.NewFeedHandlers(svc)
}

func ProvideMediaHandler(store *dbmongo.MediaStorage) *media.Handler {
	return media.NewHandler(store)
}
