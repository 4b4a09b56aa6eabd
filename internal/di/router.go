package di

import (
	"log/slog"
	"net/http"

	"gorm.io/gorm"

	"github.com/GoArmGo/MovieCatalog/internal/app"
	"github.com/GoArmGo/MovieCatalog/internal/database/storage"
	"github.com/GoArmGo/MovieCatalog/internal/domain"
	"github.com/GoArmGo/MovieCatalog/internal/handler"
	"github.com/GoArmGo/MovieCatalog/internal/usecase"
)

// NewRouter wires storages, usecases and handlers on top of infra.
func NewRouter(infra Infra, logger *slog.Logger) http.Handler {
	db := infra.DB

	items := storage.NewItemStorage(db)
	reviews := storage.NewReviewStorage(db, logger)
	votes := storage.NewVoteStorage(db, logger)
	favorites := storage.NewFavoriteStorage(db, logger)
	users := storage.NewUserStorage(db, logger)
	follows := storage.NewFollowStorage(db, logger)
	ratings := storage.NewRatingStorage(infra.SQLX, logger)

	media := usecase.NewMediaUseCase(infra.Files, logger)
	listCache := usecase.NewListCache(infra.Cache, infra.CacheTTL, logger)
	deps := usecase.CatalogDeps{
		Items:     items,
		Reviews:   reviews,
		Votes:     votes,
		Favorites: favorites,
		Users:     users,
		Enricher:  usecase.NewEnricher(ratings, favorites, reviews),
		Cache:     listCache,
		Media:     media,
		Logger:    logger,
	}

	catalogs := []handler.CatalogRoutes{
		catalog[domain.Movie](db, domain.KindMovie, deps, logger),
		catalog[domain.Serie](db, domain.KindSerie, deps, logger),
		catalog[domain.Season](db, domain.KindSeason, deps, logger),
		catalog[domain.Episode](db, domain.KindEpisode, deps, logger),
		catalog[domain.Actor](db, domain.KindActor, deps, logger),
		catalog[domain.Crew](db, domain.KindCrew, deps, logger),
		catalog[domain.Genre](db, domain.KindGenre, deps, logger),
	}

	authUseCase := usecase.NewAuthUseCase(users, infra.Tokens, infra.Publisher, infra.Auth, logger)

	routes := make([]app.Routes, 0, len(catalogs)+6)
	for _, c := range catalogs {
		routes = append(routes, c)
	}
	routes = append(routes,
		handler.NewFavoriteHandler(usecase.NewFavoriteUseCase(items, favorites, logger), catalogs, logger),
		handler.NewReviewHandler(usecase.NewReviewUseCase(items, reviews, votes, users, listCache, logger), logger),
		handler.NewAuthHandler(authUseCase, logger),
		handler.NewUserHandler(
			usecase.NewUserUseCase(users, follows, media, logger),
			usecase.NewSocialUseCase(users, follows, storage.NewMessageStorage(db, logger), storage.NewNotificationStorage(db), logger),
			logger,
		),
		handler.NewListHandler(usecase.NewListUseCase(storage.NewListStorage(db, logger), items, users, logger), logger),
		handler.NewForumHandler(usecase.NewForumUseCase(storage.NewForumStorage(db, logger), users, logger), logger),
	)

	return app.NewRouter(infra.RequestTimeout, authUseCase, logger, routes...)
}

func catalog[T any, PT interface {
	*T
	domain.CatalogEntity
}](db *gorm.DB, kind domain.Kind, deps usecase.CatalogDeps, logger *slog.Logger) handler.CatalogRoutes {
	st := storage.NewCatalogStorage[T, PT](db, kind, logger)
	return handler.NewCatalogHandler(usecase.NewCatalogUseCase[T, PT](kind, st, deps), logger)
}
