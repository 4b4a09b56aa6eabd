package usecase_test

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/GoArmGo/MovieCatalog/internal/auth"
	"github.com/GoArmGo/MovieCatalog/internal/cache"
	"github.com/GoArmGo/MovieCatalog/internal/database/storage"
	"github.com/GoArmGo/MovieCatalog/internal/domain"
	"github.com/GoArmGo/MovieCatalog/internal/logger"
	"github.com/GoArmGo/MovieCatalog/internal/mail"
	"github.com/GoArmGo/MovieCatalog/internal/messaging/payloads"
	"github.com/GoArmGo/MovieCatalog/internal/testutil"
	"github.com/GoArmGo/MovieCatalog/internal/usecase"
)

type recordingSender struct {
	mu    sync.Mutex
	mails []payloads.MailPayload
}

func (s *recordingSender) Send(_ context.Context, p payloads.MailPayload) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mails = append(s.mails, p)
	return nil
}

func (s *recordingSender) last() payloads.MailPayload {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.mails) == 0 {
		return payloads.MailPayload{}
	}
	return s.mails[len(s.mails)-1]
}

type memoryFiles struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func (f *memoryFiles) UploadFile(_ context.Context, key string, r io.Reader, _ string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[key] = data
	return "http://files.test/" + key, nil
}

func (f *memoryFiles) DeleteFile(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, key)
	return nil
}

type env struct {
	ctx    context.Context
	db     *gorm.DB
	cache  *cache.Memory
	mails  *recordingSender
	files  *memoryFiles
	tokens *auth.TokenManager

	movies   usecase.CatalogUseCase[domain.Movie]
	series   usecase.CatalogUseCase[domain.Serie]
	seasons  usecase.CatalogUseCase[domain.Season]
	episodes usecase.CatalogUseCase[domain.Episode]
	genres   usecase.CatalogUseCase[domain.Genre]
	reviews  usecase.ReviewUseCase
	favorite usecase.FavoriteUseCase
	auth     usecase.AuthUseCase
	users    usecase.UserUseCase
	social   usecase.SocialUseCase
	lists    usecase.ListUseCase
	forum    usecase.ForumUseCase
	media    usecase.MediaUseCase
}

func newEnv(t *testing.T) *env {
	t.Helper()

	db := testutil.NewTestDB(t)
	log := logger.Discard()

	e := &env{
		ctx:    context.Background(),
		db:     db,
		cache:  cache.NewMemory(),
		mails:  &recordingSender{},
		files:  &memoryFiles{objects: make(map[string][]byte)},
		tokens: auth.NewTokenManager("test-secret", "moviecatalog-test", time.Hour),
	}

	items := storage.NewItemStorage(db)
	reviews := storage.NewReviewStorage(db, log)
	votes := storage.NewVoteStorage(db, log)
	favorites := storage.NewFavoriteStorage(db, log)
	users := storage.NewUserStorage(db, log)
	follows := storage.NewFollowStorage(db, log)
	ratings := storage.NewRatingStorage(testutil.SQLX(t, db), log)

	e.media = usecase.NewMediaUseCase(e.files, log)
	listCache := usecase.NewListCache(e.cache, time.Minute, log)
	deps := usecase.CatalogDeps{
		Items:     items,
		Reviews:   reviews,
		Votes:     votes,
		Favorites: favorites,
		Users:     users,
		Enricher:  usecase.NewEnricher(ratings, favorites, reviews),
		Cache:     listCache,
		Media:     e.media,
		Logger:    log,
	}

	e.movies = usecase.NewCatalogUseCase[domain.Movie](domain.KindMovie, storage.NewCatalogStorage[domain.Movie](db, domain.KindMovie, log), deps)
	e.series = usecase.NewCatalogUseCase[domain.Serie](domain.KindSerie, storage.NewCatalogStorage[domain.Serie](db, domain.KindSerie, log), deps)
	e.seasons = usecase.NewCatalogUseCase[domain.Season](domain.KindSeason, storage.NewCatalogStorage[domain.Season](db, domain.KindSeason, log), deps)
	e.episodes = usecase.NewCatalogUseCase[domain.Episode](domain.KindEpisode, storage.NewCatalogStorage[domain.Episode](db, domain.KindEpisode, log), deps)
	e.genres = usecase.NewCatalogUseCase[domain.Genre](domain.KindGenre, storage.NewCatalogStorage[domain.Genre](db, domain.KindGenre, log), deps)

	e.reviews = usecase.NewReviewUseCase(items, reviews, votes, users, listCache, log)
	e.favorite = usecase.NewFavoriteUseCase(items, favorites, log)
	e.auth = usecase.NewAuthUseCase(users, e.tokens, mail.NewLogPublisher(e.mails), usecase.AuthConfig{
		ActivationTTL: time.Hour,
		ResetTTL:      time.Hour,
	}, log)
	e.users = usecase.NewUserUseCase(users, follows, e.media, log)
	e.social = usecase.NewSocialUseCase(users, follows, storage.NewMessageStorage(db, log), storage.NewNotificationStorage(db), log)
	e.lists = usecase.NewListUseCase(storage.NewListStorage(db, log), items, users, log)
	e.forum = usecase.NewForumUseCase(storage.NewForumStorage(db, log), users, log)
	return e
}

// user inserts an active account and returns its caller identity.
func (e *env) user(t *testing.T, name string) *domain.Caller {
	t.Helper()
	u := &domain.User{
		UserName: name,
		Email:    fmt.Sprintf("%s@example.com", name),
		Role:     domain.RoleUser,
		Active:   true,
	}
	require.NoError(t, e.db.Create(u).Error)
	return &domain.Caller{UserID: u.ID, Role: u.Role}
}

func (e *env) admin(t *testing.T, name string) *domain.Caller {
	t.Helper()
	c := e.user(t, name)
	require.NoError(t, e.db.Model(&domain.User{}).Where("id = ?", c.UserID).Update("role", domain.RoleAdmin).Error)
	c.Role = domain.RoleAdmin
	return c
}

func (e *env) movie(t *testing.T, caller *domain.Caller, title string, links domain.Links) int {
	t.Helper()
	d, err := e.movies.Create(e.ctx, caller, &domain.Movie{Title: title, RatingImdb: 7}, links)
	require.NoError(t, err)
	return d.Entity.ID
}

func (e *env) genre(t *testing.T, caller *domain.Caller, name string) int {
	t.Helper()
	d, err := e.genres.Create(e.ctx, caller, &domain.Genre{Name: name}, domain.Links{})
	require.NoError(t, err)
	return d.Entity.ID
}

func pngUpload(size int) usecase.Upload {
	return usecase.Upload{
		Filename:    "poster.png",
		ContentType: "image/png",
		Size:        int64(size),
		Reader:      bytes.NewReader(make([]byte, size)),
	}
}
