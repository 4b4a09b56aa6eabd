package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/GoArmGo/MovieCatalog/internal/apperrors"
	"github.com/GoArmGo/MovieCatalog/internal/core/ports"
	"github.com/GoArmGo/MovieCatalog/internal/domain"
	"github.com/GoArmGo/MovieCatalog/internal/listquery"
	"github.com/GoArmGo/MovieCatalog/internal/mapper"
)

type catalogUseCase[T any, PT interface {
	*T
	domain.CatalogEntity
}] struct {
	kind    domain.Kind
	spec    listquery.Spec
	storage ports.CatalogStorage[T]
	deps    CatalogDeps
	logger  *slog.Logger
}

// NewCatalogUseCase builds the usecase of kind on top of its storage.
func NewCatalogUseCase[T any, PT interface {
	*T
	domain.CatalogEntity
}](kind domain.Kind, storage ports.CatalogStorage[T], deps CatalogDeps) CatalogUseCase[T] {
	return &catalogUseCase[T, PT]{
		kind:    kind,
		spec:    CatalogSpec(kind),
		storage: storage,
		deps:    deps,
		logger:  deps.Logger.With("kind", kind.String()),
	}
}

func (uc *catalogUseCase[T, PT]) Kind() domain.Kind { return uc.kind }

func (uc *catalogUseCase[T, PT]) Spec() listquery.Spec { return uc.spec }

// cachedItem is the storable form of mapper.Item, whose JSON is flattened.
type cachedItem[T any] struct {
	Entity     T                 `json:"entity"`
	Enrichment mapper.Enrichment `json:"enrichment"`
}

type cachedPage[T any] struct {
	Items []cachedItem[T] `json:"items"`
	Count int64           `json:"count"`
}

func toCached[T any](items []mapper.Item[T]) []cachedItem[T] {
	out := make([]cachedItem[T], 0, len(items))
	for _, it := range items {
		out = append(out, cachedItem[T]{Entity: it.Entity, Enrichment: it.Enrichment})
	}
	return out
}

func fromCached[T any](items []cachedItem[T]) []mapper.Item[T] {
	out := make([]mapper.Item[T], 0, len(items))
	for _, it := range items {
		out = append(out, mapper.Item[T]{Entity: it.Entity, Enrichment: it.Enrichment})
	}
	return out
}

func (uc *catalogUseCase[T, PT]) List(ctx context.Context, caller *domain.Caller, q listquery.Query) (*mapper.Page[T], error) {
	start := time.Now()

	parsed, err := listquery.Parse(q, uc.spec)
	if err != nil {
		return nil, err
	}

	var key string
	if caller == nil {
		key = uc.deps.Cache.Key(ctx, uc.kind, "list:"+parsed.Key())
		var cached cachedPage[T]
		if uc.deps.Cache.Get(ctx, key, &cached) {
			uc.logger.Debug("list served from cache", "key", key)
			return &mapper.Page[T]{Plural: uc.kind.Plural(), Items: fromCached(cached.Items), Count: cached.Count}, nil
		}
	}

	rows, total, err := uc.storage.List(ctx, parsed)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", uc.kind.Plural(), err)
	}

	items, err := uc.items(ctx, caller, rows)
	if err != nil {
		return nil, err
	}

	if caller == nil {
		uc.deps.Cache.Set(ctx, key, cachedPage[T]{Items: toCached(items), Count: total})
	}

	uc.logger.Info("list served",
		"count", len(items),
		"total", total,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return &mapper.Page[T]{Plural: uc.kind.Plural(), Items: items, Count: total}, nil
}

func (uc *catalogUseCase[T, PT]) Latest(ctx context.Context, caller *domain.Caller) ([]mapper.Item[T], error) {
	var key string
	if caller == nil {
		key = uc.deps.Cache.Key(ctx, uc.kind, "latest")
		var cached []cachedItem[T]
		if uc.deps.Cache.Get(ctx, key, &cached) {
			return fromCached(cached), nil
		}
	}

	rows, err := uc.storage.Latest(ctx, LatestLimit)
	if err != nil {
		return nil, fmt.Errorf("latest %s: %w", uc.kind.Plural(), err)
	}

	items, err := uc.items(ctx, caller, rows)
	if err != nil {
		return nil, err
	}

	if caller == nil {
		uc.deps.Cache.Set(ctx, key, toCached(items))
	}
	return items, nil
}

func (uc *catalogUseCase[T, PT]) Count(ctx context.Context) (int64, error) {
	return uc.storage.Count(ctx)
}

func (uc *catalogUseCase[T, PT]) Get(ctx context.Context, caller *domain.Caller, id int) (*mapper.Detail[T], error) {
	row, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.detail(ctx, caller, row)
}

func (uc *catalogUseCase[T, PT]) Related(ctx context.Context, caller *domain.Caller, id int, page listquery.Page) (*mapper.Page[T], error) {
	if !uc.kind.HasGenres() {
		return nil, apperrors.BadRequest(fmt.Sprintf("%s has no genres", uc.kind))
	}
	if _, err := uc.find(ctx, id); err != nil {
		return nil, err
	}

	rows, total, err := uc.storage.Related(ctx, id, page.Skip(), page.Take())
	if err != nil {
		return nil, fmt.Errorf("related %s: %w", uc.kind.Plural(), err)
	}
	if rows == nil {
		return &mapper.Page[T]{Plural: uc.kind.Plural()}, nil
	}

	items, err := uc.items(ctx, caller, rows)
	if err != nil {
		return nil, err
	}
	return &mapper.Page[T]{Plural: uc.kind.Plural(), Items: items, Count: total}, nil
}

func (uc *catalogUseCase[T, PT]) Favorites(ctx context.Context, caller *domain.Caller, page listquery.Page) (*mapper.Page[T], error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	if !uc.kind.Reviewable() {
		return nil, apperrors.BadRequest("invalid item type")
	}

	ids, total, err := uc.deps.Favorites.ItemIDs(ctx, uc.kind, caller.UserID, page.Skip(), page.Take())
	if err != nil {
		return nil, fmt.Errorf("favorite ids: %w", err)
	}

	rows, err := uc.storage.GetMany(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("favorite %s: %w", uc.kind.Plural(), err)
	}

	byID := make(map[int]T, len(rows))
	for _, r := range rows {
		byID[PT(&r).GetID()] = r
	}
	ordered := make([]T, 0, len(ids))
	for _, id := range ids {
		if r, ok := byID[id]; ok {
			ordered = append(ordered, r)
		}
	}

	items, err := uc.items(ctx, caller, ordered)
	if err != nil {
		return nil, err
	}
	return &mapper.Page[T]{Plural: uc.kind.Plural(), Items: items, Count: total}, nil
}

func (uc *catalogUseCase[T, PT]) Create(ctx context.Context, caller *domain.Caller, item *T, links domain.Links) (*mapper.Detail[T], error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}

	e := PT(item)
	e.ResetIdentity()
	e.Normalize()
	if e.GetName() == "" {
		return nil, apperrors.BadRequest(uc.spec.SearchParam + " is required")
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	if err := uc.validateParent(ctx, e, true); err != nil {
		return nil, err
	}
	if err := uc.validateLinks(ctx, links); err != nil {
		return nil, err
	}

	if err := uc.storage.Create(ctx, item, links); err != nil {
		return nil, fmt.Errorf("create %s: %w", uc.kind, err)
	}
	uc.deps.Cache.Invalidate(ctx, uc.kind)

	uc.logger.Info("item created", "id", e.GetID(), "user_id", caller.UserID)
	return uc.Get(ctx, caller, e.GetID())
}

func (uc *catalogUseCase[T, PT]) Update(ctx context.Context, caller *domain.Caller, id int, patch *T, links domain.Links) (*mapper.Detail[T], error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	if _, err := uc.find(ctx, id); err != nil {
		return nil, err
	}

	e := PT(patch)
	e.ResetIdentity()
	e.Normalize()
	if err := e.Validate(); err != nil {
		return nil, err
	}
	if err := uc.validateParent(ctx, e, false); err != nil {
		return nil, err
	}
	if err := uc.validateLinks(ctx, links); err != nil {
		return nil, err
	}

	if err := uc.storage.Update(ctx, id, patch, links); err != nil {
		return nil, fmt.Errorf("update %s %d: %w", uc.kind, id, err)
	}
	uc.deps.Cache.Invalidate(ctx, uc.kind)

	uc.logger.Info("item updated", "id", id, "user_id", caller.UserID)
	return uc.Get(ctx, caller, id)
}

func (uc *catalogUseCase[T, PT]) Delete(ctx context.Context, caller *domain.Caller, id int) error {
	if err := requireCaller(caller); err != nil {
		return err
	}
	if err := uc.storage.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete %s %d: %w", uc.kind, id, err)
	}
	uc.deps.Cache.Invalidate(ctx, uc.kind)

	// Deleting a linked kind changes the embedded relations of movies and series.
	if uc.kind == domain.KindGenre || uc.kind == domain.KindActor || uc.kind == domain.KindCrew {
		uc.deps.Cache.Invalidate(ctx, domain.KindMovie)
		uc.deps.Cache.Invalidate(ctx, domain.KindSerie)
	}

	uc.logger.Info("item deleted", "id", id, "user_id", caller.UserID)
	return nil
}

func (uc *catalogUseCase[T, PT]) SetPoster(ctx context.Context, caller *domain.Caller, id int, file Upload) (*mapper.Detail[T], error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	if uc.kind == domain.KindGenre {
		return nil, apperrors.BadRequest("genres have no poster")
	}
	if _, err := uc.find(ctx, id); err != nil {
		return nil, err
	}

	url, err := uc.deps.Media.Upload(ctx, uc.kind.Plural(), file)
	if err != nil {
		return nil, err
	}
	if err := uc.storage.SetPhoto(ctx, id, url); err != nil {
		return nil, fmt.Errorf("set %s poster: %w", uc.kind, err)
	}
	uc.deps.Cache.Invalidate(ctx, uc.kind)

	return uc.Get(ctx, caller, id)
}

func (uc *catalogUseCase[T, PT]) find(ctx context.Context, id int) (*T, error) {
	row, err := uc.storage.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get %s %d: %w", uc.kind, id, err)
	}
	if row == nil {
		return nil, apperrors.NotFound(fmt.Sprintf("%s not found", uc.kind))
	}
	return row, nil
}

func (uc *catalogUseCase[T, PT]) items(ctx context.Context, caller *domain.Caller, rows []T) ([]mapper.Item[T], error) {
	ids := make([]int, 0, len(rows))
	for i := range rows {
		ids = append(ids, PT(&rows[i]).GetID())
	}

	enrichment, err := uc.deps.Enricher.Enrich(ctx, uc.kind, caller.ID(), ids)
	if err != nil {
		return nil, err
	}

	items := make([]mapper.Item[T], 0, len(rows))
	for i, row := range rows {
		items = append(items, mapper.ToItem[T, PT](row, enrichment[ids[i]]))
	}
	return items, nil
}

func (uc *catalogUseCase[T, PT]) detail(ctx context.Context, caller *domain.Caller, row *T) (*mapper.Detail[T], error) {
	id := PT(row).GetID()

	enrichment, err := uc.deps.Enricher.Enrich(ctx, uc.kind, caller.ID(), []int{id})
	if err != nil {
		return nil, err
	}
	d := &mapper.Detail[T]{Entity: *row, Enrichment: enrichment[id]}

	if uc.kind.HasGenres() {
		d.Relations, err = uc.storage.Relations(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("relations of %s %d: %w", uc.kind, id, err)
		}
	}

	if uc.kind.Reviewable() {
		d.Reviews, err = reviewViews(ctx, uc.deps.Reviews, uc.deps.Votes, uc.deps.Users, uc.kind, id, caller.ID())
		if err != nil {
			return nil, err
		}
	}
	return d, nil
}

// reviewViews loads the newest reviews of an item with authors and votes.
func reviewViews(ctx context.Context, reviews ports.ReviewStorage, votes ports.VoteStorage, users ports.UserStorage, kind domain.Kind, itemID, callerID int) ([]mapper.ReviewView, error) {
	rows, _, err := reviews.ListByItem(ctx, kind, itemID, 0, DetailReviewLimit)
	if err != nil {
		return nil, fmt.Errorf("reviews of %s %d: %w", kind, itemID, err)
	}
	return projectReviews(ctx, votes, users, kind, rows, callerID)
}

func projectReviews(ctx context.Context, votes ports.VoteStorage, users ports.UserStorage, kind domain.Kind, rows []domain.Review, callerID int) ([]mapper.ReviewView, error) {
	if len(rows) == 0 {
		return []mapper.ReviewView{}, nil
	}

	reviewIDs := make([]int, 0, len(rows))
	userIDs := make([]int, 0, len(rows))
	for _, r := range rows {
		reviewIDs = append(reviewIDs, r.ID)
		userIDs = append(userIDs, r.UserID)
	}

	voters, err := votes.Voters(ctx, kind, reviewIDs)
	if err != nil {
		return nil, fmt.Errorf("review votes: %w", err)
	}
	authors, err := usersByID(ctx, users, userIDs)
	if err != nil {
		return nil, err
	}
	return mapper.ToReviewViews(rows, authors, voters, callerID), nil
}

// validateParent checks the serie of a season or the season of an episode.
// A zero parent id is accepted only on partial updates.
func (uc *catalogUseCase[T, PT]) validateParent(ctx context.Context, e PT, required bool) error {
	child, ok := any(e).(domain.Child)
	if !ok {
		return nil
	}
	kind, id := child.ParentRef()
	if id == 0 && !required {
		return nil
	}
	if id <= 0 {
		return apperrors.BadRequest(kind.String() + "Id is required")
	}
	exists, err := uc.deps.Items.Exists(ctx, kind, id)
	if err != nil {
		return fmt.Errorf("check %s %d: %w", kind, id, err)
	}
	if !exists {
		return apperrors.BadRequest(fmt.Sprintf("unknown %s id", kind))
	}
	return nil
}

func (uc *catalogUseCase[T, PT]) validateLinks(ctx context.Context, links domain.Links) error {
	tables := uc.kind.LinkTables()
	if len(tables) == 0 {
		if links.GenreIDs != nil || links.ActorIDs != nil || links.CrewIDs != nil {
			return apperrors.BadRequest(fmt.Sprintf("%s has no genres, cast or crew", uc.kind))
		}
		return nil
	}

	for _, lt := range tables {
		ids := unique(links.IDs(lt.Related))
		if len(ids) == 0 {
			continue
		}
		n, err := uc.deps.Items.CountExisting(ctx, lt.Related, ids)
		if err != nil {
			return fmt.Errorf("check %s ids: %w", lt.Related, err)
		}
		if n != int64(len(ids)) {
			return apperrors.BadRequest(fmt.Sprintf("unknown %s id", lt.Related))
		}
	}
	return nil
}
