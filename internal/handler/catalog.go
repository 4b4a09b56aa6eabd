package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GoArmGo/MovieCatalog/internal/apperrors"
	"github.com/GoArmGo/MovieCatalog/internal/domain"
	"github.com/GoArmGo/MovieCatalog/internal/listquery"
	"github.com/GoArmGo/MovieCatalog/internal/usecase"
)

// CatalogRoutes is implemented by the catalog handler of every kind.
type CatalogRoutes interface {
	Kind() domain.Kind
	Routes(r chi.Router)
	ListFavorites(w http.ResponseWriter, r *http.Request)
}

// CatalogHandler serves /<plural> for one catalog kind.
type CatalogHandler[T any] struct {
	uc     usecase.CatalogUseCase[T]
	logger *slog.Logger
}

func NewCatalogHandler[T any](uc usecase.CatalogUseCase[T], logger *slog.Logger) *CatalogHandler[T] {
	return &CatalogHandler[T]{uc: uc, logger: logger.With("kind", uc.Kind().String())}
}

func (h *CatalogHandler[T]) Kind() domain.Kind { return h.uc.Kind() }

func (h *CatalogHandler[T]) Routes(r chi.Router) {
	r.Route("/"+h.uc.Kind().Plural(), func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/search", h.List)
		r.Get("/latest", h.Latest)
		r.Get("/count", h.Count)
		r.Get("/{id}", h.Get)
		r.Get("/{id}/related", h.Related)

		r.Group(func(r chi.Router) {
			r.Use(RequireAuth(h.logger))
			r.Post("/", h.Create)
			r.Put("/{id}", h.Update)
			r.Delete("/{id}", h.Delete)
			r.Post("/{id}/poster", h.Poster)
		})
	})
}

func (h *CatalogHandler[T]) List(w http.ResponseWriter, r *http.Request) {
	q, err := listquery.FromValues(r.URL.Query(), h.uc.Spec())
	if err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	page, err := h.uc.List(r.Context(), CallerFrom(r.Context()), q)
	if err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, page, h.logger)
}

func (h *CatalogHandler[T]) Latest(w http.ResponseWriter, r *http.Request) {
	items, err := h.uc.Latest(r.Context(), CallerFrom(r.Context()))
	if err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, items, h.logger)
}

func (h *CatalogHandler[T]) Count(w http.ResponseWriter, r *http.Request) {
	n, err := h.uc.Count(r.Context())
	if err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, n, h.logger)
}

func (h *CatalogHandler[T]) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	d, err := h.uc.Get(r.Context(), CallerFrom(r.Context()), id)
	if err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, d, h.logger)
}

func (h *CatalogHandler[T]) Related(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	p, err := listquery.ParsePage(r.URL.Query(), h.uc.Spec().DefaultPerPage)
	if err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	page, err := h.uc.Related(r.Context(), CallerFrom(r.Context()), id, p)
	if err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, page, h.logger)
}

func (h *CatalogHandler[T]) Create(w http.ResponseWriter, r *http.Request) {
	item, links, err := h.decodeItem(r)
	if err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	d, err := h.uc.Create(r.Context(), CallerFrom(r.Context()), item, links)
	if err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusCreated, d, h.logger)
}

func (h *CatalogHandler[T]) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	patch, links, err := h.decodeItem(r)
	if err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	d, err := h.uc.Update(r.Context(), CallerFrom(r.Context()), id, patch, links)
	if err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, d, h.logger)
}

func (h *CatalogHandler[T]) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	if err := h.uc.Delete(r.Context(), CallerFrom(r.Context()), id); err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CatalogHandler[T]) Poster(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	file, closer, err := readUpload(w, r)
	if err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	defer closer.Close()

	d, err := h.uc.SetPoster(r.Context(), CallerFrom(r.Context()), id, file)
	if err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, d, h.logger)
}

func (h *CatalogHandler[T]) ListFavorites(w http.ResponseWriter, r *http.Request) {
	p, err := listquery.ParsePage(r.URL.Query(), h.uc.Spec().DefaultPerPage)
	if err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	page, err := h.uc.Favorites(r.Context(), CallerFrom(r.Context()), p)
	if err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, page, h.logger)
}

// decodeItem reads the entity fields and the link ids from one JSON body.
func (h *CatalogHandler[T]) decodeItem(r *http.Request) (*T, domain.Links, error) {
	body, err := readBody(r)
	if err != nil {
		return nil, domain.Links{}, err
	}
	item := new(T)
	var links domain.Links
	if len(body) == 0 {
		return item, links, nil
	}
	if err := json.Unmarshal(body, item); err != nil {
		return nil, links, apperrors.BadRequest("invalid request body")
	}
	if err := json.Unmarshal(body, &links); err != nil {
		return nil, links, apperrors.BadRequest("invalid request body")
	}
	return item, links, nil
}

// FavoriteHandler serves /users/me/favorites/{kind}.
type FavoriteHandler struct {
	uc      usecase.FavoriteUseCase
	listers map[domain.Kind]http.HandlerFunc
	logger  *slog.Logger
}

func NewFavoriteHandler(uc usecase.FavoriteUseCase, catalogs []CatalogRoutes, logger *slog.Logger) *FavoriteHandler {
	listers := make(map[domain.Kind]http.HandlerFunc, len(catalogs))
	for _, c := range catalogs {
		listers[c.Kind()] = c.ListFavorites
	}
	return &FavoriteHandler{uc: uc, listers: listers, logger: logger}
}

func (h *FavoriteHandler) Routes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(RequireAuth(h.logger))
		r.Get("/users/me/favorites/{kind}", h.List)
		r.Post("/users/me/favorites/{kind}/{itemId}", h.Add)
		r.Delete("/users/me/favorites/{kind}/{itemId}", h.Remove)
	})
}

func (h *FavoriteHandler) List(w http.ResponseWriter, r *http.Request) {
	kind, err := domain.ParseReviewableKind(chi.URLParam(r, "kind"))
	if err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	list, ok := h.listers[kind]
	if !ok {
		respondWithError(w, http.StatusBadRequest, "invalid item type", h.logger)
		return
	}
	list(w, r)
}

func (h *FavoriteHandler) Add(w http.ResponseWriter, r *http.Request) {
	kind, itemID, err := kindAndID(r, "itemId")
	if err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	if err := h.uc.Add(r.Context(), CallerFrom(r.Context()), kind, itemID); err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	respondWithMessage(w, http.StatusCreated, "added to favorites", h.logger)
}

func (h *FavoriteHandler) Remove(w http.ResponseWriter, r *http.Request) {
	kind, itemID, err := kindAndID(r, "itemId")
	if err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	if err := h.uc.Remove(r.Context(), CallerFrom(r.Context()), kind, itemID); err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// kindAndID reads the {kind} parameter, restricted to reviewable kinds, and an id parameter.
func kindAndID(r *http.Request, idParam string) (domain.Kind, int, error) {
	kind, err := domain.ParseReviewableKind(chi.URLParam(r, "kind"))
	if err != nil {
		return "", 0, err
	}
	id, err := pathID(r, idParam)
	if err != nil {
		return "", 0, err
	}
	return kind, id, nil
}
