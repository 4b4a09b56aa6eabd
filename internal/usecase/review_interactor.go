package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/GoArmGo/MovieCatalog/internal/apperrors"
	"github.com/GoArmGo/MovieCatalog/internal/core/ports"
	"github.com/GoArmGo/MovieCatalog/internal/domain"
	"github.com/GoArmGo/MovieCatalog/internal/listquery"
	"github.com/GoArmGo/MovieCatalog/internal/mapper"
)

type reviewUseCase struct {
	items   ports.ItemStorage
	reviews ports.ReviewStorage
	votes   ports.VoteStorage
	users   ports.UserStorage
	cache   *ListCache
	logger  *slog.Logger
	now     func() time.Time
}

func NewReviewUseCase(
	items ports.ItemStorage,
	reviews ports.ReviewStorage,
	votes ports.VoteStorage,
	users ports.UserStorage,
	cache *ListCache,
	logger *slog.Logger,
) ReviewUseCase {
	return &reviewUseCase{
		items:   items,
		reviews: reviews,
		votes:   votes,
		users:   users,
		cache:   cache,
		logger:  logger,
		now:     time.Now,
	}
}

func (uc *reviewUseCase) ListByItem(ctx context.Context, caller *domain.Caller, kind domain.Kind, itemID int, page listquery.Page) (*ReviewPage, error) {
	if err := requireItem(ctx, uc.items, kind, itemID); err != nil {
		return nil, err
	}

	rows, total, err := uc.reviews.ListByItem(ctx, kind, itemID, page.Skip(), page.Take())
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	views, err := projectReviews(ctx, uc.votes, uc.users, kind, rows, caller.ID())
	if err != nil {
		return nil, err
	}
	return &ReviewPage{Reviews: views, Count: total}, nil
}

func (uc *reviewUseCase) ListByUser(ctx context.Context, caller *domain.Caller, kind domain.Kind, userID int, page listquery.Page) (*ReviewPage, error) {
	if _, err := requireUser(ctx, uc.users, userID); err != nil {
		return nil, err
	}

	rows, total, err := uc.reviews.ListByUser(ctx, kind, userID, page.Skip(), page.Take())
	if err != nil {
		return nil, fmt.Errorf("list user reviews: %w", err)
	}
	views, err := projectReviews(ctx, uc.votes, uc.users, kind, rows, caller.ID())
	if err != nil {
		return nil, err
	}
	return &ReviewPage{Reviews: views, Count: total}, nil
}

func (uc *reviewUseCase) Create(ctx context.Context, caller *domain.Caller, kind domain.Kind, itemID int, in ReviewInput) (*mapper.ReviewView, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	if in.Rating == nil {
		return nil, apperrors.BadRequest("rating is required")
	}
	if err := validateRating(*in.Rating); err != nil {
		return nil, err
	}
	if err := requireItem(ctx, uc.items, kind, itemID); err != nil {
		return nil, err
	}

	existing, err := uc.reviews.FindByUserAndItem(ctx, kind, caller.UserID, itemID)
	if err != nil {
		return nil, fmt.Errorf("find review: %w", err)
	}
	if existing != nil {
		return nil, apperrors.Conflict("you have already reviewed this item")
	}

	review := &domain.Review{
		Content: strings.TrimSpace(in.Content),
		Rating:  *in.Rating,
		UserID:  caller.UserID,
		ItemID:  itemID,
	}
	if err := uc.reviews.Create(ctx, kind, review); err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}
	uc.cache.Invalidate(ctx, kind)

	uc.logger.Info("review created", "kind", kind, "item_id", itemID, "user_id", caller.UserID)
	return uc.view(ctx, kind, review, caller)
}

func (uc *reviewUseCase) Update(ctx context.Context, caller *domain.Caller, kind domain.Kind, itemID int, in ReviewInput) (*mapper.ReviewView, error) {
	review, err := uc.own(ctx, caller, kind, itemID)
	if err != nil {
		return nil, err
	}

	if in.Rating != nil {
		if err := validateRating(*in.Rating); err != nil {
			return nil, err
		}
		review.Rating = *in.Rating
	}
	if content := strings.TrimSpace(in.Content); content != "" {
		review.Content = content
	}
	now := uc.now()
	review.UpdatedAt = &now

	if err := uc.reviews.Update(ctx, kind, review); err != nil {
		return nil, fmt.Errorf("update review: %w", err)
	}
	uc.cache.Invalidate(ctx, kind)

	return uc.view(ctx, kind, review, caller)
}

func (uc *reviewUseCase) Delete(ctx context.Context, caller *domain.Caller, kind domain.Kind, itemID int) error {
	review, err := uc.own(ctx, caller, kind, itemID)
	if err != nil {
		return err
	}
	if err := uc.reviews.Delete(ctx, kind, review); err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	uc.cache.Invalidate(ctx, kind)

	uc.logger.Info("review deleted", "kind", kind, "review_id", review.ID, "user_id", caller.UserID)
	return nil
}

func (uc *reviewUseCase) Vote(ctx context.Context, caller *domain.Caller, kind domain.Kind, itemID, reviewID int, up bool) error {
	if err := requireCaller(caller); err != nil {
		return err
	}
	if err := uc.requireReview(ctx, kind, itemID, reviewID); err != nil {
		return err
	}

	exists, err := uc.votes.Exists(ctx, kind, up, caller.UserID, reviewID)
	if err != nil {
		return fmt.Errorf("check vote: %w", err)
	}
	if exists {
		return apperrors.Conflict(fmt.Sprintf("review already %s", voteWord(up)))
	}

	vote := &domain.Vote{UserID: caller.UserID, ItemID: itemID, ReviewID: reviewID}
	if err := uc.votes.Add(ctx, kind, up, vote); err != nil {
		return fmt.Errorf("add vote: %w", err)
	}
	return nil
}

func (uc *reviewUseCase) Unvote(ctx context.Context, caller *domain.Caller, kind domain.Kind, itemID, reviewID int, up bool) error {
	if err := requireCaller(caller); err != nil {
		return err
	}
	if err := uc.requireReview(ctx, kind, itemID, reviewID); err != nil {
		return err
	}
	return uc.votes.Remove(ctx, kind, up, caller.UserID, reviewID)
}

func (uc *reviewUseCase) own(ctx context.Context, caller *domain.Caller, kind domain.Kind, itemID int) (*domain.Review, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	review, err := uc.reviews.FindByUserAndItem(ctx, kind, caller.UserID, itemID)
	if err != nil {
		return nil, fmt.Errorf("find review: %w", err)
	}
	if review == nil {
		return nil, apperrors.NotFound("review not found")
	}
	return review, nil
}

func (uc *reviewUseCase) requireReview(ctx context.Context, kind domain.Kind, itemID, reviewID int) error {
	review, err := uc.reviews.Get(ctx, kind, reviewID)
	if err != nil {
		return fmt.Errorf("get review: %w", err)
	}
	if review == nil || review.ItemID != itemID {
		return apperrors.NotFound("review not found")
	}
	return nil
}

func (uc *reviewUseCase) view(ctx context.Context, kind domain.Kind, review *domain.Review, caller *domain.Caller) (*mapper.ReviewView, error) {
	views, err := projectReviews(ctx, uc.votes, uc.users, kind, []domain.Review{*review}, caller.ID())
	if err != nil {
		return nil, err
	}
	view := views[0]
	view.Content = review.Content
	return &view, nil
}

func validateRating(r float64) error {
	if r < domain.MinReviewRating || r > domain.MaxReviewRating {
		return apperrors.BadRequest(fmt.Sprintf("rating must be between %d and %d", domain.MinReviewRating, domain.MaxReviewRating))
	}
	return nil
}

func voteWord(up bool) string {
	if up {
		return "upvoted"
	}
	return "downvoted"
}

func requireItem(ctx context.Context, items ports.ItemStorage, kind domain.Kind, id int) error {
	ok, err := items.Exists(ctx, kind, id)
	if err != nil {
		return fmt.Errorf("check %s %d: %w", kind, id, err)
	}
	if !ok {
		return apperrors.NotFound(fmt.Sprintf("%s not found", kind))
	}
	return nil
}
