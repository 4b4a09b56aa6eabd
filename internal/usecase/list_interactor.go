package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/GoArmGo/MovieCatalog/internal/apperrors"
	"github.com/GoArmGo/MovieCatalog/internal/core/ports"
	"github.com/GoArmGo/MovieCatalog/internal/domain"
	"github.com/GoArmGo/MovieCatalog/internal/listquery"
)

type listUseCase struct {
	lists  ports.ListStorage
	items  ports.ItemStorage
	users  ports.UserStorage
	logger *slog.Logger
}

func NewListUseCase(lists ports.ListStorage, items ports.ItemStorage, users ports.UserStorage, logger *slog.Logger) ListUseCase {
	return &listUseCase{lists: lists, items: items, users: users, logger: logger}
}

func (uc *listUseCase) Create(ctx context.Context, caller *domain.Caller, in ListInput) (*domain.List, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	kind, err := domain.ParseReviewableKind(in.ContentType)
	if err != nil {
		return nil, err
	}

	list := &domain.List{ContentType: kind, UserID: caller.UserID}
	if in.Name != nil {
		list.Name = strings.TrimSpace(*in.Name)
	}
	if list.Name == "" {
		return nil, apperrors.BadRequest("name is required")
	}
	if in.Description != nil {
		list.Description = strings.TrimSpace(*in.Description)
	}
	if in.IsPrivate != nil {
		list.IsPrivate = *in.IsPrivate
	}

	if err := uc.lists.Create(ctx, list); err != nil {
		return nil, fmt.Errorf("create list: %w", err)
	}
	uc.logger.Info("list created", "list_id", list.ID, "user_id", caller.UserID, "content_type", kind)
	return list, nil
}

func (uc *listUseCase) Get(ctx context.Context, caller *domain.Caller, id int) (*domain.List, error) {
	list, _, err := uc.visible(ctx, caller, id)
	return list, err
}

func (uc *listUseCase) ByUser(ctx context.Context, caller *domain.Caller, userID int, page listquery.Page) (*ListPage, error) {
	if _, err := requireUser(ctx, uc.users, userID); err != nil {
		return nil, err
	}
	rows, total, err := uc.lists.ByUser(ctx, userID, caller.ID() == userID, page.Skip(), page.Take())
	if err != nil {
		return nil, fmt.Errorf("list user lists: %w", err)
	}
	return &ListPage{Lists: rows, Count: total}, nil
}

func (uc *listUseCase) SharedWithMe(ctx context.Context, caller *domain.Caller, page listquery.Page) (*ListPage, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	rows, total, err := uc.lists.SharedWith(ctx, caller.UserID, page.Skip(), page.Take())
	if err != nil {
		return nil, fmt.Errorf("list shared lists: %w", err)
	}
	return &ListPage{Lists: rows, Count: total}, nil
}

func (uc *listUseCase) Update(ctx context.Context, caller *domain.Caller, id int, in ListInput) (*domain.List, error) {
	list, err := uc.owned(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	if in.ContentType != "" {
		kind, err := domain.ParseReviewableKind(in.ContentType)
		if err != nil {
			return nil, err
		}
		if kind != list.ContentType {
			return nil, apperrors.BadRequest("contentType cannot be changed")
		}
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, apperrors.BadRequest("name is required")
		}
		list.Name = name
	}
	if in.Description != nil {
		list.Description = strings.TrimSpace(*in.Description)
	}
	if in.IsPrivate != nil {
		list.IsPrivate = *in.IsPrivate
	}

	if err := uc.lists.Update(ctx, list); err != nil {
		return nil, fmt.Errorf("update list: %w", err)
	}
	return list, nil
}

func (uc *listUseCase) Delete(ctx context.Context, caller *domain.Caller, id int) error {
	list, err := uc.owned(ctx, caller, id)
	if err != nil {
		return err
	}
	if err := uc.lists.Delete(ctx, list); err != nil {
		return fmt.Errorf("delete list: %w", err)
	}
	uc.logger.Info("list deleted", "list_id", id, "user_id", caller.UserID)
	return nil
}

func (uc *listUseCase) Items(ctx context.Context, caller *domain.Caller, id int) (*ListItems, error) {
	list, _, err := uc.visible(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	rows, err := uc.lists.Items(ctx, list)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return &ListItems{Items: rows, Count: len(rows)}, nil
}

func (uc *listUseCase) AddItem(ctx context.Context, caller *domain.Caller, id int, in ListItemInput) (*domain.ListItem, error) {
	list, err := uc.editable(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	if err := requireItem(ctx, uc.items, list.ContentType, in.ItemID); err != nil {
		return nil, err
	}

	existing, err := uc.lists.GetItem(ctx, list, in.ItemID)
	if err != nil {
		return nil, fmt.Errorf("get list item: %w", err)
	}
	if existing != nil {
		return nil, apperrors.Conflict("item is already in the list")
	}

	item := &domain.ListItem{ListID: list.ID, ItemID: in.ItemID, Note: strings.TrimSpace(in.Note)}
	if in.OrderIndex != nil {
		item.OrderIndex = *in.OrderIndex
	} else {
		maxIndex, err := uc.lists.MaxOrderIndex(ctx, list)
		if err != nil {
			return nil, fmt.Errorf("max order index: %w", err)
		}
		item.OrderIndex = maxIndex + 1
	}

	if err := uc.lists.AddItem(ctx, list, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (uc *listUseCase) RemoveItem(ctx context.Context, caller *domain.Caller, id, itemID int) error {
	list, err := uc.editable(ctx, caller, id)
	if err != nil {
		return err
	}
	return uc.lists.RemoveItem(ctx, list, itemID)
}

func (uc *listUseCase) Share(ctx context.Context, caller *domain.Caller, id int, in ShareInput) (*domain.ListShare, error) {
	list, err := uc.owned(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	if in.UserID == caller.UserID {
		return nil, apperrors.BadRequest("you cannot share a list with yourself")
	}
	if _, err := requireUser(ctx, uc.users, in.UserID); err != nil {
		return nil, err
	}

	existing, err := uc.lists.GetShare(ctx, list.ID, in.UserID)
	if err != nil {
		return nil, fmt.Errorf("get share: %w", err)
	}
	if existing != nil {
		return nil, apperrors.Conflict("list is already shared with this user")
	}

	share := &domain.ListShare{ListID: list.ID, UserID: in.UserID, CanEdit: in.CanEdit}
	if err := uc.lists.AddShare(ctx, share); err != nil {
		return nil, err
	}
	return share, nil
}

func (uc *listUseCase) Unshare(ctx context.Context, caller *domain.Caller, id, userID int) error {
	list, err := uc.owned(ctx, caller, id)
	if err != nil {
		return err
	}
	return uc.lists.RemoveShare(ctx, list.ID, userID)
}

// visible returns the list and the caller's share when the caller may read it.
func (uc *listUseCase) visible(ctx context.Context, caller *domain.Caller, id int) (*domain.List, *domain.ListShare, error) {
	list, err := uc.lists.Get(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("get list %d: %w", id, err)
	}
	if list == nil {
		return nil, nil, apperrors.NotFound("list not found")
	}
	if list.UserID == caller.ID() {
		return list, nil, nil
	}

	var share *domain.ListShare
	if caller.ID() != 0 {
		share, err = uc.lists.GetShare(ctx, id, caller.UserID)
		if err != nil {
			return nil, nil, fmt.Errorf("get share: %w", err)
		}
	}
	if list.IsPrivate && share == nil {
		return nil, nil, apperrors.NotFound("list not found")
	}
	return list, share, nil
}

func (uc *listUseCase) owned(ctx context.Context, caller *domain.Caller, id int) (*domain.List, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	list, _, err := uc.visible(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	if list.UserID != caller.UserID {
		return nil, apperrors.Forbidden("only the owner can manage this list")
	}
	return list, nil
}

func (uc *listUseCase) editable(ctx context.Context, caller *domain.Caller, id int) (*domain.List, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	list, share, err := uc.visible(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	if list.UserID != caller.UserID && (share == nil || !share.CanEdit) {
		return nil, apperrors.Forbidden("you cannot edit this list")
	}
	return list, nil
}
