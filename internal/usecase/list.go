package usecase

import (
	"context"

	"github.com/GoArmGo/MovieCatalog/internal/domain"
	"github.com/GoArmGo/MovieCatalog/internal/listquery"
)

type ListInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	ContentType string  `json:"contentType"`
	IsPrivate   *bool   `json:"isPrivate"`
}

type ListItemInput struct {
	ItemID     int    `json:"itemId"`
	Note       string `json:"note"`
	OrderIndex *int   `json:"orderIndex"`
}

type ShareInput struct {
	UserID  int  `json:"userId"`
	CanEdit bool `json:"canEdit"`
}

type ListPage struct {
	Lists []domain.List `json:"lists"`
	Count int64         `json:"count"`
}

type ListItems struct {
	Items []domain.ListItem `json:"items"`
	Count int               `json:"count"`
}

// ListUseCase manages user lists. A private list is visible to its owner
// and the users it is shared with; to anyone else it does not exist.
type ListUseCase interface {
	Create(ctx context.Context, caller *domain.Caller, in ListInput) (*domain.List, error)
	Get(ctx context.Context, caller *domain.Caller, id int) (*domain.List, error)
	ByUser(ctx context.Context, caller *domain.Caller, userID int, page listquery.Page) (*ListPage, error)
	SharedWithMe(ctx context.Context, caller *domain.Caller, page listquery.Page) (*ListPage, error)
	Update(ctx context.Context, caller *domain.Caller, id int, in ListInput) (*domain.List, error)
	Delete(ctx context.Context, caller *domain.Caller, id int) error

	Items(ctx context.Context, caller *domain.Caller, id int) (*ListItems, error)
	AddItem(ctx context.Context, caller *domain.Caller, id int, in ListItemInput) (*domain.ListItem, error)
	RemoveItem(ctx context.Context, caller *domain.Caller, id, itemID int) error

	Share(ctx context.Context, caller *domain.Caller, id int, in ShareInput) (*domain.ListShare, error)
	Unshare(ctx context.Context, caller *domain.Caller, id, userID int) error
}
