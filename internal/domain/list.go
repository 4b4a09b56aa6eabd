package domain

import "time"

// List is a named, user-owned collection of items of one kind.
type List struct {
	ID          int       `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"not null"`
	Description string    `json:"description"`
	ContentType Kind      `json:"contentType" gorm:"not null"`
	IsPrivate   bool      `json:"isPrivate" gorm:"not null;default:false"`
	UserID      int       `json:"userId" gorm:"index;not null"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (List) TableName() string { return "lists" }

// ListItem is stored in one table per kind, see Kind.ListItemTable.
type ListItem struct {
	ID         int       `json:"id" gorm:"primaryKey"`
	ListID     int       `json:"listId" gorm:"not null"`
	ItemID     int       `json:"itemId" gorm:"not null"`
	OrderIndex int       `json:"orderIndex"`
	Note       string    `json:"note"`
	CreatedAt  time.Time `json:"createdAt"`
}

type ListShare struct {
	ID        int       `json:"id" gorm:"primaryKey"`
	ListID    int       `json:"listId" gorm:"not null;uniqueIndex:uq_list_shares_pair"`
	UserID    int       `json:"userId" gorm:"not null;uniqueIndex:uq_list_shares_pair"`
	CanEdit   bool      `json:"canEdit" gorm:"not null;default:false"`
	CreatedAt time.Time `json:"createdAt"`
}

func (ListShare) TableName() string { return "list_shares" }
