package domain

import "time"

type ForumCategory struct {
	ID          int       `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"not null"`
	Description string    `json:"description"`
	Order       int       `json:"order" gorm:"column:sort_order"`
	IsActive    bool      `json:"isActive" gorm:"not null"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (ForumCategory) TableName() string { return "forum_categories" }

type ForumTopic struct {
	ID         int       `json:"id" gorm:"primaryKey"`
	Title      string    `json:"title" gorm:"not null"`
	CategoryID int       `json:"categoryId" gorm:"index;not null"`
	UserID     int       `json:"userId" gorm:"not null"`
	ViewCount  int       `json:"viewCount" gorm:"not null;default:0"`
	IsPinned   bool      `json:"isPinned" gorm:"not null;default:false"`
	IsLocked   bool      `json:"isLocked" gorm:"not null;default:false"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (ForumTopic) TableName() string { return "forum_topics" }

// ForumPost is soft-deleted: the row stays with IsDeleted set.
type ForumPost struct {
	ID        int        `json:"id" gorm:"primaryKey"`
	TopicID   int        `json:"topicId" gorm:"index;not null"`
	UserID    int        `json:"userId" gorm:"not null"`
	Content   string     `json:"content" gorm:"not null"`
	IsDeleted bool       `json:"isDeleted" gorm:"not null;default:false"`
	DeletedAt *time.Time `json:"deletedAt"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

func (ForumPost) TableName() string { return "forum_posts" }
