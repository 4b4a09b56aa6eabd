package domain

import "time"

// Review is stored in one table per reviewable kind, see Kind.ReviewTable.
type Review struct {
	ID        int        `json:"id" gorm:"primaryKey"`
	Content   string     `json:"content"`
	Rating    float64    `json:"rating"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt" gorm:"autoUpdateTime:false"`
	UserID    int        `json:"userId" gorm:"not null"`
	ItemID    int        `json:"itemId" gorm:"not null"`
}

const (
	MinReviewRating = 0
	MaxReviewRating = 5
)

// Vote is an up or down vote row, see Kind.VoteTable.
type Vote struct {
	ID       int `json:"id" gorm:"primaryKey"`
	UserID   int `json:"userId"`
	ItemID   int `json:"itemId"`
	ReviewID int `json:"reviewId" gorm:"not null"`
}

// Favorite is a bare bookmark row, see Kind.FavoriteTable.
type Favorite struct {
	ID        int       `json:"id" gorm:"primaryKey"`
	UserID    int       `json:"userId"`
	ItemID    int       `json:"itemId"`
	CreatedAt time.Time `json:"createdAt"`
}

// RatingSummary is the aggregate of every review of one item.
type RatingSummary struct {
	AverageRating float64 `json:"averageRating"`
	TotalReviews  int     `json:"totalReviews"`
}

// VoteSet lists the voters of one review.
type VoteSet struct {
	Upvoters   []int
	Downvoters []int
}
