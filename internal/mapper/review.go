package mapper

import (
	"slices"
	"time"

	"github.com/GoArmGo/MovieCatalog/internal/domain"
)

type UserSummary struct {
	ID       int    `json:"id"`
	UserName string `json:"userName"`
	Avatar   string `json:"avatar"`
}

func ToUserSummary(u domain.User) UserSummary {
	return UserSummary{ID: u.ID, UserName: u.UserName, Avatar: u.Avatar}
}

type ReviewView struct {
	ID          int         `json:"id"`
	Content     string      `json:"content"`
	Rating      float64     `json:"rating"`
	ItemID      int         `json:"itemId"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   *time.Time  `json:"updatedAt"`
	User        UserSummary `json:"user"`
	Upvotes     int         `json:"upvotes"`
	Downvotes   int         `json:"downvotes"`
	IsUpvoted   bool        `json:"isUpvoted"`
	IsDownvoted bool        `json:"isDownvoted"`
}

// ToReviewView marks the vote flags when callerID is among the voters.
// callerID 0 is the anonymous caller and never matches.
func ToReviewView(r domain.Review, user UserSummary, votes domain.VoteSet, callerID int) ReviewView {
	return ReviewView{
		ID:          r.ID,
		Content:     r.Content,
		Rating:      r.Rating,
		ItemID:      r.ItemID,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
		User:        user,
		Upvotes:     len(votes.Upvoters),
		Downvotes:   len(votes.Downvoters),
		IsUpvoted:   contains(votes.Upvoters, callerID),
		IsDownvoted: contains(votes.Downvoters, callerID),
	}
}

// ToReviewViews keeps the order of reviews and cuts content to
// DescriptionLimit runes. A review whose author is missing from users gets a
// summary carrying only the id.
func ToReviewViews(reviews []domain.Review, users map[int]domain.User, votes map[int]domain.VoteSet, callerID int) []ReviewView {
	out := make([]ReviewView, 0, len(reviews))
	for _, r := range reviews {
		summary := UserSummary{ID: r.UserID}
		if u, ok := users[r.UserID]; ok {
			summary = ToUserSummary(u)
		}
		view := ToReviewView(r, summary, votes[r.ID], callerID)
		view.Content = Truncate(view.Content, DescriptionLimit)
		out = append(out, view)
	}
	return out
}

func contains(ids []int, id int) bool {
	return id != 0 && slices.Contains(ids, id)
}
