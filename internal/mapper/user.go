package mapper

import (
	"time"

	"github.com/GoArmGo/MovieCatalog/internal/domain"
)

// Profile is the public view of a user.
type Profile struct {
	ID          int       `json:"id"`
	UserName    string    `json:"userName"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	Bio         string    `json:"bio"`
	Avatar      string    `json:"avatar"`
	CreatedAt   time.Time `json:"createdAt"`
	Followers   int64     `json:"followers"`
	Following   int64     `json:"following"`
	FollowState string    `json:"followState,omitempty"`
}

// Account is the caller's own view, email and role included.
type Account struct {
	Profile
	Email  string `json:"email"`
	Role   string `json:"role"`
	Active bool   `json:"active"`
}

func ToProfile(u domain.User, followers, following int64, state domain.FollowState) Profile {
	return Profile{
		ID:          u.ID,
		UserName:    u.UserName,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Bio:         u.Bio,
		Avatar:      u.Avatar,
		CreatedAt:   u.CreatedAt,
		Followers:   followers,
		Following:   following,
		FollowState: string(state),
	}
}

func ToAccount(u domain.User, followers, following int64) Account {
	return Account{
		Profile: ToProfile(u, followers, following, ""),
		Email:   u.Email,
		Role:    u.Role,
		Active:  u.Active,
	}
}

func ToUserSummaries(users []domain.User) []UserSummary {
	out := make([]UserSummary, 0, len(users))
	for _, u := range users {
		out = append(out, ToUserSummary(u))
	}
	return out
}

// PostView hides the content of soft-deleted posts.
type PostView struct {
	ID        int         `json:"id"`
	TopicID   int         `json:"topicId"`
	User      UserSummary `json:"user"`
	Content   string      `json:"content"`
	IsDeleted bool        `json:"isDeleted"`
	DeletedAt *time.Time  `json:"deletedAt"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

func ToPostViews(posts []domain.ForumPost, users map[int]domain.User) []PostView {
	out := make([]PostView, 0, len(posts))
	for _, p := range posts {
		view := PostView{
			ID:        p.ID,
			TopicID:   p.TopicID,
			User:      UserSummary{ID: p.UserID},
			Content:   p.Content,
			IsDeleted: p.IsDeleted,
			DeletedAt: p.DeletedAt,
			CreatedAt: p.CreatedAt,
			UpdatedAt: p.UpdatedAt,
		}
		if u, ok := users[p.UserID]; ok {
			view.User = ToUserSummary(u)
		}
		if p.IsDeleted {
			view.Content = ""
		}
		out = append(out, view)
	}
	return out
}
