package domain

import "time"

// FollowState is the state of a follower -> following edge.
type FollowState string

const (
	FollowPending  FollowState = "pending"
	FollowAccepted FollowState = "accepted"
)

type Follow struct {
	ID          int         `json:"id" gorm:"primaryKey"`
	FollowerID  int         `json:"followerId" gorm:"not null;uniqueIndex:uq_follows_pair"`
	FollowingID int         `json:"followingId" gorm:"not null;uniqueIndex:uq_follows_pair"`
	State       FollowState `json:"state" gorm:"not null"`
	CreatedAt   time.Time   `json:"createdAt"`
}

func (Follow) TableName() string { return "follows" }

const (
	NotificationFollowRequest  = "follow_request"
	NotificationFollowAccepted = "follow_accepted"
	NotificationMessage        = "message"
)

type Notification struct {
	ID        int       `json:"id" gorm:"primaryKey"`
	UserID    int       `json:"userId" gorm:"index;not null"`
	ActorID   int       `json:"actorId" gorm:"not null"`
	Type      string    `json:"type" gorm:"not null"`
	EntityID  int       `json:"entityId"`
	IsRead    bool      `json:"isRead" gorm:"not null;default:false"`
	CreatedAt time.Time `json:"createdAt"`
}

func (Notification) TableName() string { return "notifications" }

type Message struct {
	ID         int       `json:"id" gorm:"primaryKey"`
	SenderID   int       `json:"senderId" gorm:"index;not null"`
	ReceiverID int       `json:"receiverId" gorm:"index;not null"`
	Content    string    `json:"content" gorm:"not null"`
	IsRead     bool      `json:"isRead" gorm:"not null;default:false"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (Message) TableName() string { return "messages" }
