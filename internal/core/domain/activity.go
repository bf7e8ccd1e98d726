package domain

import "time"

// ActivityAction classifies an entry in the activity feed.
type ActivityAction string

const (
	ActionLogin  ActivityAction = "login"
	ActionLogout ActivityAction = "logout"
	ActionSignup ActivityAction = "signup"
	ActionCreate ActivityAction = "create"
	ActionUpdate ActivityAction = "update"
	ActionDelete ActivityAction = "delete"
)

const (
	EntityUser = "user"
	EntityPost = "post"
)

// Activity records something a user did through the API.
type Activity struct {
	ID          string         `json:"id"`
	UserID      string         `json:"userId"`
	Action      ActivityAction `json:"action"`
	Entity      string         `json:"entity,omitempty"`
	EntityID    string         `json:"entityId,omitempty"`
	Description string         `json:"description"`
	CreatedAt   time.Time      `json:"createdAt"`
}
