package models

import "time"

// Chat is the summary row of a one-to-one conversation. At most one row
// exists per unordered {initiator, addressee} pair; the service layer checks
// both orderings before creating one. Message bodies live in Mongo, only the
// last-message summary is denormalized here for cheap chat-list rendering.
type Chat struct {
	ID          string `json:"id" gorm:"type:uuid;primaryKey"`
	InitiatorID uint   `json:"initiator_id" gorm:"index"`
	AddresseeID uint   `json:"addressee_id" gorm:"index"`

	LastMessageContent *string    `json:"last_message_content"`
	LastMessageSentAt  *time.Time `json:"last_message_sent_at"`

	CreatedAt time.Time `json:"created_at"`

	Initiator User `json:"-" gorm:"foreignKey:InitiatorID"`
	Addressee User `json:"-" gorm:"foreignKey:AddresseeID"`
}

// InitiateChatRequest defines the request body for opening a conversation
type InitiateChatRequest struct {
	Username string `json:"username" validate:"required"`
}

// SendMessageRequest defines the request body for posting a message to a chat
type SendMessageRequest struct {
	Content string `json:"content" validate:"required,max=4096"`
}

// ChatSummary is one entry of the authenticated user's chat list, already
// reduced to the counterpart's perspective.
type ChatSummary struct {
	ID                 string     `json:"id"`
	FriendUsername     string     `json:"friend_username"`
	FriendAvatar       *string    `json:"friend_avatar"`
	LastMessageContent *string    `json:"last_message_content"`
	LastMessageSentAt  *time.Time `json:"last_message_sent_at"`
}

// ChatView is the full conversation payload for a single chat, adjusted to
// whichever participant is viewing it.
type ChatView struct {
	ID             string        `json:"id"`
	Messages       []MessageView `json:"messages"`
	FriendUsername string        `json:"friend_username"`
	FriendAvatar   *string       `json:"friend_avatar"`
	FriendLastSeen *time.Time    `json:"friend_last_seen"`
	ViewerUsername string        `json:"viewer_username"`
}
