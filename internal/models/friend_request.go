package models

import "time"

// RequestStatus is the lifecycle state of a friend request row.
type RequestStatus string

const (
	StatusPending  RequestStatus = "pending"
	StatusAccepted RequestStatus = "accepted"
	StatusRejected RequestStatus = "rejected"
)

// FriendRequest represents a friend request between two users.
//
// The table deliberately carries no foreign-key or pair-uniqueness constraint:
// the same ordered pair accumulates rows over time (a rejected request
// followed by a fresh pending one, re-friending after an unfriend). The
// service layer upholds the real invariant — at most one pending row per
// unordered pair.
type FriendRequest struct {
	ID         uint          `json:"id" gorm:"primaryKey"`
	SenderID   uint          `json:"sender_id" gorm:"index"`
	ReceiverID uint          `json:"receiver_id" gorm:"index"`
	Status     RequestStatus `json:"status" gorm:"type:varchar(20);default:'pending'"`
	CreatedAt  time.Time     `json:"created_at"`

	Sender   User `json:"sender" gorm:"foreignKey:SenderID"`
	Receiver User `json:"receiver" gorm:"foreignKey:ReceiverID"`
}

// SendFriendRequestBody defines the request body shared by the friend-request
// mutations; every one of them addresses the counterpart by username.
type SendFriendRequestBody struct {
	Username string `json:"username" validate:"required"`
}

// RelationStatus annotates a user in network discovery relative to the caller.
type RelationStatus string

const (
	RelationNone     RelationStatus = "none"
	RelationSent     RelationStatus = "sent"     // caller has a pending outgoing request
	RelationIncoming RelationStatus = "incoming" // caller has a pending incoming request
	RelationAccepted RelationStatus = "accepted"
	RelationRejected RelationStatus = "rejected"
)

// NetworkUser is one entry of the paged network discovery listing.
type NetworkUser struct {
	Username string         `json:"username"`
	Status   RelationStatus `json:"status"`
}
