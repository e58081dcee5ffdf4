package services

import (
	"context"
	"errors"

	"github.com/avdev42/go-messenger/backend/internal/models"
	"github.com/avdev42/go-messenger/backend/internal/repositories"
	"gorm.io/gorm"
)

// NetworkPageSize is how many users one page of network discovery carries.
const NetworkPageSize = 20

// FriendService owns the friend-request lifecycle. Rows are append-only per
// ordered pair; the invariant it upholds is at most one pending request per
// unordered pair at a time. A rejected or deleted row never blocks a fresh
// request from either side.
type FriendService struct {
	requestRepo repositories.FriendRequestRepository
	userRepo    repositories.UserRepository
}

// NewFriendService creates a new FriendService
func NewFriendService(requestRepo repositories.FriendRequestRepository, userRepo repositories.UserRepository) *FriendService {
	return &FriendService{
		requestRepo: requestRepo,
		userRepo:    userRepo,
	}
}

func (s *FriendService) resolveUser(username string) (*models.User, error) {
	user, err := s.userRepo.GetUserByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, persistence("resolve user", err)
	}
	return user, nil
}

// SendRequest creates a pending friend request from senderID to the user
// behind receiverUsername.
func (s *FriendService) SendRequest(ctx context.Context, senderID uint, receiverUsername string) (*models.FriendRequest, error) {
	receiver, err := s.resolveUser(receiverUsername)
	if err != nil {
		return nil, err
	}
	if receiver.ID == senderID {
		return nil, ErrSelfRequest
	}

	_, err = s.requestRepo.FindPendingBetween(senderID, receiver.ID)
	if err == nil {
		return nil, ErrDuplicateRequest
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, persistence("check pending request", err)
	}

	request := &models.FriendRequest{
		SenderID:   senderID,
		ReceiverID: receiver.ID,
		Status:     models.StatusPending,
	}
	if err := s.requestRepo.Create(request); err != nil {
		return nil, persistence("create friend request", err)
	}
	return request, nil
}

// respond locates the pending request requester -> username and transitions
// it to the given terminal status.
func (s *FriendService) respond(username, requesterUsername string, status models.RequestStatus) error {
	user, err := s.resolveUser(username)
	if err != nil {
		return err
	}
	requester, err := s.resolveUser(requesterUsername)
	if err != nil {
		return err
	}

	request, err := s.requestRepo.FindPendingFrom(requester.ID, user.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRequestNotFound
		}
		return persistence("find pending request", err)
	}

	if err := s.requestRepo.UpdateStatus(request.ID, status); err != nil {
		return persistence("update request status", err)
	}
	return nil
}

// Accept confirms the pending request sent by requesterUsername to username.
// Acceptance is symmetric: both users list each other as friends afterwards.
func (s *FriendService) Accept(ctx context.Context, username, requesterUsername string) error {
	return s.respond(username, requesterUsername, models.StatusAccepted)
}

// Reject declines the pending request sent by requesterUsername to username.
// The row is kept as history and does not block a later request.
func (s *FriendService) Reject(ctx context.Context, username, requesterUsername string) error {
	return s.respond(username, requesterUsername, models.StatusRejected)
}

// Cancel deletes the pending request the caller sent to targetUsername.
func (s *FriendService) Cancel(ctx context.Context, username, targetUsername string) error {
	user, err := s.resolveUser(username)
	if err != nil {
		return err
	}
	target, err := s.resolveUser(targetUsername)
	if err != nil {
		return err
	}

	request, err := s.requestRepo.FindPendingFrom(user.ID, target.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRequestNotFound
		}
		return persistence("find pending request", err)
	}

	if err := s.requestRepo.Delete(request.ID); err != nil {
		return persistence("delete friend request", err)
	}
	return nil
}

// Unfriend deletes the accepted relationship between userID and
// targetUsername, whichever of them sent the original request.
func (s *FriendService) Unfriend(ctx context.Context, userID uint, targetUsername string) error {
	target, err := s.resolveUser(targetUsername)
	if err != nil {
		return err
	}

	request, err := s.requestRepo.FindAcceptedBetween(userID, target.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFriends
		}
		return persistence("find accepted request", err)
	}

	if err := s.requestRepo.Delete(request.ID); err != nil {
		return persistence("delete friendship", err)
	}
	return nil
}

func counterpartUsernames(userID uint, reqs []models.FriendRequest) []string {
	usernames := make([]string, 0, len(reqs))
	for _, req := range reqs {
		if req.SenderID == userID {
			usernames = append(usernames, req.Receiver.Username)
		} else {
			usernames = append(usernames, req.Sender.Username)
		}
	}
	return usernames
}

// ListAccepted returns the usernames of the user's friends, newest first.
func (s *FriendService) ListAccepted(ctx context.Context, userID uint) ([]string, error) {
	reqs, err := s.requestRepo.ListAccepted(userID)
	if err != nil {
		return nil, persistence("list accepted requests", err)
	}
	return counterpartUsernames(userID, reqs), nil
}

// ListIncoming returns the usernames of users with a pending request
// addressed to userID, newest first.
func (s *FriendService) ListIncoming(ctx context.Context, userID uint) ([]string, error) {
	reqs, err := s.requestRepo.ListIncomingPending(userID)
	if err != nil {
		return nil, persistence("list incoming requests", err)
	}
	return counterpartUsernames(userID, reqs), nil
}

// ListSent returns the usernames of users the caller has a pending request
// out to, newest first.
func (s *FriendService) ListSent(ctx context.Context, userID uint) ([]string, error) {
	reqs, err := s.requestRepo.ListSentPending(userID)
	if err != nil {
		return nil, persistence("list sent requests", err)
	}
	return counterpartUsernames(userID, reqs), nil
}

// ListRejected returns the usernames of users whose requests the caller has
// rejected, newest first.
func (s *FriendService) ListRejected(ctx context.Context, userID uint) ([]string, error) {
	reqs, err := s.requestRepo.ListRejectedBy(userID)
	if err != nil {
		return nil, persistence("list rejected requests", err)
	}
	return counterpartUsernames(userID, reqs), nil
}

// Network returns one page of all other users, each annotated with the
// caller's current relation to them. When a pair has accumulated several
// historical rows the most recent one wins.
func (s *FriendService) Network(ctx context.Context, userID uint, page int) ([]models.NetworkUser, error) {
	if page < 1 {
		page = 1
	}

	users, err := s.userRepo.ListOthersPage(userID, (page-1)*NetworkPageSize, NetworkPageSize)
	if err != nil {
		return nil, persistence("list network users", err)
	}

	rows, err := s.requestRepo.ListInvolving(userID)
	if err != nil {
		return nil, persistence("list user requests", err)
	}

	// Rows come back oldest first, so later rows overwrite earlier history.
	statusFor := make(map[uint]models.RelationStatus, len(rows))
	for _, row := range rows {
		counterpart := row.ReceiverID
		if row.ReceiverID == userID {
			counterpart = row.SenderID
		}
		switch row.Status {
		case models.StatusPending:
			if row.SenderID == userID {
				statusFor[counterpart] = models.RelationSent
			} else {
				statusFor[counterpart] = models.RelationIncoming
			}
		case models.StatusAccepted:
			statusFor[counterpart] = models.RelationAccepted
		case models.StatusRejected:
			statusFor[counterpart] = models.RelationRejected
		}
	}

	network := make([]models.NetworkUser, 0, len(users))
	for _, user := range users {
		status, ok := statusFor[user.ID]
		if !ok {
			status = models.RelationNone
		}
		network = append(network, models.NetworkUser{
			Username: user.Username,
			Status:   status,
		})
	}
	return network, nil
}
