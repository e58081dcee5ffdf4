package services

import (
	"context"
	"testing"

	"github.com/avdev42/go-messenger/backend/internal/models"
	"github.com/avdev42/go-messenger/backend/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newFriendService(db *gorm.DB) *FriendService {
	return NewFriendService(
		repositories.NewPostgresFriendRequestRepository(db),
		repositories.NewPostgresUserRepository(db),
	)
}

func TestSendRequestToYourself(t *testing.T) {
	db := newTestDB(t)
	svc := newFriendService(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice")

	_, err := svc.SendRequest(ctx, alice.ID, "alice")
	assert.ErrorIs(t, err, ErrSelfRequest)

	var count int64
	require.NoError(t, db.Model(&models.FriendRequest{}).Count(&count).Error)
	assert.Zero(t, count, "no row may be created for a self request")
}

func TestSendRequestUnknownReceiver(t *testing.T) {
	db := newTestDB(t)
	svc := newFriendService(db)

	alice := createUser(t, db, "alice")

	_, err := svc.SendRequest(context.Background(), alice.ID, "nobody")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestSendRequestDuplicateBothDirections(t *testing.T) {
	db := newTestDB(t)
	svc := newFriendService(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	request, err := svc.SendRequest(ctx, alice.ID, "bob")
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, request.Status)

	_, err = svc.SendRequest(ctx, alice.ID, "bob")
	assert.ErrorIs(t, err, ErrDuplicateRequest)

	_, err = svc.SendRequest(ctx, bob.ID, "alice")
	assert.ErrorIs(t, err, ErrDuplicateRequest, "reverse direction counts as the same pair")
}

func TestAcceptIsSymmetric(t *testing.T) {
	db := newTestDB(t)
	svc := newFriendService(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	_, err := svc.SendRequest(ctx, alice.ID, "bob")
	require.NoError(t, err)

	require.NoError(t, svc.Accept(ctx, "bob", "alice"))

	aliceFriends, err := svc.ListAccepted(ctx, alice.ID)
	require.NoError(t, err)
	assert.Contains(t, aliceFriends, "bob")

	bobFriends, err := svc.ListAccepted(ctx, bob.ID)
	require.NoError(t, err)
	assert.Contains(t, bobFriends, "alice")
}

func TestAcceptRequiresMatchingDirection(t *testing.T) {
	db := newTestDB(t)
	svc := newFriendService(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	createUser(t, db, "bob")

	_, err := svc.SendRequest(ctx, alice.ID, "bob")
	require.NoError(t, err)

	// Alice sent the request, so she cannot accept it herself.
	err = svc.Accept(ctx, "alice", "bob")
	assert.ErrorIs(t, err, ErrRequestNotFound)
}

func TestRejectKeepsHistoryAndAllowsRetry(t *testing.T) {
	db := newTestDB(t)
	svc := newFriendService(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	_, err := svc.SendRequest(ctx, alice.ID, "bob")
	require.NoError(t, err)
	require.NoError(t, svc.Reject(ctx, "bob", "alice"))

	rejected, err := svc.ListRejected(ctx, bob.ID)
	require.NoError(t, err)
	assert.Contains(t, rejected, "alice")

	// Rejection is historical, not a block: either side may try again.
	_, err = svc.SendRequest(ctx, bob.ID, "alice")
	assert.NoError(t, err)
}

func TestCancelPendingRequest(t *testing.T) {
	db := newTestDB(t)
	svc := newFriendService(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	_, err := svc.SendRequest(ctx, alice.ID, "bob")
	require.NoError(t, err)

	// Bob did not send the request, so he has nothing to cancel.
	err = svc.Cancel(ctx, "bob", "alice")
	assert.ErrorIs(t, err, ErrRequestNotFound)

	require.NoError(t, svc.Cancel(ctx, "alice", "bob"))

	incoming, err := svc.ListIncoming(ctx, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, incoming)

	err = svc.Cancel(ctx, "alice", "bob")
	assert.ErrorIs(t, err, ErrRequestNotFound)
}

func TestUnfriendRemovesBothSidesAndAllowsRerequest(t *testing.T) {
	db := newTestDB(t)
	svc := newFriendService(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	_, err := svc.SendRequest(ctx, alice.ID, "bob")
	require.NoError(t, err)
	require.NoError(t, svc.Accept(ctx, "bob", "alice"))

	// Unfriending works from either side; bob received the request.
	require.NoError(t, svc.Unfriend(ctx, bob.ID, "alice"))

	aliceFriends, err := svc.ListAccepted(ctx, alice.ID)
	require.NoError(t, err)
	assert.NotContains(t, aliceFriends, "bob")

	bobFriends, err := svc.ListAccepted(ctx, bob.ID)
	require.NoError(t, err)
	assert.NotContains(t, bobFriends, "alice")

	err = svc.Unfriend(ctx, bob.ID, "alice")
	assert.ErrorIs(t, err, ErrNotFriends)

	_, err = svc.SendRequest(ctx, alice.ID, "bob")
	assert.NoError(t, err, "unfriending must not block a new request")
}

func TestListIncomingAndSent(t *testing.T) {
	db := newTestDB(t)
	svc := newFriendService(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	carol := createUser(t, db, "carol")

	_, err := svc.SendRequest(ctx, alice.ID, "bob")
	require.NoError(t, err)
	_, err = svc.SendRequest(ctx, carol.ID, "alice")
	require.NoError(t, err)

	incoming, err := svc.ListIncoming(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"carol"}, incoming)

	sent, err := svc.ListSent(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"bob"}, sent)

	incoming, err = svc.ListIncoming(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice"}, incoming)
}

func TestNetworkAnnotations(t *testing.T) {
	db := newTestDB(t)
	svc := newFriendService(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	createUser(t, db, "bob")
	carol := createUser(t, db, "carol")
	createUser(t, db, "dave")
	eve := createUser(t, db, "eve")

	// bob: accepted; carol: pending incoming; dave: none; eve: rejected by alice.
	_, err := svc.SendRequest(ctx, alice.ID, "bob")
	require.NoError(t, err)
	require.NoError(t, svc.Accept(ctx, "bob", "alice"))

	_, err = svc.SendRequest(ctx, carol.ID, "alice")
	require.NoError(t, err)

	_, err = svc.SendRequest(ctx, eve.ID, "alice")
	require.NoError(t, err)
	require.NoError(t, svc.Reject(ctx, "alice", "eve"))

	network, err := svc.Network(ctx, alice.ID, 1)
	require.NoError(t, err)

	statusFor := make(map[string]models.RelationStatus, len(network))
	for _, entry := range network {
		statusFor[entry.Username] = entry.Status
	}
	assert.Equal(t, models.RelationAccepted, statusFor["bob"])
	assert.Equal(t, models.RelationIncoming, statusFor["carol"])
	assert.Equal(t, models.RelationNone, statusFor["dave"])
	assert.Equal(t, models.RelationRejected, statusFor["eve"])
	assert.NotContains(t, statusFor, "alice", "caller is excluded from their own network page")
}

func TestNetworkOutgoingPendingAndPaging(t *testing.T) {
	db := newTestDB(t)
	svc := newFriendService(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	createUser(t, db, "bob")

	_, err := svc.SendRequest(ctx, alice.ID, "bob")
	require.NoError(t, err)

	network, err := svc.Network(ctx, alice.ID, 0) // page < 1 treated as 1
	require.NoError(t, err)
	require.Len(t, network, 1)
	assert.Equal(t, models.RelationSent, network[0].Status)

	// Far-off page is simply empty.
	network, err = svc.Network(ctx, alice.ID, 99)
	require.NoError(t, err)
	assert.Empty(t, network)
}
