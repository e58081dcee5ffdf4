package services

import (
	"context"
	"testing"
	"time"

	"github.com/avdev42/go-messenger/backend/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newChatService(db *gorm.DB, messages *memMessageRepo) *ChatService {
	return NewChatService(
		repositories.NewPostgresChatRepository(db),
		messages,
		repositories.NewPostgresUserRepository(db),
		repositories.NewPostgresProfileRepository(db),
	)
}

func TestInitiateChatWithYourself(t *testing.T) {
	db := newTestDB(t)
	svc := newChatService(db, &memMessageRepo{})

	alice := createUser(t, db, "alice")

	_, err := svc.InitiateChat(context.Background(), alice.ID, "alice")
	assert.ErrorIs(t, err, ErrSelfChat)
}

func TestInitiateChatUnknownAddressee(t *testing.T) {
	db := newTestDB(t)
	svc := newChatService(db, &memMessageRepo{})

	alice := createUser(t, db, "alice")

	_, err := svc.InitiateChat(context.Background(), alice.ID, "nobody")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestInitiateChatDeduplicatesUnorderedPair(t *testing.T) {
	db := newTestDB(t)
	svc := newChatService(db, &memMessageRepo{})
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	chatID, err := svc.InitiateChat(ctx, alice.ID, "bob")
	require.NoError(t, err)
	require.NotEmpty(t, chatID)

	_, err = svc.InitiateChat(ctx, alice.ID, "bob")
	assert.ErrorIs(t, err, ErrChatAlreadyExists)

	_, err = svc.InitiateChat(ctx, bob.ID, "alice")
	assert.ErrorIs(t, err, ErrChatAlreadyExists, "reverse ordering denotes the same pair")

	fromAlice, err := svc.GetChatID(ctx, alice.ID, "bob")
	require.NoError(t, err)
	fromBob, err := svc.GetChatID(ctx, bob.ID, "alice")
	require.NoError(t, err)
	assert.Equal(t, chatID, fromAlice)
	assert.Equal(t, chatID, fromBob)
}

func TestGetChatIDAbsenceIsNotAnError(t *testing.T) {
	db := newTestDB(t)
	svc := newChatService(db, &memMessageRepo{})
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	createUser(t, db, "bob")

	id, err := svc.GetChatID(ctx, alice.ID, "bob")
	require.NoError(t, err)
	assert.Empty(t, id)

	id, err = svc.GetChatID(ctx, alice.ID, "nobody")
	require.NoError(t, err)
	assert.Empty(t, id, "unknown usernames also resolve to no chat")
}

func TestUpdateLastMessageUnknownChat(t *testing.T) {
	db := newTestDB(t)
	svc := newChatService(db, &memMessageRepo{})

	err := svc.UpdateLastMessage(context.Background(), "no-such-chat", "hi", time.Now())
	assert.ErrorIs(t, err, ErrChatNotFound)
}

func TestSendMessageUpdatesSummary(t *testing.T) {
	db := newTestDB(t)
	messages := &memMessageRepo{}
	svc := newChatService(db, messages)
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	createUser(t, db, "bob")

	chatID, err := svc.InitiateChat(ctx, alice.ID, "bob")
	require.NoError(t, err)

	msg, err := svc.SendMessage(ctx, chatID, alice.ID, "hello bob")
	require.NoError(t, err)
	assert.Equal(t, chatID, msg.ChatID)

	summaries, err := svc.ListChats(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	require.NotNil(t, summaries[0].LastMessageContent)
	assert.Equal(t, "hello bob", *summaries[0].LastMessageContent)
	require.NotNil(t, summaries[0].LastMessageSentAt)
	assert.WithinDuration(t, msg.CreatedAt, *summaries[0].LastMessageSentAt, time.Second)
}

func TestSendMessageRequiresParticipant(t *testing.T) {
	db := newTestDB(t)
	svc := newChatService(db, &memMessageRepo{})
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	createUser(t, db, "bob")
	carol := createUser(t, db, "carol")

	chatID, err := svc.InitiateChat(ctx, alice.ID, "bob")
	require.NoError(t, err)

	_, err = svc.SendMessage(ctx, chatID, carol.ID, "let me in")
	assert.ErrorIs(t, err, ErrChatNotFound)

	_, err = svc.SendMessage(ctx, "no-such-chat", alice.ID, "hi")
	assert.ErrorIs(t, err, ErrChatNotFound)
}

func TestGetChatViewPerspectiveSymmetry(t *testing.T) {
	db := newTestDB(t)
	messages := &memMessageRepo{}
	svc := newChatService(db, messages)
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	avatar := "bob.png"
	createProfile(t, db, bob.ID, &avatar)
	createProfile(t, db, alice.ID, nil)

	chatID, err := svc.InitiateChat(ctx, alice.ID, "bob")
	require.NoError(t, err)

	_, err = svc.SendMessage(ctx, chatID, alice.ID, "hi bob")
	require.NoError(t, err)
	_, err = svc.SendMessage(ctx, chatID, bob.ID, "hi alice")
	require.NoError(t, err)

	asAlice, err := svc.GetChatView(ctx, "alice", chatID)
	require.NoError(t, err)
	asBob, err := svc.GetChatView(ctx, "bob", chatID)
	require.NoError(t, err)

	assert.Equal(t, "bob", asAlice.FriendUsername)
	require.NotNil(t, asAlice.FriendAvatar)
	assert.Equal(t, "bob.png", *asAlice.FriendAvatar)

	assert.Equal(t, "alice", asBob.FriendUsername)
	assert.Nil(t, asBob.FriendAvatar)

	// Everything but the friend-perspective fields is identical.
	assert.Equal(t, asAlice.ID, asBob.ID)
	require.Len(t, asAlice.Messages, 2)
	assert.Equal(t, asAlice.Messages, asBob.Messages)
	assert.Equal(t, "alice", asAlice.Messages[0].SenderUsername)
	assert.Equal(t, "bob", asAlice.Messages[1].SenderUsername)
	assert.True(t, !asAlice.Messages[1].CreatedAt.Before(asAlice.Messages[0].CreatedAt),
		"messages are ascending by creation time")
}

func TestGetChatViewUnknownChat(t *testing.T) {
	db := newTestDB(t)
	svc := newChatService(db, &memMessageRepo{})

	_, err := svc.GetChatView(context.Background(), "alice", "no-such-chat")
	assert.ErrorIs(t, err, ErrChatNotFound)
}

func TestListChatsOrdersByLastMessageWithEmptyChatsLast(t *testing.T) {
	db := newTestDB(t)
	svc := newChatService(db, &memMessageRepo{})
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	createUser(t, db, "bob")
	createUser(t, db, "carol")
	createUser(t, db, "dave")

	// Created in order bob, carol, dave; messaged in order carol then dave;
	// bob's chat never gets a message.
	_, err := svc.InitiateChat(ctx, alice.ID, "bob")
	require.NoError(t, err)
	carolChat, err := svc.InitiateChat(ctx, alice.ID, "carol")
	require.NoError(t, err)
	daveChat, err := svc.InitiateChat(ctx, alice.ID, "dave")
	require.NoError(t, err)

	base := time.Now()
	require.NoError(t, svc.UpdateLastMessage(ctx, carolChat, "first", base))
	require.NoError(t, svc.UpdateLastMessage(ctx, daveChat, "second", base.Add(time.Minute)))

	summaries, err := svc.ListChats(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, summaries, 3)

	assert.Equal(t, "dave", summaries[0].FriendUsername)
	assert.Equal(t, "carol", summaries[1].FriendUsername)
	assert.Equal(t, "bob", summaries[2].FriendUsername, "message-less chats sort last regardless of creation order")
	assert.Nil(t, summaries[2].LastMessageSentAt)
}

func TestFriendshipToChatScenario(t *testing.T) {
	db := newTestDB(t)
	messages := &memMessageRepo{}
	chatSvc := newChatService(db, messages)
	friendSvc := newFriendService(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	createUser(t, db, "bob")

	_, err := friendSvc.SendRequest(ctx, alice.ID, "bob")
	require.NoError(t, err)
	require.NoError(t, friendSvc.Accept(ctx, "bob", "alice"))

	chatID, err := chatSvc.InitiateChat(ctx, alice.ID, "bob")
	require.NoError(t, err)

	t1 := time.Now()
	require.NoError(t, chatSvc.UpdateLastMessage(ctx, chatID, "hi", t1))

	summaries, err := chatSvc.ListChats(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, "bob", summaries[0].FriendUsername)
	require.NotNil(t, summaries[0].LastMessageContent)
	assert.Equal(t, "hi", *summaries[0].LastMessageContent)
	require.NotNil(t, summaries[0].LastMessageSentAt)
	assert.WithinDuration(t, t1, *summaries[0].LastMessageSentAt, time.Second)
}
