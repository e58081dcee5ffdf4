package services

import (
	"context"
	"errors"
	"time"

	"github.com/avdev42/go-messenger/backend/internal/models"
	"github.com/avdev42/go-messenger/backend/internal/repositories"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ChatService owns one-to-one chat sessions: creation with unordered-pair
// deduplication, the denormalized last-message summary, and the
// perspective-adjusted conversation views. It deliberately does not consult
// the friend-request state: an accepted friendship is a UI precondition for
// opening a chat, not a storage-level rule.
type ChatService struct {
	chatRepo    repositories.ChatRepository
	messageRepo repositories.MessageRepository
	userRepo    repositories.UserRepository
	profileRepo repositories.ProfileRepository
}

// NewChatService creates a new ChatService
func NewChatService(
	chatRepo repositories.ChatRepository,
	messageRepo repositories.MessageRepository,
	userRepo repositories.UserRepository,
	profileRepo repositories.ProfileRepository,
) *ChatService {
	return &ChatService{
		chatRepo:    chatRepo,
		messageRepo: messageRepo,
		userRepo:    userRepo,
		profileRepo: profileRepo,
	}
}

// InitiateChat opens a conversation between userID and the user behind
// addresseeUsername and returns the new chat id. At most one chat exists per
// unordered pair, whichever side initiated it.
func (s *ChatService) InitiateChat(ctx context.Context, userID uint, addresseeUsername string) (string, error) {
	addressee, err := s.userRepo.GetUserByUsername(addresseeUsername)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrUserNotFound
		}
		return "", persistence("resolve addressee", err)
	}
	if addressee.ID == userID {
		return "", ErrSelfChat
	}

	_, err = s.chatRepo.FindBetween(userID, addressee.ID)
	if err == nil {
		return "", ErrChatAlreadyExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", persistence("check existing chat", err)
	}

	chat := &models.Chat{
		ID:          uuid.NewString(),
		InitiatorID: userID,
		AddresseeID: addressee.ID,
	}
	if err := s.chatRepo.Create(chat); err != nil {
		return "", persistence("create chat", err)
	}
	return chat.ID, nil
}

// GetChatID returns the id of the chat between userID and
// counterpartUsername, or "" when no such chat (or no such user) exists.
// Absence is a normal outcome here, not an error.
func (s *ChatService) GetChatID(ctx context.Context, userID uint, counterpartUsername string) (string, error) {
	counterpart, err := s.userRepo.GetUserByUsername(counterpartUsername)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", persistence("resolve counterpart", err)
	}

	chat, err := s.chatRepo.FindBetween(userID, counterpart.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", persistence("find chat", err)
	}
	return chat.ID, nil
}

// UpdateLastMessage overwrites the chat's denormalized summary fields. Call
// it after the message row itself is durably written.
func (s *ChatService) UpdateLastMessage(ctx context.Context, chatID, content string, sentAt time.Time) error {
	chat, err := s.chatRepo.GetByID(chatID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrChatNotFound
		}
		return persistence("find chat", err)
	}

	chat.LastMessageContent = &content
	chat.LastMessageSentAt = &sentAt

	if err := s.chatRepo.Update(chat); err != nil {
		return persistence("update chat summary", err)
	}
	return nil
}

// SendMessage appends a message to the chat and then refreshes its summary,
// in that order. A sender who is not a participant gets ErrChatNotFound: the
// chat does not exist as far as they are concerned.
func (s *ChatService) SendMessage(ctx context.Context, chatID string, senderID uint, content string) (*models.Message, error) {
	chat, err := s.chatRepo.GetByID(chatID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChatNotFound
		}
		return nil, persistence("find chat", err)
	}
	if chat.InitiatorID != senderID && chat.AddresseeID != senderID {
		return nil, ErrChatNotFound
	}

	msg := &models.Message{
		ChatID:    chatID,
		SenderID:  senderID,
		Content:   content,
		CreatedAt: time.Now(),
	}
	msg, err = s.messageRepo.Insert(ctx, msg)
	if err != nil {
		return nil, persistence("insert message", err)
	}

	if err := s.UpdateLastMessage(ctx, chatID, msg.Content, msg.CreatedAt); err != nil {
		return nil, err
	}
	return msg, nil
}

// GetChatView returns the chat's full ascending message sequence plus the
// friend fields computed for the given viewer: the friend is whichever
// participant the viewer is not.
func (s *ChatService) GetChatView(ctx context.Context, viewerUsername, chatID string) (*models.ChatView, error) {
	chat, err := s.chatRepo.GetByIDWithUsers(chatID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChatNotFound
		}
		return nil, persistence("find chat", err)
	}

	friend := chat.Initiator
	if chat.Initiator.Username == viewerUsername {
		friend = chat.Addressee
	}

	messages, err := s.messageRepo.ListByChat(ctx, chatID)
	if err != nil {
		return nil, persistence("list messages", err)
	}

	usernameFor := map[uint]string{
		chat.Initiator.ID: chat.Initiator.Username,
		chat.Addressee.ID: chat.Addressee.Username,
	}
	views := make([]models.MessageView, 0, len(messages))
	for _, msg := range messages {
		views = append(views, models.MessageView{
			ID:             msg.ID.Hex(),
			SenderUsername: usernameFor[msg.SenderID],
			Content:        msg.Content,
			CreatedAt:      msg.CreatedAt,
		})
	}

	return &models.ChatView{
		ID:             chat.ID,
		Messages:       views,
		FriendUsername: friend.Username,
		FriendAvatar:   s.avatarFor(friend.ID),
		FriendLastSeen: friend.LastSeen,
		ViewerUsername: viewerUsername,
	}, nil
}

// ListChats returns every chat the user participates in, reduced to the
// counterpart's summary, most recent message first and message-less chats
// last.
func (s *ChatService) ListChats(ctx context.Context, userID uint) ([]models.ChatSummary, error) {
	chats, err := s.chatRepo.ListForUser(userID)
	if err != nil {
		return nil, persistence("list chats", err)
	}

	friendIDs := make([]uint, 0, len(chats))
	for _, chat := range chats {
		if chat.InitiatorID == userID {
			friendIDs = append(friendIDs, chat.AddresseeID)
		} else {
			friendIDs = append(friendIDs, chat.InitiatorID)
		}
	}
	profiles, err := s.profileRepo.GetProfilesByUserIDs(friendIDs)
	if err != nil {
		return nil, persistence("list friend profiles", err)
	}
	avatarFor := make(map[uint]*string, len(profiles))
	for i := range profiles {
		avatarFor[profiles[i].UserID] = profiles[i].AvatarName
	}

	summaries := make([]models.ChatSummary, 0, len(chats))
	for _, chat := range chats {
		friend := chat.Initiator
		if chat.InitiatorID == userID {
			friend = chat.Addressee
		}
		summaries = append(summaries, models.ChatSummary{
			ID:                 chat.ID,
			FriendUsername:     friend.Username,
			FriendAvatar:       avatarFor[friend.ID],
			LastMessageContent: chat.LastMessageContent,
			LastMessageSentAt:  chat.LastMessageSentAt,
		})
	}
	return summaries, nil
}

// avatarFor resolves a user's avatar name; a missing profile simply means no
// avatar.
func (s *ChatService) avatarFor(userID uint) *string {
	profile, err := s.profileRepo.GetProfileByUserID(userID)
	if err != nil {
		return nil
	}
	return profile.AvatarName
}
