package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/techagentng/clubcore/config"
	"github.com/techagentng/clubcore/db"
	apiError "github.com/techagentng/clubcore/errors"
	"github.com/techagentng/clubcore/models"
	"go.uber.org/zap"
)

// MessagingService sends and lists messages in conversations the caller belongs to.
type MessagingService interface {
	SendDirectMessage(ctx context.Context, conversationID uuid.UUID, senderID, body string) (*models.SentDirectMessageResponse, error)
	ListDirectMessages(ctx context.Context, conversationID uuid.UUID, requesterID string, page *models.Pagination) ([]models.DirectMessageResponse, error)
	SendGroupMessage(ctx context.Context, conversationID uuid.UUID, senderID, body string) (*models.GroupMessageResponse, error)
	ListGroupMessages(ctx context.Context, conversationID uuid.UUID, requesterID string, page *models.Pagination) ([]models.GroupMessageResponse, error)
}

type messagingService struct {
	Config           *config.Config
	conversationRepo db.ConversationRepository
	messageRepo      db.MessageRepository
	validator        AccessValidator
	users            UserDirectory
	now              func() time.Time
}

func NewMessagingService(conversationRepo db.ConversationRepository, messageRepo db.MessageRepository, validator AccessValidator,
	users UserDirectory, conf *config.Config) MessagingService {
	return &messagingService{
		Config:           conf,
		conversationRepo: conversationRepo,
		messageRepo:      messageRepo,
		validator:        validator,
		users:            users,
		now:              func() time.Time { return time.Now().UTC() },
	}
}

func validateBody(body string, max int) (string, error) {
	if strings.TrimSpace(body) == "" {
		return "", apiError.InvalidArgument("message cannot be empty")
	}
	if utf8.RuneCountInString(body) > max {
		return "", apiError.InvalidArgument(fmt.Sprintf("message cannot be longer than %d characters", max))
	}
	return body, nil
}

func (s *messagingService) SendDirectMessage(ctx context.Context, conversationID uuid.UUID, senderID, body string) (*models.SentDirectMessageResponse, error) {
	if !s.validator.CanAccessDirect(ctx, conversationID, senderID) {
		return nil, apiError.Unauthorized("you are not part of this direct conversation")
	}
	body, err := validateBody(body, models.MaxDirectMessageLength)
	if err != nil {
		return nil, err
	}

	conversation, err := s.conversationRepo.FindDirectConversation(ctx, conversationID)
	if err != nil {
		return nil, internalError("find direct conversation failed", err, zap.String("conversation_id", conversationID.String()))
	}
	recipientID := conversation.OtherParticipant(senderID)

	message := &models.DirectMessage{
		ID:             uuid.New(),
		ConversationID: conversationID,
		SenderID:       senderID,
		Body:           body,
		SentAt:         s.now(),
		Seen:           false,
	}
	if err := s.messageRepo.CreateDirectMessage(ctx, message); err != nil {
		return nil, internalError("create direct message failed", err, zap.String("conversation_id", conversationID.String()))
	}

	recipientName, err := s.users.DisplayName(ctx, recipientID)
	if err != nil {
		if !errors.Is(err, ErrUserNotFound) {
			return nil, internalError("resolve recipient failed", err, zap.String("user_id", recipientID))
		}
		recipientName = unknownUserName
	}

	return &models.SentDirectMessageResponse{
		MessageID:      message.ID,
		ConversationID: conversationID,
		SenderID:       senderID,
		RecipientID:    recipientID,
		RecipientName:  recipientName,
		Message:        message.Body,
		Timestamp:      message.SentAt,
	}, nil
}

func (s *messagingService) ListDirectMessages(ctx context.Context, conversationID uuid.UUID, requesterID string, page *models.Pagination) ([]models.DirectMessageResponse, error) {
	if !s.validator.CanAccessDirect(ctx, conversationID, requesterID) {
		return nil, apiError.Unauthorized("you are not part of this direct conversation")
	}

	conversation, err := s.conversationRepo.FindDirectConversation(ctx, conversationID)
	if err != nil {
		return nil, internalError("find direct conversation failed", err, zap.String("conversation_id", conversationID.String()))
	}
	peerName, err := s.users.DisplayName(ctx, conversation.OtherParticipant(requesterID))
	if err != nil {
		if !errors.Is(err, ErrUserNotFound) {
			return nil, internalError("resolve peer failed", err, zap.String("conversation_id", conversationID.String()))
		}
		peerName = unknownUserName
	}

	messages, err := s.messageRepo.ListDirectMessages(ctx, conversationID, page)
	if err != nil {
		return nil, internalError("list direct messages failed", err, zap.String("conversation_id", conversationID.String()))
	}

	names := map[string]string{}
	result := make([]models.DirectMessageResponse, 0, len(messages))
	for _, m := range messages {
		senderName, err := s.senderName(ctx, names, m.SenderID)
		if err != nil {
			return nil, err
		}
		result = append(result, models.DirectMessageResponse{
			MessageID:      m.ID,
			ConversationID: m.ConversationID,
			SenderID:       m.SenderID,
			SenderName:     senderName,
			PeerName:       peerName,
			Message:        m.Body,
			Timestamp:      m.SentAt,
			Seen:           m.Seen,
		})
	}
	return result, nil
}

func (s *messagingService) SendGroupMessage(ctx context.Context, conversationID uuid.UUID, senderID, body string) (*models.GroupMessageResponse, error) {
	if !s.validator.CanAccessGroup(ctx, conversationID, senderID) {
		return nil, apiError.Unauthorized("you are not part of this group conversation")
	}
	body, err := validateBody(body, models.MaxGroupMessageLength)
	if err != nil {
		return nil, err
	}

	senderName, err := s.users.DisplayName(ctx, senderID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, apiError.Unauthorized("user was not found")
		}
		return nil, internalError("resolve sender failed", err, zap.String("user_id", senderID))
	}

	message := &models.GroupMessage{
		ID:             uuid.New(),
		ConversationID: conversationID,
		SenderID:       senderID,
		Body:           body,
		SentAt:         s.now(),
	}
	if err := s.messageRepo.CreateGroupMessage(ctx, message); err != nil {
		return nil, internalError("create group message failed", err, zap.String("conversation_id", conversationID.String()))
	}

	return &models.GroupMessageResponse{
		MessageID:      message.ID,
		ConversationID: conversationID,
		SenderID:       senderID,
		SenderName:     senderName,
		Message:        message.Body,
		Timestamp:      message.SentAt,
	}, nil
}

func (s *messagingService) ListGroupMessages(ctx context.Context, conversationID uuid.UUID, requesterID string, page *models.Pagination) ([]models.GroupMessageResponse, error) {
	if !s.validator.CanAccessGroup(ctx, conversationID, requesterID) {
		return nil, apiError.Unauthorized("you are not part of this group conversation")
	}

	messages, err := s.messageRepo.ListGroupMessages(ctx, conversationID, page)
	if err != nil {
		return nil, internalError("list group messages failed", err, zap.String("conversation_id", conversationID.String()))
	}

	names := map[string]string{}
	result := make([]models.GroupMessageResponse, 0, len(messages))
	for _, m := range messages {
		senderName, err := s.senderName(ctx, names, m.SenderID)
		if err != nil {
			return nil, err
		}
		result = append(result, models.GroupMessageResponse{
			MessageID:      m.ID,
			ConversationID: m.ConversationID,
			SenderID:       m.SenderID,
			SenderName:     senderName,
			Message:        m.Body,
			Timestamp:      m.SentAt,
		})
	}
	return result, nil
}

// senderName resolves a message author, memoizing per call. A sender that no
// longer resolves is an integrity fault and fails the listing.
func (s *messagingService) senderName(ctx context.Context, names map[string]string, senderID string) (string, error) {
	if name, ok := names[senderID]; ok {
		return name, nil
	}
	name, err := s.users.DisplayName(ctx, senderID)
	if err != nil {
		return "", internalError("resolve message sender failed", err, zap.String("user_id", senderID))
	}
	names[senderID] = name
	return name, nil
}
