package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/techagentng/clubcore/db"
	"github.com/techagentng/clubcore/logger"
	"go.uber.org/zap"
)

// AccessValidator gates reads and writes on a conversation to its participants.
// It fails closed: a missing conversation, a non participant and a storage
// failure all come back as false.
type AccessValidator interface {
	CanAccessDirect(ctx context.Context, conversationID uuid.UUID, userID string) bool
	CanAccessGroup(ctx context.Context, conversationID uuid.UUID, userID string) bool
}

type accessResult int

const (
	accessGranted accessResult = iota
	accessDenied
	accessError
)

type accessValidator struct {
	conversationRepo db.ConversationRepository
}

func NewAccessValidator(conversationRepo db.ConversationRepository) AccessValidator {
	return &accessValidator{conversationRepo: conversationRepo}
}

func (v *accessValidator) CanAccessDirect(ctx context.Context, conversationID uuid.UUID, userID string) bool {
	result, err := v.checkDirect(ctx, conversationID, userID)
	return v.allow("direct", conversationID, userID, result, err)
}

func (v *accessValidator) CanAccessGroup(ctx context.Context, conversationID uuid.UUID, userID string) bool {
	result, err := v.checkGroup(ctx, conversationID, userID)
	return v.allow("group", conversationID, userID, result, err)
}

func (v *accessValidator) checkDirect(ctx context.Context, conversationID uuid.UUID, userID string) (accessResult, error) {
	conversation, err := v.conversationRepo.FindDirectConversation(ctx, conversationID)
	if err != nil {
		if db.IsNotFound(err) {
			return accessDenied, nil
		}
		return accessError, err
	}
	if !conversation.HasParticipant(userID) {
		return accessDenied, nil
	}
	return accessGranted, nil
}

func (v *accessValidator) checkGroup(ctx context.Context, conversationID uuid.UUID, userID string) (accessResult, error) {
	if _, err := v.conversationRepo.FindGroupConversation(ctx, conversationID); err != nil {
		if db.IsNotFound(err) {
			return accessDenied, nil
		}
		return accessError, err
	}
	member, err := v.conversationRepo.IsGroupMember(ctx, conversationID, userID)
	if err != nil {
		return accessError, err
	}
	if !member {
		return accessDenied, nil
	}
	return accessGranted, nil
}

func (v *accessValidator) allow(kind string, conversationID uuid.UUID, userID string, result accessResult, err error) bool {
	if result == accessError {
		logger.Error("conversation access check failed, denying",
			zap.String("kind", kind),
			zap.String("conversation_id", conversationID.String()),
			zap.String("user_id", userID),
			zap.Error(err))
	}
	return result == accessGranted
}
