package db

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/techagentng/clubcore/models"
	"gorm.io/gorm"
)

// MessageRepository persists messages of both conversation kinds and their seen flags.
type MessageRepository interface {
	CreateDirectMessage(ctx context.Context, message *models.DirectMessage) error
	ListDirectMessages(ctx context.Context, conversationID uuid.UUID, page *models.Pagination) ([]models.DirectMessage, error)
	LastDirectMessage(ctx context.Context, conversationID uuid.UUID) (*models.DirectMessage, error)
	MarkDirectMessagesSeen(ctx context.Context, conversationID uuid.UUID, readerID string) (int64, error)

	// CreateGroupMessage stores the message and flips every other member's seen row
	// to false in one transaction.
	CreateGroupMessage(ctx context.Context, message *models.GroupMessage) error
	ListGroupMessages(ctx context.Context, conversationID uuid.UUID, page *models.Pagination) ([]models.GroupMessage, error)
	LastGroupMessage(ctx context.Context, conversationID uuid.UUID) (*models.GroupMessage, error)
	FindGroupSeenStatus(ctx context.Context, conversationID uuid.UUID, userID string) (*models.GroupSeenStatus, error)
	MarkGroupSeen(ctx context.Context, conversationID uuid.UUID, userID string) (int64, error)
}

type messageRepo struct {
	DB *gorm.DB
}

func NewMessageRepo(db *GormDB) MessageRepository {
	return &messageRepo{db.DB}
}

func paginate(db *gorm.DB, page *models.Pagination) *gorm.DB {
	if page == nil || page.PageSize <= 0 {
		return db
	}
	return db.Offset(page.Offset()).Limit(page.PageSize)
}

func (r *messageRepo) CreateDirectMessage(ctx context.Context, message *models.DirectMessage) error {
	return errors.Wrap(r.DB.WithContext(ctx).Create(message).Error, "create direct message")
}

// ListDirectMessages returns the conversation's messages newest first. A nil page
// returns the whole history.
func (r *messageRepo) ListDirectMessages(ctx context.Context, conversationID uuid.UUID, page *models.Pagination) ([]models.DirectMessage, error) {
	messages := []models.DirectMessage{}
	query := r.DB.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("sent_at DESC")
	if err := paginate(query, page).Find(&messages).Error; err != nil {
		return nil, errors.Wrap(err, "list direct messages")
	}
	return messages, nil
}

// LastDirectMessage returns nil when the conversation has no messages.
func (r *messageRepo) LastDirectMessage(ctx context.Context, conversationID uuid.UUID) (*models.DirectMessage, error) {
	var messages []models.DirectMessage
	err := r.DB.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("sent_at DESC").
		Limit(1).
		Find(&messages).Error
	if err != nil {
		return nil, errors.Wrap(err, "last direct message")
	}
	if len(messages) == 0 {
		return nil, nil
	}
	return &messages[0], nil
}

func (r *messageRepo) MarkDirectMessagesSeen(ctx context.Context, conversationID uuid.UUID, readerID string) (int64, error) {
	result := r.DB.WithContext(ctx).Model(&models.DirectMessage{}).
		Where("conversation_id = ? AND sender_id <> ? AND seen = ?", conversationID, readerID, false).
		Update("seen", true)
	if result.Error != nil {
		return 0, errors.Wrap(result.Error, "mark direct messages seen")
	}
	return result.RowsAffected, nil
}

func (r *messageRepo) CreateGroupMessage(ctx context.Context, message *models.GroupMessage) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(message).Error; err != nil {
			return errors.Wrap(err, "create group message")
		}
		err := tx.Model(&models.GroupSeenStatus{}).
			Where("conversation_id = ? AND user_id <> ?", message.ConversationID, message.SenderID).
			Update("seen", false).Error
		return errors.Wrap(err, "reset group seen statuses")
	})
}

func (r *messageRepo) ListGroupMessages(ctx context.Context, conversationID uuid.UUID, page *models.Pagination) ([]models.GroupMessage, error) {
	messages := []models.GroupMessage{}
	query := r.DB.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("sent_at DESC")
	if err := paginate(query, page).Find(&messages).Error; err != nil {
		return nil, errors.Wrap(err, "list group messages")
	}
	return messages, nil
}

func (r *messageRepo) LastGroupMessage(ctx context.Context, conversationID uuid.UUID) (*models.GroupMessage, error) {
	var messages []models.GroupMessage
	err := r.DB.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("sent_at DESC").
		Limit(1).
		Find(&messages).Error
	if err != nil {
		return nil, errors.Wrap(err, "last group message")
	}
	if len(messages) == 0 {
		return nil, nil
	}
	return &messages[0], nil
}

// FindGroupSeenStatus returns nil when the member has no seen row.
func (r *messageRepo) FindGroupSeenStatus(ctx context.Context, conversationID uuid.UUID, userID string) (*models.GroupSeenStatus, error) {
	var statuses []models.GroupSeenStatus
	err := r.DB.WithContext(ctx).
		Where("conversation_id = ? AND user_id = ?", conversationID, userID).
		Limit(1).
		Find(&statuses).Error
	if err != nil {
		return nil, errors.Wrap(err, "find group seen status")
	}
	if len(statuses) == 0 {
		return nil, nil
	}
	return &statuses[0], nil
}

// MarkGroupSeen sets the member's seen row to true. A missing row updates nothing.
func (r *messageRepo) MarkGroupSeen(ctx context.Context, conversationID uuid.UUID, userID string) (int64, error) {
	result := r.DB.WithContext(ctx).Model(&models.GroupSeenStatus{}).
		Where("conversation_id = ? AND user_id = ?", conversationID, userID).
		Update("seen", true)
	if result.Error != nil {
		return 0, errors.Wrap(result.Error, "mark group seen")
	}
	return result.RowsAffected, nil
}
