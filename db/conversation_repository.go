package db

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/techagentng/clubcore/models"
	"gorm.io/gorm"
)

// ConversationRepository persists direct and group conversations and group membership.
type ConversationRepository interface {
	CreateDirectConversation(ctx context.Context, conversation *models.DirectConversation) error
	FindDirectConversation(ctx context.Context, id uuid.UUID) (*models.DirectConversation, error)
	FindDirectConversationByPair(ctx context.Context, userA, userB string) (*models.DirectConversation, error)
	ListDirectConversations(ctx context.Context, userID string) ([]models.DirectConversation, error)

	// CreateGroupConversation writes the conversation, one member row and one seen row
	// (seen = true) per member. Call it through WithTx so the rows land together.
	CreateGroupConversation(ctx context.Context, conversation *models.GroupConversation, memberIDs []string) error
	FindGroupConversation(ctx context.Context, id uuid.UUID) (*models.GroupConversation, error)
	IsGroupMember(ctx context.Context, conversationID uuid.UUID, userID string) (bool, error)
	ListGroupConversations(ctx context.Context, userID string) ([]models.GroupConversation, error)
	ListGroupMemberIDs(ctx context.Context, conversationID uuid.UUID) ([]string, error)

	// WithTx runs fn against a repository bound to a single transaction. The
	// transaction commits when fn returns nil and rolls back otherwise.
	WithTx(ctx context.Context, fn func(tx ConversationRepository) error) error
}

type conversationRepo struct {
	DB *gorm.DB
}

func NewConversationRepo(db *GormDB) ConversationRepository {
	return &conversationRepo{db.DB}
}

func (r *conversationRepo) WithTx(ctx context.Context, fn func(tx ConversationRepository) error) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&conversationRepo{tx})
	})
}

func (r *conversationRepo) CreateDirectConversation(ctx context.Context, conversation *models.DirectConversation) error {
	conversation.PairKey = models.DirectPairKey(conversation.User1ID, conversation.User2ID)
	if err := r.DB.WithContext(ctx).Create(conversation).Error; err != nil {
		if isDuplicateKey(err) {
			return errors.Wrap(ErrDuplicate, "create direct conversation")
		}
		return errors.Wrap(err, "create direct conversation")
	}
	return nil
}

func (r *conversationRepo) FindDirectConversation(ctx context.Context, id uuid.UUID) (*models.DirectConversation, error) {
	conversation := &models.DirectConversation{}
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(conversation).Error; err != nil {
		return nil, errors.Wrapf(err, "find direct conversation %s", id)
	}
	return conversation, nil
}

// FindDirectConversationByPair looks the pair up in both orderings.
func (r *conversationRepo) FindDirectConversationByPair(ctx context.Context, userA, userB string) (*models.DirectConversation, error) {
	conversation := &models.DirectConversation{}
	err := r.DB.WithContext(ctx).
		Where("(user1_id = ? AND user2_id = ?) OR (user1_id = ? AND user2_id = ?)", userA, userB, userB, userA).
		First(conversation).Error
	if err != nil {
		return nil, errors.Wrap(err, "find direct conversation by pair")
	}
	return conversation, nil
}

func (r *conversationRepo) ListDirectConversations(ctx context.Context, userID string) ([]models.DirectConversation, error) {
	var conversations []models.DirectConversation
	err := r.DB.WithContext(ctx).
		Where("user1_id = ? OR user2_id = ?", userID, userID).
		Order("created_at").
		Find(&conversations).Error
	if err != nil {
		return nil, errors.Wrap(err, "list direct conversations")
	}
	return conversations, nil
}

func (r *conversationRepo) CreateGroupConversation(ctx context.Context, conversation *models.GroupConversation, memberIDs []string) error {
	db := r.DB.WithContext(ctx)
	if err := db.Create(conversation).Error; err != nil {
		return errors.Wrap(err, "create group conversation")
	}
	if len(memberIDs) == 0 {
		return nil
	}

	members := make([]models.ConversationMember, 0, len(memberIDs))
	seen := make([]models.GroupSeenStatus, 0, len(memberIDs))
	for _, id := range memberIDs {
		members = append(members, models.ConversationMember{ConversationID: conversation.ID, UserID: id})
		seen = append(seen, models.GroupSeenStatus{ConversationID: conversation.ID, UserID: id, Seen: true})
	}
	if err := db.Create(&members).Error; err != nil {
		return errors.Wrap(err, "create conversation members")
	}
	if err := db.Create(&seen).Error; err != nil {
		return errors.Wrap(err, "create group seen statuses")
	}
	return nil
}

func (r *conversationRepo) FindGroupConversation(ctx context.Context, id uuid.UUID) (*models.GroupConversation, error) {
	conversation := &models.GroupConversation{}
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(conversation).Error; err != nil {
		return nil, errors.Wrapf(err, "find group conversation %s", id)
	}
	return conversation, nil
}

func (r *conversationRepo) IsGroupMember(ctx context.Context, conversationID uuid.UUID, userID string) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&models.ConversationMember{}).
		Where("conversation_id = ? AND user_id = ?", conversationID, userID).
		Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "count conversation members")
	}
	return count > 0, nil
}

// ListGroupConversations returns groups the user created or belongs to, once each.
func (r *conversationRepo) ListGroupConversations(ctx context.Context, userID string) ([]models.GroupConversation, error) {
	var conversations []models.GroupConversation
	db := r.DB.WithContext(ctx)
	memberOf := db.Model(&models.ConversationMember{}).Select("conversation_id").Where("user_id = ?", userID)
	err := db.
		Where("creator_id = ? OR id IN (?)", userID, memberOf).
		Order("created_at").
		Find(&conversations).Error
	if err != nil {
		return nil, errors.Wrap(err, "list group conversations")
	}
	return conversations, nil
}

func (r *conversationRepo) ListGroupMemberIDs(ctx context.Context, conversationID uuid.UUID) ([]string, error) {
	var ids []string
	err := r.DB.WithContext(ctx).Model(&models.ConversationMember{}).
		Where("conversation_id = ?", conversationID).
		Order("user_id").
		Pluck("user_id", &ids).Error
	if err != nil {
		return nil, errors.Wrap(err, "list conversation members")
	}
	return ids, nil
}
