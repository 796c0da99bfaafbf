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
	"github.com/techagentng/clubcore/logger"
	"github.com/techagentng/clubcore/models"
	"go.uber.org/zap"
)

const unknownUserName = "UNKNOWN"

// ConversationService creates, lists and marks conversations read.
type ConversationService interface {
	CreateDirectThread(ctx context.Context, requesterID, peerID string) (*models.DirectConversationResponse, error)
	CreateGroupThread(ctx context.Context, requesterID, title string, memberIDs []string, groupType int) (*models.GroupConversationResponse, error)
	ListMyThreads(ctx context.Context, userID string) ([]models.ConversationSummary, error)
	MarkDirectRead(ctx context.Context, conversationID uuid.UUID, userID string) (int64, error)
	MarkGroupSeen(ctx context.Context, conversationID uuid.UUID, userID string) error
	GetConversationMembers(ctx context.Context, conversationID uuid.UUID, conversationType models.ConversationType, requesterID string) ([]models.UserLookup, error)
}

type conversationService struct {
	Config           *config.Config
	conversationRepo db.ConversationRepository
	messageRepo      db.MessageRepository
	validator        AccessValidator
	users            UserDirectory
	teams            TeamDirectory
	now              func() time.Time
}

func NewConversationService(conversationRepo db.ConversationRepository, messageRepo db.MessageRepository, validator AccessValidator,
	users UserDirectory, teams TeamDirectory, conf *config.Config) ConversationService {
	return &conversationService{
		Config:           conf,
		conversationRepo: conversationRepo,
		messageRepo:      messageRepo,
		validator:        validator,
		users:            users,
		teams:            teams,
		now:              func() time.Time { return time.Now().UTC() },
	}
}

func internalError(msg string, err error, fields ...zap.Field) error {
	logger.Error(msg, append(fields, zap.Error(err))...)
	return apiError.ErrInternalServerError
}

func (s *conversationService) CreateDirectThread(ctx context.Context, requesterID, peerID string) (*models.DirectConversationResponse, error) {
	if requesterID == peerID {
		return nil, apiError.InvalidArgument("cannot start a conversation with yourself")
	}

	peerName, err := s.users.DisplayName(ctx, peerID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, apiError.NotFound("user2 was not found")
		}
		return nil, internalError("resolve peer failed", err, zap.String("peer_id", peerID))
	}

	_, err = s.conversationRepo.FindDirectConversationByPair(ctx, requesterID, peerID)
	if err == nil {
		return nil, apiError.Conflict("a direct conversation already exists between these two users")
	}
	if !db.IsNotFound(err) {
		return nil, internalError("lookup direct conversation failed", err)
	}

	conversation := &models.DirectConversation{
		ID:        uuid.New(),
		User1ID:   requesterID,
		User2ID:   peerID,
		CreatedAt: s.now(),
	}
	if err := s.conversationRepo.CreateDirectConversation(ctx, conversation); err != nil {
		if errors.Is(err, db.ErrDuplicate) {
			return nil, apiError.Conflict("a direct conversation already exists between these two users")
		}
		return nil, internalError("create direct conversation failed", err)
	}

	return &models.DirectConversationResponse{
		ConversationID: conversation.ID,
		User2ID:        peerID,
		User2Name:      peerName,
		CreatedAt:      conversation.CreatedAt,
	}, nil
}

func (s *conversationService) CreateGroupThread(ctx context.Context, requesterID, title string, memberIDs []string, groupType int) (*models.GroupConversationResponse, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, apiError.InvalidArgument("group name is required")
	}
	if utf8.RuneCountInString(title) > models.MaxGroupTitleLength {
		return nil, apiError.InvalidArgument(fmt.Sprintf("group name cannot be longer than %d characters", models.MaxGroupTitleLength))
	}
	if groupType == 0 {
		groupType = models.GroupTypeConversation
	}
	if groupType != models.GroupTypeConversation && groupType != models.GroupTypeMessageBlast {
		return nil, apiError.InvalidArgument("unknown group type")
	}

	creatorName, err := s.users.DisplayName(ctx, requesterID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, apiError.Unauthorized("user was not found")
		}
		return nil, internalError("resolve creator failed", err, zap.String("user_id", requesterID))
	}

	conversation := &models.GroupConversation{
		ID:        uuid.New(),
		CreatorID: requesterID,
		Title:     title,
		GroupType: groupType,
		CreatedAt: s.now(),
	}
	members := map[string]string{requesterID: creatorName}
	memberIDs = dedupeMembers(requesterID, memberIDs)

	err = s.conversationRepo.WithTx(ctx, func(tx db.ConversationRepository) error {
		requesterTeam, err := s.teams.TeamIDForUser(ctx, requesterID)
		if err != nil {
			return internalError("resolve requester team failed", err, zap.String("user_id", requesterID))
		}
		for _, id := range memberIDs[1:] {
			name, err := s.users.DisplayName(ctx, id)
			if err != nil {
				if errors.Is(err, ErrUserNotFound) {
					return apiError.NotFound(fmt.Sprintf("user %s was not found", id))
				}
				return internalError("resolve group member failed", err, zap.String("user_id", id))
			}
			team, err := s.teams.TeamIDForUser(ctx, id)
			if err != nil {
				if errors.Is(err, ErrUserNotFound) {
					return apiError.NotFound(fmt.Sprintf("user %s was not found", id))
				}
				return internalError("resolve member team failed", err, zap.String("user_id", id))
			}
			if team != requesterTeam {
				return apiError.InvalidArgument(fmt.Sprintf("user %s is not on your team", id))
			}
			members[id] = name
		}
		if err := tx.CreateGroupConversation(ctx, conversation, memberIDs); err != nil {
			return internalError("create group conversation failed", err, zap.String("conversation_id", conversation.ID.String()))
		}
		return nil
	})
	if err != nil {
		var apiErr *apiError.Error
		if errors.As(err, &apiErr) {
			return nil, apiErr
		}
		return nil, internalError("group conversation transaction failed", err)
	}

	return &models.GroupConversationResponse{
		ConversationID: conversation.ID,
		GroupName:      conversation.Title,
		GroupType:      conversation.GroupType,
		CreatorID:      requesterID,
		CreatorName:    creatorName,
		Users:          members,
	}, nil
}

// dedupeMembers returns the creator followed by every distinct other member id,
// in request order.
func dedupeMembers(creatorID string, memberIDs []string) []string {
	seen := map[string]bool{creatorID: true}
	out := []string{creatorID}
	for _, id := range memberIDs {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

func (s *conversationService) ListMyThreads(ctx context.Context, userID string) ([]models.ConversationSummary, error) {
	now := s.now()
	threads := []models.ConversationSummary{}
	listed := map[uuid.UUID]bool{}

	directs, err := s.conversationRepo.ListDirectConversations(ctx, userID)
	if err != nil {
		return nil, internalError("list direct conversations failed", err, zap.String("user_id", userID))
	}
	peerIDs := make([]string, 0, len(directs))
	for _, dc := range directs {
		peerIDs = append(peerIDs, dc.OtherParticipant(userID))
	}
	peerNames, err := s.users.DisplayNames(ctx, peerIDs)
	if err != nil {
		return nil, internalError("resolve peers failed", err, zap.String("user_id", userID))
	}
	for _, dc := range directs {
		if listed[dc.ID] {
			continue
		}
		listed[dc.ID] = true

		title, ok := peerNames[dc.OtherParticipant(userID)]
		if !ok {
			title = unknownUserName
		}

		summary := models.ConversationSummary{
			ConversationID:    dc.ID,
			ConversationType:  models.ConversationDirect,
			ConversationTitle: title,
		}
		last, err := s.messageRepo.LastDirectMessage(ctx, dc.ID)
		if err != nil {
			return nil, internalError("last direct message failed", err, zap.String("conversation_id", dc.ID.String()))
		}
		if last != nil {
			ts := FormatLastMessageTime(last.SentAt, now)
			summary.LastMessageTimestamp = &ts
			summary.HasUnreadMessages = last.SenderID != userID && !last.Seen
		}
		threads = append(threads, summary)
	}

	groups, err := s.conversationRepo.ListGroupConversations(ctx, userID)
	if err != nil {
		return nil, internalError("list group conversations failed", err, zap.String("user_id", userID))
	}
	for _, gc := range groups {
		if listed[gc.ID] {
			continue
		}
		listed[gc.ID] = true

		summary := models.ConversationSummary{
			ConversationID:    gc.ID,
			ConversationType:  models.ConversationGroup,
			ConversationTitle: gc.Title,
		}
		last, err := s.messageRepo.LastGroupMessage(ctx, gc.ID)
		if err != nil {
			return nil, internalError("last group message failed", err, zap.String("conversation_id", gc.ID.String()))
		}
		if last != nil {
			ts := FormatLastMessageTime(last.SentAt, now)
			summary.LastMessageTimestamp = &ts
		}
		status, err := s.messageRepo.FindGroupSeenStatus(ctx, gc.ID, userID)
		if err != nil {
			return nil, internalError("group seen status failed", err, zap.String("conversation_id", gc.ID.String()))
		}
		summary.HasUnreadMessages = status != nil && !status.Seen
		threads = append(threads, summary)
	}

	return threads, nil
}

func (s *conversationService) MarkDirectRead(ctx context.Context, conversationID uuid.UUID, userID string) (int64, error) {
	if !s.validator.CanAccessDirect(ctx, conversationID, userID) {
		return 0, apiError.Unauthorized("you are not part of this direct conversation")
	}
	updated, err := s.messageRepo.MarkDirectMessagesSeen(ctx, conversationID, userID)
	if err != nil {
		return 0, internalError("mark direct messages seen failed", err, zap.String("conversation_id", conversationID.String()))
	}
	return updated, nil
}

func (s *conversationService) MarkGroupSeen(ctx context.Context, conversationID uuid.UUID, userID string) error {
	if !s.validator.CanAccessGroup(ctx, conversationID, userID) {
		return apiError.Unauthorized("you are not part of this group conversation")
	}
	updated, err := s.messageRepo.MarkGroupSeen(ctx, conversationID, userID)
	if err != nil {
		return internalError("mark group seen failed", err, zap.String("conversation_id", conversationID.String()))
	}
	if updated == 0 {
		logger.Debug("no seen status row for member",
			zap.String("conversation_id", conversationID.String()),
			zap.String("user_id", userID))
	}
	return nil
}

func (s *conversationService) GetConversationMembers(ctx context.Context, conversationID uuid.UUID, conversationType models.ConversationType, requesterID string) ([]models.UserLookup, error) {
	var ids []string
	// direct participants always appear, group members that no longer resolve are skipped
	keepUnknown := false
	switch conversationType {
	case models.ConversationDirect:
		if !s.validator.CanAccessDirect(ctx, conversationID, requesterID) {
			return nil, apiError.Unauthorized("you are not part of this direct conversation")
		}
		dc, err := s.conversationRepo.FindDirectConversation(ctx, conversationID)
		if err != nil {
			return nil, internalError("find direct conversation failed", err, zap.String("conversation_id", conversationID.String()))
		}
		ids = []string{dc.User1ID, dc.User2ID}
		keepUnknown = true
	case models.ConversationGroup:
		if !s.validator.CanAccessGroup(ctx, conversationID, requesterID) {
			return nil, apiError.Unauthorized("you are not part of this group conversation")
		}
		memberIDs, err := s.conversationRepo.ListGroupMemberIDs(ctx, conversationID)
		if err != nil {
			return nil, internalError("list group members failed", err, zap.String("conversation_id", conversationID.String()))
		}
		ids = memberIDs
	default:
		return nil, apiError.InvalidArgument("unknown conversation type")
	}

	names, err := s.users.DisplayNames(ctx, ids)
	if err != nil {
		return nil, internalError("resolve members failed", err, zap.String("conversation_id", conversationID.String()))
	}
	members := []models.UserLookup{}
	for _, id := range ids {
		name, ok := names[id]
		if !ok {
			if !keepUnknown {
				continue
			}
			name = unknownUserName
		}
		members = append(members, models.UserLookup{UserID: id, Name: name})
	}
	return members, nil
}
