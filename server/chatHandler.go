package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/techagentng/clubcore/errors"
	"github.com/techagentng/clubcore/models"
	"github.com/techagentng/clubcore/server/response"
)

func (s *Server) handleListThreads() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := getUserIDFromContext(c)
		if !ok {
			response.JSON(c, "", http.StatusUnauthorized, nil, errors.ErrUnauthorized)
			return
		}
		threads, err := s.ConversationService.ListMyThreads(c.Request.Context(), userID)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "threads retrieved successfully", http.StatusOK, threads, nil)
	}
}

func (s *Server) handleCreateDirectThread() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := getUserIDFromContext(c)
		if !ok {
			response.JSON(c, "", http.StatusUnauthorized, nil, errors.ErrUnauthorized)
			return
		}
		var request models.NewDirectConversationRequest
		if err := decode(c, &request); err != nil {
			response.JSON(c, "", errors.ErrBadRequest.Status, nil, err)
			return
		}
		conversation, err := s.ConversationService.CreateDirectThread(c.Request.Context(), userID, request.User2ID)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "direct conversation created", http.StatusCreated, conversation, nil)
	}
}

func (s *Server) handleCreateGroupThread() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := getUserIDFromContext(c)
		if !ok {
			response.JSON(c, "", http.StatusUnauthorized, nil, errors.ErrUnauthorized)
			return
		}
		var request models.NewGroupConversationRequest
		if err := decode(c, &request); err != nil {
			response.JSON(c, "", errors.ErrBadRequest.Status, nil, err)
			return
		}
		conversation, err := s.ConversationService.CreateGroupThread(c.Request.Context(), userID, request.GroupName, request.UserIDs, request.GroupType)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "group conversation created", http.StatusCreated, conversation, nil)
	}
}

func (s *Server) handleListDirectMessages() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := getUserIDFromContext(c)
		if !ok {
			response.JSON(c, "", http.StatusUnauthorized, nil, errors.ErrUnauthorized)
			return
		}
		conversationID, err := conversationIDParam(c)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		page, err := paginationQuery(c)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		messages, err := s.MessagingService.ListDirectMessages(c.Request.Context(), conversationID, userID, page)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "messages retrieved successfully", http.StatusOK, messages, nil)
	}
}

func (s *Server) handleSendDirectMessage() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := getUserIDFromContext(c)
		if !ok {
			response.JSON(c, "", http.StatusUnauthorized, nil, errors.ErrUnauthorized)
			return
		}
		conversationID, err := conversationIDParam(c)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		var request models.SendMessageRequest
		if err := decode(c, &request); err != nil {
			response.JSON(c, "", errors.ErrBadRequest.Status, nil, err)
			return
		}
		message, err := s.MessagingService.SendDirectMessage(c.Request.Context(), conversationID, userID, request.Message)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "message sent", http.StatusCreated, message, nil)
	}
}

func (s *Server) handleMarkDirectRead() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := getUserIDFromContext(c)
		if !ok {
			response.JSON(c, "", http.StatusUnauthorized, nil, errors.ErrUnauthorized)
			return
		}
		conversationID, err := conversationIDParam(c)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		updated, err := s.ConversationService.MarkDirectRead(c.Request.Context(), conversationID, userID)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "messages marked as read", http.StatusOK, models.MarkReadResponse{
			ConversationID: conversationID,
			Updated:        updated,
		}, nil)
	}
}

func (s *Server) handleListGroupMessages() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := getUserIDFromContext(c)
		if !ok {
			response.JSON(c, "", http.StatusUnauthorized, nil, errors.ErrUnauthorized)
			return
		}
		conversationID, err := conversationIDParam(c)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		page, err := paginationQuery(c)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		messages, err := s.MessagingService.ListGroupMessages(c.Request.Context(), conversationID, userID, page)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "messages retrieved successfully", http.StatusOK, messages, nil)
	}
}

func (s *Server) handleSendGroupMessage() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := getUserIDFromContext(c)
		if !ok {
			response.JSON(c, "", http.StatusUnauthorized, nil, errors.ErrUnauthorized)
			return
		}
		conversationID, err := conversationIDParam(c)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		var request models.SendMessageRequest
		if err := decode(c, &request); err != nil {
			response.JSON(c, "", errors.ErrBadRequest.Status, nil, err)
			return
		}
		message, err := s.MessagingService.SendGroupMessage(c.Request.Context(), conversationID, userID, request.Message)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "message sent", http.StatusCreated, message, nil)
	}
}

func (s *Server) handleMarkGroupSeen() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := getUserIDFromContext(c)
		if !ok {
			response.JSON(c, "", http.StatusUnauthorized, nil, errors.ErrUnauthorized)
			return
		}
		conversationID, err := conversationIDParam(c)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		if err := s.ConversationService.MarkGroupSeen(c.Request.Context(), conversationID, userID); err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "conversation marked as seen", http.StatusOK, nil, nil)
	}
}

func (s *Server) handleGetConversationMembers(conversationType models.ConversationType) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := getUserIDFromContext(c)
		if !ok {
			response.JSON(c, "", http.StatusUnauthorized, nil, errors.ErrUnauthorized)
			return
		}
		conversationID, err := conversationIDParam(c)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		members, err := s.ConversationService.GetConversationMembers(c.Request.Context(), conversationID, conversationType, userID)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "members retrieved successfully", http.StatusOK, members, nil)
	}
}
