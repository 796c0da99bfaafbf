package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/techagentng/clubcore/errors"
	"github.com/techagentng/clubcore/models"
	"github.com/techagentng/clubcore/server/response"
)

func (s *Server) handleListMyEvents() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := getUserIDFromContext(c)
		if !ok {
			response.JSON(c, "", http.StatusUnauthorized, nil, errors.ErrUnauthorized)
			return
		}
		date, err := eventDateQuery(c)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		events, err := s.EventService.ListMyEvents(c.Request.Context(), userID, date, models.EventRange(c.Query("date_option")))
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "events retrieved successfully", http.StatusOK, events, nil)
	}
}

func (s *Server) handleCreateEvent() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := getUserIDFromContext(c)
		if !ok {
			response.JSON(c, "", http.StatusUnauthorized, nil, errors.ErrUnauthorized)
			return
		}
		var request models.EventRequest
		if err := decode(c, &request); err != nil {
			response.JSON(c, "", errors.ErrBadRequest.Status, nil, err)
			return
		}
		event, err := s.EventService.CreateEvent(c.Request.Context(), userID, &request)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "event created", http.StatusCreated, event, nil)
	}
}

func (s *Server) handleUpdateEvent() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := getUserIDFromContext(c)
		if !ok {
			response.JSON(c, "", http.StatusUnauthorized, nil, errors.ErrUnauthorized)
			return
		}
		eventID, err := eventIDParam(c)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		var request models.EventRequest
		if err := decode(c, &request); err != nil {
			response.JSON(c, "", errors.ErrBadRequest.Status, nil, err)
			return
		}
		event, err := s.EventService.UpdateEvent(c.Request.Context(), userID, eventID, &request)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "event updated", http.StatusOK, event, nil)
	}
}

func (s *Server) handleDeleteEvent() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := getUserIDFromContext(c)
		if !ok {
			response.JSON(c, "", http.StatusUnauthorized, nil, errors.ErrUnauthorized)
			return
		}
		eventID, err := eventIDParam(c)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		if err := s.EventService.DeleteEvent(c.Request.Context(), userID, eventID); err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "event deleted", http.StatusOK, nil, nil)
	}
}
