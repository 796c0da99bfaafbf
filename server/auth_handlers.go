package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/techagentng/clubcore/errors"
	"github.com/techagentng/clubcore/models"
	"github.com/techagentng/clubcore/server/response"
)

func (s *Server) handleSignup() gin.HandlerFunc {
	return func(c *gin.Context) {
		var request models.SignupRequest
		if err := decode(c, &request); err != nil {
			response.JSON(c, "", errors.ErrBadRequest.Status, nil, err)
			return
		}
		userResponse, err := s.AuthService.SignupUser(c.Request.Context(), &request)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "Signup successful", http.StatusCreated, userResponse, nil)
	}
}

func (s *Server) handleLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		var loginRequest models.LoginRequest
		if err := decode(c, &loginRequest); err != nil {
			response.JSON(c, "", errors.ErrBadRequest.Status, nil, err)
			return
		}
		userResponse, err := s.AuthService.LoginUser(c.Request.Context(), &loginRequest)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "login successful", http.StatusOK, userResponse, nil)
	}
}

func (s *Server) handleLogout() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Get("access_token")
		accessToken, _ := token.(string)
		if err := s.AuthService.Logout(c.Request.Context(), accessToken); err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "logout successful", http.StatusOK, nil, nil)
	}
}

func (s *Server) handleShowProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := getUserIDFromContext(c)
		if !ok {
			response.JSON(c, "", http.StatusUnauthorized, nil, errors.ErrUnauthorized)
			return
		}
		profile, err := s.TeamService.GetProfile(c.Request.Context(), userID)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "user details retrieved successfully", http.StatusOK, profile, nil)
	}
}

func (s *Server) handleLookupTeam() gin.HandlerFunc {
	return func(c *gin.Context) {
		team, err := s.TeamService.LookupTeam(c.Request.Context(), c.Query("join_code"))
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "team found", http.StatusOK, team, nil)
	}
}

func (s *Server) handleUsersToMessage() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := getUserIDFromContext(c)
		if !ok {
			response.JSON(c, "", http.StatusUnauthorized, nil, errors.ErrUnauthorized)
			return
		}
		users, err := s.TeamService.UsersToMessage(c.Request.Context(), userID)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "users retrieved successfully", http.StatusOK, users, nil)
	}
}
