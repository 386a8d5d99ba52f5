package server

import (
	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
)

const (
	contextPrincipalIDKey = "principal_id"
	contextRoleKey        = "role"
)

func (s *Server) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := s.sessions.ReadToken(c)
		if !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		sess, err := s.authsvc.Authenticate(c.Request.Context(), token)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		c.Set(contextPrincipalIDKey, sess.PrincipalID)
		c.Set(contextRoleKey, sess.Role)
		c.Next()
	}
}

// AuthOptional attaches the session principal when a valid token is
// presented but lets anonymous requests through. Dispensers post
// purchases without a session.
func (s *Server) AuthOptional() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := s.sessions.ReadToken(c)
		if !ok {
			c.Next()
			return
		}

		sess, err := s.authsvc.Authenticate(c.Request.Context(), token)
		if err != nil {
			c.Next()
			return
		}

		c.Set(contextPrincipalIDKey, sess.PrincipalID)
		c.Set(contextRoleKey, sess.Role)
		c.Next()
	}
}

// principalID returns the authenticated account id. Only meaningful
// behind AuthRequired or AuthOptional.
func principalID(c *gin.Context) (snowflake.ID, bool) {
	raw, ok := c.Get(contextPrincipalIDKey)
	if !ok {
		return 0, false
	}
	id, ok := raw.(snowflake.ID)
	return id, ok
}
