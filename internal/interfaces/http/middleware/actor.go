package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ActorIDHeader is the header naming the operator performing the request.
// Audit attribution requires it on every mutating call; it is supplied by
// the calling system, never derived here.
const ActorIDHeader = "X-Actor-ID"

const actorIDContextKey = "actor_id"

// ActorID extracts the acting operator from the request header and stores
// it in the gin context. Requests without the header pass through; the
// handlers of mutating routes reject them via GetActorID.
func ActorID() gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw := c.GetHeader(ActorIDHeader); raw != "" {
			if id, err := uuid.Parse(raw); err == nil {
				c.Set(actorIDContextKey, id)
			}
		}
		c.Next()
	}
}

// GetActorID returns the actor id stored by the ActorID middleware.
// The second return is false when the header was missing or malformed.
func GetActorID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(actorIDContextKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := value.(uuid.UUID)
	return id, ok
}
