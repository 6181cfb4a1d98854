package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type contextKey string

const staffContextKey contextKey = "stayhubStaff"

// ContextStaff represents the authenticated operator stored in the request context.
type ContextStaff struct {
	ID      string
	Email   string
	IsAdmin bool
}

// Middleware validates bearer tokens and injects the authenticated operator.
func Middleware(service *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(401, gin.H{"error": "missing authorization header"})
			return
		}

		token := extractBearerToken(authHeader)
		if token == "" {
			c.AbortWithStatusJSON(401, gin.H{"error": "invalid authorization header"})
			return
		}

		claims, err := service.ValidateAccessToken(token)
		if err != nil {
			c.AbortWithStatusJSON(401, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(string(staffContextKey), ContextStaff{
			ID:      claims.StaffID.String(),
			Email:   claims.Email,
			IsAdmin: claims.IsAdmin,
		})

		c.Next()
	}
}

// CurrentStaff extracts the authenticated operator from the context.
func CurrentStaff(c *gin.Context) (ContextStaff, bool) {
	value, exists := c.Get(string(staffContextKey))
	if !exists {
		return ContextStaff{}, false
	}
	staff, ok := value.(ContextStaff)
	return staff, ok
}

// RequireStaff fetches the authenticated operator and parses the identifier.
func RequireStaff(c *gin.Context) (uuid.UUID, ContextStaff, bool) {
	staff, ok := CurrentStaff(c)
	if !ok {
		return uuid.Nil, ContextStaff{}, false
	}
	id, err := uuid.Parse(staff.ID)
	if err != nil {
		return uuid.Nil, ContextStaff{}, false
	}
	return id, staff, true
}

func extractBearerToken(header string) string {
	if !strings.HasPrefix(strings.ToLower(header), "bearer ") {
		return ""
	}
	return strings.TrimSpace(header[7:])
}
