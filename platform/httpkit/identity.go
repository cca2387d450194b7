package httpkit

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Identity is the authenticated console user as seen by handlers.
// ActorName is what gets attributed in stage history and activity
// entries, falling back to the user id when the claim is empty.
type Identity interface {
	UserID() uuid.UUID
	ActorName() string
	Roles() []string
	HasRole(role string) bool
	IsAuthenticated() bool
}

type identity struct {
	userID        uuid.UUID
	actorName     string
	roles         []string
	authenticated bool
}

func (i *identity) UserID() uuid.UUID {
	return i.userID
}

func (i *identity) ActorName() string {
	if i.actorName != "" {
		return i.actorName
	}
	return i.userID.String()
}

func (i *identity) Roles() []string {
	return i.roles
}

func (i *identity) HasRole(role string) bool {
	for _, r := range i.roles {
		if r == role {
			return true
		}
	}
	return false
}

func (i *identity) IsAuthenticated() bool {
	return i.authenticated
}

// GetIdentity reads the caller's identity off the request context. A
// request that never passed the auth middleware yields an
// unauthenticated identity, not an error.
func GetIdentity(c *gin.Context) Identity {
	userID, userOK := c.Get(ContextUserIDKey)
	roles, rolesOK := c.Get(ContextRolesKey)

	if !userOK {
		return &identity{authenticated: false}
	}

	uid, ok := userID.(uuid.UUID)
	if !ok {
		return &identity{authenticated: false}
	}

	var roleList []string
	if rolesOK {
		roleList, _ = roles.([]string)
	}

	actorName := c.GetString(ContextActorNameKey)
	return &identity{
		userID:        uid,
		actorName:     actorName,
		roles:         roleList,
		authenticated: true,
	}
}

// MustGetIdentity is GetIdentity for protected routes: it aborts the
// request with a 401 and returns nil when no authenticated user is
// present.
func MustGetIdentity(c *gin.Context) Identity {
	id := GetIdentity(c)
	if !id.IsAuthenticated() {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return nil
	}
	return id
}
