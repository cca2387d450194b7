package httpkit

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func testContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, rec
}

func TestGetIdentityUnauthenticated(t *testing.T) {
	c, _ := testContext(t)

	id := GetIdentity(c)
	if id.IsAuthenticated() {
		t.Fatal("expected unauthenticated identity without middleware context")
	}
	if id.HasRole("admin") {
		t.Fatal("unauthenticated identity must not carry roles")
	}
}

func TestGetIdentityActorNameFallsBackToUserID(t *testing.T) {
	c, _ := testContext(t)
	userID := uuid.New()
	c.Set(ContextUserIDKey, userID)
	c.Set(ContextRolesKey, []string{"recruiter"})

	id := GetIdentity(c)
	if !id.IsAuthenticated() {
		t.Fatal("expected authenticated identity")
	}
	if id.UserID() != userID {
		t.Fatalf("UserID = %v, want %v", id.UserID(), userID)
	}
	if got := id.ActorName(); got != userID.String() {
		t.Fatalf("ActorName = %q, want user id fallback %q", got, userID.String())
	}
	if !id.HasRole("recruiter") || id.HasRole("admin") {
		t.Fatalf("roles = %v, want recruiter only", id.Roles())
	}
}

func TestGetIdentityPrefersActorNameClaim(t *testing.T) {
	c, _ := testContext(t)
	c.Set(ContextUserIDKey, uuid.New())
	c.Set(ContextActorNameKey, "Dana Recruiter")

	if got := GetIdentity(c).ActorName(); got != "Dana Recruiter" {
		t.Fatalf("ActorName = %q, want claim value", got)
	}
}

func TestMustGetIdentityAbortsWhenUnauthenticated(t *testing.T) {
	c, rec := testContext(t)

	if id := MustGetIdentity(c); id != nil {
		t.Fatal("expected nil identity for unauthenticated request")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	if !c.IsAborted() {
		t.Fatal("expected request to be aborted")
	}
}

func TestMustGetIdentityPassesThrough(t *testing.T) {
	c, rec := testContext(t)
	c.Set(ContextUserIDKey, uuid.New())

	id := MustGetIdentity(c)
	if id == nil || !id.IsAuthenticated() {
		t.Fatal("expected authenticated identity")
	}
	if rec.Code == http.StatusUnauthorized {
		t.Fatal("request must not be rejected")
	}
}
