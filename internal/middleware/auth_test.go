package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const testSecret = "test-secret"

func signToken(t *testing.T, method jwt.SigningMethod, claims jwt.MapClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(method, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return signed
}

func runGuard(handler gin.HandlerFunc, authorization string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/user/cart", nil)
	if authorization != "" {
		c.Request.Header.Set("Authorization", authorization)
	}
	handler(c)
	return c, w
}

func TestUserAuthAcceptsValidTokenAndSetsUserID(t *testing.T) {
	userID := primitive.NewObjectID()
	token := signToken(t, jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": userID.Hex(),
		"role":   RoleUser,
		"exp":    time.Now().Add(time.Minute).Unix(),
	})

	c, w := runGuard(UserAuth(testSecret), "Bearer "+token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected pass, got status %d: %s", w.Code, w.Body.String())
	}

	value, ok := c.Get("userId")
	if !ok {
		t.Fatal("expected userId in context")
	}
	if got, ok := value.(primitive.ObjectID); !ok || got != userID {
		t.Fatalf("expected userId %s, got %v", userID.Hex(), value)
	}
}

func TestUserAuthRejectsMissingAndMalformedHeaders(t *testing.T) {
	for _, header := range []string{"", "Bearer", "Token abc", "Bearer "} {
		_, w := runGuard(UserAuth(testSecret), header)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: expected 401, got %d", header, w.Code)
		}
	}
}

func TestUserAuthRejectsExpiredToken(t *testing.T) {
	token := signToken(t, jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": primitive.NewObjectID().Hex(),
		"exp":    time.Now().Add(-time.Minute).Unix(),
	})

	_, w := runGuard(UserAuth(testSecret), "Bearer "+token)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for expired token, got %d", w.Code)
	}
}

func TestUserAuthRejectsTokenWithoutUserID(t *testing.T) {
	token := signToken(t, jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Minute).Unix(),
	})

	_, w := runGuard(UserAuth(testSecret), "Bearer "+token)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for missing userId claim, got %d", w.Code)
	}
}

func TestAdminAuthEnforcesRole(t *testing.T) {
	userToken := signToken(t, jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": primitive.NewObjectID().Hex(),
		"role":   RoleUser,
		"exp":    time.Now().Add(time.Minute).Unix(),
	})
	adminToken := signToken(t, jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": primitive.NewObjectID().Hex(),
		"role":   RoleAdmin,
		"exp":    time.Now().Add(time.Minute).Unix(),
	})

	if _, w := runGuard(AdminAuth(testSecret), "Bearer "+userToken); w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for user role, got %d", w.Code)
	}
	if _, w := runGuard(AdminAuth(testSecret), "Bearer "+adminToken); w.Code != http.StatusOK {
		t.Fatalf("expected pass for admin role, got %d", w.Code)
	}
}
