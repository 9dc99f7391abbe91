package middleware

import (
	"context"
	"net/http"
	"strings"

	"go-timers/pkg/config"
	"go-timers/pkg/permissions"

	"github.com/danielgtaylor/huma/v2"
	"github.com/golang-jwt/jwt/v5"
)

// AuthContextKey key type for storing user info in context
type AuthContextKey string

const UserContextKey = AuthContextKey("authenticated_user")

// SessionCookieName is the cookie the identity provider sets after login.
const SessionCookieName = "timers_session"

// AuthenticatedUser is the principal the identity boundary supplies. The
// core never authenticates against EVE SSO itself; it only verifies the
// signed claims handed over by the identity provider.
type AuthenticatedUser struct {
	CharacterName string
	Roles         []string
}

// SessionClaims are the JWT claims issued by the identity provider.
type SessionClaims struct {
	CharacterName string   `json:"name"`
	Roles         []string `json:"roles"`
	jwt.RegisteredClaims
}

// JWTAuthenticator resolves the session token into an AuthenticatedUser.
type JWTAuthenticator struct {
	secret []byte
}

func NewJWTAuthenticator() *JWTAuthenticator {
	return &JWTAuthenticator{
		secret: []byte(config.MustGetEnv("JWT_SECRET")),
	}
}

// Middleware extracts and verifies the session token. Requests without a
// valid token proceed unauthenticated; permission checks happen per route.
func (a *JWTAuthenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString := extractToken(r)
		if tokenString == "" {
			next.ServeHTTP(w, r)
			return
		}

		claims := &SessionClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return a.secret, nil
		})
		if err != nil || !token.Valid {
			next.ServeHTTP(w, r)
			return
		}

		name := claims.CharacterName
		if name == "" {
			name = claims.Subject
		}

		user := &AuthenticatedUser{
			CharacterName: name,
			Roles:         claims.Roles,
		}

		ctx := context.WithValue(r.Context(), UserContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func extractToken(r *http.Request) string {
	if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		return cookie.Value
	}
	return ""
}

// GetAuthenticatedUser retrieves the authenticated user from the context.
func GetAuthenticatedUser(ctx context.Context) (*AuthenticatedUser, bool) {
	user, ok := ctx.Value(UserContextKey).(*AuthenticatedUser)
	return user, ok
}

// RequirePermission returns the authenticated user when one of their roles
// grants the permission, otherwise a Huma 401/403 error for the route layer.
func RequirePermission(ctx context.Context, pm *permissions.Manager, permission string) (*AuthenticatedUser, error) {
	user, ok := GetAuthenticatedUser(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Authentication required")
	}

	if !pm.HasPermission(user.Roles, permission) {
		return nil, huma.Error403Forbidden("Missing permission: " + permission)
	}

	return user, nil
}

// HasPermission is the non-failing form of RequirePermission, for routes
// that degrade rather than reject (for example hiding secret timers).
func HasPermission(ctx context.Context, pm *permissions.Manager, permission string) bool {
	user, ok := GetAuthenticatedUser(ctx)
	if !ok {
		return false
	}
	return pm.HasPermission(user.Roles, permission)
}
