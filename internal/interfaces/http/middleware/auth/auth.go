package auth

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/ipede/identity-token-service/internal/infrastructure/jwt"
	"go.uber.org/zap"
)

// AuthMiddleware verifies the session JWT on protected routes, using the
// same RSA key the JWT service signs with
type AuthMiddleware struct {
	tokenAuth *jwtauth.JWTAuth
	logger    *zap.Logger
}

func NewAuthMiddleware(jwtService *jwt.JWT, logger *zap.Logger) *AuthMiddleware {
	tokenAuth := jwtauth.New("RS256", jwtService.GetPrivateKey(), jwtService.GetPublicKey())
	return &AuthMiddleware{
		tokenAuth: tokenAuth,
		logger:    logger,
	}
}

// Verifier extracts and parses the token from the Authorization header
func (m *AuthMiddleware) Verifier(next http.Handler) http.Handler {
	return jwtauth.Verifier(m.tokenAuth)(next)
}

// Authenticator rejects requests without a valid token
func (m *AuthMiddleware) Authenticator(next http.Handler) http.Handler {
	return jwtauth.Authenticator(m.tokenAuth)(next)
}

// RequireRole rejects authenticated requests whose token lacks the role
func (m *AuthMiddleware) RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, claims, err := jwtauth.FromContext(r.Context())
			if err != nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			roles, ok := claims["roles"].([]interface{})
			if !ok {
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}

			for _, userRole := range roles {
				if userRole == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			m.logger.Warn("role check failed", zap.String("required", role))
			http.Error(w, "Forbidden", http.StatusForbidden)
		})
	}
}
