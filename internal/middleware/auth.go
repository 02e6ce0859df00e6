package middleware

import (
	"net/http"
	"strings"

	"github.com/mherrera31/app-cierres-caja-sub000/internal/apierror"
	"github.com/mherrera31/app-cierres-caja-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	ClaimsKey = "claims"
)

// JWTClaims are the custom claims the upstream identity service embeds in
// every access token. Token issuance happens elsewhere; this service only
// verifies and reads them.
type JWTClaims struct {
	UserID     string `json:"user_id"`
	Username   string `json:"username"`
	Rol        string `json:"rol"`
	SucursalID string `json:"sucursal_id"`
	jwt.RegisteredClaims
}

// JWTAuth validates the Bearer token on every protected route.
func JWTAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Autenticacion requerida"))
			return
		}

		tokenStr := strings.TrimPrefix(header, "Bearer ")
		claims := &JWTClaims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})

		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Token invalido o expirado"))
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// RequireRole rejects requests whose JWT role is not in the allowed list.
func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		claims, ok := c.MustGet(ClaimsKey).(*JWTClaims)
		if !ok || !allowed[claims.Rol] {
			c.AbortWithStatusJSON(http.StatusForbidden, apierror.New("Permisos insuficientes"))
			return
		}
		c.Next()
	}
}

// GetActor builds the request-scoped actor every service operation receives.
// Malformed ids in the claims yield a zero actor, which no record will match.
func GetActor(c *gin.Context) service.Actor {
	claims, _ := c.MustGet(ClaimsKey).(*JWTClaims)
	if claims == nil {
		return service.Actor{}
	}
	usuarioID, _ := uuid.Parse(claims.UserID)
	sucursalID, _ := uuid.Parse(claims.SucursalID)
	return service.Actor{UsuarioID: usuarioID, SucursalID: sucursalID, Rol: claims.Rol}
}
