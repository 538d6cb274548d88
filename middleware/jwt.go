package middleware

import (
	"fmt"
	"strings"
	"time"

	"techstorm/config"
	"techstorm/models"
	"techstorm/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// TokenTTL is how long an access token stays valid
const TokenTTL = 24 * time.Hour

// GenerateJWT generates a JWT token for the user
func GenerateJWT(user models.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"userId": user.ID,
		"name":   user.Name,
		"role":   user.Role,
		"email":  user.Email,
		"jti":    uuid.NewString(),
		"iat":    now.Unix(),
		"exp":    now.Add(TokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	jwtSecret := []byte(config.AppConfig.JWTKey)

	return token.SignedString(jwtSecret)
}

func parseToken(c *fiber.Ctx) (jwt.MapClaims, string) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return nil, "Missing or invalid Authorization header"
	}

	if !strings.HasPrefix(authHeader, "Bearer ") {
		return nil, "Invalid Authorization header format"
	}

	tokenString := strings.TrimSpace(authHeader[len("Bearer "):])

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(config.AppConfig.JWTKey), nil
	})
	if err != nil || !token.Valid {
		return nil, "Invalid or expired token"
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, "Invalid token payload"
	}
	if _, ok := claims["userId"].(float64); !ok {
		return nil, "Invalid token payload"
	}

	return claims, ""
}

func storeClaims(c *fiber.Ctx, claims jwt.MapClaims) {
	// JWT numbers decode as float64
	c.Locals("userId", uint(claims["userId"].(float64)))
	role, _ := claims["role"].(string)
	c.Locals("role", role)
	jti, _ := claims["jti"].(string)
	c.Locals("jti", jti)
	if exp, ok := claims["exp"].(float64); ok {
		c.Locals("tokenExp", time.Unix(int64(exp), 0))
	}
}

// JWTMiddleware is a middleware to check for valid JWT token in the request
func JWTMiddleware(c *fiber.Ctx) error {
	claims, problem := parseToken(c)
	if problem != "" {
		return JsonResponse(c, fiber.StatusUnauthorized, false, problem, nil)
	}

	revoked, err := isRevoked(c, claims)
	if err != nil {
		// a revocation we cannot read must not let a logged-out token through
		utils.ReportError(err, "checking token revocation")
		return JsonResponse(c, fiber.StatusServiceUnavailable, false, "Unable to verify session. Please try again shortly.", nil)
	}
	if revoked {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Session has been logged out. Please login again.", nil)
	}

	storeClaims(c, claims)
	return c.Next()
}

func isRevoked(c *fiber.Ctx, claims jwt.MapClaims) (bool, error) {
	jti, _ := claims["jti"].(string)
	if jti == "" {
		return false, nil
	}
	return utils.Revocations().IsRevoked(c.UserContext(), jti)
}

// OptionalJWT sets the caller locals when a valid, unrevoked token is present and never rejects
func OptionalJWT(c *fiber.Ctx) error {
	claims, problem := parseToken(c)
	if problem != "" {
		return c.Next()
	}
	if revoked, err := isRevoked(c, claims); err != nil || revoked {
		return c.Next()
	}
	storeClaims(c, claims)
	return c.Next()
}
