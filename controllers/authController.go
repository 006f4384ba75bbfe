package controllers

import (
	"crypto/subtle"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	msgInvalidInput          = "invalid input"
	msgInvalidCredentials    = "invalid password"
	msgFailedToGenerateToken = "failed to generate token"
	msgAdminNotConfigured    = "admin credentials are not configured"
)

func sendJSONResponse(ctx *gin.Context, status int, data any) {
	ctx.JSON(status, data)
}

func sendErrorResponse(ctx *gin.Context, status int, message string) {
	sendJSONResponse(ctx, status, gin.H{"message": message})
}

func generateAdminJWT() (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"role": "admin",
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(time.Hour * 24).Unix(),
	})

	jwtSecret := os.Getenv("JWT_SECRET")
	return token.SignedString([]byte(jwtSecret))
}

// checkAdminPassword compares the supplied password with the configured
// credential: ADMIN_PASSWORD_HASH (bcrypt) when set, ADMIN_PASSWORD
// otherwise.
func checkAdminPassword(password string) (bool, error) {
	if hash := os.Getenv("ADMIN_PASSWORD_HASH"); hash != "" {
		err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
		return err == nil, nil
	}

	plain := os.Getenv("ADMIN_PASSWORD")
	if plain == "" {
		return false, errAdminNotConfigured
	}
	return subtle.ConstantTimeCompare([]byte(plain), []byte(password)) == 1, nil
}

var errAdminNotConfigured = &adminConfigError{}

type adminConfigError struct{}

func (*adminConfigError) Error() string { return msgAdminNotConfigured }

// AdminLogin authenticates the single shared admin credential and issues a
// JWT consumed by the RequireAuth/RequireAdmin middleware.
func AdminLogin(ctx *gin.Context) {
	var loginData struct {
		Password string `json:"password" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&loginData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	ok, err := checkAdminPassword(loginData.Password)
	if err != nil {
		log.Println("Admin login misconfiguration:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgAdminNotConfigured)
		return
	}
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, msgInvalidCredentials)
		return
	}

	tokenString, err := generateAdminJWT()
	if err != nil {
		log.Println("JWT generation error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToGenerateToken)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"token": tokenString})
}
