package handlers

import (
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/taskhive-dev/taskhive/internal/apperr"
	"github.com/taskhive-dev/taskhive/internal/auth"
	"github.com/taskhive-dev/taskhive/internal/types"
	"github.com/taskhive-dev/taskhive/internal/utils"
	"golang.org/x/crypto/bcrypt"
)

type RegisterRequest struct {
	Username    string `json:"username" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	DisplayName string `json:"display_name"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

var (
	Domain = os.Getenv("DOMAIN")
)

func Register(ctx *gin.Context) {
	var body RegisterRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)

	if err != nil {
		log.Printf("Failed to hash password: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	displayName := body.DisplayName
	if displayName == "" {
		displayName = body.Username
	}

	user, err := dataStore().RegisterUser(body.Username, body.Email, string(passwordHash), displayName)

	if err != nil {
		respondError(ctx, err)
		return
	}

	token, err := auth.GenerateJWT(user.ID, user.Username)

	if err != nil {
		log.Printf("Failed to generate JWT: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	setTokenCookie(ctx, token, 60*60*24*7)

	ctx.JSON(http.StatusCreated, gin.H{
		"user": types.UserResponse{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
		},
	})
}

func Login(ctx *gin.Context) {
	var body LoginRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	user, err := dataStore().UserByEmail(body.Email)

	if err != nil {
		if apperr.IsNotFound(err) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email or password"})
			return
		}
		log.Printf("Database error when fetching user: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if user.Auth == nil {
		log.Printf("User %d has no auth record", user.ID)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.Auth.PasswordHash), []byte(body.Password))

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email or password"})
		return
	}

	token, err := auth.GenerateJWT(user.ID, user.Username)

	if err != nil {
		log.Printf("Failed to generate JWT: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	setTokenCookie(ctx, token, 60*60*24*7)

	ctx.JSON(http.StatusOK, gin.H{
		"user": types.UserResponse{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
		},
	})
}

func Me(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"user": types.UserResponse{
			ID:       currentUser.ID,
			Username: currentUser.Username,
			Email:    currentUser.Email,
		},
	})
}

func Logout(ctx *gin.Context) {
	setTokenCookie(ctx, "", -1)
	ctx.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

func setTokenCookie(ctx *gin.Context, token string, maxAge int) {
	http.SetCookie(ctx.Writer, &http.Cookie{
		Name:     "token",
		Value:    token,
		Path:     "/",
		Domain:   Domain,
		MaxAge:   maxAge,
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteNoneMode,
	})
}
