package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskhive-dev/taskhive/internal/models"
	"github.com/taskhive-dev/taskhive/internal/store"
	"github.com/taskhive-dev/taskhive/internal/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
)

type UpdateProfileRequest struct {
	DisplayName string         `json:"display_name"`
	Preferences datatypes.JSON `json:"preferences"`
}

type DeleteAccountRequest struct {
	Password string `json:"password" binding:"required"`
}

func UpdateProfile(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body UpdateProfileRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	details, err := dataStore().UpdateUserDetails(currentUser.ID, body.DisplayName, body.Preferences)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"display_name": details.DisplayName,
		"preferences":  details.Preferences,
	})
}

// DeleteAccount soft-deletes the caller's user; the record stays joinable
// for history views and can be restored out of band.
func DeleteAccount(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if !confirmPassword(ctx, currentUser.Email) {
		return
	}

	if err := store.SoftDelete[models.User](dataStore(), currentUser.ID); err != nil {
		respondError(ctx, err)
		return
	}

	setTokenCookie(ctx, "", -1)
	ctx.JSON(http.StatusOK, gin.H{"message": "Account deleted successfully"})
}

// PurgeAccount permanently removes the caller's user together with its auth
// and details rows. This is the PII escape hatch and is irreversible.
func PurgeAccount(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if !confirmPassword(ctx, currentUser.Email) {
		return
	}

	if err := dataStore().PurgeUser(currentUser.ID); err != nil {
		respondError(ctx, err)
		return
	}

	setTokenCookie(ctx, "", -1)
	ctx.JSON(http.StatusOK, gin.H{"message": "Account purged"})
}

func ListMyGroups(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	groups, err := dataStore().GroupsOf(currentUser.ID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	response := make([]GroupResponse, 0, len(groups))
	for _, group := range groups {
		response = append(response, newGroupResponse(&group))
	}

	ctx.JSON(http.StatusOK, response)
}

func confirmPassword(ctx *gin.Context, email string) bool {
	var body DeleteAccountRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Password is required"})
		return false
	}

	user, err := dataStore().UserByEmail(email)

	if err != nil || user.Auth == nil {
		log.Printf("Failed to load auth record: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return false
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Auth.PasswordHash), []byte(body.Password)); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Incorrect password"})
		return false
	}

	return true
}
