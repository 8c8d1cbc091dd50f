package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskhive-dev/taskhive/db"
	"github.com/taskhive-dev/taskhive/internal/apperr"
	"github.com/taskhive-dev/taskhive/internal/store"
)

func dataStore() *store.Store {
	return store.New(db.DB)
}

// respondError maps each domain error kind to its own status so clients can
// tell "nothing there" from "already exists" from "not allowed to remove".
func respondError(ctx *gin.Context, err error) {
	switch {
	case apperr.IsNotFound(err):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case apperr.IsDuplicateName(err):
		ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case apperr.IsDuplicateAssociation(err):
		ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case apperr.IsReferentialIntegrity(err):
		ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case apperr.IsValidation(err):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Printf("Unhandled error: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
