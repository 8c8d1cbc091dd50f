package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskhive-dev/taskhive/internal/utils"
)

type CreateNamedRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

func CreateRole(ctx *gin.Context) {
	var body CreateNamedRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	role, err := dataStore().CreateRole(body.Name, body.Description)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, role)
}

func ListRoles(ctx *gin.Context) {
	roles, err := dataStore().Roles()

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, roles)
}

func CreateProjectRole(ctx *gin.Context) {
	var body CreateNamedRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	role, err := dataStore().CreateProjectRole(body.Name, body.Description)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, role)
}

func ListProjectRoles(ctx *gin.Context) {
	roles, err := dataStore().ProjectRoles()

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, roles)
}

func CreatePermission(ctx *gin.Context) {
	var body CreateNamedRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	permission, err := dataStore().CreatePermission(body.Name, body.Description)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, permission)
}

func ListPermissions(ctx *gin.Context) {
	permissions, err := dataStore().Permissions()

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, permissions)
}

func AttachRolePermission(ctx *gin.Context) {
	roleID, err := utils.ParamID(ctx, "role_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	permissionID, err := utils.ParamID(ctx, "permission_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := dataStore().AttachPermissionToRole(roleID, permissionID); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func DetachRolePermission(ctx *gin.Context) {
	roleID, err := utils.ParamID(ctx, "role_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	permissionID, err := utils.ParamID(ctx, "permission_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := dataStore().DetachPermissionFromRole(roleID, permissionID); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func ListRolePermissions(ctx *gin.Context) {
	roleID, err := utils.ParamID(ctx, "role_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	permissions, err := dataStore().PermissionsOfRole(roleID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, permissions)
}

func AttachProjectRolePermission(ctx *gin.Context) {
	projectRoleID, err := utils.ParamID(ctx, "project_role_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	permissionID, err := utils.ParamID(ctx, "permission_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := dataStore().AttachPermissionToProjectRole(projectRoleID, permissionID); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
