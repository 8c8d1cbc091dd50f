package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskhive-dev/taskhive/internal/models"
	"github.com/taskhive-dev/taskhive/internal/store"
	"github.com/taskhive-dev/taskhive/internal/types"
	"github.com/taskhive-dev/taskhive/internal/utils"
)

type CreateGroupRequest struct {
	GroupName   string `json:"group_name" binding:"required"`
	Description string `json:"description"`
	RoleID      *uint  `json:"role_id"`
}

type SetGroupRoleRequest struct {
	RoleID *uint `json:"role_id"`
}

type MembersRequest struct {
	UserIDs []uint `json:"user_ids" binding:"required"`
}

type GroupResponse struct {
	ID          uint   `json:"id"`
	GroupName   string `json:"group_name"`
	Description string `json:"description"`
	RoleID      *uint  `json:"role_id"`
}

func newGroupResponse(group *models.Group) GroupResponse {
	return GroupResponse{
		ID:          group.ID,
		GroupName:   group.GroupName,
		Description: group.Description,
		RoleID:      group.RoleID,
	}
}

func CreateGroup(ctx *gin.Context) {
	var body CreateGroupRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	group, err := dataStore().CreateGroup(body.GroupName, body.Description, body.RoleID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, newGroupResponse(group))
}

func ListGroups(ctx *gin.Context) {
	groups, err := store.FindAll[models.Group](dataStore())

	if err != nil {
		respondError(ctx, err)
		return
	}

	response := make([]GroupResponse, 0, len(groups))
	for i := range groups {
		response = append(response, newGroupResponse(&groups[i]))
	}

	ctx.JSON(http.StatusOK, response)
}

func GetGroup(ctx *gin.Context) {
	groupID, err := utils.ParamID(ctx, "group_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	group, err := store.FindByID[models.Group](dataStore(), groupID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, newGroupResponse(group))
}

func SetGroupRole(ctx *gin.Context) {
	groupID, err := utils.ParamID(ctx, "group_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var body SetGroupRoleRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if err := dataStore().SetGroupRole(groupID, body.RoleID); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func DeleteGroup(ctx *gin.Context) {
	groupID, err := utils.ParamID(ctx, "group_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := store.SoftDelete[models.Group](dataStore(), groupID); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func AddGroupMembers(ctx *gin.Context) {
	groupID, err := utils.ParamID(ctx, "group_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var body MembersRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if err := dataStore().AddMembers(groupID, body.UserIDs); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func RemoveGroupMembers(ctx *gin.Context) {
	groupID, err := utils.ParamID(ctx, "group_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var body MembersRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if err := dataStore().RemoveMembers(groupID, body.UserIDs); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func ListGroupMembers(ctx *gin.Context) {
	groupID, err := utils.ParamID(ctx, "group_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	members, err := dataStore().MembersOf(groupID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	response := make([]types.UserResponse, 0, len(members))
	for _, member := range members {
		response = append(response, types.UserResponse{
			ID:       member.ID,
			Username: member.Username,
			Email:    member.Email,
		})
	}

	ctx.JSON(http.StatusOK, response)
}
