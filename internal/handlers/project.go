package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskhive-dev/taskhive/internal/models"
	"github.com/taskhive-dev/taskhive/internal/store"
	"github.com/taskhive-dev/taskhive/internal/types"
	"github.com/taskhive-dev/taskhive/internal/utils"
)

type CreateProjectRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type UpdateProjectRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type ProjectResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	OwnerID     uint   `json:"owner_id"`
}

type AddProjectUserRequest struct {
	UserID        uint  `json:"user_id" binding:"required"`
	ProjectRoleID *uint `json:"project_role_id"`
}

type AddProjectGroupRequest struct {
	GroupID       uint  `json:"group_id" binding:"required"`
	ProjectRoleID *uint `json:"project_role_id"`
}

type AssignWorkflowRequest struct {
	TaskTypeID uint `json:"task_type_id" binding:"required"`
	WorkflowID uint `json:"workflow_id" binding:"required"`
}

func newProjectResponse(project *models.Project) ProjectResponse {
	return ProjectResponse{
		ID:          project.ID,
		Name:        project.Name,
		Description: project.Description,
		OwnerID:     project.OwnerID,
	}
}

func CreateProject(ctx *gin.Context) {
	var body CreateProjectRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	project, err := dataStore().CreateProject(body.Name, body.Description, userID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, newProjectResponse(project))
}

func ListProjects(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projects, err := dataStore().ProjectsByOwner(userID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	response := make([]ProjectResponse, 0, len(projects))
	for i := range projects {
		response = append(response, newProjectResponse(&projects[i]))
	}

	ctx.JSON(http.StatusOK, response)
}

func UpdateProject(ctx *gin.Context) {
	projectID, err := utils.ParamID(ctx, "project_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var body UpdateProjectRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	project, err := dataStore().UpdateProject(projectID, body.Name, body.Description)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, newProjectResponse(project))
}

// DeleteProject soft-deletes the project and clears its association rows so
// derived membership views empty out immediately.
func DeleteProject(ctx *gin.Context) {
	projectID, err := utils.ParamID(ctx, "project_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s := dataStore()

	if err := store.SoftDelete[models.Project](s, projectID); err != nil {
		respondError(ctx, err)
		return
	}

	if err := s.RemoveProjectUsersByProject(projectID); err != nil {
		respondError(ctx, err)
		return
	}
	if err := s.RemoveProjectGroupsByProject(projectID); err != nil {
		respondError(ctx, err)
		return
	}
	if err := s.RemoveProjectTaskTypesByProject(projectID); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func AddProjectUser(ctx *gin.Context) {
	projectID, err := utils.ParamID(ctx, "project_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var body AddProjectUserRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	key := store.ProjectUserKey{ProjectID: projectID, UserID: body.UserID}
	row, err := dataStore().AddProjectUser(key, body.ProjectRoleID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, row)
}

func RemoveProjectUser(ctx *gin.Context) {
	projectID, err := utils.ParamID(ctx, "project_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, err := utils.ParamID(ctx, "user_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	key := store.ProjectUserKey{ProjectID: projectID, UserID: userID}

	if err := dataStore().RemoveProjectUser(key); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func ListProjectUsers(ctx *gin.Context) {
	projectID, err := utils.ParamID(ctx, "project_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rows, err := dataStore().ProjectUsersByProject(projectID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, rows)
}

func AddProjectGroup(ctx *gin.Context) {
	projectID, err := utils.ParamID(ctx, "project_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var body AddProjectGroupRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	key := store.ProjectGroupKey{ProjectID: projectID, GroupID: body.GroupID}
	row, err := dataStore().AddProjectGroup(key, body.ProjectRoleID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, row)
}

func RemoveProjectGroup(ctx *gin.Context) {
	projectID, err := utils.ParamID(ctx, "project_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	groupID, err := utils.ParamID(ctx, "group_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	key := store.ProjectGroupKey{ProjectID: projectID, GroupID: groupID}

	if err := dataStore().RemoveProjectGroup(key); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func ListProjectGroups(ctx *gin.Context) {
	projectID, err := utils.ParamID(ctx, "project_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rows, err := dataStore().ProjectGroupsByProject(projectID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, rows)
}

// ListProjectMembers renders the derived projection: everyone reachable from
// the project directly or through a bound group.
func ListProjectMembers(ctx *gin.Context) {
	projectID, err := utils.ParamID(ctx, "project_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	users, err := dataStore().ProjectReachableUsers(projectID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	response := make([]types.UserResponse, 0, len(users))
	for _, user := range users {
		response = append(response, types.UserResponse{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
		})
	}

	ctx.JSON(http.StatusOK, response)
}

func AssignProjectWorkflow(ctx *gin.Context) {
	projectID, err := utils.ParamID(ctx, "project_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var body AssignWorkflowRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	key := store.ProjectTaskTypeKey{ProjectID: projectID, TaskTypeID: body.TaskTypeID}
	row, err := dataStore().AssignWorkflow(key, body.WorkflowID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, row)
}

func ReassignProjectWorkflow(ctx *gin.Context) {
	projectID, err := utils.ParamID(ctx, "project_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	taskTypeID, err := utils.ParamID(ctx, "task_type_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var body struct {
		WorkflowID uint `json:"workflow_id" binding:"required"`
	}

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	key := store.ProjectTaskTypeKey{ProjectID: projectID, TaskTypeID: taskTypeID}

	if err := dataStore().ReassignWorkflow(key, body.WorkflowID); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func RemoveProjectTaskType(ctx *gin.Context) {
	projectID, err := utils.ParamID(ctx, "project_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	taskTypeID, err := utils.ParamID(ctx, "task_type_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	key := store.ProjectTaskTypeKey{ProjectID: projectID, TaskTypeID: taskTypeID}

	if err := dataStore().RemoveProjectTaskType(key); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func ListProjectTaskTypes(ctx *gin.Context) {
	projectID, err := utils.ParamID(ctx, "project_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rows, err := dataStore().ProjectTaskTypesByProject(projectID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, rows)
}

func ListProjectTasks(ctx *gin.Context) {
	projectID, err := utils.ParamID(ctx, "project_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tasks, err := dataStore().TasksByProject(projectID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	response := make([]TaskResponse, 0, len(tasks))
	for i := range tasks {
		response = append(response, newTaskResponse(&tasks[i]))
	}

	ctx.JSON(http.StatusOK, response)
}
