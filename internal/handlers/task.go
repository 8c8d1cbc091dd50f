package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/taskhive-dev/taskhive/internal/models"
	"github.com/taskhive-dev/taskhive/internal/store"
	"github.com/taskhive-dev/taskhive/internal/utils"
	"gorm.io/datatypes"
)

type CreateTaskRequest struct {
	Title          string `json:"title" binding:"required"`
	Description    string `json:"description"`
	DueDate        string `json:"due_date"` // YYYY-MM-DD
	AssigneeID     *uint  `json:"assignee_id"`
	CategoryID     *uint  `json:"category_id"`
	TaskPriorityID *uint  `json:"task_priority_id"`
	ProjectID      *uint  `json:"project_id"`
	StatusID       *uint  `json:"status_id"`
	TaskTypeID     *uint  `json:"task_type_id"`
}

type SetTaskStatusRequest struct {
	StatusID uint `json:"status_id" binding:"required"`
}

type AddDependencyRequest struct {
	DependsOnTaskID uint `json:"depends_on_task_id" binding:"required"`
}

type AddCommentRequest struct {
	Body string `json:"body" binding:"required"`
}

type TaskResponse struct {
	ID             uint       `json:"id"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	DueDate        *string    `json:"due_date"`
	CompletedAt    *time.Time `json:"completed_at"`
	AssigneeID     *uint      `json:"assignee_id"`
	CategoryID     *uint      `json:"category_id"`
	TaskPriorityID *uint      `json:"task_priority_id"`
	ProjectID      *uint      `json:"project_id"`
	StatusID       *uint      `json:"status_id"`
	TaskTypeID     *uint      `json:"task_type_id"`
}

func newTaskResponse(task *models.Task) TaskResponse {
	response := TaskResponse{
		ID:             task.ID,
		Title:          task.Title,
		Description:    task.Description,
		CompletedAt:    task.CompletedAt,
		AssigneeID:     task.AssigneeID,
		CategoryID:     task.CategoryID,
		TaskPriorityID: task.TaskPriorityID,
		ProjectID:      task.ProjectID,
		StatusID:       task.StatusID,
		TaskTypeID:     task.TaskTypeID,
	}

	if task.DueDate != nil {
		due := time.Time(*task.DueDate).Format("2006-01-02")
		response.DueDate = &due
	}

	return response
}

func CreateTask(ctx *gin.Context) {
	var body CreateTaskRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	task := models.Task{
		Title:          body.Title,
		Description:    body.Description,
		AssigneeID:     body.AssigneeID,
		CategoryID:     body.CategoryID,
		TaskPriorityID: body.TaskPriorityID,
		ProjectID:      body.ProjectID,
		StatusID:       body.StatusID,
		TaskTypeID:     body.TaskTypeID,
	}

	if body.DueDate != "" {
		parsed, err := time.Parse("2006-01-02", body.DueDate)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "due_date must be YYYY-MM-DD"})
			return
		}
		due := datatypes.Date(parsed)
		task.DueDate = &due
	}

	if err := dataStore().CreateTask(&task); err != nil {
		respondError(ctx, err)
		return
	}

	if task.ProjectID != nil {
		BroadcastTaskEvent(*task.ProjectID, "task_created", task.ID)
	}

	ctx.JSON(http.StatusCreated, newTaskResponse(&task))
}

func UpdateTask(ctx *gin.Context) {
	taskID, err := utils.ParamID(ctx, "task_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var body CreateTaskRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	s := dataStore()

	task, err := store.FindByID[models.Task](s, taskID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	task.Title = body.Title
	task.Description = body.Description
	task.AssigneeID = body.AssigneeID
	task.CategoryID = body.CategoryID
	task.TaskPriorityID = body.TaskPriorityID
	task.ProjectID = body.ProjectID
	task.StatusID = body.StatusID
	task.TaskTypeID = body.TaskTypeID

	if body.DueDate != "" {
		parsed, err := time.Parse("2006-01-02", body.DueDate)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "due_date must be YYYY-MM-DD"})
			return
		}
		due := datatypes.Date(parsed)
		task.DueDate = &due
	} else {
		task.DueDate = nil
	}

	if err := s.UpdateTask(task); err != nil {
		respondError(ctx, err)
		return
	}

	if task.ProjectID != nil {
		BroadcastTaskEvent(*task.ProjectID, "task_updated", task.ID)
	}

	ctx.JSON(http.StatusOK, newTaskResponse(task))
}

func GetTask(ctx *gin.Context) {
	taskID, err := utils.ParamID(ctx, "task_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := store.FindByID[models.Task](dataStore(), taskID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, newTaskResponse(task))
}

func ListTasks(ctx *gin.Context) {
	tasks, err := store.FindAll[models.Task](dataStore())

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

func DeleteTask(ctx *gin.Context) {
	taskID, err := utils.ParamID(ctx, "task_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s := dataStore()

	task, err := store.FindByID[models.Task](s, taskID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	if err := store.SoftDelete[models.Task](s, taskID); err != nil {
		respondError(ctx, err)
		return
	}

	if task.ProjectID != nil {
		BroadcastTaskEvent(*task.ProjectID, "task_deleted", task.ID)
	}

	ctx.Status(http.StatusNoContent)
}

func SetTaskStatus(ctx *gin.Context) {
	taskID, err := utils.ParamID(ctx, "task_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var body SetTaskStatusRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	task, err := dataStore().SetStatus(taskID, body.StatusID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	if task.ProjectID != nil {
		BroadcastTaskEvent(*task.ProjectID, "task_status_changed", task.ID)
	}

	ctx.JSON(http.StatusOK, newTaskResponse(task))
}

func CompleteTask(ctx *gin.Context) {
	taskID, err := utils.ParamID(ctx, "task_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := dataStore().Complete(taskID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	if task.ProjectID != nil {
		BroadcastTaskEvent(*task.ProjectID, "task_completed", task.ID)
	}

	ctx.JSON(http.StatusOK, newTaskResponse(task))
}

func AddTaskDependency(ctx *gin.Context) {
	taskID, err := utils.ParamID(ctx, "task_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var body AddDependencyRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if err := dataStore().AddDependency(taskID, body.DependsOnTaskID); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusCreated)
}

func RemoveTaskDependency(ctx *gin.Context) {
	taskID, err := utils.ParamID(ctx, "task_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dependsOnID, err := utils.ParamID(ctx, "depends_on_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	key := store.TaskDependencyKey{TaskID: taskID, DependsOnTaskID: dependsOnID}

	if err := dataStore().RemoveDependency(key); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func ListTaskDependencies(ctx *gin.Context) {
	taskID, err := utils.ParamID(ctx, "task_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tasks, err := dataStore().DirectDependencies(taskID)

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

func ListTaskDependents(ctx *gin.Context) {
	taskID, err := utils.ParamID(ctx, "task_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tasks, err := dataStore().DirectDependents(taskID)

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

func AddTaskComment(ctx *gin.Context) {
	taskID, err := utils.ParamID(ctx, "task_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body AddCommentRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	comment, err := dataStore().AddComment(taskID, currentUser.ID, body.Body)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, comment)
}

func ListTaskComments(ctx *gin.Context) {
	taskID, err := utils.ParamID(ctx, "task_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comments, err := dataStore().CommentsByTask(taskID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, comments)
}
