package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskhive-dev/taskhive/internal/utils"
)

type CreatePriorityRequest struct {
	Name string `json:"name" binding:"required"`
	Rank int    `json:"rank" binding:"required"`
}

func CreateCategory(ctx *gin.Context) {
	var body CreateNamedRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	category, err := dataStore().CreateCategory(body.Name, body.Description)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, category)
}

func ListCategories(ctx *gin.Context) {
	categories, err := dataStore().Categories()

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, categories)
}

func DeleteCategory(ctx *gin.Context) {
	id, err := utils.ParamID(ctx, "category_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := dataStore().DeleteCategory(id); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func CreateTaskPriority(ctx *gin.Context) {
	var body CreatePriorityRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	priority, err := dataStore().CreateTaskPriority(body.Name, body.Rank)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, priority)
}

func ListTaskPriorities(ctx *gin.Context) {
	priorities, err := dataStore().TaskPriorities()

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, priorities)
}

func DeleteTaskPriority(ctx *gin.Context) {
	id, err := utils.ParamID(ctx, "priority_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := dataStore().DeleteTaskPriority(id); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func CreateTaskType(ctx *gin.Context) {
	var body CreateNamedRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	taskType, err := dataStore().CreateTaskType(body.Name, body.Description)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, taskType)
}

func ListTaskTypes(ctx *gin.Context) {
	taskTypes, err := dataStore().TaskTypes()

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, taskTypes)
}

func DeleteTaskType(ctx *gin.Context) {
	id, err := utils.ParamID(ctx, "task_type_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := dataStore().DeleteTaskType(id); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
