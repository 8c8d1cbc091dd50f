package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskhive-dev/taskhive/internal/models"
	"github.com/taskhive-dev/taskhive/internal/store"
	"github.com/taskhive-dev/taskhive/internal/utils"
)

type CreateWorkflowRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type AddStepRequest struct {
	StatusID       uint `json:"status_id" binding:"required"`
	SequenceNumber int  `json:"sequence_number" binding:"required"`
}

type WorkflowResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Deleted     bool   `json:"deleted"`
}

type StepResponse struct {
	SequenceNumber int    `json:"sequence_number"`
	StatusID       uint   `json:"status_id"`
	StatusName     string `json:"status_name"`
}

func newWorkflowResponse(workflow *models.Workflow) WorkflowResponse {
	return WorkflowResponse{
		ID:          workflow.ID,
		Name:        workflow.Name,
		Description: workflow.Description,
		Deleted:     workflow.DeletedAt.Valid,
	}
}

func CreateWorkflow(ctx *gin.Context) {
	var body CreateWorkflowRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	workflow, err := dataStore().CreateWorkflow(body.Name, body.Description)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, newWorkflowResponse(workflow))
}

func ListWorkflows(ctx *gin.Context) {
	s := dataStore()

	var (
		workflows []models.Workflow
		err       error
	)

	// Audit views ask for the full history explicitly; the default listing
	// never shows soft-deleted rows.
	if ctx.Query("include_deleted") == "true" {
		workflows, err = store.FindAllAnyState[models.Workflow](s)
	} else {
		workflows, err = store.FindAll[models.Workflow](s)
	}

	if err != nil {
		respondError(ctx, err)
		return
	}

	response := make([]WorkflowResponse, 0, len(workflows))
	for i := range workflows {
		response = append(response, newWorkflowResponse(&workflows[i]))
	}

	ctx.JSON(http.StatusOK, response)
}

// GetWorkflow resolves by id regardless of deletion state: callers that hold
// an id (a task's governing workflow, say) need the record either way.
func GetWorkflow(ctx *gin.Context) {
	workflowID, err := utils.ParamID(ctx, "workflow_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	workflow, err := store.FindByIDAnyState[models.Workflow](dataStore(), workflowID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, newWorkflowResponse(workflow))
}

func RenameWorkflow(ctx *gin.Context) {
	workflowID, err := utils.ParamID(ctx, "workflow_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var body CreateWorkflowRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	workflow, err := dataStore().RenameWorkflow(workflowID, body.Name, body.Description)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, newWorkflowResponse(workflow))
}

func DeleteWorkflow(ctx *gin.Context) {
	workflowID, err := utils.ParamID(ctx, "workflow_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := store.SoftDelete[models.Workflow](dataStore(), workflowID); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func AddWorkflowStep(ctx *gin.Context) {
	workflowID, err := utils.ParamID(ctx, "workflow_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var body AddStepRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	step, err := dataStore().AddStep(workflowID, body.StatusID, body.SequenceNumber)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, StepResponse{
		SequenceNumber: step.SequenceNumber,
		StatusID:       step.StatusID,
	})
}

func RemoveWorkflowStep(ctx *gin.Context) {
	workflowID, err := utils.ParamID(ctx, "workflow_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	statusID, err := utils.ParamID(ctx, "status_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	key := store.WorkflowStepKey{WorkflowID: workflowID, StatusID: statusID}

	if err := dataStore().RemoveStep(key); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func ListWorkflowSteps(ctx *gin.Context) {
	workflowID, err := utils.ParamID(ctx, "workflow_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	steps, err := dataStore().StepsInOrder(workflowID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	response := make([]StepResponse, 0, len(steps))
	for _, step := range steps {
		response = append(response, StepResponse{
			SequenceNumber: step.SequenceNumber,
			StatusID:       step.StatusID,
			StatusName:     step.Status.StatusName,
		})
	}

	ctx.JSON(http.StatusOK, response)
}

func CreateStatus(ctx *gin.Context) {
	var body CreateNamedRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	status, err := dataStore().CreateStatus(body.Name, body.Description)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, status)
}

func ListStatuses(ctx *gin.Context) {
	statuses, err := dataStore().Statuses()

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, statuses)
}
