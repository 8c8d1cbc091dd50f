package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/taskhive-dev/taskhive/internal/handlers"
	"github.com/taskhive-dev/taskhive/internal/middleware"
	"github.com/taskhive-dev/taskhive/internal/types"
)

func NewRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)
		api.GET("/ws/:project_id", middleware.AuthMiddleware(), handlers.WebSocket)

		auth := api.Group("/auth")
		{
			auth.POST("/register", handlers.Register)
			auth.POST("/login", handlers.Login)
			auth.POST("/logout", handlers.Logout)
			auth.GET("/me", middleware.AuthMiddleware(), handlers.Me)
		}

		users := api.Group("/users", middleware.AuthMiddleware())
		{
			users.PATCH("/me", handlers.UpdateProfile)
			users.DELETE("/me", handlers.DeleteAccount)
			users.DELETE("/me/purge", handlers.PurgeAccount)
			users.GET("/me/groups", handlers.ListMyGroups)
		}

		groups := api.Group("/groups", middleware.AuthMiddleware())
		{
			groups.POST("", handlers.CreateGroup)
			groups.GET("", handlers.ListGroups)
			groups.GET("/:group_id", handlers.GetGroup)
			groups.PUT("/:group_id/role", handlers.SetGroupRole)
			groups.DELETE("/:group_id", handlers.DeleteGroup)

			groups.GET("/:group_id/members", handlers.ListGroupMembers)
			groups.POST("/:group_id/members", handlers.AddGroupMembers)
			groups.DELETE("/:group_id/members", handlers.RemoveGroupMembers)
		}

		roles := api.Group("/roles", middleware.AuthMiddleware())
		{
			roles.POST("", handlers.CreateRole)
			roles.GET("", handlers.ListRoles)
			roles.GET("/:role_id/permissions", handlers.ListRolePermissions)
			roles.PUT("/:role_id/permissions/:permission_id", handlers.AttachRolePermission)
			roles.DELETE("/:role_id/permissions/:permission_id", handlers.DetachRolePermission)
		}

		projectRoles := api.Group("/project-roles", middleware.AuthMiddleware())
		{
			projectRoles.POST("", handlers.CreateProjectRole)
			projectRoles.GET("", handlers.ListProjectRoles)
			projectRoles.PUT("/:project_role_id/permissions/:permission_id", handlers.AttachProjectRolePermission)
		}

		permissions := api.Group("/permissions", middleware.AuthMiddleware())
		{
			permissions.POST("", handlers.CreatePermission)
			permissions.GET("", handlers.ListPermissions)
		}

		projects := api.Group("/projects", middleware.AuthMiddleware())
		{
			projects.POST("", handlers.CreateProject)
			projects.GET("", handlers.ListProjects)
			projects.PATCH("/:project_id", handlers.UpdateProject)
			projects.DELETE("/:project_id", handlers.DeleteProject)

			projects.GET("/:project_id/members", handlers.ListProjectMembers)
			projects.GET("/:project_id/tasks", handlers.ListProjectTasks)

			projects.GET("/:project_id/users", handlers.ListProjectUsers)
			projects.POST("/:project_id/users", handlers.AddProjectUser)
			projects.DELETE("/:project_id/users/:user_id", handlers.RemoveProjectUser)

			projects.GET("/:project_id/groups", handlers.ListProjectGroups)
			projects.POST("/:project_id/groups", handlers.AddProjectGroup)
			projects.DELETE("/:project_id/groups/:group_id", handlers.RemoveProjectGroup)

			projects.GET("/:project_id/task-types", handlers.ListProjectTaskTypes)
			projects.POST("/:project_id/task-types", handlers.AssignProjectWorkflow)
			projects.PUT("/:project_id/task-types/:task_type_id", handlers.ReassignProjectWorkflow)
			projects.DELETE("/:project_id/task-types/:task_type_id", handlers.RemoveProjectTaskType)
		}

		workflows := api.Group("/workflows", middleware.AuthMiddleware())
		{
			workflows.POST("", handlers.CreateWorkflow)
			workflows.GET("", handlers.ListWorkflows)
			workflows.GET("/:workflow_id", handlers.GetWorkflow)
			workflows.PATCH("/:workflow_id", handlers.RenameWorkflow)
			workflows.DELETE("/:workflow_id", handlers.DeleteWorkflow)

			workflows.GET("/:workflow_id/steps", handlers.ListWorkflowSteps)
			workflows.POST("/:workflow_id/steps", handlers.AddWorkflowStep)
			workflows.DELETE("/:workflow_id/steps/:status_id", handlers.RemoveWorkflowStep)
		}

		statuses := api.Group("/statuses", middleware.AuthMiddleware())
		{
			statuses.POST("", handlers.CreateStatus)
			statuses.GET("", handlers.ListStatuses)
		}

		categories := api.Group("/categories", middleware.AuthMiddleware())
		{
			categories.POST("", handlers.CreateCategory)
			categories.GET("", handlers.ListCategories)
			categories.DELETE("/:category_id", handlers.DeleteCategory)
		}

		priorities := api.Group("/task-priorities", middleware.AuthMiddleware())
		{
			priorities.POST("", handlers.CreateTaskPriority)
			priorities.GET("", handlers.ListTaskPriorities)
			priorities.DELETE("/:priority_id", handlers.DeleteTaskPriority)
		}

		taskTypes := api.Group("/task-types", middleware.AuthMiddleware())
		{
			taskTypes.POST("", handlers.CreateTaskType)
			taskTypes.GET("", handlers.ListTaskTypes)
			taskTypes.DELETE("/:task_type_id", handlers.DeleteTaskType)
		}

		tasks := api.Group("/tasks", middleware.AuthMiddleware())
		{
			tasks.POST("", handlers.CreateTask)
			tasks.GET("", handlers.ListTasks)
			tasks.GET("/:task_id", handlers.GetTask)
			tasks.PUT("/:task_id", handlers.UpdateTask)
			tasks.DELETE("/:task_id", handlers.DeleteTask)

			tasks.PUT("/:task_id/status", handlers.SetTaskStatus)
			tasks.POST("/:task_id/complete", handlers.CompleteTask)

			tasks.GET("/:task_id/dependencies", handlers.ListTaskDependencies)
			tasks.POST("/:task_id/dependencies", handlers.AddTaskDependency)
			tasks.DELETE("/:task_id/dependencies/:depends_on_id", handlers.RemoveTaskDependency)
			tasks.GET("/:task_id/dependents", handlers.ListTaskDependents)

			tasks.GET("/:task_id/comments", handlers.ListTaskComments)
			tasks.POST("/:task_id/comments", handlers.AddTaskComment)
		}
	}

	return r
}
