package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tareas/internal/service"
)

type createTaskRequest struct {
	Description string `json:"description"`
	State       string `json:"state"`
	Priority    string `json:"priority"`
}

type updateTaskRequest struct {
	Description *string `json:"description"`
	State       *string `json:"state"`
	Priority    *string `json:"priority"`
	ProjectID   *int64  `json:"project_id"`
}

// handleListProjectTasks fetches tasks for one project.
func (s *Server) handleListProjectTasks(c *gin.Context) {
	projectID, ok := parseID(c, "id")
	if !ok {
		return
	}

	tasks, err := s.svc.ListProjectTasks(c.Request.Context(), projectID, service.TaskListOptions{
		State:    c.Query("state"),
		Priority: c.Query("priority"),
		Contains: c.Query("contains"),
		Order:    c.Query("order"),
	})
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// handleCreateTask inserts a new task into a project. The project id is
// taken from the URL, not from the body.
func (s *Server) handleCreateTask(c *gin.Context) {
	projectID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondBadRequest(c, "invalid request body")
		return
	}

	task, err := s.svc.CreateTask(c.Request.Context(), projectID, service.CreateTaskInput{
		Description: req.Description,
		State:       req.State,
		Priority:    req.Priority,
	})
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

// handleListTasks fetches tasks across all projects with orthogonal
// filters.
func (s *Server) handleListTasks(c *gin.Context) {
	opts := service.TaskListOptions{
		State:    c.Query("state"),
		Priority: c.Query("priority"),
		Contains: c.Query("contains"),
		Order:    c.Query("order"),
	}

	if raw := c.Query("project_id"); raw != "" {
		projectID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			s.respondBadRequest(c, "invalid project_id")
			return
		}
		opts.ProjectID = &projectID
	}

	tasks, err := s.svc.ListTasks(c.Request.Context(), opts)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// handleUpdateTask applies a partial update; supplying project_id moves
// the task.
func (s *Server) handleUpdateTask(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req updateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondBadRequest(c, "invalid request body")
		return
	}

	task, err := s.svc.UpdateTask(c.Request.Context(), id, service.TaskPatch{
		Description: req.Description,
		State:       req.State,
		Priority:    req.Priority,
		ProjectID:   req.ProjectID,
	})
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// handleDeleteTask removes a task completely.
func (s *Server) handleDeleteTask(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := s.svc.DeleteTask(c.Request.Context(), id); err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}
