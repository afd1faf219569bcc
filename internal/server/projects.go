package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tareas/internal/models"
	"tareas/internal/service"
)

type createProjectRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

type updateProjectRequest struct {
	Name        *string                 `json:"name"`
	Description models.Optional[string] `json:"description"`
}

// handleListProjects returns all projects, optionally filtered by a
// case-insensitive name substring.
func (s *Server) handleListProjects(c *gin.Context) {
	projects, err := s.svc.ListProjects(c.Request.Context(), c.Query("contains"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, projects)
}

// handleCreateProject creates a new project.
func (s *Server) handleCreateProject(c *gin.Context) {
	var req createProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondBadRequest(c, "invalid request body")
		return
	}

	project, err := s.svc.CreateProject(c.Request.Context(), service.CreateProjectInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, project)
}

// handleGetProject returns a project with its live task count.
func (s *Server) handleGetProject(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	detail, err := s.svc.GetProject(c.Request.Context(), id)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// handleUpdateProject applies a partial update to a project.
func (s *Server) handleUpdateProject(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req updateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondBadRequest(c, "invalid request body")
		return
	}

	project, err := s.svc.UpdateProject(c.Request.Context(), id, service.ProjectPatch{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

// handleDeleteProject removes a project and all of its tasks, reporting
// how many tasks the cascade removed.
func (s *Server) handleDeleteProject(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	removed, err := s.svc.DeleteProject(c.Request.Context(), id)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed_tasks": removed})
}
