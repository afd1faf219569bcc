package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// handleProjectSummary aggregates the tasks of one project.
func (s *Server) handleProjectSummary(c *gin.Context) {
	projectID, ok := parseID(c, "id")
	if !ok {
		return
	}

	summary, err := s.svc.ProjectSummary(c.Request.Context(), projectID)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// handleGlobalSummary aggregates the whole store.
func (s *Server) handleGlobalSummary(c *gin.Context) {
	summary, err := s.svc.GlobalSummary(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
