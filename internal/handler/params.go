package handler

import (
	"net/http"
	"strconv"
	"strings"

	"hospital-management-api/internal/middleware"
	"hospital-management-api/internal/report"
	"hospital-management-api/internal/service"
	"hospital-management-api/pkg/utils"

	"github.com/gin-gonic/gin"
)

// listQuery is the sort pair every fetch route accepts.
type listQuery struct {
	SortTerm string `form:"sort_term"`
	SortDir  string `form:"sort_dir" binding:"omitempty,sortdir"`
}

// queryID parses a required positive id query parameter. On failure it
// writes a 400 and returns false.
func queryID(c *gin.Context, name string) (uint, bool) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, name+" is required")
		return 0, false
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// optionalID parses an id query parameter that may be absent.
func optionalID(c *gin.Context, name string) (*uint, bool) {
	if c.Query(name) == "" {
		return nil, true
	}
	id, ok := queryID(c, name)
	if !ok {
		return nil, false
	}
	return &id, true
}

func searchTerm(c *gin.Context) (string, bool) {
	term, ok := c.GetQuery("search_term")
	if !ok {
		utils.ErrorResponse(c, http.StatusBadRequest, "search_term is required")
		return "", false
	}
	return term, true
}

func bindJSON(c *gin.Context, in any) bool {
	if err := c.ShouldBindJSON(in); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

func bindList(c *gin.Context) (listQuery, bool) {
	var q listQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid sort: "+err.Error())
		return q, false
	}
	return q, true
}

// respondList answers 404 when nothing matched, otherwise the rows and their count.
func respondList[T any](c *gin.Context, rows []T, plural string) {
	if len(rows) == 0 {
		utils.ErrorResponse(c, http.StatusNotFound, strings.ReplaceAll(plural, "_", " ")+" not found")
		return
	}
	utils.SuccessResponse(c, gin.H{
		plural:  rows,
		"count": len(rows),
	})
}

func actorOf(c *gin.Context) service.Actor {
	return service.Actor{
		SubjectID: c.GetUint(middleware.KeySubjectID),
		Role:      c.GetString(middleware.KeyRole),
	}
}

// sendArtifact streams a rendered report as a download.
func sendArtifact(c *gin.Context, artifact *report.Artifact) {
	c.Header("Content-Type", artifact.ContentType)
	c.FileAttachment(artifact.Path, artifact.Name)
}
