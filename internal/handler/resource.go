package handler

import (
	"context"
	"strings"

	"hospital-management-api/internal/middleware"
	"hospital-management-api/pkg/utils"

	"github.com/gin-gonic/gin"
)

// resource serves the fetch/search/specific/add/edit/delete routes of one
// tenant-owned entity. Operations left nil are not mounted.
type resource[T any, In any] struct {
	entity  string // "lab_test", also the payload key
	plural  string // "lab_tests", also the route prefix
	idParam string // "patient_id"

	list   func(ctx context.Context, hospitalID uint, sortTerm, sortDir string) ([]T, error)
	search func(ctx context.Context, hospitalID uint, searchBy, term string) ([]T, error)
	get    func(ctx context.Context, hospitalID, id uint) (*T, error)
	create func(ctx context.Context, hospitalID uint, in In) (*T, error)
	update func(ctx context.Context, hospitalID, id uint, in In) (*T, error)
	remove func(ctx context.Context, hospitalID, id uint) error
}

// byTerm adapts a search that takes no column.
func byTerm[T any](f func(context.Context, uint, string) ([]T, error)) func(context.Context, uint, string, string) ([]T, error) {
	return func(ctx context.Context, hospitalID uint, _ string, term string) ([]T, error) {
		return f(ctx, hospitalID, term)
	}
}

func (r *resource[T, In]) title() string {
	label := strings.ReplaceAll(r.entity, "_", " ")
	return strings.ToUpper(label[:1]) + label[1:]
}

func (r *resource[T, In]) register(g gin.IRoutes) {
	if r.list != nil {
		g.GET("/"+r.plural+"-fetch", r.Fetch)
	}
	if r.search != nil {
		g.GET("/"+r.plural+"-search", r.Search)
	}
	if r.get != nil {
		g.GET("/"+r.plural+"-specific", r.Specific)
	}
	if r.create != nil {
		g.POST("/"+r.plural+"-add", r.Add)
	}
	if r.update != nil {
		g.PUT("/"+r.plural+"-edit", r.Edit)
	}
	if r.remove != nil {
		g.DELETE("/"+r.plural+"-delete", r.Delete)
	}
}

func (r *resource[T, In]) Fetch(c *gin.Context) {
	q, ok := bindList(c)
	if !ok {
		return
	}

	rows, err := r.list(c.Request.Context(), middleware.TenantID(c), q.SortTerm, q.SortDir)
	if err != nil {
		respondError(c, err, "Failed to fetch "+r.plural)
		return
	}
	respondList(c, rows, r.plural)
}

func (r *resource[T, In]) Search(c *gin.Context) {
	term, ok := searchTerm(c)
	if !ok {
		return
	}

	rows, err := r.search(c.Request.Context(), middleware.TenantID(c), c.Query("search_by"), term)
	if err != nil {
		respondError(c, err, "Failed to search "+r.plural)
		return
	}
	respondList(c, rows, r.plural)
}

func (r *resource[T, In]) Specific(c *gin.Context) {
	id, ok := queryID(c, r.idParam)
	if !ok {
		return
	}

	row, err := r.get(c.Request.Context(), middleware.TenantID(c), id)
	if err != nil {
		respondError(c, err, "Failed to fetch "+r.entity)
		return
	}
	utils.SuccessResponse(c, row)
}

func (r *resource[T, In]) Add(c *gin.Context) {
	var in In
	if !bindJSON(c, &in) {
		return
	}

	row, err := r.create(c.Request.Context(), middleware.TenantID(c), in)
	if err != nil {
		respondError(c, err, "Failed to add "+r.entity)
		return
	}
	utils.SuccessResponse(c, gin.H{
		"message": r.title() + " added successfully",
		r.entity:  row,
	})
}

func (r *resource[T, In]) Edit(c *gin.Context) {
	id, ok := queryID(c, r.idParam)
	if !ok {
		return
	}
	var in In
	if !bindJSON(c, &in) {
		return
	}

	row, err := r.update(c.Request.Context(), middleware.TenantID(c), id, in)
	if err != nil {
		respondError(c, err, "Failed to edit "+r.entity)
		return
	}
	utils.SuccessResponse(c, gin.H{
		"message": r.title() + " updated successfully",
		r.entity:  row,
	})
}

func (r *resource[T, In]) Delete(c *gin.Context) {
	id, ok := queryID(c, r.idParam)
	if !ok {
		return
	}

	if err := r.remove(c.Request.Context(), middleware.TenantID(c), id); err != nil {
		respondError(c, err, "Failed to delete "+r.entity)
		return
	}
	utils.MessageResponse(c, r.title()+" deleted successfully")
}
