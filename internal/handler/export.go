package handler

import (
	"context"

	"hospital-management-api/internal/middleware"
	"hospital-management-api/internal/report"
	"hospital-management-api/internal/service"

	"github.com/gin-gonic/gin"
)

type filterExport func(ctx context.Context, hospitalID uint, filter, format string) (*report.Artifact, error)

type rangeExport func(ctx context.Context, hospitalID uint, q service.RangeQuery) (*report.Artifact, error)

// exportByFilter serves a ?filter=&format= report download.
func exportByFilter(export filterExport, entity string) gin.HandlerFunc {
	return func(c *gin.Context) {
		artifact, err := export(c.Request.Context(), middleware.TenantID(c), c.Query("filter"), c.Query("format"))
		if err != nil {
			respondError(c, err, "Failed to export "+entity)
			return
		}
		sendArtifact(c, artifact)
	}
}

// exportByRange serves a ?start_date=&end_date=&format= report download.
func exportByRange(export rangeExport, entity string) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := service.RangeQuery{
			StartDate: c.Query("start_date"),
			EndDate:   c.Query("end_date"),
			Format:    c.Query("format"),
		}
		artifact, err := export(c.Request.Context(), middleware.TenantID(c), q)
		if err != nil {
			respondError(c, err, "Failed to export "+entity)
			return
		}
		sendArtifact(c, artifact)
	}
}
