package handler

import (
	"context"
	"errors"
	"net/http"

	"region-codes/internal/models"
	"region-codes/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// RegionHandler handles regions requests
type RegionHandler struct {
	service RegionService
}

// RegionService interface for dependency injection
type RegionService interface {
	ListRegions(context.Context) ([]models.Region, error)
	ListPrefectures(context.Context) ([]models.Region, error)
	ListMunicipalities(context.Context, string) ([]models.Region, error)
	ListHierarchy(context.Context) ([]models.RegionHierarchy, error)
	GetRegion(context.Context, string) (*models.Region, error)
}

// NewRegionHandler creates a new region handler
func NewRegionHandler(svc RegionService) *RegionHandler {
	return &RegionHandler{service: svc}
}

// ListRegions handles GET /api/v1/regions requests
//
//	@Summary	List regions
//	@Tags		regions
//	@Produce	json
//	@Param		hierarchy	query		bool	false	"include parent names"
//	@Param		type		query		string	false	"prefecture to list prefectures only"
//	@Param		prefecture	query		string	false	"6-digit prefecture code to list its municipalities"
//	@Success	200			{object}	map[string]interface{}
//	@Failure	400			{object}	map[string]string
//	@Failure	500			{object}	map[string]string
//	@Router		/api/v1/regions [get]
func (h *RegionHandler) ListRegions(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		data any
		err  error
	)
	switch prefecture := c.Query("prefecture"); {
	case c.Query("hierarchy") == "true":
		data, err = h.service.ListHierarchy(ctx)
	case c.Query("type") == string(models.RegionTypePrefecture):
		data, err = h.service.ListPrefectures(ctx)
	case prefecture != "":
		data, err = h.service.ListMunicipalities(ctx, prefecture)
	default:
		data, err = h.service.ListRegions(ctx)
	}

	if err != nil {
		if errors.Is(err, service.ErrInvalidCode) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter 'prefecture' must be a 6-digit code"})
			return
		}
		log.Error().Err(err).Msg("failed to fetch regions")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": data})
}

// GetRegion handles GET /api/v1/regions/:code requests
//
//	@Summary	Get a region by JIS code
//	@Tags		regions
//	@Produce	json
//	@Param		code	path		string	true	"6-digit JIS code"
//	@Success	200		{object}	map[string]interface{}
//	@Failure	400		{object}	map[string]string
//	@Failure	404		{object}	map[string]string
//	@Failure	500		{object}	map[string]string
//	@Router		/api/v1/regions/{code} [get]
func (h *RegionHandler) GetRegion(c *gin.Context) {
	region, err := h.service.GetRegion(c.Request.Context(), c.Param("code"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCode):
			c.JSON(http.StatusBadRequest, gin.H{"error": "code must be a 6-digit JIS code"})
		case errors.Is(err, models.ErrRegionNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "region not found"})
		default:
			log.Error().Err(err).Msg("failed to fetch region")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": region})
}

// Register mounts the region routes on r
func (h *RegionHandler) Register(r gin.IRouter) {
	api := r.Group("/api/v1")
	api.GET("/regions", h.ListRegions)
	api.GET("/regions/:code", h.GetRegion)
}
