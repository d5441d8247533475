package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"ppf-order-backend/internal/models"
)

// HealthHandler godoc
// @Summary     Health check
// @Description Returns the health status of the API
// @Tags        health
// @Accept      json
// @Produce     json
// @Success     200 {object} models.HealthResponse
// @Router      /health [get]
func HealthHandler(c *gin.Context) {
	response := models.HealthResponse{
		Status: "ok",
	}
	c.JSON(http.StatusOK, response)
}

// PackagesHandler godoc
// @Summary     Package catalog
// @Description Lists the protection packages a customer can choose from, with the panels each covers
// @Tags        packages
// @Produce     json
// @Success     200 {object} models.PackageListResponse
// @Router      /packages [get]
func PackagesHandler(c *gin.Context) {
	c.JSON(http.StatusOK, models.PackageListResponse{Packages: models.Packages})
}
