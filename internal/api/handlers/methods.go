package handlers

import (
	"net/http"

	"pv-yield/internal/api/models"
	"pv-yield/internal/model"
	"pv-yield/internal/yield"

	"github.com/gin-gonic/gin"
)

// ListMethods handles GET /api/v1/methods
func ListMethods(c *gin.Context) {
	c.JSON(http.StatusOK, models.MethodsResponse{
		Periods: []models.OptionInfo{
			{Name: yield.Month.Name(), Description: "Calendar months in the series' time zone", Default: true},
			{Name: yield.Day.Name(), Description: "Calendar days"},
			{Name: yield.Year.Name(), Description: "Calendar years"},
			{Name: "<duration>", Description: "Fixed buckets of a Go duration, e.g. 168h, starting at the first sample"},
		},
		PRMethods: []models.OptionInfo{
			{Name: string(yield.PRRearCorrected), Description: "(E/P)/(H/1000) divided by (1 + rear/front)", Default: true},
			{Name: string(yield.PRPlain), Description: "(E/P)/(H/1000) with H the front effective insolation"},
		},
		EnergyUnits: []models.OptionInfo{
			{Name: string(model.UnitWh), Description: "Watt-hours"},
			{Name: string(model.UnitKWh), Description: "Kilowatt-hours", Default: true},
			{Name: string(model.UnitMWh), Description: "Megawatt-hours"},
		},
	})
}
