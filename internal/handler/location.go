package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"wastewise-pickup-demo/internal/dto"
	"wastewise-pickup-demo/internal/geo"
	"wastewise-pickup-demo/internal/pricing"
	"wastewise-pickup-demo/internal/service"
)

type LocationHandler struct {
	locationService service.LocationService
}

func NewLocationHandler(locationService service.LocationService) *LocationHandler {
	return &LocationHandler{
		locationService: locationService,
	}
}

func (h *LocationHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	locations, err := h.locationService.List(ctx, c.QueryParam("category"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, &dto.LocationsResponse{Data: locations})
}

// Estimate prices a pickup from query parameters: weight (kg), locationId,
// and optionally the user's lat/lng. A null estimate means the inputs are
// not estimable yet, which is distinct from a zero cost.
func (h *LocationHandler) Estimate(c echo.Context) error {
	ctx := c.Request().Context()

	weight, _ := strconv.ParseFloat(c.QueryParam("weight"), 64)

	locationID, err := strconv.ParseUint(c.QueryParam("locationId"), 10, 32)
	if err != nil || locationID == 0 {
		return c.JSON(http.StatusOK, &dto.EstimateResponse{Estimate: nil})
	}

	location, err := h.locationService.Get(ctx, uint(locationID))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "location not found")
	}

	var userPos *geo.Point
	lat, errLat := strconv.ParseFloat(c.QueryParam("lat"), 64)
	lng, errLng := strconv.ParseFloat(c.QueryParam("lng"), 64)
	if errLat == nil && errLng == nil {
		userPos = &geo.Point{Lat: lat, Lng: lng}
	}

	quote := pricing.Estimate(weight, location, userPos)
	if quote == nil {
		return c.JSON(http.StatusOK, &dto.EstimateResponse{Estimate: nil})
	}

	total := quote.Total.String()
	resp := &dto.EstimateResponse{Estimate: &total}
	if quote.DistanceKm > 0 {
		resp.DistanceKm = &quote.DistanceKm
	}

	return c.JSON(http.StatusOK, resp)
}
