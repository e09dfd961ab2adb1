package handler

import (
	"errors"
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"

	"wastewise-pickup-demo/internal/checkout"
	"wastewise-pickup-demo/internal/dto"
	"wastewise-pickup-demo/internal/geo"
	"wastewise-pickup-demo/internal/payment"
	"wastewise-pickup-demo/internal/service"
)

// RewardsFactory builds the reward sink bound to one authenticated user.
type RewardsFactory func(userID string) checkout.Rewards

// CheckoutHandler exposes the multi-step pickup form over HTTP. One
// controller per authenticated user, kept in memory for the lifetime of the
// process.
type CheckoutHandler struct {
	processor       *payment.Processor
	locationService service.LocationService
	rewardsFor      RewardsFactory

	mu          sync.Mutex
	controllers map[string]*checkout.Controller
}

func NewCheckoutHandler(
	processor *payment.Processor,
	locationService service.LocationService,
	rewardsFor RewardsFactory,
) *CheckoutHandler {
	return &CheckoutHandler{
		processor:       processor,
		locationService: locationService,
		rewardsFor:      rewardsFor,
		controllers:     make(map[string]*checkout.Controller),
	}
}

func (h *CheckoutHandler) controllerFor(userID string) *checkout.Controller {
	h.mu.Lock()
	defer h.mu.Unlock()

	ctrl, ok := h.controllers[userID]
	if !ok {
		ctrl = checkout.NewController(h.processor, h.rewardsFor(userID))
		h.controllers[userID] = ctrl
	}

	return ctrl
}

func (h *CheckoutHandler) State(c echo.Context) error {
	return c.JSON(http.StatusOK, stateResponse(h.controllerFor(userIDFromContext(c))))
}

func (h *CheckoutHandler) SetDetails(c echo.Context) error {
	var req dto.DetailsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	ctrl := h.controllerFor(userIDFromContext(c))
	ctrl.SetDetails(req.WasteType, req.Weight, req.Condition, req.PickupAddress)

	return c.JSON(http.StatusOK, stateResponse(ctrl))
}

func (h *CheckoutHandler) SelectLocation(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.SelectLocationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	location, err := h.locationService.Get(ctx, req.LocationID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "location not found")
	}

	ctrl := h.controllerFor(userIDFromContext(c))
	ctrl.SelectLocation(location)

	return c.JSON(http.StatusOK, stateResponse(ctrl))
}

func (h *CheckoutHandler) SetPosition(c echo.Context) error {
	var req dto.PositionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	ctrl := h.controllerFor(userIDFromContext(c))
	ctrl.SetUserPosition(&geo.Point{Lat: req.Lat, Lng: req.Lng})

	return c.JSON(http.StatusOK, stateResponse(ctrl))
}

func (h *CheckoutHandler) Advance(c echo.Context) error {
	ctrl := h.controllerFor(userIDFromContext(c))

	if err := ctrl.Advance(); err != nil {
		var vErr *checkout.ValidationError
		if errors.As(err, &vErr) {
			return c.JSON(http.StatusBadRequest, map[string]string{
				"field":   vErr.Field,
				"message": vErr.Message,
			})
		}
		return err
	}

	return c.JSON(http.StatusOK, stateResponse(ctrl))
}

func (h *CheckoutHandler) Back(c echo.Context) error {
	ctrl := h.controllerFor(userIDFromContext(c))
	ctrl.Retreat()

	return c.JSON(http.StatusOK, stateResponse(ctrl))
}

func (h *CheckoutHandler) Pay(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.PayRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	ctrl := h.controllerFor(userIDFromContext(c))

	outcome, err := ctrl.ProcessPayment(ctx, req.Method)
	if err != nil {
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}

	if outcome.Status == payment.StatusFailure {
		reason := "payment failed"
		if outcome.Reason != nil {
			reason = outcome.Reason.Error()
		}
		return c.JSON(http.StatusPaymentRequired, map[string]string{
			"status": string(outcome.Status),
			"reason": reason,
		})
	}

	return c.JSON(http.StatusOK, stateResponse(ctrl))
}

func (h *CheckoutHandler) Submit(c echo.Context) error {
	ctrl := h.controllerFor(userIDFromContext(c))
	ctrl.Submit()

	return c.JSON(http.StatusOK, stateResponse(ctrl))
}

func stateResponse(ctrl *checkout.Controller) *dto.CheckoutStateResponse {
	resp := &dto.CheckoutStateResponse{
		Step:     int(ctrl.Step()),
		StepName: ctrl.Step().String(),
	}

	if quote := ctrl.EstimatedCost(); quote != nil {
		total := quote.Total.String()
		resp.Estimate = &total
	}

	if s := ctrl.Summary(); s != nil {
		info := &dto.SummaryInfo{
			WasteType:     s.WasteType,
			Condition:     s.Condition,
			Weight:        s.Weight,
			LocationName:  s.LocationName,
			PickupAddress: s.PickupAddress,
		}
		if s.Quote != nil {
			total := s.Quote.Total.String()
			info.TotalCost = &total
			if s.Quote.DistanceKm > 0 {
				info.DistanceKm = &s.Quote.DistanceKm
			}
		}
		resp.Summary = info
	}

	if outcome := ctrl.LastOutcome(); outcome != nil {
		resp.TransactionID = outcome.TransactionID
	}
	if res := ctrl.LastImpact(); res != nil {
		resp.Points = res.Points
		resp.CO2Saved = res.CO2Saved
	}

	return resp
}
