package checkout

import (
	"context"
	"fmt"
	"sync"

	"wastewise-pickup-demo/internal/geo"
	"wastewise-pickup-demo/internal/impact"
	"wastewise-pickup-demo/internal/model"
	"wastewise-pickup-demo/internal/payment"
	"wastewise-pickup-demo/internal/pricing"
)

type Step int

const (
	StepDetails Step = iota
	StepLocation
	StepReview
	StepConfirmation
)

func (s Step) String() string {
	switch s {
	case StepDetails:
		return "details"
	case StepLocation:
		return "location"
	case StepReview:
		return "review"
	case StepConfirmation:
		return "confirmation"
	default:
		return "unknown"
	}
}

// ValidationError reports the first invalid field of the current step. It is
// user-correctable and blocks the step transition.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Contribution is the reward snapshot of one completed submission.
type Contribution struct {
	WasteType    string
	Weight       float64
	Points       int
	CO2Saved     float64
	LocationName string
}

// Rewards persists the outcome of a successful submission. AwardPoints
// returns false when there is no active session, in which case the points
// are dropped, not queued.
type Rewards interface {
	AwardPoints(ctx context.Context, points int, source string) bool
	RecordContribution(ctx context.Context, c Contribution) error
}

// Form is the user input collected across the steps.
type Form struct {
	WasteType     string
	Weight        float64
	Condition     string
	PickupAddress string
	Location      *model.Location
	UserPosition  *geo.Point
}

// Summary is the review-step recap, recomputed from current form values each
// time the review step is entered.
type Summary struct {
	WasteType     string
	Condition     string
	Weight        float64
	LocationName  string
	PickupAddress string
	Quote         *pricing.Quote
}

// Controller drives the pickup form through its steps. All state is explicit
// and every collaborator is injected, so the whole flow is testable without
// any UI. Safe for concurrent use; one payment attempt at a time.
type Controller struct {
	processor *payment.Processor
	rewards   Rewards

	mu          sync.Mutex
	step        Step
	form        Form
	summary     *Summary
	inFlight    bool
	lastOutcome *payment.Outcome
	lastImpact  *impact.Result
}

func NewController(processor *payment.Processor, rewards Rewards) *Controller {
	return &Controller{
		processor: processor,
		rewards:   rewards,
	}
}

func (c *Controller) Step() Step {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.step
}

func (c *Controller) Form() Form {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.form
}

func (c *Controller) Summary() *Summary {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.summary
}

func (c *Controller) LastOutcome() *payment.Outcome {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastOutcome
}

func (c *Controller) LastImpact() *impact.Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastImpact
}

func (c *Controller) SetDetails(wasteType string, weight float64, condition, pickupAddress string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.form.WasteType = wasteType
	c.form.Weight = weight
	c.form.Condition = condition
	c.form.PickupAddress = pickupAddress
}

func (c *Controller) SelectLocation(loc *model.Location) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.form.Location = loc
}

func (c *Controller) SetUserPosition(p *geo.Point) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.form.UserPosition = p
}

// EstimatedCost re-prices the current form. Nil until both a location and a
// positive weight are present.
func (c *Controller) EstimatedCost() *pricing.Quote {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.estimate()
}

func (c *Controller) estimate() *pricing.Quote {
	return pricing.Estimate(c.form.Weight, c.form.Location, c.form.UserPosition)
}

// Advance validates the current step and, when valid, moves one step
// forward. Entering the review step recomputes the summary. No-op at the
// last step.
func (c *Controller) Advance() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.validateStep(); err != nil {
		return err
	}
	if c.step >= StepConfirmation {
		return nil
	}

	c.step++
	if c.step == StepReview {
		c.refreshSummary()
	}
	return nil
}

// Retreat moves one step back without re-validation. No-op at the first
// step.
func (c *Controller) Retreat() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.step > StepDetails {
		c.step--
	}
}

func (c *Controller) validateStep() error {
	switch c.step {
	case StepDetails:
		if c.form.WasteType == "" {
			return &ValidationError{Field: "wasteType", Message: "choose a waste type"}
		}
		if c.form.Weight < 1 {
			return &ValidationError{Field: "wasteWeight", Message: "weight must be at least 1 kg"}
		}
	case StepLocation:
		if c.form.Location == nil {
			return &ValidationError{Field: "location", Message: "select a drop-off location first"}
		}
	}
	return nil
}

func (c *Controller) refreshSummary() {
	s := &Summary{
		WasteType:     c.form.WasteType,
		Condition:     c.form.Condition,
		Weight:        c.form.Weight,
		PickupAddress: c.form.PickupAddress,
		Quote:         c.estimate(),
	}
	if c.form.Location != nil {
		s.LocationName = c.form.Location.Name
	}
	c.summary = s
}

// ProcessPayment runs one payment attempt from the review step. On a
// successful (or pending) outcome it computes the reward, credits the points
// exactly once, records the contribution, and only then advances to the
// confirmation step. A failure outcome leaves the controller on the review
// step for another attempt. While one attempt is outstanding, further calls
// return an error instead of starting a second one.
func (c *Controller) ProcessPayment(ctx context.Context, methodCode string) (payment.Outcome, error) {
	c.mu.Lock()
	if c.step != StepReview {
		c.mu.Unlock()
		return payment.Outcome{}, fmt.Errorf("payment is only available from the review step")
	}
	if c.inFlight {
		c.mu.Unlock()
		return payment.Outcome{}, fmt.Errorf("a payment attempt is already in progress")
	}
	quote := c.estimate()
	if quote == nil {
		c.mu.Unlock()
		return payment.Outcome{}, fmt.Errorf("order is not estimable yet")
	}
	c.inFlight = true
	form := c.form
	c.mu.Unlock()

	order := payment.Order{
		OrderID:      payment.NewTransactionID(),
		WasteType:    form.WasteType,
		Weight:       form.Weight,
		LocationName: form.Location.Name,
		TotalCost:    quote.Total,
	}

	// Provider call happens without the lock so reads stay responsive.
	outcome, err := c.processor.Process(ctx, order, methodCode)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.inFlight = false

	if err != nil {
		return outcome, err
	}

	c.lastOutcome = &outcome
	if outcome.Status == payment.StatusFailure {
		return outcome, nil
	}

	res := impact.Calculate(form.WasteType, form.Weight)
	c.rewards.AwardPoints(ctx, res.Points, "waste_delivery")
	if err := c.rewards.RecordContribution(ctx, Contribution{
		WasteType:    form.WasteType,
		Weight:       form.Weight,
		Points:       res.Points,
		CO2Saved:     res.CO2Saved,
		LocationName: form.Location.Name,
	}); err != nil {
		return outcome, fmt.Errorf("record contribution: %w", err)
	}

	c.lastImpact = &res
	c.step = StepConfirmation
	return outcome, nil
}

// Submit finishes a completed flow: it clears all fields and returns the
// controller to the first step.
func (c *Controller) Submit() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.form = Form{}
	c.summary = nil
	c.lastOutcome = nil
	c.lastImpact = nil
	c.step = StepDetails
}
