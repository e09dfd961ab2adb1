package checkout

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wastewise-pickup-demo/internal/geo"
	"wastewise-pickup-demo/internal/model"
	"wastewise-pickup-demo/internal/payment"
)

// rewardsRecorder counts credit calls so tests can prove points are awarded
// exactly once per submission.
type rewardsRecorder struct {
	awardCalls    int
	awardedPoints int
	contributions []Contribution
	loggedIn      bool
}

func (r *rewardsRecorder) AwardPoints(_ context.Context, points int, _ string) bool {
	r.awardCalls++
	if !r.loggedIn {
		return false
	}
	r.awardedPoints += points
	return true
}

func (r *rewardsRecorder) RecordContribution(_ context.Context, c Contribution) error {
	r.contributions = append(r.contributions, c)
	return nil
}

var testSite = &model.Location{
	ID:       1,
	Name:     "Bank Sampah Sejahtera - Jakarta Pusat",
	Address:  "Jl. Kebon Sirih No. 45, Jakarta Pusat",
	Lat:      -6.1754,
	Lng:      106.8272,
	Category: "plastik",
}

func newTestController(rewards Rewards) *Controller {
	return NewController(payment.NewProcessor(payment.AutoConfirm, nil, nil), rewards)
}

func TestAdvanceRequiresWasteType(t *testing.T) {
	c := newTestController(&rewardsRecorder{})
	c.SetDetails("", 3, "bersih", "")

	err := c.Advance()

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "wasteType", verr.Field)
	assert.Equal(t, StepDetails, c.Step())
}

func TestAdvanceRequiresMinimumWeight(t *testing.T) {
	c := newTestController(&rewardsRecorder{})
	c.SetDetails("plastik", 0.5, "", "")

	err := c.Advance()

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "wasteWeight", verr.Field)
	assert.Equal(t, StepDetails, c.Step())
}

func TestAdvanceAcceptsExactlyOneKilogram(t *testing.T) {
	c := newTestController(&rewardsRecorder{})
	c.SetDetails("plastik", 1, "", "")

	require.NoError(t, c.Advance())
	assert.Equal(t, StepLocation, c.Step())
}

func TestAdvanceRequiresLocation(t *testing.T) {
	c := newTestController(&rewardsRecorder{})
	c.SetDetails("plastik", 2, "", "")
	require.NoError(t, c.Advance())

	err := c.Advance()

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "location", verr.Field)
	assert.Equal(t, StepLocation, c.Step())
}

func TestRetreatStopsAtFirstStep(t *testing.T) {
	c := newTestController(&rewardsRecorder{})

	c.Retreat()

	assert.Equal(t, StepDetails, c.Step())
}

func TestRetreatSkipsValidation(t *testing.T) {
	c := newTestController(&rewardsRecorder{})
	c.SetDetails("plastik", 2, "", "")
	require.NoError(t, c.Advance())

	// clearing the form must not block going back
	c.SetDetails("", 0, "", "")
	c.Retreat()

	assert.Equal(t, StepDetails, c.Step())
}

func TestSummaryRecomputedOnReview(t *testing.T) {
	c := newTestController(&rewardsRecorder{})
	c.SetDetails("plastik", 2, "bersih", "Jl. Sudirman 1")
	require.NoError(t, c.Advance())
	c.SelectLocation(testSite)
	require.NoError(t, c.Advance())

	s := c.Summary()
	require.NotNil(t, s)
	assert.Equal(t, "plastik", s.WasteType)
	assert.Equal(t, testSite.Name, s.LocationName)
	require.NotNil(t, s.Quote)
	assert.Equal(t, "7000", s.Quote.Total.String())

	// edit on an earlier step, then return to review
	c.Retreat()
	c.Retreat()
	c.SetDetails("plastik", 4, "bersih", "Jl. Sudirman 1")
	require.NoError(t, c.Advance())
	require.NoError(t, c.Advance())

	assert.Equal(t, "9000", c.Summary().Quote.Total.String())
}

func TestEstimatedCostNilUntilFormComplete(t *testing.T) {
	c := newTestController(&rewardsRecorder{})

	assert.Nil(t, c.EstimatedCost())

	c.SetDetails("plastik", 2, "", "")
	assert.Nil(t, c.EstimatedCost())

	c.SelectLocation(testSite)
	require.NotNil(t, c.EstimatedCost())
}

func TestEstimatedCostUsesUserPosition(t *testing.T) {
	c := newTestController(&rewardsRecorder{})
	c.SetDetails("plastik", 2, "", "")
	c.SelectLocation(testSite)

	base := c.EstimatedCost()
	c.SetUserPosition(&geo.Point{Lat: -6.2000, Lng: 106.8166})
	withDistance := c.EstimatedCost()

	require.NotNil(t, base)
	require.NotNil(t, withDistance)
	assert.True(t, withDistance.Total.GreaterThan(base.Total))
}

func TestProcessPaymentOnlyFromReview(t *testing.T) {
	c := newTestController(&rewardsRecorder{})

	_, err := c.ProcessPayment(context.Background(), payment.MethodMock)

	assert.Error(t, err)
}

func advanceToReview(t *testing.T, c *Controller) {
	t.Helper()
	c.SetDetails("plastik", 3, "bersih", "Jl. Sudirman 1")
	require.NoError(t, c.Advance())
	c.SelectLocation(testSite)
	require.NoError(t, c.Advance())
	require.Equal(t, StepReview, c.Step())
}

func TestProcessPaymentCreditsPointsOnce(t *testing.T) {
	rewards := &rewardsRecorder{loggedIn: true}
	c := newTestController(rewards)
	advanceToReview(t, c)

	outcome, err := c.ProcessPayment(context.Background(), payment.MethodMock)

	require.NoError(t, err)
	assert.Equal(t, payment.StatusSuccess, outcome.Status)
	assert.Equal(t, StepConfirmation, c.Step())

	assert.Equal(t, 1, rewards.awardCalls)
	assert.Equal(t, 30, rewards.awardedPoints)
	require.Len(t, rewards.contributions, 1)
	assert.Equal(t, 7.5, rewards.contributions[0].CO2Saved)
	assert.Equal(t, testSite.Name, rewards.contributions[0].LocationName)

	require.NotNil(t, c.LastImpact())
	assert.Equal(t, 30, c.LastImpact().Points)
}

func TestProcessPaymentAnonymousDropsPoints(t *testing.T) {
	rewards := &rewardsRecorder{loggedIn: false}
	c := newTestController(rewards)
	advanceToReview(t, c)

	_, err := c.ProcessPayment(context.Background(), payment.MethodMock)

	require.NoError(t, err)
	assert.Equal(t, StepConfirmation, c.Step())
	assert.Equal(t, 1, rewards.awardCalls)
	assert.Zero(t, rewards.awardedPoints)
}

func TestProcessPaymentFailureStaysOnReview(t *testing.T) {
	rewards := &rewardsRecorder{loggedIn: true}
	decline := payment.ConfirmerFunc(func(context.Context, payment.Order) (bool, error) {
		return false, nil
	})
	c := NewController(payment.NewProcessor(decline, nil, nil), rewards)
	advanceToReview(t, c)

	outcome, err := c.ProcessPayment(context.Background(), payment.MethodMock)

	require.NoError(t, err)
	assert.Equal(t, payment.StatusFailure, outcome.Status)
	assert.ErrorIs(t, outcome.Reason, payment.ErrCancelled)
	assert.Equal(t, StepReview, c.Step())
	assert.Zero(t, rewards.awardCalls)
	assert.Empty(t, rewards.contributions)
}

func TestProcessPaymentUnknownMethodFails(t *testing.T) {
	rewards := &rewardsRecorder{loggedIn: true}
	c := newTestController(rewards)
	advanceToReview(t, c)

	outcome, err := c.ProcessPayment(context.Background(), "cash")

	require.NoError(t, err)
	assert.Equal(t, payment.StatusFailure, outcome.Status)
	assert.Equal(t, StepReview, c.Step())
	assert.Zero(t, rewards.awardCalls)
}

// A second attempt started while one is outstanding must be rejected, and
// points must still be credited exactly once.
func TestProcessPaymentRejectsConcurrentAttempt(t *testing.T) {
	rewards := &rewardsRecorder{loggedIn: true}
	started := make(chan struct{})
	release := make(chan struct{})
	slow := payment.ConfirmerFunc(func(context.Context, payment.Order) (bool, error) {
		close(started)
		<-release
		return true, nil
	})
	c := NewController(payment.NewProcessor(slow, nil, nil), rewards)
	advanceToReview(t, c)

	firstDone := make(chan error, 1)
	go func() {
		_, err := c.ProcessPayment(context.Background(), payment.MethodMock)
		firstDone <- err
	}()

	<-started
	_, err := c.ProcessPayment(context.Background(), payment.MethodMock)
	assert.ErrorContains(t, err, "already in progress")

	close(release)
	require.NoError(t, <-firstDone)

	assert.Equal(t, StepConfirmation, c.Step())
	assert.Equal(t, 1, rewards.awardCalls)
	assert.Equal(t, 30, rewards.awardedPoints)
	require.Len(t, rewards.contributions, 1)
}

func TestSubmitResetsEverything(t *testing.T) {
	rewards := &rewardsRecorder{loggedIn: true}
	c := newTestController(rewards)
	advanceToReview(t, c)
	_, err := c.ProcessPayment(context.Background(), payment.MethodMock)
	require.NoError(t, err)

	c.Submit()

	assert.Equal(t, StepDetails, c.Step())
	assert.Equal(t, Form{}, c.Form())
	assert.Nil(t, c.Summary())
	assert.Nil(t, c.LastOutcome())
	assert.Nil(t, c.LastImpact())
	assert.Nil(t, c.EstimatedCost())
}
