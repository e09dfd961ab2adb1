package dto

import (
	"wastewise-pickup-demo/internal/model"
)

type RegisterRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserInfo struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Points int    `json:"points"`
}

type AuthResponse struct {
	Token string   `json:"token"`
	User  UserInfo `json:"user"`
}

type LocationsResponse struct {
	Data []*model.Location `json:"data"`
}

// EstimateResponse carries a quote, or a null estimate when the inputs are
// not estimable yet.
type EstimateResponse struct {
	Estimate   *string  `json:"estimate"` // whole rupiah, decimal string
	DistanceKm *float64 `json:"distance_km,omitempty"`
}

type SnapTokenRequest struct {
	OrderID       string  `json:"orderId"`
	Amount        int64   `json:"amount"`
	WasteType     string  `json:"wasteType"`
	Weight        float64 `json:"weight"`
	Location      string  `json:"location"`
	PaymentMethod string  `json:"paymentMethod"`
}

type SnapTokenResponse struct {
	SnapToken string `json:"snapToken"`
}

type SaveTransactionRequest struct {
	TransactionID string  `json:"transactionId"`
	OrderID       string  `json:"orderId"`
	Amount        int64   `json:"amount"`
	Status        string  `json:"status"`
	WasteType     string  `json:"wasteType"`
	Weight        float64 `json:"weight"`
	Location      string  `json:"location"`
}

type SaveTransactionResponse struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	TransactionID string `json:"transactionId"`
}

type DetailsRequest struct {
	WasteType     string  `json:"wasteType"`
	Weight        float64 `json:"weight"`
	Condition     string  `json:"condition"`
	PickupAddress string  `json:"pickupAddress"`
}

type SelectLocationRequest struct {
	LocationID uint `json:"locationId"`
}

type PositionRequest struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type PayRequest struct {
	Method string `json:"method"`
}

type SummaryInfo struct {
	WasteType     string   `json:"wasteType"`
	Condition     string   `json:"condition"`
	Weight        float64  `json:"weight"`
	LocationName  string   `json:"location"`
	PickupAddress string   `json:"pickupAddress"`
	TotalCost     *string  `json:"totalCost"`
	DistanceKm    *float64 `json:"distanceKm,omitempty"`
}

type CheckoutStateResponse struct {
	Step          int          `json:"step"`
	StepName      string       `json:"stepName"`
	Summary       *SummaryInfo `json:"summary,omitempty"`
	Estimate      *string      `json:"estimate"`
	TransactionID string       `json:"transactionId,omitempty"`
	Points        int          `json:"points,omitempty"`
	CO2Saved      float64      `json:"co2Saved,omitempty"`
}
