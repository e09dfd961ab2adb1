package payment

// Method is a supported payment channel. FeePercent is the surcharge shown
// to the user next to the method; it is informational only and is never
// applied to the order total.
type Method struct {
	Code       string  `json:"code"`
	Name       string  `json:"name"`
	FeePercent float64 `json:"fee"`
}

const (
	MethodTransfer   = "transfer"
	MethodEwallet    = "ewallet"
	MethodCreditCard = "creditcard"
	MethodVirtual    = "virtual"
	// MethodMock resolves through explicit user confirmation instead of a
	// remote provider. It is the only method guaranteed to work without
	// network or gateway credentials and is the reference path for tests.
	MethodMock = "mock"
)

var methods = []Method{
	{Code: MethodTransfer, Name: "Transfer Bank", FeePercent: 0},
	{Code: MethodEwallet, Name: "E-Wallet (GCash, Dana, OVO)", FeePercent: 0},
	{Code: MethodCreditCard, Name: "Kartu Kredit", FeePercent: 2.5},
	{Code: MethodVirtual, Name: "Virtual Account", FeePercent: 0},
	{Code: MethodMock, Name: "Demo Payment (Testing)", FeePercent: 0},
}

// Methods lists the available payment methods in display order.
func Methods() []Method {
	out := make([]Method, len(methods))
	copy(out, methods)
	return out
}

// LookupMethod resolves a method code. The second result is false for empty
// or unrecognized codes.
func LookupMethod(code string) (Method, bool) {
	for _, m := range methods {
		if m.Code == code {
			return m, true
		}
	}
	return Method{}, false
}
