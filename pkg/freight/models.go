package freight

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// RateRequest describes one shipment to be quoted.
type RateRequest struct {
	// OriginPostalCode is the store's dispatch CEP, digits only.
	OriginPostalCode string
	// DestinationPostalCode is the customer's CEP, digits only.
	DestinationPostalCode string
	// WeightGrams is the total shipment weight.
	WeightGrams int
}

// DeliveryEstimate is either a number of business days or a
// provider-formatted range string ("3 a 5 dias úteis"). Exactly one of the
// two forms is set; callers must handle both.
type DeliveryEstimate struct {
	Days int
	Text string
}

// EstimateDays returns an estimate expressed as a day count.
func EstimateDays(days int) DeliveryEstimate {
	return DeliveryEstimate{Days: days}
}

// EstimateText returns an estimate carrying the provider's own wording.
func EstimateText(text string) DeliveryEstimate {
	return DeliveryEstimate{Text: text}
}

// String renders the estimate for logs and error messages.
func (e DeliveryEstimate) String() string {
	if e.Text != "" {
		return e.Text
	}
	return fmt.Sprintf("%d days", e.Days)
}

// MarshalJSON emits an integer day count when one is known, otherwise the
// provider string, matching what checkout callers expect.
func (e DeliveryEstimate) MarshalJSON() ([]byte, error) {
	if e.Text != "" {
		return json.Marshal(e.Text)
	}
	return json.Marshal(e.Days)
}

// UnmarshalJSON accepts either form.
func (e *DeliveryEstimate) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if strings.HasPrefix(s, `"`) {
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		// A quoted plain number still counts as a day estimate.
		if days, err := strconv.Atoi(text); err == nil {
			*e = DeliveryEstimate{Days: days}
			return nil
		}
		*e = DeliveryEstimate{Text: text}
		return nil
	}
	var days int
	if err := json.Unmarshal(data, &days); err != nil {
		return err
	}
	*e = DeliveryEstimate{Days: days}
	return nil
}

// Option is one quotable delivery choice, normalized across providers.
type Option struct {
	Carrier          string           `json:"carrierName"`
	ServiceCode      string           `json:"serviceCode"`
	ServiceName      string           `json:"serviceName,omitempty"`
	Price            decimal.Decimal  `json:"price"`
	DeliveryEstimate DeliveryEstimate `json:"estimatedDeliveryDays"`
}

// QuoteResult wraps the options for one query together with the query that
// produced them. Immutable once returned.
type QuoteResult struct {
	PostalCode  string    `json:"postalCode"`
	WeightGrams int       `json:"weightGrams"`
	Options     []Option  `json:"options"`
	QuotedAt    time.Time `json:"quotedAt"`
}
