package cartdto

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Text accepts a JSON string or number and keeps its raw text, so quantity and
// price inputs reach the parsers exactly as the page read them.
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*t = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected string or number: %w", err)
	}
	*t = Text(n.String())
	return nil
}

func (t Text) String() string {
	return string(t)
}

// AddItemRequest is a listing card click. CardID resolves the card from the
// catalog; otherwise the card fields are taken as sent.
type AddItemRequest struct {
	CardID   string `json:"card_id,omitempty"`
	Name     string `json:"name,omitempty"`
	Price    Text   `json:"price,omitempty"`
	Image    string `json:"image,omitempty"`
	Category string `json:"category,omitempty"`
}

// AddDetailRequest is the single product form.
type AddDetailRequest struct {
	Name     string  `json:"name"`
	Price    Text    `json:"price"`
	Image    string  `json:"image"`
	Quantity Text    `json:"quantity"`
	Size     *string `json:"size,omitempty"`
}

// UpdateQuantityRequest targets the first line with Name; "" is a valid name.
type UpdateQuantityRequest struct {
	Name     string `json:"name"`
	Quantity Text   `json:"quantity"`
}

type UpdateLineRequest struct {
	Quantity Text `json:"quantity"`
}

type CouponRequest struct {
	Code string `json:"code"`
}

type CheckoutRequest struct {
	Confirmed bool `json:"confirmed"`
}
