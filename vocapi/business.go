package vocapi

import (
	"context"
	"encoding/json"
	"net/http"
)

func (c *Client) AddRestaurant(ctx context.Context, b Business) (json.RawMessage, error) {
	var resp json.RawMessage
	err := c.do(ctx, call{
		method:   http.MethodPost,
		path:     "/Business/addBusiness",
		body:     b,
		out:      &resp,
		fallback: "Failed to add restaurant",
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) GetBusinessTypes(ctx context.Context) ([]BusinessType, error) {
	var types []BusinessType
	err := c.do(ctx, call{
		method:   http.MethodGet,
		path:     "/Business/getBusinessTypes",
		out:      &types,
		fallback: "Failed to fetch business types",
	})
	if err != nil {
		return nil, err
	}
	return types, nil
}

func (c *Client) ValidateAddress(ctx context.Context, address string) (*AddressValidation, error) {
	var v AddressValidation
	err := c.do(ctx, call{
		method:   http.MethodPost,
		path:     "/Business/validateAddress",
		body:     map[string]string{"address": address},
		out:      &v,
		fallback: "Failed to validate address",
	})
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (c *Client) SubmitReview(ctx context.Context, r Review) (*Acknowledgement, error) {
	var ack Acknowledgement
	err := c.do(ctx, call{
		method:   http.MethodPost,
		path:     "/restaurants/reviews",
		body:     r,
		out:      &ack,
		fallback: "Failed to submit review",
	})
	if err != nil {
		return nil, err
	}
	return &ack, nil
}
