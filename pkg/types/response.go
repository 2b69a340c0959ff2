package types

// MessageResponse is the body every successful mutation returns.
type MessageResponse struct {
	Message   string `json:"message"`
	VendorKey string `json:"vendorKey,omitempty"`
	ItemID    string `json:"itemId,omitempty"`
	Count     *int64 `json:"count,omitempty"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details any    `json:"details,omitempty"`
}
