package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx
// responses. Label and ImageURL are only present on unrecognized-food
// failures.
type errorResponse struct {
	Error    string `json:"error"`
	Label    string `json:"label,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
}
