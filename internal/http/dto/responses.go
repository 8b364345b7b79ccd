package dto

type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

type SuccessResponse struct {
	OK   bool `json:"ok"`
	Data any  `json:"data,omitempty"`
}

type BrandInfo struct {
	Name       string `json:"name"`
	Guidelines string `json:"guidelines"`
}

type PlatformInfo struct {
	Name  string `json:"name"`
	Rules string `json:"rules"`
}
