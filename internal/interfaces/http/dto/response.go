package dto

// Response is the standard API response envelope
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
	Meta    *Meta       `json:"meta,omitempty"`
}

// ErrorInfo carries error details in the response envelope
type ErrorInfo struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// Meta carries pagination metadata for list responses
type Meta struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// SuccessResponse creates a success response with data
func SuccessResponse(data interface{}) Response {
	return Response{Success: true, Data: data}
}

// SuccessResponseWithMeta creates a success response with data and pagination metadata
func SuccessResponseWithMeta(data interface{}, meta Meta) Response {
	return Response{Success: true, Data: data, Meta: &meta}
}

// ErrorResponse creates an error response
func ErrorResponse(code, message string) Response {
	return Response{Success: false, Error: &ErrorInfo{Code: code, Message: message}}
}

// ErrorResponseWithDetails creates an error response with additional details
func ErrorResponseWithDetails(code, message string, details interface{}) Response {
	return Response{Success: false, Error: &ErrorInfo{Code: code, Message: message, Details: details}}
}

// ValidationDetail describes a single field that failed request validation
type ValidationDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// IDRequest binds a resource id from the request path
type IDRequest struct {
	ID string `uri:"id" binding:"required,uuid"`
}

// ListRequest binds common pagination query parameters
type ListRequest struct {
	Page  int `form:"page,default=1" binding:"omitempty,min=1"`
	Limit int `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
}
