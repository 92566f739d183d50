package helpers

type ApiResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Total   int    `json:"total,omitempty"`
}

func SuccessResponse(data any, message string) ApiResponse {
	return ApiResponse{
		Success: true,
		Data:    data,
		Message: message,
	}
}

func ErrorResponse(err string) ApiResponse {
	return ApiResponse{
		Success: false,
		Error:   err,
	}
}

// ListResponse always emits a JSON array for data, even when there are no rows.
func ListResponse[T any](items []T) ApiResponse {
	if items == nil {
		items = []T{}
	}
	return ApiResponse{
		Success: true,
		Data:    items,
		Total:   len(items),
	}
}
