package models

// APIError is the JSON body of every failed backend response
type APIError struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// Error codes carried in APIError.Code
const (
	ErrBadRequest       = "BAD_REQUEST"
	ErrNotFound         = "NOT_FOUND"
	ErrInternalServer   = "INTERNAL_SERVER_ERROR"
	ErrValidationFailed = "VALIDATION_FAILED"

	// unknown id in the path, one per entity
	ErrSizeNotFound            = "SIZE_NOT_FOUND"
	ErrSauceNotFound           = "SAUCE_NOT_FOUND"
	ErrCrustNotFound           = "CRUST_NOT_FOUND"
	ErrToppingNotFound         = "TOPPING_NOT_FOUND"
	ErrToppingCategoryNotFound = "TOPPING_CATEGORY_NOT_FOUND"
	ErrPizzaNotFound           = "PIZZA_NOT_FOUND"

	// unknown id inside a payload
	ErrReferenceNotFound = "REFERENCE_NOT_FOUND"
	// delete refused while pizzas depend on the entity
	ErrInUse = "IN_USE"

	ErrImageNotFound     = "IMAGE_NOT_FOUND"
	ErrImageUploadFailed = "IMAGE_UPLOAD_FAILED"
)

// NewAPIError builds an APIError, attaching details when given
func NewAPIError(code, message string, details ...map[string]any) APIError {
	e := APIError{Code: code, Message: message}
	if len(details) > 0 {
		e.Details = details[0]
	}
	return e
}
