package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/akorchagin/taskvault/internal/model"
)

// errorBody is the JSON error envelope. Code lets clients distinguish
// expired from malformed access tokens (refresh vs re-login) without
// parsing messages; the message for credential failures stays generic.
type errorBody struct {
	Status  string       `json:"status"`
	Code    string       `json:"code,omitempty"`
	Message string       `json:"message"`
	Errors  []fieldError `json:"errors,omitempty"`
}

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// writeError is the single boundary translator from error kinds to
// HTTP responses. Nothing it emits names which login check failed.
func writeError(c *gin.Context, err error) {
	var status int
	body := errorBody{Status: "error"}

	switch {
	case errors.Is(err, model.ErrEmailTaken):
		status = http.StatusBadRequest
		body.Code = "email_taken"
		body.Message = "Email already in use"
	case errors.Is(err, model.ErrInvalidCredentials):
		status = http.StatusUnauthorized
		body.Code = "invalid_credentials"
		body.Message = "Incorrect email or password"
	case errors.Is(err, model.ErrEmptyPassword):
		status = http.StatusBadRequest
		body.Code = "validation_failed"
		body.Message = "Password is required"
	case errors.Is(err, model.ErrInvalidDateRange):
		status = http.StatusBadRequest
		body.Code = "validation_failed"
		body.Message = "Validation failed"
		body.Errors = []fieldError{{Field: "startDate", Message: "must be before end date"}}
	case errors.Is(err, model.ErrMissingToken):
		status = http.StatusUnauthorized
		body.Code = "missing_token"
		body.Message = "You are not logged in. Please log in to get access."
	case errors.Is(err, model.ErrTokenExpired):
		status = http.StatusUnauthorized
		body.Code = "token_expired"
		body.Message = "Your token has expired. Please log in again."
	case errors.Is(err, model.ErrTokenMalformed), errors.Is(err, model.ErrTokenKindMismatch):
		status = http.StatusUnauthorized
		body.Code = "token_invalid"
		body.Message = "Invalid token. Please log in again."
	case errors.Is(err, model.ErrRefreshMismatch):
		status = http.StatusUnauthorized
		body.Code = "refresh_mismatch"
		body.Message = "Invalid refresh token"
	case errors.Is(err, model.ErrUserGone):
		status = http.StatusUnauthorized
		body.Code = "user_gone"
		body.Message = "The user no longer exists."
	case errors.Is(err, model.ErrForbidden):
		status = http.StatusForbidden
		body.Code = "forbidden"
		body.Message = "You do not have permission to perform this action"
	case errors.Is(err, model.ErrNotFound):
		status = http.StatusNotFound
		body.Code = "not_found"
		body.Message = "Not found"
	default:
		status = http.StatusInternalServerError
		body.Code = "internal"
		body.Message = "Something went wrong"
	}

	c.AbortWithStatusJSON(status, body)
}

// writeValidationError reports binding failures with per-field detail.
func writeValidationError(c *gin.Context, err error) {
	body := errorBody{
		Status:  "error",
		Code:    "validation_failed",
		Message: "Validation failed",
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			body.Errors = append(body.Errors, fieldError{
				Field:   fe.Field(),
				Message: validationMessage(fe),
			})
		}
	}

	c.AbortWithStatusJSON(http.StatusBadRequest, body)
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "is too short (min " + fe.Param() + ")"
	case "max":
		return "is too long (max " + fe.Param() + ")"
	case "oneof":
		return "must be one of: " + fe.Param()
	default:
		return "is invalid"
	}
}
