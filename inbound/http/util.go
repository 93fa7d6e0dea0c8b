package http

import (
	"concert-purchase/common/errs"
	"concert-purchase/model"
	"encoding/json"
	"errors"
	"github.com/go-playground/validator/v10"
	"net/http"
	"strconv"
)

func writeJSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if data == nil {
		return
	}

	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func writeErrorResponse(w http.ResponseWriter, err error) {
	if err == nil {
		return
	}

	w.Header().Set("Content-Type", "application/json")

	var message string
	var data any
	var httpErr *errs.HttpError
	var fieldsErr *errs.ValidationError
	if errors.As(err, &httpErr) {
		message = httpErr.Message
		data = httpErr.Data
		w.WriteHeader(httpErr.Code)
	} else if errors.As(err, &fieldsErr) {
		message = "Validation failed"
		data = fieldsErr.Fields
		w.WriteHeader(http.StatusBadRequest)
	} else if validationErr, ok := err.(validator.ValidationErrors); ok {
		message = "Validation failed"
		w.WriteHeader(http.StatusBadRequest)

		validationErrors := make(map[string]string)
		for _, fieldErr := range validationErr {
			fieldName := fieldErr.Field()
			validationErrors[fieldName] = fieldErr.Tag()
		}

		data = validationErrors
	} else if errors.Is(err, errs.ErrConcertNotFound) {
		message = "Concert not found"
		w.WriteHeader(http.StatusNotFound)
	} else if errors.Is(err, errs.ErrDependencyUnavailable) {
		message = "Service Unavailable"
		w.WriteHeader(http.StatusServiceUnavailable)
	} else {
		message = "Internal Server Error"
		w.WriteHeader(500)
	}

	errorResponse := model.ErrorResponse{Error: message, Data: data}
	if err := json.NewEncoder(w).Encode(errorResponse); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func parseConcertId(r *http.Request) (int32, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 32)
	if err != nil || id <= 0 {
		return 0, &errs.HttpError{Code: http.StatusBadRequest, Message: "Invalid concert id"}
	}

	return int32(id), nil
}
