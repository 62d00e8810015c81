package controller

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"flip-order-labels/apperrors"
	"flip-order-labels/logger"
	"flip-order-labels/models"
)

const msgInvalidOrders = "Invalid orders data"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	return v
}

// decodeOrders decodes and validates a JSON body. Any problem is reported as
// "Invalid orders data" so clients see one stable message.
func decodeOrders(r *http.Request, dest any) error {
	defer func() {
		_, _ = io.Copy(io.Discard, r.Body)
	}()
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		return apperrors.Wrap(apperrors.CodeValidation, err, msgInvalidOrders)
	}
	if err := validate.Struct(dest); err != nil {
		return apperrors.Wrap(apperrors.CodeValidation, err, msgInvalidOrders)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeError maps err to a status and public message and logs the cause.
func writeError(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, err error, fallback string) {
	status, msg := apperrors.PublicMessage(err, fallback)
	if status >= http.StatusInternalServerError {
		logg.Error(ctx, "request.error", err)
	} else {
		logg.Warn(logg.WithField(ctx, "error", err.Error()), "request.rejected")
	}
	writeJSON(w, status, models.ErrorResponse{Error: msg})
}
