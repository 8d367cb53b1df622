package transport

import (
	"encoding/json"
	"net/http"

	"github.com/muhammadheryan/customer-hub/constant"
	cerr "github.com/muhammadheryan/customer-hub/utils/errors"
	"github.com/muhammadheryan/customer-hub/utils/logger"
	"go.uber.org/zap"
)

type errorResponse struct {
	ErrorCode string `json:"error_code"`
	Message   string `json:"message"`
}

func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

func writeSuccess(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusOK, data)
}

// writeError maps a CustomError to its HTTP status and user-facing message.
// Anything else becomes a generic 500 with the detail kept in the logs.
func writeError(w http.ResponseWriter, err error) {
	ce, ok := err.(cerr.CustomError)
	if !ok {
		logger.Error("unhandled error", zap.Error(err))
		ce = cerr.SetCustomError(constant.ErrInternal)
	}

	writeJSON(w, ce.ErrorHTTPCode(), errorResponse{
		ErrorCode: ce.ErrorCode(),
		Message:   ce.Error(),
	})
}
