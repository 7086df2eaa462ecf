package handlers

import (
	"bytes"
	"encoding/json"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ecommerce-backend/internal/domain/apperror"
	"github.com/oksasatya/go-ecommerce-backend/pkg/response"
)

// fail writes err as an error envelope. Internal and untyped errors are logged with their cause.
func fail(c *gin.Context, logger *logrus.Logger, err error) {
	if logger != nil && !isAppError(err) {
		logger.WithError(err).WithFields(logrus.Fields{
			"request_id": c.GetString("request_id"),
			"path":       c.FullPath(),
		}).Error("request failed")
	}
	response.FromError(c, err)
}

func isAppError(err error) bool {
	_, category, _ := apperror.HTTPStatus(err)
	return category != "INTERNAL_ERROR"
}

// rawNumber returns the text of a JSON number or numeric string.
func rawNumber(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	var s string
	if len(raw) > 0 && raw[0] == '"' {
		if err := json.Unmarshal(raw, &s); err == nil {
			return s
		}
	}
	return string(raw)
}
