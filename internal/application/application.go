// Package application holds the use cases of the shop: authentication, user
// administration, the catalog, the cart ledger, checkout and order read-back.
// Services depend on the repository contracts only; store handles are injected.
package application

import (
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

func orDiscard(l *logrus.Logger) *logrus.Logger {
	if l != nil {
		return l
	}
	d := logrus.New()
	d.SetOutput(io.Discard)
	return d
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
