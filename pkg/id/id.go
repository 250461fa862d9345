package id

import (
	"github.com/gofrs/uuid"
)

// GenRequestID random uuid v4 carried in X-Request-Id
func GenRequestID() string {
	return uuid.Must(uuid.NewV4()).String()
}
