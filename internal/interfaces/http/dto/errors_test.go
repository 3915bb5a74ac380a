package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		code string
		want int
	}{
		{"not found", "NOT_FOUND", http.StatusNotFound},
		{"already exists", "ALREADY_EXISTS", http.StatusConflict},
		{"import in progress", "IMPORT_IN_PROGRESS", http.StatusConflict},
		{"feed unavailable", "FEED_UNAVAILABLE", http.StatusBadGateway},
		{"invalid token hides existence", "INVALID_TOKEN", http.StatusNotFound},
		{"malformed catalog", "MALFORMED_CATALOG", http.StatusUnprocessableEntity},
		{"unmapped validation code", "INVALID_SHOP", http.StatusUnprocessableEntity},
		{"unknown code", "SOMETHING_ELSE", http.StatusInternalServerError},
		{"unauthorized", "UNAUTHORIZED", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetHTTPStatus(tt.code))
		})
	}
}
