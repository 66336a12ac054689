package service

import (
	"testing"

	"github.com/ferromax/backoffice-api/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestValidOrderTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    domain.SalesOrderStatus
		to      domain.SalesOrderStatus
		allowed bool
	}{
		{"pending to confirmed", domain.SalesOrderStatusPending, domain.SalesOrderStatusConfirmed, true},
		{"pending to cancelled", domain.SalesOrderStatusPending, domain.SalesOrderStatusCancelled, true},
		{"pending cannot skip to delivered", domain.SalesOrderStatusPending, domain.SalesOrderStatusDelivered, false},
		{"confirmed to delivered", domain.SalesOrderStatusConfirmed, domain.SalesOrderStatusDelivered, true},
		{"confirmed to cancelled", domain.SalesOrderStatusConfirmed, domain.SalesOrderStatusCancelled, true},
		{"confirmed cannot regress to pending", domain.SalesOrderStatusConfirmed, domain.SalesOrderStatusPending, false},
		{"delivered is terminal", domain.SalesOrderStatusDelivered, domain.SalesOrderStatusCancelled, false},
		{"cancelled is terminal", domain.SalesOrderStatusCancelled, domain.SalesOrderStatusConfirmed, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, validOrderTransition(tt.from, tt.to))
		})
	}
}
