package service_test

import (
	"testing"

	"github.com/ferromax/backoffice-api/internal/service"
	"github.com/stretchr/testify/assert"
)

func TestFormatQuotationNumber(t *testing.T) {
	assert.Equal(t, "QTN-2026-0001", service.FormatQuotationNumber(2026, 1))
	assert.Equal(t, "QTN-2026-0017", service.FormatQuotationNumber(2026, 17))
	assert.Equal(t, "QTN-2027-12345", service.FormatQuotationNumber(2027, 12345))
}

func TestFormatOrderNumber(t *testing.T) {
	assert.Equal(t, "SO-2026-0003", service.FormatOrderNumber(2026, 3))
	assert.Equal(t, "SO-2026-0420", service.FormatOrderNumber(2026, 420))
}

func TestFormatAccountNumber(t *testing.T) {
	assert.Equal(t, "CLT-2026-0042", service.FormatAccountNumber(2026, 42))
	assert.Equal(t, "CLT-2026-1000", service.FormatAccountNumber(2026, 1000))
}
