package domain

import (
	"time"

	"github.com/google/uuid"
)

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code,omitempty"`
}

// PaginatedResponse wraps list results
type PaginatedResponse struct {
	Data       interface{} `json:"data"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	PageSize   int         `json:"pageSize"`
	TotalPages int         `json:"totalPages"`
}

// API Response wrapper
type APIResponse struct {
	Data    interface{} `json:"data,omitempty"`
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
}

// ============================================================================
// Inquiry DTOs
// ============================================================================

type CreateInquiryRequest struct {
	CustomerName    string     `json:"customerName" validate:"required,max=200"`
	CompanyName     string     `json:"companyName,omitempty" validate:"omitempty,max=200"`
	Email           string     `json:"email,omitempty" validate:"omitempty,email"`
	Phone           string     `json:"phone,omitempty" validate:"omitempty,max=50"`
	IsCompany       bool       `json:"isCompany"`
	ProductType     string     `json:"productType" validate:"required,max=200"`
	Quantity        float64    `json:"quantity" validate:"gte=0"`
	DeliveryMethod  string     `json:"deliveryMethod,omitempty" validate:"omitempty,max=100"`
	DeliveryDate    *time.Time `json:"deliveryDate,omitempty"`
	ReferenceSource string     `json:"referenceSource,omitempty" validate:"omitempty,max=100"`
	Notes           string     `json:"notes,omitempty"`
}

type UpdateInquiryRequest struct {
	CustomerName   *string    `json:"customerName,omitempty" validate:"omitempty,max=200"`
	CompanyName    *string    `json:"companyName,omitempty" validate:"omitempty,max=200"`
	Email          *string    `json:"email,omitempty" validate:"omitempty,email"`
	Phone          *string    `json:"phone,omitempty" validate:"omitempty,max=50"`
	ProductType    *string    `json:"productType,omitempty" validate:"omitempty,max=200"`
	Quantity       *float64   `json:"quantity,omitempty" validate:"omitempty,gte=0"`
	DeliveryMethod *string    `json:"deliveryMethod,omitempty" validate:"omitempty,max=100"`
	DeliveryDate   *time.Time `json:"deliveryDate,omitempty"`
	Notes          *string    `json:"notes,omitempty"`
}

// QuoteInquiryRequest carries the price for the quote transition
type QuoteInquiryRequest struct {
	Price float64 `json:"price" validate:"required,gt=0"`
}

// ScheduleInquiryRequest carries the delivery date for the schedule transition
type ScheduleInquiryRequest struct {
	DeliveryDate time.Time `json:"deliveryDate" validate:"required"`
}

// ConvertInquiryResponse contains the lead created from an inquiry
type ConvertInquiryResponse struct {
	Lead    *Lead    `json:"lead"`
	Company *Company `json:"company"`
}

// CustomerCheckRequest looks up existing companies/leads before intake
type CustomerCheckRequest struct {
	Email       string `json:"email,omitempty" validate:"omitempty,email"`
	Phone       string `json:"phone,omitempty" validate:"omitempty,max=50"`
	CompanyName string `json:"companyName,omitempty" validate:"omitempty,max=200"`
}

// CustomerCheckResponse reports whether a matching customer exists
type CustomerCheckResponse struct {
	Exists  bool     `json:"exists"`
	Company *Company `json:"company,omitempty"`
	Lead    *Lead    `json:"lead,omitempty"`
}

// ============================================================================
// Lead / Company / Client DTOs
// ============================================================================

type CreateLeadRequest struct {
	CompanyID      *uuid.UUID `json:"companyId,omitempty"`
	CompanyName    string     `json:"companyName,omitempty" validate:"omitempty,max=200"`
	ContactPerson  string     `json:"contactPerson" validate:"required,max=200"`
	Email          string     `json:"email,omitempty" validate:"omitempty,email"`
	Phone          string     `json:"phone,omitempty" validate:"omitempty,max=50"`
	Source         string     `json:"source,omitempty" validate:"omitempty,max=100"`
	AssignedToID   *uuid.UUID `json:"assignedToId,omitempty"`
	EstimatedValue float64    `json:"estimatedValue" validate:"gte=0"`
	FollowUpDate   *time.Time `json:"followUpDate,omitempty"`
	Notes          string     `json:"notes,omitempty"`
}

type UpdateLeadRequest struct {
	ContactPerson  *string    `json:"contactPerson,omitempty" validate:"omitempty,max=200"`
	Email          *string    `json:"email,omitempty" validate:"omitempty,email"`
	Phone          *string    `json:"phone,omitempty" validate:"omitempty,max=50"`
	Source         *string    `json:"source,omitempty" validate:"omitempty,max=100"`
	AssignedToID   *uuid.UUID `json:"assignedToId,omitempty"`
	EstimatedValue *float64   `json:"estimatedValue,omitempty" validate:"omitempty,gte=0"`
	FollowUpDate   *time.Time `json:"followUpDate,omitempty"`
	Notes          *string    `json:"notes,omitempty"`
}

type UpdateLeadStatusRequest struct {
	Status LeadStatus `json:"status" validate:"required"`
	Note   string     `json:"note,omitempty" validate:"omitempty,max=500"`
}

type CreateContactHistoryRequest struct {
	Method  string `json:"method" validate:"required,max=50"`
	Summary string `json:"summary" validate:"required,max=500"`
	Outcome string `json:"outcome,omitempty" validate:"omitempty,max=200"`
}

type CreateCompanyRequest struct {
	Name          string `json:"name" validate:"required,max=200"`
	Email         string `json:"email,omitempty" validate:"omitempty,email"`
	Phone         string `json:"phone,omitempty" validate:"omitempty,max=50"`
	Address       string `json:"address,omitempty" validate:"omitempty,max=500"`
	City          string `json:"city,omitempty" validate:"omitempty,max=100"`
	Industry      string `json:"industry,omitempty" validate:"omitempty,max=100"`
	ContactPerson string `json:"contactPerson,omitempty" validate:"omitempty,max=200"`
}

type CreateClientRequest struct {
	Name            string `json:"name" validate:"required,max=200"`
	Email           string `json:"email,omitempty" validate:"omitempty,email"`
	Phone           string `json:"phone,omitempty" validate:"omitempty,max=50"`
	ContactPerson   string `json:"contactPerson,omitempty" validate:"omitempty,max=200"`
	BillingAddress  string `json:"billingAddress,omitempty" validate:"omitempty,max=500"`
	ShippingAddress string `json:"shippingAddress,omitempty" validate:"omitempty,max=500"`
	TaxID           string `json:"taxId,omitempty" validate:"omitempty,max=50"`
	PaymentTerms    string `json:"paymentTerms,omitempty" validate:"omitempty,max=100"`
}

type UpdateClientRequest struct {
	Name            *string `json:"name,omitempty" validate:"omitempty,max=200"`
	Email           *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone           *string `json:"phone,omitempty" validate:"omitempty,max=50"`
	ContactPerson   *string `json:"contactPerson,omitempty" validate:"omitempty,max=200"`
	BillingAddress  *string `json:"billingAddress,omitempty" validate:"omitempty,max=500"`
	ShippingAddress *string `json:"shippingAddress,omitempty" validate:"omitempty,max=500"`
	TaxID           *string `json:"taxId,omitempty" validate:"omitempty,max=50"`
	PaymentTerms    *string `json:"paymentTerms,omitempty" validate:"omitempty,max=100"`
	IsActive        *bool   `json:"isActive,omitempty"`
}

// ============================================================================
// Product DTOs
// ============================================================================

type CreateProductRequest struct {
	SKU          string  `json:"sku" validate:"required,max=50"`
	Name         string  `json:"name" validate:"required,max=200"`
	Description  string  `json:"description,omitempty"`
	Category     string  `json:"category,omitempty" validate:"omitempty,max=100"`
	Unit         string  `json:"unit,omitempty" validate:"omitempty,max=50"`
	UnitPrice    float64 `json:"unitPrice" validate:"gte=0"`
	InitialStock float64 `json:"initialStock" validate:"gte=0"`
	ReorderLevel float64 `json:"reorderLevel" validate:"gte=0"`
}

type UpdateProductRequest struct {
	Name         *string  `json:"name,omitempty" validate:"omitempty,max=200"`
	Description  *string  `json:"description,omitempty"`
	Category     *string  `json:"category,omitempty" validate:"omitempty,max=100"`
	Unit         *string  `json:"unit,omitempty" validate:"omitempty,max=50"`
	UnitPrice    *float64 `json:"unitPrice,omitempty" validate:"omitempty,gte=0"`
	ReorderLevel *float64 `json:"reorderLevel,omitempty" validate:"omitempty,gte=0"`
	IsActive     *bool    `json:"isActive,omitempty"`
}

// AdjustStockRequest moves stock in or out with an audit reference
type AdjustStockRequest struct {
	Type      StockMovementType `json:"type" validate:"required,oneof=IN OUT ADJUST"`
	Quantity  float64           `json:"quantity" validate:"required,gt=0"`
	Reference string            `json:"reference,omitempty" validate:"omitempty,max=200"`
}

// ============================================================================
// Quotation DTOs
// ============================================================================

type QuotationItemRequest struct {
	ProductID   *uuid.UUID `json:"productId,omitempty"`
	Description string     `json:"description" validate:"required,max=500"`
	Quantity    float64    `json:"quantity" validate:"required,gt=0"`
	Unit        string     `json:"unit,omitempty" validate:"omitempty,max=50"`
	UnitPrice   float64    `json:"unitPrice" validate:"gte=0"`
}

type CreateQuotationRequest struct {
	ClientID   *uuid.UUID             `json:"clientId,omitempty"`
	LeadID     *uuid.UUID             `json:"leadId,omitempty"`
	Items      []QuotationItemRequest `json:"items" validate:"required,min=1,dive"`
	TaxRate    float64                `json:"taxRate" validate:"gte=0,lte=100"`
	ValidUntil *time.Time             `json:"validUntil,omitempty"`
	Notes      string                 `json:"notes,omitempty"`
}

// QuotationCustomerView is the resolved recipient of a quotation,
// derived from the client when linked, otherwise from the lead.
type QuotationCustomerView struct {
	Name          string `json:"name"`
	ContactPerson string `json:"contactPerson,omitempty"`
	Email         string `json:"email,omitempty"`
	Phone         string `json:"phone,omitempty"`
	Address       string `json:"address,omitempty"`
}

// QuotationDTO is a quotation with its resolved customer view
type QuotationDTO struct {
	Quotation
	Customer *QuotationCustomerView `json:"customer,omitempty"`
}

// ============================================================================
// Sales order DTOs
// ============================================================================

type CreateSalesOrderRequest struct {
	QuotationID uuid.UUID `json:"quotationId" validate:"required"`
}

type UpdateSalesOrderStatusRequest struct {
	Status SalesOrderStatus `json:"status" validate:"required,oneof=Pending Confirmed Delivered Cancelled"`
}

// ============================================================================
// Attendance DTOs
// ============================================================================

// AttendanceDTO is a daily time record row with computed break time
type AttendanceDTO struct {
	ID         uuid.UUID        `json:"id"`
	UserID     uuid.UUID        `json:"userId"`
	UserName   string           `json:"userName,omitempty"`
	Date       string           `json:"date"` // YYYY-MM-DD
	ClockIn    time.Time        `json:"clockIn"`
	ClockOut   *time.Time       `json:"clockOut,omitempty"`
	Status     AttendanceStatus `json:"status"`
	TotalHours float64          `json:"totalHours"`
	BreakHours float64          `json:"breakHours"`
	Breaks     []BreakLog       `json:"breaks,omitempty"`
}

type UpdateWorkScheduleRequest struct {
	WorkStart        *string `json:"workStart,omitempty" validate:"omitempty,len=5"`
	LateThresholdMin *int    `json:"lateThresholdMin,omitempty" validate:"omitempty,gte=0,lte=240"`
	AllowRemoteLogin *bool   `json:"allowRemoteLogin,omitempty"`
}

// ============================================================================
// Document DTOs
// ============================================================================

type CreateDocumentCategoryRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description,omitempty" validate:"omitempty,max=500"`
}

// ============================================================================
// Auth / user DTOs
// ============================================================================

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

type CreateUserRequest struct {
	Email      string     `json:"email" validate:"required,email"`
	Password   string     `json:"password" validate:"required,min=8"`
	FirstName  string     `json:"firstName,omitempty" validate:"omitempty,max=100"`
	LastName   string     `json:"lastName,omitempty" validate:"omitempty,max=100"`
	RoleID     *uuid.UUID `json:"roleId,omitempty"`
	IsOJT      bool       `json:"isOjt"`
	AllowedIPs []string   `json:"allowedIps,omitempty" validate:"omitempty,dive,ip"`
}

type UpdateUserRequest struct {
	FirstName  *string    `json:"firstName,omitempty" validate:"omitempty,max=100"`
	LastName   *string    `json:"lastName,omitempty" validate:"omitempty,max=100"`
	RoleID     *uuid.UUID `json:"roleId,omitempty"`
	IsOJT      *bool      `json:"isOjt,omitempty"`
	AllowedIPs []string   `json:"allowedIps,omitempty" validate:"omitempty,dive,ip"`
	IsActive   *bool      `json:"isActive,omitempty"`
}

// AuthUserDTO is the /auth/me payload: the user plus the permission
// strings their role grants
type AuthUserDTO struct {
	User        *User    `json:"user"`
	Permissions []string `json:"permissions"`
	IsAdmin     bool     `json:"isAdmin"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8"`
}

type CreateRoleRequest struct {
	Name          string      `json:"name" validate:"required,max=100"`
	Description   string      `json:"description,omitempty" validate:"omitempty,max=500"`
	PermissionIDs []uuid.UUID `json:"permissionIds,omitempty"`
}

type UpdateRolePermissionsRequest struct {
	PermissionIDs []uuid.UUID `json:"permissionIds" validate:"required"`
}

// ============================================================================
// Dashboard / marketing DTOs
// ============================================================================

// DashboardStats aggregates headline counts for the dashboard
type DashboardStats struct {
	LeadsByStatus     map[LeadStatus]int64    `json:"leadsByStatus"`
	InquiriesByStatus map[InquiryStatus]int64 `json:"inquiriesByStatus"`
	OpenQuotations    int64                   `json:"openQuotations"`
	QuotationValue    float64                 `json:"quotationValue"`
	LowStockProducts  int64                   `json:"lowStockProducts"`
	PresentToday      int64                   `json:"presentToday"`
}

// MarketingSyncResult reports the outcome of a Facebook insights pull
type MarketingSyncResult struct {
	Campaigns int       `json:"campaigns"`
	Rows      int       `json:"rows"`
	SyncedAt  time.Time `json:"syncedAt"`
}
