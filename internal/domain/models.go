package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updatedAt"`
}

// BeforeCreate assigns an ID when the database default is not in play
// (e.g. bulk inserts through a transaction that bypass defaults).
func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// LeadStatus represents the pipeline stage of a lead
type LeadStatus string

const (
	LeadStatusNew         LeadStatus = "New"
	LeadStatusContacted   LeadStatus = "Contacted"
	LeadStatusQualified   LeadStatus = "Qualified"
	LeadStatusProposal    LeadStatus = "Proposal"
	LeadStatusNegotiation LeadStatus = "Negotiation"
	LeadStatusConverted   LeadStatus = "Converted"
	LeadStatusLost        LeadStatus = "Lost"
)

// IsValid checks if the LeadStatus is a valid enum value
func (s LeadStatus) IsValid() bool {
	switch s {
	case LeadStatusNew, LeadStatusContacted, LeadStatusQualified, LeadStatusProposal,
		LeadStatusNegotiation, LeadStatusConverted, LeadStatusLost:
		return true
	}
	return false
}

// Lead represents a sales lead attached to a company
type Lead struct {
	BaseModel
	CompanyID       uuid.UUID  `gorm:"type:uuid;not null;index;column:company_id" json:"companyId"`
	Company         *Company   `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
	ContactPerson   string     `gorm:"type:varchar(200);not null;column:contact_person" json:"contactPerson"`
	Email           string     `gorm:"type:varchar(255);index" json:"email,omitempty"`
	Phone           string     `gorm:"type:varchar(50);index" json:"phone,omitempty"`
	Status          LeadStatus `gorm:"type:varchar(50);not null;default:'New';index" json:"status"`
	Source          string     `gorm:"type:varchar(100)" json:"source,omitempty"`
	AssignedToID    *uuid.UUID `gorm:"type:uuid;index;column:assigned_to_id" json:"assignedToId,omitempty"`
	AssignedTo      *User      `gorm:"foreignKey:AssignedToID" json:"assignedTo,omitempty"`
	EstimatedValue  float64    `gorm:"type:decimal(15,2);not null;default:0;column:estimated_value" json:"estimatedValue"`
	FollowUpDate    *time.Time `gorm:"type:date;column:follow_up_date" json:"followUpDate,omitempty"`
	LastContactDate *time.Time `gorm:"column:last_contact_date" json:"lastContactDate,omitempty"`
	Notes           string     `gorm:"type:text" json:"notes,omitempty"`
}

// Company represents an organization a lead belongs to
type Company struct {
	BaseModel
	Name          string `gorm:"type:varchar(200);not null;uniqueIndex" json:"name"`
	Email         string `gorm:"type:varchar(255)" json:"email,omitempty"`
	Phone         string `gorm:"type:varchar(50)" json:"phone,omitempty"`
	Address       string `gorm:"type:varchar(500)" json:"address,omitempty"`
	City          string `gorm:"type:varchar(100)" json:"city,omitempty"`
	Industry      string `gorm:"type:varchar(100)" json:"industry,omitempty"`
	ContactPerson string `gorm:"type:varchar(200);column:contact_person" json:"contactPerson,omitempty"`
	IsActive      bool   `gorm:"not null;default:true;column:is_active" json:"isActive"`
}

// Client represents a billing customer created after conversion.
// Distinct from Company: clients carry billing/shipping detail and a
// human-readable account number. Clients are soft-deleted.
type Client struct {
	BaseModel
	AccountNumber   string `gorm:"type:varchar(50);unique;index;column:account_number" json:"accountNumber"`
	Name            string `gorm:"type:varchar(200);not null;index" json:"name"`
	Email           string `gorm:"type:varchar(255)" json:"email,omitempty"`
	Phone           string `gorm:"type:varchar(50)" json:"phone,omitempty"`
	ContactPerson   string `gorm:"type:varchar(200);column:contact_person" json:"contactPerson,omitempty"`
	BillingAddress  string `gorm:"type:varchar(500);column:billing_address" json:"billingAddress,omitempty"`
	ShippingAddress string `gorm:"type:varchar(500);column:shipping_address" json:"shippingAddress,omitempty"`
	TaxID           string `gorm:"type:varchar(50);column:tax_id" json:"taxId,omitempty"`
	PaymentTerms    string `gorm:"type:varchar(100);column:payment_terms" json:"paymentTerms,omitempty"`
	IsActive        bool   `gorm:"not null;default:true;column:is_active" json:"isActive"`
}

// InquiryStatus represents the fulfillment stage of an inquiry
type InquiryStatus string

const (
	InquiryStatusNew       InquiryStatus = "New"
	InquiryStatusQuoted    InquiryStatus = "Quoted"
	InquiryStatusApproved  InquiryStatus = "Approved"
	InquiryStatusScheduled InquiryStatus = "Scheduled"
	InquiryStatusFulfilled InquiryStatus = "Fulfilled"
	InquiryStatusCancelled InquiryStatus = "Cancelled"
)

// IsValid checks if the InquiryStatus is a valid enum value
func (s InquiryStatus) IsValid() bool {
	switch s {
	case InquiryStatusNew, InquiryStatusQuoted, InquiryStatusApproved,
		InquiryStatusScheduled, InquiryStatusFulfilled, InquiryStatusCancelled:
		return true
	}
	return false
}

// Inquiry represents an incoming product inquiry, optionally linked to a lead
type Inquiry struct {
	BaseModel
	CustomerName    string        `gorm:"type:varchar(200);not null;column:customer_name" json:"customerName"`
	CompanyName     string        `gorm:"type:varchar(200);column:company_name" json:"companyName,omitempty"`
	Email           string        `gorm:"type:varchar(255);index" json:"email,omitempty"`
	Phone           string        `gorm:"type:varchar(50);index" json:"phone,omitempty"`
	IsCompany       bool          `gorm:"not null;default:false;column:is_company" json:"isCompany"`
	ProductType     string        `gorm:"type:varchar(200);not null;column:product_type" json:"productType"`
	Quantity        float64       `gorm:"type:decimal(12,2);not null;default:0" json:"quantity"`
	DeliveryMethod  string        `gorm:"type:varchar(100);column:delivery_method" json:"deliveryMethod,omitempty"`
	DeliveryDate    *time.Time    `gorm:"type:date;column:delivery_date" json:"deliveryDate,omitempty"`
	ReferenceSource string        `gorm:"type:varchar(100);column:reference_source" json:"referenceSource,omitempty"`
	Status          InquiryStatus `gorm:"type:varchar(50);not null;default:'New';index" json:"status"`
	RelatedLeadID   *uuid.UUID    `gorm:"type:uuid;index;column:related_lead_id" json:"relatedLeadId,omitempty"`
	RelatedLead     *Lead         `gorm:"foreignKey:RelatedLeadID" json:"relatedLead,omitempty"`
	QuotedPrice     *float64      `gorm:"type:decimal(15,2);column:quoted_price" json:"quotedPrice,omitempty"`
	QuotedByID      *uuid.UUID    `gorm:"type:uuid;column:quoted_by_id" json:"quotedById,omitempty"`
	QuotedAt        *time.Time    `gorm:"column:quoted_at" json:"quotedAt,omitempty"`
	CreatedByID     *uuid.UUID    `gorm:"type:uuid;column:created_by_id" json:"createdById,omitempty"`
	Notes           string        `gorm:"type:text" json:"notes,omitempty"`
}

// ActivityLog is an append-only audit row for lead/client status changes.
// Rows are never mutated after insert.
type ActivityLog struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	LeadID      *uuid.UUID `gorm:"type:uuid;index;column:lead_id" json:"leadId,omitempty"`
	ClientID    *uuid.UUID `gorm:"type:uuid;index;column:client_id" json:"clientId,omitempty"`
	Action      string     `gorm:"type:varchar(100);not null" json:"action"`
	OldStatus   string     `gorm:"type:varchar(50);column:old_status" json:"oldStatus,omitempty"`
	NewStatus   string     `gorm:"type:varchar(50);column:new_status" json:"newStatus,omitempty"`
	Metadata    string     `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedByID *uuid.UUID `gorm:"type:uuid;column:created_by_id" json:"createdById,omitempty"`
	CreatedAt   time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
}

// BeforeCreate assigns an ID for rows created inside transactions
func (a *ActivityLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// ContactHistory is an append-only narrative trail of customer touches,
// distinct from ActivityLog which records status deltas.
type ContactHistory struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	LeadID      *uuid.UUID `gorm:"type:uuid;index;column:lead_id" json:"leadId,omitempty"`
	ClientID    *uuid.UUID `gorm:"type:uuid;index;column:client_id" json:"clientId,omitempty"`
	Method      string     `gorm:"type:varchar(50);not null" json:"method"`
	Summary     string     `gorm:"type:varchar(500);not null" json:"summary"`
	Outcome     string     `gorm:"type:varchar(200)" json:"outcome,omitempty"`
	ContactedAt time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP;column:contacted_at" json:"contactedAt"`
	CreatedByID *uuid.UUID `gorm:"type:uuid;column:created_by_id" json:"createdById,omitempty"`
	CreatedAt   time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
}

// BeforeCreate assigns an ID for rows created inside transactions
func (c *ContactHistory) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// Product represents a construction material in the catalog
type Product struct {
	BaseModel
	SKU            string   `gorm:"type:varchar(50);unique;index;column:sku" json:"sku"`
	Name           string   `gorm:"type:varchar(200);not null;index" json:"name"`
	Description    string   `gorm:"type:text" json:"description,omitempty"`
	Category       string   `gorm:"type:varchar(100);index" json:"category,omitempty"`
	Unit           string   `gorm:"type:varchar(50);not null;default:'pc'" json:"unit"`
	UnitPrice      float64  `gorm:"type:decimal(15,2);not null;default:0;column:unit_price" json:"unitPrice"`
	QuantityOnHand float64  `gorm:"type:decimal(12,2);not null;default:0;column:quantity_on_hand" json:"quantityOnHand"`
	ReorderLevel   float64  `gorm:"type:decimal(12,2);not null;default:0;column:reorder_level" json:"reorderLevel"`
	ERPReference   string   `gorm:"type:varchar(100);column:erp_reference" json:"erpReference,omitempty"`
	ERPSyncedAt    *time.Time `gorm:"column:erp_synced_at" json:"erpSyncedAt,omitempty"`
	IsActive       bool     `gorm:"not null;default:true;column:is_active" json:"isActive"`
}

// StockMovementType represents the direction of a stock movement
type StockMovementType string

const (
	StockMovementIn     StockMovementType = "IN"
	StockMovementOut    StockMovementType = "OUT"
	StockMovementAdjust StockMovementType = "ADJUST"
)

// StockMovement is an append-only audit row for inventory changes
type StockMovement struct {
	ID          uuid.UUID         `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ProductID   uuid.UUID         `gorm:"type:uuid;not null;index;column:product_id" json:"productId"`
	Product     *Product          `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Type        StockMovementType `gorm:"type:varchar(20);not null" json:"type"`
	Quantity    float64           `gorm:"type:decimal(12,2);not null" json:"quantity"`
	Reference   string            `gorm:"type:varchar(200)" json:"reference,omitempty"`
	CreatedByID *uuid.UUID        `gorm:"type:uuid;column:created_by_id" json:"createdById,omitempty"`
	CreatedAt   time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
}

// BeforeCreate assigns an ID for rows created inside transactions
func (s *StockMovement) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// QuotationStatus represents the lifecycle stage of a quotation
type QuotationStatus string

const (
	QuotationStatusDraft    QuotationStatus = "Draft"
	QuotationStatusSent     QuotationStatus = "Sent"
	QuotationStatusAccepted QuotationStatus = "Accepted"
	QuotationStatusRejected QuotationStatus = "Rejected"
	QuotationStatusExpired  QuotationStatus = "Expired"
)

// Quotation represents a priced offer to a client or lead.
// Exactly one of ClientID/LeadID must be set.
type Quotation struct {
	BaseModel
	QuotationNumber string          `gorm:"type:varchar(50);unique;index;column:quotation_number" json:"quotationNumber"`
	Status          QuotationStatus `gorm:"type:varchar(50);not null;default:'Draft';index" json:"status"`
	ClientID        *uuid.UUID      `gorm:"type:uuid;index;column:client_id" json:"clientId,omitempty"`
	Client          *Client         `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	LeadID          *uuid.UUID      `gorm:"type:uuid;index;column:lead_id" json:"leadId,omitempty"`
	Lead            *Lead           `gorm:"foreignKey:LeadID" json:"lead,omitempty"`
	Items           []QuotationItem `gorm:"foreignKey:QuotationID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
	Subtotal        float64         `gorm:"type:decimal(15,2);not null;default:0" json:"subtotal"`
	TaxRate         float64         `gorm:"type:decimal(5,2);not null;default:0;column:tax_rate" json:"taxRate"`
	TaxAmount       float64         `gorm:"type:decimal(15,2);not null;default:0;column:tax_amount" json:"taxAmount"`
	Total           float64         `gorm:"type:decimal(15,2);not null;default:0" json:"total"`
	IssueDate       time.Time       `gorm:"type:date;not null;column:issue_date" json:"issueDate"`
	ValidUntil      *time.Time      `gorm:"type:date;column:valid_until" json:"validUntil,omitempty"`
	PDFPath         string          `gorm:"type:varchar(500);column:pdf_path" json:"pdfPath,omitempty"`
	Notes           string          `gorm:"type:text" json:"notes,omitempty"`
	CreatedByID     *uuid.UUID      `gorm:"type:uuid;column:created_by_id" json:"createdById,omitempty"`
}

// QuotationItem represents a line item on a quotation
type QuotationItem struct {
	BaseModel
	QuotationID uuid.UUID  `gorm:"type:uuid;not null;index;column:quotation_id" json:"quotationId"`
	ProductID   *uuid.UUID `gorm:"type:uuid;column:product_id" json:"productId,omitempty"`
	Product     *Product   `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Description string     `gorm:"type:varchar(500);not null" json:"description"`
	Quantity    float64    `gorm:"type:decimal(12,2);not null" json:"quantity"`
	Unit        string     `gorm:"type:varchar(50)" json:"unit,omitempty"`
	UnitPrice   float64    `gorm:"type:decimal(15,2);not null;column:unit_price" json:"unitPrice"`
	LineTotal   float64    `gorm:"type:decimal(15,2);not null;column:line_total" json:"lineTotal"`
}

// SalesOrderStatus represents the lifecycle stage of a sales order
type SalesOrderStatus string

const (
	SalesOrderStatusPending   SalesOrderStatus = "Pending"
	SalesOrderStatusConfirmed SalesOrderStatus = "Confirmed"
	SalesOrderStatusDelivered SalesOrderStatus = "Delivered"
	SalesOrderStatusCancelled SalesOrderStatus = "Cancelled"
)

// IsValid reports whether the status is a known sales order status
func (s SalesOrderStatus) IsValid() bool {
	switch s {
	case SalesOrderStatusPending, SalesOrderStatusConfirmed, SalesOrderStatusDelivered, SalesOrderStatusCancelled:
		return true
	}
	return false
}

// SalesOrder is created from an accepted quotation
type SalesOrder struct {
	BaseModel
	OrderNumber string           `gorm:"type:varchar(50);unique;index;column:order_number" json:"orderNumber"`
	QuotationID uuid.UUID        `gorm:"type:uuid;not null;index;column:quotation_id" json:"quotationId"`
	Quotation   *Quotation       `gorm:"foreignKey:QuotationID" json:"quotation,omitempty"`
	ClientID    uuid.UUID        `gorm:"type:uuid;not null;index;column:client_id" json:"clientId"`
	Client      *Client          `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Status      SalesOrderStatus `gorm:"type:varchar(50);not null;default:'Pending';index" json:"status"`
	Items       []SalesOrderItem `gorm:"foreignKey:SalesOrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
	Total       float64          `gorm:"type:decimal(15,2);not null;default:0" json:"total"`
	CreatedByID *uuid.UUID       `gorm:"type:uuid;column:created_by_id" json:"createdById,omitempty"`
}

// SalesOrderItem mirrors a quotation line item at conversion time
type SalesOrderItem struct {
	BaseModel
	SalesOrderID uuid.UUID  `gorm:"type:uuid;not null;index;column:sales_order_id" json:"salesOrderId"`
	ProductID    *uuid.UUID `gorm:"type:uuid;column:product_id" json:"productId,omitempty"`
	Description  string     `gorm:"type:varchar(500);not null" json:"description"`
	Quantity     float64    `gorm:"type:decimal(12,2);not null" json:"quantity"`
	Unit         string     `gorm:"type:varchar(50)" json:"unit,omitempty"`
	UnitPrice    float64    `gorm:"type:decimal(15,2);not null;column:unit_price" json:"unitPrice"`
	LineTotal    float64    `gorm:"type:decimal(15,2);not null;column:line_total" json:"lineTotal"`
}

// AttendanceStatus represents the current clock state of a user for a day
type AttendanceStatus string

const (
	AttendancePresent   AttendanceStatus = "PRESENT"
	AttendanceLate      AttendanceStatus = "LATE"
	AttendanceOnBreak   AttendanceStatus = "ON_BREAK"
	AttendanceLoggedOut AttendanceStatus = "LOGGED_OUT"
)

// Attendance is a per-user per-day clock record
type Attendance struct {
	BaseModel
	UserID     uuid.UUID        `gorm:"type:uuid;not null;index:idx_attendance_user_date,unique;column:user_id" json:"userId"`
	User       *User            `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Date       time.Time        `gorm:"type:date;not null;index:idx_attendance_user_date,unique" json:"date"`
	ClockIn    time.Time        `gorm:"not null;column:clock_in" json:"clockIn"`
	ClockOut   *time.Time       `gorm:"column:clock_out" json:"clockOut,omitempty"`
	Status     AttendanceStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	TotalHours float64          `gorm:"type:decimal(6,2);not null;default:0;column:total_hours" json:"totalHours"`
	ClockInIP  string           `gorm:"type:varchar(50);column:clock_in_ip" json:"clockInIp,omitempty"`
	Breaks     []BreakLog       `gorm:"foreignKey:AttendanceID;constraint:OnDelete:CASCADE" json:"breaks,omitempty"`
}

// BreakLog is a single break interval on an attendance record.
// EndTime is null while the break is open; at most one open break per record.
type BreakLog struct {
	BaseModel
	AttendanceID uuid.UUID  `gorm:"type:uuid;not null;index;column:attendance_id" json:"attendanceId"`
	StartTime    time.Time  `gorm:"not null;column:start_time" json:"startTime"`
	EndTime      *time.Time `gorm:"column:end_time" json:"endTime,omitempty"`
}

// Duration returns the break length, or zero while the break is open
func (b *BreakLog) Duration() time.Duration {
	if b.EndTime == nil {
		return 0
	}
	return b.EndTime.Sub(b.StartTime)
}

// DocumentCategory groups uploaded documents
type DocumentCategory struct {
	BaseModel
	Name        string `gorm:"type:varchar(100);not null;uniqueIndex" json:"name"`
	Description string `gorm:"type:varchar(500)" json:"description,omitempty"`
}

// Document represents an uploaded file stored as an opaque blob
type Document struct {
	BaseModel
	Filename    string            `gorm:"type:varchar(255);not null" json:"filename"`
	ContentType string            `gorm:"type:varchar(100);not null;column:content_type" json:"contentType"`
	Size        int64             `gorm:"not null" json:"size"`
	StoragePath string            `gorm:"type:varchar(500);not null;unique;column:storage_path" json:"-"`
	CategoryID  *uuid.UUID        `gorm:"type:uuid;index;column:category_id" json:"categoryId,omitempty"`
	Category    *DocumentCategory `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	UploadedByID *uuid.UUID       `gorm:"type:uuid;column:uploaded_by_id" json:"uploadedById,omitempty"`
}

// Role groups permissions. A role literally named "Admin" bypasses
// permission checks entirely.
type Role struct {
	BaseModel
	Name        string       `gorm:"type:varchar(100);not null;uniqueIndex" json:"name"`
	Description string       `gorm:"type:varchar(500)" json:"description,omitempty"`
	Permissions []Permission `gorm:"many2many:role_permissions" json:"permissions,omitempty"`
}

// AdminRoleName is the role name that bypasses permission checks
const AdminRoleName = "Admin"

// Permission is a named capability attached to roles
type Permission struct {
	BaseModel
	Name        string `gorm:"type:varchar(100);not null;uniqueIndex" json:"name"`
	Description string `gorm:"type:varchar(500)" json:"description,omitempty"`
}

// Well-known permission names (stored uppercased)
const (
	PermLeadsRead        = "LEADS_READ"
	PermLeadsWrite       = "LEADS_WRITE"
	PermInquiriesRead    = "INQUIRIES_READ"
	PermInquiriesWrite   = "INQUIRIES_WRITE"
	PermClientsRead      = "CLIENTS_READ"
	PermClientsWrite     = "CLIENTS_WRITE"
	PermProductsRead     = "PRODUCTS_READ"
	PermProductsWrite    = "PRODUCTS_WRITE"
	PermQuotationsRead   = "QUOTATIONS_READ"
	PermQuotationsWrite  = "QUOTATIONS_WRITE"
	PermSalesOrdersRead  = "SALES_ORDERS_READ"
	PermSalesOrdersWrite = "SALES_ORDERS_WRITE"
	PermDocumentsRead    = "DOCUMENTS_READ"
	PermDocumentsWrite   = "DOCUMENTS_WRITE"
	PermAttendanceRead   = "ATTENDANCE_READ"
	PermAttendanceWrite  = "ATTENDANCE_WRITE"
	PermUsersManage      = "USERS_MANAGE"
	PermMarketingSync    = "MARKETING_SYNC"
	PermDashboardView    = "DASHBOARD_VIEW"
)

// User represents a back-office user account
type User struct {
	BaseModel
	Email        string     `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"`
	PasswordHash string     `gorm:"type:varchar(255);not null;column:password_hash" json:"-"`
	FirstName    string     `gorm:"type:varchar(100);column:first_name" json:"firstName,omitempty"`
	LastName     string     `gorm:"type:varchar(100);column:last_name" json:"lastName,omitempty"`
	RoleID       *uuid.UUID `gorm:"type:uuid;index;column:role_id" json:"roleId,omitempty"`
	Role         *Role      `gorm:"foreignKey:RoleID" json:"role,omitempty"`
	IsOJT        bool       `gorm:"not null;default:false;column:is_ojt" json:"isOjt"`
	AllowedIPs   string     `gorm:"type:varchar(500);column:allowed_ips" json:"allowedIps,omitempty"`
	IsActive     bool       `gorm:"not null;default:true;column:is_active" json:"isActive"`
	LastLoginAt  *time.Time `gorm:"column:last_login_at" json:"lastLoginAt,omitempty"`
}

// FullName returns the user's full name
func (u *User) FullName() string {
	if u.FirstName != "" && u.LastName != "" {
		return u.FirstName + " " + u.LastName
	}
	return u.Email
}

// Sequence is a per-name per-year counter backing human-readable numbers
// (quotations, sales orders, client accounts).
type Sequence struct {
	Name      string    `gorm:"type:varchar(50);primaryKey" json:"name"`
	Year      int       `gorm:"primaryKey" json:"year"`
	Value     int       `gorm:"not null;default:0" json:"value"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updatedAt"`
}

// Sequence names
const (
	SequenceQuotation  = "QUOTATION"
	SequenceSalesOrder = "SALES_ORDER"
	SequenceClient     = "CLIENT"
)

// WorkSchedule holds the attendance policy. A single row is expected.
type WorkSchedule struct {
	ID                uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	WorkStart         string    `gorm:"type:varchar(5);not null;default:'08:00';column:work_start" json:"workStart"`
	LateThresholdMin  int       `gorm:"not null;default:15;column:late_threshold_min" json:"lateThresholdMin"`
	AllowRemoteLogin  bool      `gorm:"not null;default:false;column:allow_remote_login" json:"allowRemoteLogin"`
	UpdatedAt         time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updatedAt"`
}

// MarketingInsight is a campaign metrics snapshot pulled from the
// Facebook Graph API. Rows are replaced per campaign/date on each sync.
type MarketingInsight struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CampaignID   string    `gorm:"type:varchar(100);not null;index:idx_insight_campaign_date,unique;column:campaign_id" json:"campaignId"`
	CampaignName string    `gorm:"type:varchar(200);column:campaign_name" json:"campaignName,omitempty"`
	Date         time.Time `gorm:"type:date;not null;index:idx_insight_campaign_date,unique" json:"date"`
	Impressions  int64     `gorm:"not null;default:0" json:"impressions"`
	Clicks       int64     `gorm:"not null;default:0" json:"clicks"`
	Spend        float64   `gorm:"type:decimal(15,2);not null;default:0" json:"spend"`
	Leads        int64     `gorm:"not null;default:0" json:"leads"`
	SyncedAt     time.Time `gorm:"not null;default:CURRENT_TIMESTAMP;column:synced_at" json:"syncedAt"`
}

// BeforeCreate assigns an ID for rows created via upsert
func (m *MarketingInsight) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
