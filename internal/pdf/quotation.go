package pdf

import (
	"fmt"
	"io"

	"github.com/ferromax/backoffice-api/internal/domain"
	"github.com/jung-kurt/gofpdf"
)

// QuotationRenderer renders quotations as A4 PDFs
type QuotationRenderer struct {
	companyName    string
	companyAddress string
}

// NewQuotationRenderer creates a new QuotationRenderer
func NewQuotationRenderer(companyName, companyAddress string) *QuotationRenderer {
	return &QuotationRenderer{
		companyName:    companyName,
		companyAddress: companyAddress,
	}
}

// Render writes the quotation PDF to w
func (r *QuotationRenderer) Render(q *domain.Quotation, customer *domain.QuotationCustomerView, w io.Writer) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	// Letterhead
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(120, 8, r.companyName)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, "QUOTATION", "", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.Cell(120, 5, r.companyAddress)
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 5, q.QuotationNumber, "", 1, "R", false, 0, "")
	pdf.Ln(8)

	// Customer block
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(95, 5, "Quoted to:", "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 5, "Details:", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(95, 5, customer.Name, "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 5, "Issue date: "+q.IssueDate.Format("2006-01-02"), "", 1, "L", false, 0, "")
	line2 := customer.ContactPerson
	if customer.Email != "" {
		if line2 != "" {
			line2 += " / "
		}
		line2 += customer.Email
	}
	valid := ""
	if q.ValidUntil != nil {
		valid = "Valid until: " + q.ValidUntil.Format("2006-01-02")
	}
	pdf.CellFormat(95, 5, line2, "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 5, valid, "", 1, "L", false, 0, "")
	if customer.Address != "" {
		pdf.CellFormat(95, 5, customer.Address, "", 1, "L", false, 0, "")
	}
	pdf.Ln(6)

	// Item table header
	pdf.SetFillColor(230, 230, 230)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(80, 7, "Description", "1", 0, "L", true, 0, "")
	pdf.CellFormat(25, 7, "Qty", "1", 0, "R", true, 0, "")
	pdf.CellFormat(20, 7, "Unit", "1", 0, "C", true, 0, "")
	pdf.CellFormat(30, 7, "Unit Price", "1", 0, "R", true, 0, "")
	pdf.CellFormat(35, 7, "Line Total", "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for _, item := range q.Items {
		pdf.CellFormat(80, 6, item.Description, "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 6, fmt.Sprintf("%.2f", item.Quantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(20, 6, item.Unit, "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 6, fmt.Sprintf("%.2f", item.UnitPrice), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 6, fmt.Sprintf("%.2f", item.LineTotal), "1", 1, "R", false, 0, "")
	}

	// Totals
	pdf.Ln(2)
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(155, 6, "Subtotal", "", 0, "R", false, 0, "")
	pdf.CellFormat(35, 6, fmt.Sprintf("%.2f", q.Subtotal), "", 1, "R", false, 0, "")
	pdf.CellFormat(155, 6, fmt.Sprintf("Tax (%.1f%%)", q.TaxRate), "", 0, "R", false, 0, "")
	pdf.CellFormat(35, 6, fmt.Sprintf("%.2f", q.TaxAmount), "", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(155, 8, "Total", "", 0, "R", false, 0, "")
	pdf.CellFormat(35, 8, fmt.Sprintf("%.2f", q.Total), "", 1, "R", false, 0, "")

	if q.Notes != "" {
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(0, 5, "Notes", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.MultiCell(0, 5, q.Notes, "", "L", false)
	}

	return pdf.Output(w)
}
