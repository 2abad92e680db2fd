package renderer

import (
	"bytes"
	"context"
	"fmt"

	"storefront/internal/core/domain/model/invoice"
	"storefront/internal/core/domain/model/kernel"

	"github.com/go-pdf/fpdf"
)

// PDFRenderer draws the invoice in process. It is used when no rendering
// service is configured.
type PDFRenderer struct {
	storeName string
}

func NewPDFRenderer(storeName string) *PDFRenderer {
	if storeName == "" {
		storeName = "Storefront"
	}
	return &PDFRenderer{storeName: storeName}
}

func (r *PDFRenderer) Render(ctx context.Context, p invoice.Payload) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(p.Number, true)
	pdf.SetCreator(r.storeName, true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr(r.storeName), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, tr("Invoice "+p.Number), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Issued "+p.IssuedAt.Format("2006-01-02"), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Order %s placed %s", p.OrderID, p.OrderDate.Format("2006-01-02"))), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, tr("Payment: "+p.PaymentMethod+", status: "+p.Status), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 6, "Bill to", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	for _, line := range addressLines(p) {
		pdf.CellFormat(0, 5, tr(line), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	widths := []float64{95, 20, 35, 40}
	pdf.SetFont("Helvetica", "B", 10)
	for i, title := range []string{"Item", "Qty", "Unit price", "Line total"} {
		align := "R"
		if i == 0 {
			align = "L"
		}
		pdf.CellFormat(widths[i], 7, title, "B", 0, align, false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, line := range p.Lines {
		pdf.CellFormat(widths[0], 6, tr(line.ProductName), "", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 6, fmt.Sprintf("%d", line.Quantity), "", 0, "R", false, 0, "")
		pdf.CellFormat(widths[2], 6, line.UnitPrice.StringFixed(kernel.MoneyPlaces), "", 0, "R", false, 0, "")
		pdf.CellFormat(widths[3], 6, line.LineTotal.StringFixed(kernel.MoneyPlaces), "", 1, "R", false, 0, "")
	}
	pdf.Ln(2)

	labelWidth := widths[0] + widths[1] + widths[2]
	for _, total := range []struct {
		label, amount string
	}{
		{"Subtotal", p.Subtotal.StringFixed(kernel.MoneyPlaces)},
		{"Delivery fee", p.DeliveryFee.StringFixed(kernel.MoneyPlaces)},
		{"Total", p.Total.StringFixed(kernel.MoneyPlaces)},
	} {
		pdf.CellFormat(labelWidth, 6, total.label, "", 0, "R", false, 0, "")
		pdf.CellFormat(widths[3], 6, total.amount, "", 1, "R", false, 0, "")
	}

	if p.Notes != "" {
		pdf.Ln(4)
		pdf.MultiCell(0, 5, tr("Notes: "+p.Notes), "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write invoice pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func addressLines(p invoice.Payload) []string {
	lines := []string{p.Customer.Name, p.Customer.Email}
	if p.ShipTo.RecipientName != "" && p.ShipTo.RecipientName != p.Customer.Name {
		lines = append(lines, p.ShipTo.RecipientName)
	}
	for _, s := range []string{p.ShipTo.Line1, p.ShipTo.Line2} {
		if s != "" {
			lines = append(lines, s)
		}
	}
	city := p.ShipTo.City
	if p.ShipTo.Region != "" {
		city += ", " + p.ShipTo.Region
	}
	if p.ShipTo.PostalCode != "" {
		city += " " + p.ShipTo.PostalCode
	}
	lines = append(lines, city, p.ShipTo.Country)
	if p.ShipTo.Phone != "" {
		lines = append(lines, p.ShipTo.Phone)
	}
	return lines
}
