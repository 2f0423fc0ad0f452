package export

import (
	"bytes"
	"fmt"

	"rental-backoffice/internal/usecase/queries"

	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
)

const (
	dateLayout = "Mon 02 Jan 2006"
	qrSize     = 256
)

// VoucherRenderer prints a one-page booking confirmation whose QR code carries the reference.
type VoucherRenderer struct {
	issuer string
}

func NewVoucherRenderer(issuer string) *VoucherRenderer {
	return &VoucherRenderer{issuer: issuer}
}

func (r *VoucherRenderer) Render(b *queries.BookingView) ([]byte, error) {
	qrPNG, err := qrcode.Encode(b.Reference, qrcode.Medium, qrSize)
	if err != nil {
		return nil, fmt.Errorf("encode reference qr: %w", err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Booking "+b.Reference, true)
	pdf.SetAuthor(r.issuer, true)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(0, 10, "Booking confirmation")
	pdf.Ln(14)

	pdf.SetFont("Arial", "B", 13)
	pdf.Cell(0, 8, b.Reference)
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 11)
	for _, line := range voucherLines(b) {
		pdf.CellFormat(45, 7, line[0], "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 7, line[1], "", 1, "L", false, 0, "")
	}

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("reference-qr", opts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("reference-qr", 150, 30, 40, 40, false, opts, 0, "")

	pdf.Ln(10)
	pdf.SetFont("Arial", "I", 9)
	pdf.MultiCell(0, 5, fmt.Sprintf("Issued by %s. Present this voucher or its QR code at check-in.", r.issuer), "", "L", false)

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("build voucher: %w", err)
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write voucher: %w", err)
	}
	return buf.Bytes(), nil
}

func voucherLines(b *queries.BookingView) [][2]string {
	stay := b.PropertyName
	if b.UnitCode != nil {
		stay += " / " + *b.UnitCode
	}
	lines := [][2]string{
		{"Guest", b.GuestName},
		{"Property", stay},
		{"Check-in", b.CheckinDate.Format(dateLayout)},
		{"Check-out", b.CheckoutDate.Format(dateLayout)},
		{"Nights", fmt.Sprintf("%d", b.Nights)},
		{"Total", b.TotalAmount.StringFixed(2) + " " + b.Currency},
		{"Payment", b.PaymentStatus},
	}
	if b.DepositAmount != nil {
		lines = append(lines, [2]string{"Deposit", b.DepositAmount.StringFixed(2) + " " + b.Currency})
	}
	return lines
}
