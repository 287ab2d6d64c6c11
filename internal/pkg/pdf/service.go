// internal/pkg/pdf/service.go
package pdf

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/your-org/vinyl-store/internal/config"
	"github.com/your-org/vinyl-store/internal/domain/order"
)

// Service handles PDF generation
type Service struct {
	config *config.Config
}

// NewService creates a new PDF service
func NewService(cfg *config.Config) *Service {
	return &Service{
		config: cfg,
	}
}

// ReceiptLine is one order line enriched with catalog display fields
type ReceiptLine struct {
	Title     string
	Artist    string
	Quantity  int
	UnitPrice float64
	LineTotal float64
}

// GenerateReceipt generates a PDF receipt for a placed order
func (s *Service) GenerateReceipt(ord *order.Order, lines []ReceiptLine) (*bytes.Buffer, error) {
	data := ReceiptData{
		ReceiptNumber: fmt.Sprintf("RCP-%06d", ord.ID),
		ReceiptDate:   ord.CreatedAt.Format("January 2, 2006"),
		GeneratedAt:   time.Now().Format("January 2, 2006 15:04"),
		Order:         ord,
		Lines:         lines,
		StoreName:     s.config.App.Name,
	}

	htmlContent, err := s.generateHTML(data)
	if err != nil {
		return nil, fmt.Errorf("failed to generate HTML: %w", err)
	}

	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create PDF generator: %w", err)
	}

	pdfg.Dpi.Set(300)
	pdfg.Orientation.Set(wkhtmltopdf.OrientationPortrait)
	pdfg.Grayscale.Set(false)

	page := wkhtmltopdf.NewPageReader(bytes.NewReader([]byte(htmlContent)))
	page.FooterRight.Set("[page]")
	page.FooterFontSize.Set(9)
	page.Zoom.Set(0.95)

	pdfg.AddPage(page)

	if err := pdfg.Create(); err != nil {
		return nil, fmt.Errorf("failed to create PDF: %w", err)
	}

	return bytes.NewBuffer(pdfg.Bytes()), nil
}

// generateHTML generates HTML content from template
func (s *Service) generateHTML(data ReceiptData) (string, error) {
	tmpl := template.Must(template.New("receipt").Parse(receiptTemplate))

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

// ReceiptData represents the data passed to the receipt template
type ReceiptData struct {
	ReceiptNumber string
	ReceiptDate   string
	GeneratedAt   string
	Order         *order.Order
	Lines         []ReceiptLine
	StoreName     string
}

// Receipt HTML template
const receiptTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Receipt {{.ReceiptNumber}}</title>
    <style>
        body {
            font-family: Arial, sans-serif;
            margin: 0;
            padding: 20px;
            color: #333;
        }
        .header {
            display: flex;
            justify-content: space-between;
            border-bottom: 2px solid #333;
            padding-bottom: 20px;
            margin-bottom: 30px;
        }
        .store-name {
            font-size: 24px;
            font-weight: bold;
        }
        .receipt-meta {
            text-align: right;
            font-size: 12px;
        }
        table {
            width: 100%;
            border-collapse: collapse;
            margin-bottom: 30px;
        }
        th {
            background-color: #f5f5f5;
            text-align: left;
            padding: 10px;
            border-bottom: 2px solid #ddd;
            font-size: 12px;
            text-transform: uppercase;
        }
        td {
            padding: 10px;
            border-bottom: 1px solid #eee;
            font-size: 13px;
        }
        .amount {
            text-align: right;
        }
        .total-row td {
            font-weight: bold;
            font-size: 15px;
            border-top: 2px solid #333;
        }
        .note {
            font-size: 12px;
            color: #777;
            margin-top: 40px;
        }
    </style>
</head>
<body>
    <div class="header">
        <div>
            <div class="store-name">{{.StoreName}}</div>
            <div>Order receipt</div>
        </div>
        <div class="receipt-meta">
            <div><strong>Receipt:</strong> {{.ReceiptNumber}}</div>
            <div><strong>Order date:</strong> {{.ReceiptDate}}</div>
            <div><strong>Status:</strong> {{.Order.Status}}</div>
            <div><strong>Generated:</strong> {{.GeneratedAt}}</div>
        </div>
    </div>

    <table>
        <thead>
            <tr>
                <th>Title</th>
                <th>Artist</th>
                <th class="amount">Qty</th>
                <th class="amount">Unit price</th>
                <th class="amount">Total</th>
            </tr>
        </thead>
        <tbody>
            {{range .Lines}}
            <tr>
                <td>{{.Title}}</td>
                <td>{{.Artist}}</td>
                <td class="amount">{{.Quantity}}</td>
                <td class="amount">S/ {{printf "%.2f" .UnitPrice}}</td>
                <td class="amount">S/ {{printf "%.2f" .LineTotal}}</td>
            </tr>
            {{end}}
            <tr class="total-row">
                <td colspan="4">Order total</td>
                <td class="amount">S/ {{printf "%.2f" .Order.Total}}</td>
            </tr>
        </tbody>
    </table>

    <div class="note">
        Payment is collected on delivery. Keep this receipt until your
        order arrives.
    </div>
</body>
</html>
`
