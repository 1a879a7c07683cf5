// internal/pkg/pdf/service.go
package pdf

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/your-org/manufacturing-backend/internal/config"
	"github.com/your-org/manufacturing-backend/internal/domain/analytics"
	"github.com/your-org/manufacturing-backend/internal/domain/inventory"
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

// GenerateProductionReport generates a PDF production summary for the plant
func (s *Service) GenerateProductionReport(summary *analytics.Summary) (*bytes.Buffer, error) {
	data := productionReportData{
		Title:      "Production Report",
		PlantName:  s.config.App.PlantName,
		PlantCity:  s.config.App.PlantCity,
		ReportDate: time.Now().Format("January 2, 2006"),
		Summary:    summary,
	}

	htmlContent, err := renderTemplate("production-report", productionReportTemplate, data)
	if err != nil {
		return nil, fmt.Errorf("failed to generate HTML: %w", err)
	}

	return s.renderPDF(htmlContent)
}

// GenerateShipmentManifest generates a PDF manifest covering the given shipments
func (s *Service) GenerateShipmentManifest(shipments []inventory.Shipment) (*bytes.Buffer, error) {
	total := 0
	for _, sh := range shipments {
		total += sh.Quantity
	}

	data := shipmentManifestData{
		Title:         "Shipment Manifest",
		PlantName:     s.config.App.PlantName,
		PlantCity:     s.config.App.PlantCity,
		ReportDate:    time.Now().Format("January 2, 2006"),
		Shipments:     shipments,
		TotalQuantity: total,
	}

	htmlContent, err := renderTemplate("shipment-manifest", shipmentManifestTemplate, data)
	if err != nil {
		return nil, fmt.Errorf("failed to generate HTML: %w", err)
	}

	return s.renderPDF(htmlContent)
}

// renderPDF converts HTML to a PDF document
func (s *Service) renderPDF(htmlContent string) (*bytes.Buffer, error) {
	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create PDF generator: %w", err)
	}

	// Set PDF options
	pdfg.Dpi.Set(300)
	pdfg.Orientation.Set(wkhtmltopdf.OrientationPortrait)
	pdfg.Grayscale.Set(false)

	// Add page from HTML content
	page := wkhtmltopdf.NewPageReader(bytes.NewReader([]byte(htmlContent)))
	page.FooterRight.Set("[page]")
	page.FooterFontSize.Set(9)
	page.Zoom.Set(0.95)

	pdfg.AddPage(page)

	err = pdfg.Create()
	if err != nil {
		return nil, fmt.Errorf("failed to create PDF: %w", err)
	}

	return bytes.NewBuffer(pdfg.Bytes()), nil
}

// renderTemplate generates HTML content from a template
func renderTemplate(name, tmplText string, data interface{}) (string, error) {
	tmpl := template.Must(template.New(name).Funcs(template.FuncMap{
		"title": func(s string) string {
			if s == "" {
				return s
			}
			return strings.ToUpper(s[:1]) + s[1:]
		},
	}).Parse(tmplText))

	var buf bytes.Buffer
	err := tmpl.Execute(&buf, data)
	if err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

// productionReportData represents the data passed to the production report template
type productionReportData struct {
	Title      string
	PlantName  string
	PlantCity  string
	ReportDate string
	Summary    *analytics.Summary
}

// shipmentManifestData represents the data passed to the shipment manifest template
type shipmentManifestData struct {
	Title         string
	PlantName     string
	PlantCity     string
	ReportDate    string
	Shipments     []inventory.Shipment
	TotalQuantity int
}

const reportStyles = `
        body {
            font-family: Arial, sans-serif;
            margin: 0;
            padding: 20px;
            color: #333;
        }
        .header {
            margin-bottom: 30px;
            border-bottom: 2px solid #eee;
            padding-bottom: 20px;
        }
        .report-title {
            font-size: 28px;
            font-weight: bold;
            color: #2563eb;
            margin-bottom: 10px;
        }
        .section-title {
            font-size: 16px;
            font-weight: bold;
            margin: 25px 0 10px 0;
            color: #374151;
        }
        .report-table {
            width: 100%;
            border-collapse: collapse;
            margin-bottom: 20px;
        }
        .report-table th,
        .report-table td {
            border: 1px solid #ddd;
            padding: 10px 8px;
            text-align: left;
        }
        .report-table th {
            background-color: #f8f9fa;
            font-weight: bold;
        }
        .report-table .num-col {
            text-align: right;
            width: 110px;
        }
        .low-stock {
            color: #b91c1c;
            font-weight: bold;
        }
        .footer {
            margin-top: 50px;
            padding-top: 20px;
            border-top: 1px solid #eee;
            text-align: center;
            color: #666;
            font-size: 12px;
        }
`

// Production report HTML template
const productionReportTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>{{.Title}}</title>
    <style>` + reportStyles + `</style>
</head>
<body>
    <div class="header">
        <div class="report-title">{{.Title}}</div>
        <p><strong>{{.PlantName}}</strong>{{if .PlantCity}}, {{.PlantCity}}{{end}}</p>
        <p>Report Date: {{.ReportDate}}</p>
    </div>

    <div class="section-title">Order Summary</div>
    <table class="report-table">
        <thead>
            <tr>
                <th>Order Type</th>
                <th class="num-col">Total</th>
                <th class="num-col">In Progress</th>
                <th class="num-col">Completed</th>
                <th class="num-col">Predicted Output</th>
                <th class="num-col">Actual Output</th>
                <th class="num-col">Discrepancies</th>
            </tr>
        </thead>
        <tbody>
            <tr>
                <td>Production</td>
                <td class="num-col">{{.Summary.Production.Total}}</td>
                <td class="num-col">{{.Summary.Production.Started}}</td>
                <td class="num-col">{{.Summary.Production.Completed}}</td>
                <td class="num-col">{{.Summary.Production.PredictedOutput}}</td>
                <td class="num-col">{{.Summary.Production.ActualOutput}}</td>
                <td class="num-col">{{.Summary.Production.WithDiscrepancies}}</td>
            </tr>
            <tr>
                <td>Assembly</td>
                <td class="num-col">{{.Summary.Assembly.Total}}</td>
                <td class="num-col">{{.Summary.Assembly.Started}}</td>
                <td class="num-col">{{.Summary.Assembly.Completed}}</td>
                <td class="num-col">{{.Summary.Assembly.PredictedOutput}}</td>
                <td class="num-col">{{.Summary.Assembly.ActualOutput}}</td>
                <td class="num-col">{{.Summary.Assembly.WithDiscrepancies}}</td>
            </tr>
        </tbody>
    </table>

    <div class="section-title">Finished Goods</div>
    <table class="report-table">
        <tbody>
            <tr><td>Final Products (charged pool)</td><td class="num-col">{{.Summary.Stock.FinalProducts}}</td></tr>
            <tr><td>Batteries</td><td class="num-col">{{.Summary.Stock.Batteries}}</td></tr>
            <tr><td>Inverters</td><td class="num-col">{{.Summary.Stock.Inverters}}</td></tr>
        </tbody>
    </table>

    <div class="section-title">Raw Materials (L1)</div>
    <table class="report-table">
        <thead>
            <tr>
                <th>Product ID</th>
                <th>Name</th>
                <th class="num-col">Quantity</th>
                <th>Unit</th>
                <th class="num-col">Threshold</th>
            </tr>
        </thead>
        <tbody>
            {{range .Summary.Stock.L1Components}}
            <tr>
                <td>{{.ProductID}}</td>
                <td{{if .LowStock}} class="low-stock"{{end}}>{{.ProductName}}{{if .LowStock}} (LOW){{end}}</td>
                <td class="num-col">{{.Quantity}}</td>
                <td>{{.Unit}}</td>
                <td class="num-col">{{.MinThreshold}}</td>
            </tr>
            {{end}}
        </tbody>
    </table>

    <div class="section-title">Components (L2)</div>
    <table class="report-table">
        <thead>
            <tr>
                <th>Product ID</th>
                <th>Name</th>
                <th class="num-col">Quantity</th>
                <th>Unit</th>
                <th class="num-col">Threshold</th>
            </tr>
        </thead>
        <tbody>
            {{range .Summary.Stock.L2Components}}
            <tr>
                <td>{{.ProductID}}</td>
                <td{{if .LowStock}} class="low-stock"{{end}}>{{.ProductName}}{{if .LowStock}} (LOW){{end}}</td>
                <td class="num-col">{{.Quantity}}</td>
                <td>{{.Unit}}</td>
                <td class="num-col">{{.MinThreshold}}</td>
            </tr>
            {{end}}
        </tbody>
    </table>

    <div class="section-title">Charging Circuits</div>
    <table class="report-table">
        <thead>
            <tr>
                <th class="num-col">Circuit</th>
                <th class="num-col">Completed Batches</th>
                <th class="num-col">Batteries Charged</th>
                <th class="num-col">Total Hours</th>
            </tr>
        </thead>
        <tbody>
            {{range .Summary.Charging}}
            <tr>
                <td class="num-col">{{.CircuitNo}}</td>
                <td class="num-col">{{.CompletedOrders}}</td>
                <td class="num-col">{{.BatteriesDone}}</td>
                <td class="num-col">{{printf "%.1f" .TotalHours}}</td>
            </tr>
            {{end}}
        </tbody>
    </table>

    <div class="footer">
        <p>Generated by {{.PlantName}} inventory tracking.</p>
    </div>
</body>
</html>
`

// Shipment manifest HTML template
const shipmentManifestTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>{{.Title}}</title>
    <style>` + reportStyles + `</style>
</head>
<body>
    <div class="header">
        <div class="report-title">{{.Title}}</div>
        <p><strong>{{.PlantName}}</strong>{{if .PlantCity}}, {{.PlantCity}}{{end}}</p>
        <p>Report Date: {{.ReportDate}}</p>
    </div>

    <table class="report-table">
        <thead>
            <tr>
                <th class="num-col">Shipment #</th>
                <th>Destination</th>
                <th class="num-col">Quantity</th>
                <th>Status</th>
                <th>Created</th>
            </tr>
        </thead>
        <tbody>
            {{range .Shipments}}
            <tr>
                <td class="num-col">{{.ID}}</td>
                <td>{{.Destination}}</td>
                <td class="num-col">{{.Quantity}}</td>
                <td>{{title (printf "%s" .Status)}}</td>
                <td>{{.Timestamp.Format "Jan 2, 2006 15:04"}}</td>
            </tr>
            {{end}}
        </tbody>
    </table>

    <table class="report-table" style="width: 300px; float: right;">
        <tbody>
            <tr>
                <td><strong>Total Units</strong></td>
                <td class="num-col"><strong>{{.TotalQuantity}}</strong></td>
            </tr>
        </tbody>
    </table>

    <div style="clear: both;"></div>

    <div class="footer">
        <p>Generated by {{.PlantName}} inventory tracking.</p>
    </div>
</body>
</html>
`
