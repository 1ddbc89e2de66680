package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf/v2"

	"github.com/arsonstech/fieldservice/internal/domain/models"
)

const dateLayout = "02-Jan-2006"

// Service renders printable PDF views of stored records.
type Service struct{}

// NewService returns a PDF report renderer.
func NewService() *Service {
	return &Service{}
}

// RenderFieldServiceReport produces the printable field service report for
// one engine visit.
func (s *Service) RenderFieldServiceReport(record models.EngineRecord) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 10, "Arsons Tech Solutions - Field Service Report", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(190, 6, fmt.Sprintf("Date of Fill: %s", record.DateOfFill.Format(dateLayout)), "", 1, "C", false, 0, "")
	pdf.Ln(5)

	// Engine & alternator
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Engine Details", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(95, 7, fmt.Sprintf("Model: %s", record.EngineModel), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Serial No: %s", record.EngineSerialNumber), "RB", 1, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Alternator: %s (%s)", record.AlternatorSerialNumber, record.AlternatorMake), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("KVA: %.1f", record.AlternatorKVA), "RB", 1, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Customer: %s", record.CustomerName), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Address: %s", truncate(record.CustomerAddress, 40)), "RB", 1, "L", false, 0, "")
	pdf.Ln(5)

	// Parameter table
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Parameters", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(200, 200, 200)
	pdf.CellFormat(95, 7, "Reading", "1", 0, "C", true, 0, "")
	pdf.CellFormat(95, 7, "Value", "1", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	params := []struct {
		label string
		value string
	}{
		{"Voltage", fmt.Sprintf("%.1f V", record.Parameters.Voltage)},
		{"Power", fmt.Sprintf("%.1f kW", record.Parameters.KW)},
		{"Power Factor", fmt.Sprintf("%.2f", record.Parameters.PF)},
		{"Current", fmt.Sprintf("%.1f A", record.Parameters.Amps)},
		{"Water Temperature", fmt.Sprintf("%.1f C", record.Parameters.WaterTemp)},
		{"Lube Oil Temperature", fmt.Sprintf("%.1f C", record.Parameters.LubeOilTemp)},
		{"Lube Oil Pressure", fmt.Sprintf("%.1f bar", record.Parameters.LubeOilPressure)},
		{"Running Hours", fmt.Sprintf("%.0f h", record.Parameters.RunningHours)},
		{"Latest Meter Reading", fmt.Sprintf("%.0f", record.Parameters.LatestMeterReading)},
	}
	for _, p := range params {
		pdf.CellFormat(95, 6, p.label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(95, 6, p.value, "1", 1, "L", false, 0, "")
	}
	pdf.Ln(5)

	// Free-text sections
	writeTextSection(pdf, "Description", record.Description)
	writeTextSection(pdf, "Complaints", record.Complaints)
	writeTextSection(pdf, "Parts Replaced", record.PartsReplaced)
	writeTextSection(pdf, "Recommendation", record.Recommendation)

	pdf.Ln(5)
	pdf.SetFont("Arial", "", 10)
	employee := record.EmployeeSerialNumber
	if record.EmployeeSerialAlias != "" {
		employee = fmt.Sprintf("%s (%s)", employee, record.EmployeeSerialAlias)
	}
	pdf.CellFormat(190, 7, fmt.Sprintf("Serviced by: %s", employee), "", 1, "L", false, 0, "")

	return output(pdf)
}

// RenderCustomerRecord produces the printable customer warranty record.
func (s *Service) RenderCustomerRecord(record models.CustomerRecord) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 10, "Arsons Tech Solutions - Customer Details", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(190, 6, fmt.Sprintf("Service Window: %s to %s",
		record.StartDate.Format(dateLayout), record.EndDate.Format(dateLayout)), "", 1, "C", false, 0, "")
	pdf.Ln(5)

	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Tractor Information", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 11)
	tractor := record.TractorInfo
	pairs := [][2]string{
		{fmt.Sprintf("Serial No: %s", tractor.SerialNo), fmt.Sprintf("Chasis No: %s", tractor.ChasisNo)},
		{fmt.Sprintf("Engine No: %s", tractor.EngineNumber), fmt.Sprintf("Model: %s (%s)", tractor.Model, tractor.Variant)},
		{fmt.Sprintf("Production: %s", tractor.ProductionDate.Format(dateLayout)), fmt.Sprintf("Delivery: %s", tractor.DeliveryDate.Format(dateLayout))},
		{fmt.Sprintf("Installation: %s", tractor.InstallationDate.Format(dateLayout)), fmt.Sprintf("Delivered By: %s", tractor.DeliveredBy)},
	}
	for _, pair := range pairs {
		pdf.CellFormat(95, 7, pair[0], "LB", 0, "L", false, 0, "")
		pdf.CellFormat(95, 7, pair[1], "RB", 1, "L", false, 0, "")
	}

	// Warranty highlight
	if tractor.WarrantyUpto.Before(time.Now()) {
		pdf.SetFillColor(255, 200, 200)
	} else {
		pdf.SetFillColor(200, 255, 200)
	}
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 9, fmt.Sprintf("Warranty Upto: %s", tractor.WarrantyUpto.Format(dateLayout)), "1", 1, "C", true, 0, "")
	pdf.Ln(5)

	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Customer Information", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 11)
	info := record.ServiceInfo
	customerPairs := [][2]string{
		{fmt.Sprintf("Name: %s", info.CustomerName), fmt.Sprintf("Mobile: %s", info.MobileNumber)},
		{fmt.Sprintf("Email: %s", info.Email), fmt.Sprintf("State: %s", info.State)},
		{fmt.Sprintf("District: %s", info.District), fmt.Sprintf("Tehsil: %s", info.Tehsil)},
		{fmt.Sprintf("Village: %s", info.Village), ""},
	}
	for _, pair := range customerPairs {
		pdf.CellFormat(95, 7, pair[0], "LB", 0, "L", false, 0, "")
		pdf.CellFormat(95, 7, pair[1], "RB", 1, "L", false, 0, "")
	}
	pdf.Ln(5)

	if extra := record.AdditionalInfo; extra != nil {
		pdf.SetFillColor(240, 240, 240)
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(190, 8, "Additional Information", "1", 1, "L", true, 0, "")
		writeTextSection(pdf, "Complaints", extra.Complaints)
		writeTextSection(pdf, "Resolution", extra.Res)
		writeTextSection(pdf, "Observation", extra.Observation)
		writeTextSection(pdf, "Description", extra.Description)
		writeTextSection(pdf, "Parts", extra.Parts)
	}

	return output(pdf)
}

func writeTextSection(pdf *gofpdf.Fpdf, title, body string) {
	if body == "" {
		return
	}
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(190, 7, title, "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.MultiCell(190, 5, body, "", "L", false)
	pdf.Ln(2)
}

func output(pdf *gofpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func truncate(value string, max int) string {
	if len(value) <= max {
		return value
	}
	return value[:max-3] + "..."
}
