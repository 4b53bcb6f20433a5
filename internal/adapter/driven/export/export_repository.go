package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/edutools/zybook-grader-go/internal/domain/entity"
	"github.com/edutools/zybook-grader-go/internal/domain/repository"
	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
)

// ExportRepositoryImpl implementa o ExportRepository.
type ExportRepositoryImpl struct{}

// NewExportRepository cria uma nova implementação do ExportRepository.
func NewExportRepository() repository.ExportRepository {
	return &ExportRepositoryImpl{}
}

// --- Saídas primárias do pipeline ---

// WriteGradesCSV grava a tabela final de notas no caminho exato escolhido na
// linha de comando.
func (r *ExportRepositoryImpl) WriteGradesCSV(report entity.GradeReport, path string) (string, error) {
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("error creating grades CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(gradeHeaders(report)); err != nil {
		return "", fmt.Errorf("error writing CSV header: %w", err)
	}
	for _, row := range report.Rows {
		if err := writer.Write(gradeRecord(report, row)); err != nil {
			return "", fmt.Errorf("error writing CSV record: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("error writing grades CSV: %w", err)
	}

	return filepath.Abs(path)
}

// WriteSummaryCSV grava o crosstab de pontos por atraso, com margens "All".
func (r *ExportRepositoryImpl) WriteSummaryCSV(summary entity.SummaryTable, path string) (string, error) {
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("error creating summary CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	headers := append([]string{}, entity.KeyColumns...)
	headers = append(headers, summary.Buckets...)
	headers = append(headers, entity.MarginLabel)
	if err := writer.Write(headers); err != nil {
		return "", fmt.Errorf("error writing CSV header: %w", err)
	}

	for _, row := range summary.Rows {
		record := append([]string{}, row.Key.Fields()...)
		for _, bucket := range summary.Buckets {
			record = append(record, formatNumber(row.Cells[bucket]))
		}
		record = append(record, formatNumber(row.Total))
		if err := writer.Write(record); err != nil {
			return "", fmt.Errorf("error writing CSV record: %w", err)
		}
	}

	// Linha de margem: totais por balde e total geral.
	margin := make([]string, len(entity.KeyColumns))
	margin[0] = entity.MarginLabel
	for _, bucket := range summary.Buckets {
		margin = append(margin, formatNumber(summary.ColumnTotals[bucket]))
	}
	margin = append(margin, formatNumber(summary.GrandTotal))
	if err := writer.Write(margin); err != nil {
		return "", fmt.Errorf("error writing CSV margin row: %w", err)
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("error writing summary CSV: %w", err)
	}

	return filepath.Abs(path)
}

// --- Cópias nomeadas do relatório de notas ---

func (r *ExportRepositoryImpl) ExportGradesToCSV(report entity.GradeReport, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "csv")
	if err != nil {
		return "", err
	}
	return r.WriteGradesCSV(report, outputFilename)
}

func (r *ExportRepositoryImpl) ExportGradesToJSON(report entity.GradeReport, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "json")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating JSON file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(report); err != nil {
		return "", fmt.Errorf("error encoding JSON data: %w", err)
	}

	return filepath.Abs(outputFilename)
}

func (r *ExportRepositoryImpl) ExportGradesToPDF(report entity.GradeReport, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "pdf")
	if err != nil {
		return "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	headerColor := [3]int{40, 40, 40}
	headerTextColor := [3]int{255, 255, 255}
	bodyTextColor := [3]int{50, 50, 50}
	lineColor := [3]int{200, 200, 200}

	pdf.AddPage()

	// Cabeçalho
	pdf.SetFillColor(headerColor[0], headerColor[1], headerColor[2])
	pdf.SetTextColor(headerTextColor[0], headerTextColor[1], headerTextColor[2])
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 12, tr("  Grade Report"), "", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.SetFillColor(240, 240, 240)
	pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
	pdf.CellFormat(0, 8, tr(fmt.Sprintf("  Students: %d  |  Max points: %d  |  Full grade at: %d%%",
		len(report.Rows), report.TotalMax, report.Threshold)), "", 1, "L", true, 0, "")
	pdf.Ln(8)

	// Tabela de notas
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(70, 7, tr("Student"), "B", 0, "L", false, 0, "")
	pdf.CellFormat(40, 7, tr("Student ID"), "B", 0, "L", false, 0, "")
	pdf.CellFormat(25, 7, tr("Total %"), "B", 0, "R", false, 0, "")
	pdf.CellFormat(25, 7, tr("Final %"), "B", 0, "R", false, 0, "")
	pdf.CellFormat(30, 7, tr("Final Points"), "B", 1, "R", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, row := range report.Rows {
		if pdf.GetY() > 270 {
			pdf.AddPage()
		}
		name := fmt.Sprintf("%s, %s", row.Key.LastName, row.Key.FirstName)
		if len(name) > 40 {
			name = name[:37] + "..."
		}
		pdf.SetDrawColor(lineColor[0], lineColor[1], lineColor[2])
		pdf.CellFormat(70, 6, tr(name), "", 0, "L", false, 0, "")
		pdf.CellFormat(40, 6, tr(row.Key.StudentID), "", 0, "L", false, 0, "")
		pdf.CellFormat(25, 6, fmt.Sprintf("%.2f", row.Total), "", 0, "R", false, 0, "")
		pdf.CellFormat(25, 6, fmt.Sprintf("%.2f", row.Final), "", 0, "R", false, 0, "")
		pdf.CellFormat(30, 6, fmt.Sprintf("%.2f", row.FinalPts), "", 1, "R", false, 0, "")
	}

	// Rodapé
	pdf.SetY(-15)
	pdf.SetFont("Arial", "I", 8)
	pdf.SetTextColor(128, 128, 128)
	footerText := fmt.Sprintf("Generated by zyBook Grader (Go) | %s", time.Now().Format("2006-01-02"))
	pdf.CellFormat(0, 10, tr(footerText), "", 0, "L", false, 0, "")

	if err := pdf.OutputFileAndClose(outputFilename); err != nil {
		return "", fmt.Errorf("error writing PDF file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

func (r *ExportRepositoryImpl) ExportGradesToXLSX(report entity.GradeReport, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "xlsx")
	if err != nil {
		return "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Grades"
	f.SetSheetName("Sheet1", sheet)

	for i, header := range gradeHeaders(report) {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return "", fmt.Errorf("error building XLSX header: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return "", fmt.Errorf("error writing XLSX header: %w", err)
		}
	}

	for rowIdx, row := range report.Rows {
		values := gradeValues(report, row)
		for colIdx, value := range values {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return "", fmt.Errorf("error building XLSX cell: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return "", fmt.Errorf("error writing XLSX cell: %w", err)
			}
		}
	}

	if err := f.SaveAs(outputFilename); err != nil {
		return "", fmt.Errorf("error writing XLSX file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

// --- Funções Auxiliares ---

// gradeHeaders monta o cabeçalho do relatório de notas: chave do aluno,
// colunas de pontos, total sintetizado e as colunas finais.
func gradeHeaders(report entity.GradeReport) []string {
	headers := append([]string{}, entity.KeyColumns...)
	for _, col := range report.PointsColumns {
		headers = append(headers, col.Name)
	}
	headers = append(headers, report.TotalColumn, "total", "final", "final_pts")
	return headers
}

func gradeRecord(report entity.GradeReport, row entity.GradeRow) []string {
	record := append([]string{}, row.Key.Fields()...)
	for _, col := range report.PointsColumns {
		record = append(record, formatNumber(row.Points[col.Name]))
	}
	record = append(record,
		formatNumber(row.TotalPts),
		formatNumber(row.Total),
		formatNumber(row.Final),
		formatNumber(row.FinalPts),
	)
	return record
}

// gradeValues é o equivalente tipado de gradeRecord para células XLSX.
func gradeValues(report entity.GradeReport, row entity.GradeRow) []interface{} {
	var values []interface{}
	for _, field := range row.Key.Fields() {
		values = append(values, field)
	}
	for _, col := range report.PointsColumns {
		values = append(values, row.Points[col.Name])
	}
	values = append(values, row.TotalPts, row.Total, row.Final, row.FinalPts)
	return values
}

// formatNumber imprime a representação decimal mais curta que preserva o
// valor, sem zeros finais.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// generateFilename cria um nome de arquivo único com timestamp e garante que
// o diretório exista.
func generateFilename(base, dir, ext string) (string, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("could not get current working directory: %w", err)
		}
		dir = cwd
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("error creating output directory '%s': %w", dir, err)
	}
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.%s", base, timestamp, ext)
	return filepath.Join(dir, filename), nil
}
