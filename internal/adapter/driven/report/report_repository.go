package report

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/edutools/zybook-grader-go/internal/domain/entity"
	"github.com/edutools/zybook-grader-go/internal/domain/repository"
	"github.com/edutools/zybook-grader-go/internal/shared/types"
)

// ReportRepositoryImpl implementa o ReportRepository.
type ReportRepositoryImpl struct{}

// NewReportRepository cria uma nova implementação do ReportRepository.
func NewReportRepository() repository.ReportRepository {
	return &ReportRepositoryImpl{}
}

// Platform exports embed the snapshot timestamp in the filename, e.g.
// "CS101_report_2024-03-18_0930_PDT.csv". The timezone suffix is optional.
var timestampPattern = regexp.MustCompile(`(\d{4}-\d{2}-\d{2}_\d{4})(_([^.]*))?`)

const timestampLayout = "2006-01-02_1504"

// Fixed offsets for the abbreviations the platform actually emits; anything
// else goes through the IANA database.
var timezoneOffsets = map[string]int{
	"UTC": 0,
	"EST": -5 * 3600,
	"EDT": -4 * 3600,
	"CST": -6 * 3600,
	"CDT": -5 * 3600,
	"MST": -7 * 3600,
	"MDT": -6 * 3600,
	"PST": -8 * 3600,
	"PDT": -7 * 3600,
}

// dueDateLayouts are tried in order when parsing the roster's due_date
// column. Layouts without zone information are read as UTC.
var dueDateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05 MST",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// LoadReports lê todos os arquivos de snapshot e os combina em uma tabela
// única, ordenada por dia.
func (r *ReportRepositoryImpl) LoadReports(paths []string) (entity.ReportTable, error) {
	if len(paths) == 0 {
		return entity.ReportTable{}, types.ErrNoReportFiles
	}

	var combined entity.ReportTable
	for _, path := range paths {
		table, err := r.loadOneReport(path)
		if err != nil {
			return entity.ReportTable{}, err
		}
		combined.Schema = mergeSchemas(combined.Schema, table.Schema)
		combined.Rows = append(combined.Rows, table.Rows...)
	}

	sort.SliceStable(combined.Rows, func(i, j int) bool {
		return combined.Rows[i].Day.Before(combined.Rows[j].Day)
	})

	return combined, nil
}

// LoadAssignments lê o roster de datas de entrega.
func (r *ReportRepositoryImpl) LoadAssignments(path string) (entity.AssignmentTable, error) {
	headers, records, err := readCSV(path)
	if err != nil {
		return entity.AssignmentTable{}, err
	}

	headers, records = dropColumns(headers, records)
	schema := entity.InferSchema(headers)

	if !schema.HasColumn("due_date") {
		return entity.AssignmentTable{}, fmt.Errorf("%s: %w", path, types.ErrMissingDueDateColumn)
	}
	if err := checkIdentity(schema, path); err != nil {
		return entity.AssignmentTable{}, err
	}

	table := entity.AssignmentTable{Schema: schema}
	for _, record := range records {
		row := entity.AssignmentRow{Points: make(map[string]float64)}
		for i, col := range schema.Columns {
			cell := strings.TrimSpace(record[i])
			switch col.Class {
			case entity.ColumnIdentity:
				setKeyField(&row.Key, col.Name, cell)
			case entity.ColumnTemporal:
				if col.Name != "due_date" {
					continue
				}
				due, err := parseDueDate(cell)
				if err != nil {
					return entity.AssignmentTable{}, fmt.Errorf("%s: %w", path, err)
				}
				row.DueDate = due
			case entity.ColumnPoints:
				value, err := toPoints(cell, col.MaxPoints)
				if err != nil {
					return entity.AssignmentTable{}, fmt.Errorf("%s: column %q: %w", path, col.Name, err)
				}
				row.Points[col.Name] = value
			}
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}

// loadOneReport lê um snapshot e adiciona a data do arquivo como coluna day.
func (r *ReportRepositoryImpl) loadOneReport(path string) (entity.ReportTable, error) {
	day, err := parseReportTime(path)
	if err != nil {
		return entity.ReportTable{}, err
	}

	headers, records, err := readCSV(path)
	if err != nil {
		return entity.ReportTable{}, err
	}

	headers, records = dropColumns(headers, records)
	schema := entity.InferSchema(headers)
	if err := checkIdentity(schema, path); err != nil {
		return entity.ReportTable{}, err
	}

	table := entity.ReportTable{Schema: schema}
	for _, record := range records {
		row := entity.ReportRow{
			Day:    day,
			Points: make(map[string]float64),
			Meta:   make(map[string]string),
		}
		for i, col := range schema.Columns {
			cell := strings.TrimSpace(record[i])
			switch col.Class {
			case entity.ColumnIdentity:
				setKeyField(&row.Key, col.Name, cell)
			case entity.ColumnPoints:
				value, err := toPoints(cell, col.MaxPoints)
				if err != nil {
					return entity.ReportTable{}, fmt.Errorf("%s: column %q: %w", path, col.Name, err)
				}
				row.Points[col.Name] = value
			case entity.ColumnOther:
				row.Meta[col.Name] = cell
			}
		}
		table.Rows = append(table.Rows, row)
	}

	// The day column is synthesized from the filename; record it in the
	// schema so downstream stages see it classified as temporal.
	if !schema.HasColumn("day") {
		table.Schema.Columns = append(table.Schema.Columns, entity.Column{Name: "day", Class: entity.ColumnTemporal})
	}

	return table, nil
}

// parseReportTime extrai a data do snapshot do nome do arquivo, em UTC.
func parseReportTime(path string) (time.Time, error) {
	m := timestampPattern.FindStringSubmatch(filepath.Base(path))
	if m == nil {
		return time.Time{}, fmt.Errorf("%s: %w", path, types.ErrInvalidReportFilename)
	}

	loc := resolveTimezone(m[3])
	ts, err := time.ParseInLocation(timestampLayout, m[1], loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: %w", path, types.ErrInvalidReportFilename)
	}
	return ts.UTC(), nil
}

// resolveTimezone resolve o sufixo de fuso do nome do arquivo. Um sufixo
// ausente ou desconhecido cai para UTC, como no caminho "naive" da plataforma.
func resolveTimezone(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	if offset, ok := timezoneOffsets[name]; ok {
		return time.FixedZone(name, offset)
	}
	if loc, err := time.LoadLocation(name); err == nil {
		return loc
	}
	return time.UTC
}

func parseDueDate(cell string) (time.Time, error) {
	if cell == "" {
		return time.Time{}, nil
	}
	for _, layout := range dueDateLayouts {
		if ts, err := time.Parse(layout, cell); err == nil {
			return ts.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable due_date %q", cell)
}

// toPoints converte uma célula de porcentagem (0-100) em pontos absolutos,
// arredondados para o inteiro mais próximo. Células vazias valem zero.
func toPoints(cell string, maxPoints int) (float64, error) {
	if cell == "" {
		return 0, nil
	}
	pct, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0, fmt.Errorf("unparseable percentage %q", cell)
	}
	return math.Round(float64(maxPoints) * pct / 100), nil
}

// readCSV lê o arquivo inteiro e normaliza os cabeçalhos.
func readCSV(path string) ([]string, [][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("error opening report file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("error reading %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("error reading %s: empty file", path)
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = entity.NormalizeHeader(h)
	}
	return headers, rows[1:], nil
}

// dropColumns remove as colunas informativas que a plataforma acrescenta:
// qualquer coluna "total", "points_earned_..." e "percent_grade".
func dropColumns(headers []string, records [][]string) ([]string, [][]string) {
	var keep []int
	var kept []string
	for i, name := range headers {
		if strings.Contains(name, "total") ||
			strings.HasPrefix(name, "points_earned") ||
			strings.HasPrefix(name, "percent_grade") {
			continue
		}
		keep = append(keep, i)
		kept = append(kept, name)
	}

	outRecords := make([][]string, len(records))
	for r, record := range records {
		out := make([]string, len(keep))
		for j, i := range keep {
			if i < len(record) {
				out[j] = record[i]
			}
		}
		outRecords[r] = out
	}
	return kept, outRecords
}

func checkIdentity(schema entity.Schema, path string) error {
	for _, c := range schema.Columns {
		if c.Class == entity.ColumnIdentity {
			return nil
		}
	}
	return fmt.Errorf("%s: %w", path, types.ErrMissingIdentityColumns)
}

// setKeyField preenche um componente da chave; células ausentes já chegam
// como string vazia.
func setKeyField(key *entity.StudentKey, column, value string) {
	switch column {
	case "last_name":
		key.LastName = value
	case "first_name":
		key.FirstName = value
	case "primary_email":
		key.PrimaryEmail = value
	case "school_email":
		key.SchoolEmail = value
	case "student_id":
		key.StudentID = value
	}
}

// mergeSchemas une os esquemas de vários arquivos preservando a ordem de
// primeira aparição.
func mergeSchemas(a, b entity.Schema) entity.Schema {
	out := a
	for _, c := range b.Columns {
		if !out.HasColumn(c.Name) {
			out.Columns = append(out.Columns, c)
		}
	}
	return out
}
