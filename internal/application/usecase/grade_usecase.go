package usecase

import (
	"context"
	"fmt"

	"github.com/pterm/pterm"

	"github.com/edutools/zybook-grader-go/internal/domain/entity"
	"github.com/edutools/zybook-grader-go/internal/domain/grading"
	"github.com/edutools/zybook-grader-go/internal/domain/repository"
	"github.com/edutools/zybook-grader-go/internal/shared/types"
)

// GradeUseCase handles the grading pipeline from CSV snapshots to final grades.
type GradeUseCase struct {
	reportRepo repository.ReportRepository
	exportRepo repository.ExportRepository
	configRepo repository.ConfigRepository
	console    types.ConsoleInterface
}

// NewGradeUseCase creates a new grade use case.
func NewGradeUseCase(
	reportRepo repository.ReportRepository,
	exportRepo repository.ExportRepository,
	configRepo repository.ConfigRepository,
	console types.ConsoleInterface,
) *GradeUseCase {
	return &GradeUseCase{
		reportRepo: reportRepo,
		exportRepo: exportRepo,
		configRepo: configRepo,
		console:    console,
	}
}

// RunGrader executa a funcionalidade principal do grader: carrega os
// snapshots, reconcilia, aplica penalidade, finaliza e grava as saídas.
func (uc *GradeUseCase) RunGrader(ctx context.Context, args *types.CLIArgs) error {
	if err := uc.applyConfigFile(args); err != nil {
		return err
	}

	if len(args.ReportPaths) == 0 {
		return types.ErrNoReportFiles
	}

	if len(args.ReportPaths) > 1 {
		uc.console.Println("Reading points from:")
		for _, path := range args.ReportPaths {
			uc.console.Printf(" - %s\n", path)
		}
	} else {
		uc.console.Printf("Reading points from: %s\n", args.ReportPaths[0])
	}
	if args.DueDatesPath != "" {
		uc.console.Printf("Reading due dates from: %s\n", args.DueDatesPath)
	}

	status := uc.console.Status("Loading report files...")

	reports, err := uc.reportRepo.LoadReports(args.ReportPaths)
	if err != nil {
		status.Stop()
		return err
	}

	var roster *entity.AssignmentTable
	if args.DueDatesPath != "" {
		status.Update(fmt.Sprintf("Loading due dates from %s...", args.DueDatesPath))
		table, err := uc.reportRepo.LoadAssignments(args.DueDatesPath)
		if err != nil {
			status.Stop()
			return err
		}
		roster = &table
	}

	status.Update("Reconciling snapshots...")
	reconciled := grading.Reconcile(reports, roster)
	status.Stop()

	// O resumo por dia usa os incrementos brutos, antes de qualquer
	// penalidade, e só existe em execuções com mais de um snapshot.
	if len(args.ReportPaths) > 1 {
		uc.console.Println("Computing total points by day...")
		summary := grading.Summarize(reconciled)
		summaryPath, err := uc.exportRepo.WriteSummaryCSV(summary, args.OutputSummary)
		if err != nil {
			return err
		}
		uc.console.Printf("Written: %s\n", summaryPath)
		uc.console.DisplayLatenessBars(latenessBuckets(summary))
	}

	if roster != nil {
		uc.console.Printf("Applying -%d%%/day penalty...\n", args.Penalty)
		reconciled = grading.Penalize(reconciled, args.Penalty)
	}

	threshold := args.Threshold
	if args.NoThreshold {
		threshold = 100
	}
	if threshold < 100 {
		uc.console.Printf("Setting full grades at %d%%.\n", threshold)
	} else {
		uc.console.Println("No grade threshold applied.")
	}

	grades := grading.Finalize(reconciled, threshold)

	gradesPath, err := uc.exportRepo.WriteGradesCSV(grades, args.Output)
	if err != nil {
		return err
	}
	uc.console.Printf("Written: %s\n", gradesPath)

	// Exibe a tabela de notas
	table := uc.createGradesTable()
	for _, row := range grades.Rows {
		uc.addGradeToTable(table, row, threshold)
	}
	uc.console.Print(table.Render())

	// Exporta cópias nomeadas do relatório, se solicitado
	if args.ReportName != "" && len(args.ReportType) > 0 {
		uc.exportReportCopies(grades, args)
	}

	return nil
}

// applyConfigFile mescla os padrões do arquivo de configuração nos argumentos
// que ainda estão em seus valores default.
func (uc *GradeUseCase) applyConfigFile(args *types.CLIArgs) error {
	if args.ConfigFile == "" {
		return nil
	}

	cfg, err := uc.configRepo.LoadConfigFile(args.ConfigFile)
	if err != nil {
		return err
	}

	if args.DueDatesPath == "" {
		args.DueDatesPath = cfg.DueDates
	}
	if cfg.FullGradeAt != 0 && args.Threshold == types.DefaultThreshold {
		args.Threshold = cfg.FullGradeAt
	}
	if cfg.NoThreshold {
		args.NoThreshold = true
	}
	if cfg.PenaltyFactor != 0 && args.Penalty == types.DefaultPenalty {
		args.Penalty = cfg.PenaltyFactor
	}
	if cfg.Output != "" && args.Output == types.DefaultOutput {
		args.Output = cfg.Output
	}
	if cfg.OutputSummary != "" && args.OutputSummary == types.DefaultOutputSummary {
		args.OutputSummary = cfg.OutputSummary
	}
	if args.ReportName == "" {
		args.ReportName = cfg.ReportName
	}
	if len(args.ReportType) == 0 {
		args.ReportType = cfg.ReportType
	}
	if cfg.Dir != "" && args.Dir == "" {
		args.Dir = cfg.Dir
	}

	return nil
}

// exportReportCopies grava as cópias csv/json/pdf/xlsx do relatório de notas.
func (uc *GradeUseCase) exportReportCopies(grades entity.GradeReport, args *types.CLIArgs) {
	progress := uc.console.ProgressWithTotal(len(args.ReportType))
	defer progress.Stop()

	for _, reportType := range args.ReportType {
		switch reportType {
		case "csv":
			csvPath, err := uc.exportRepo.ExportGradesToCSV(grades, args.ReportName, args.Dir)
			if err != nil {
				uc.console.LogError("Failed to export grades to CSV: %s", err)
			} else {
				uc.console.LogSuccess("Successfully exported grades to CSV: %s", csvPath)
			}
		case "json":
			jsonPath, err := uc.exportRepo.ExportGradesToJSON(grades, args.ReportName, args.Dir)
			if err != nil {
				uc.console.LogError("Failed to export grades to JSON: %s", err)
			} else {
				uc.console.LogSuccess("Successfully exported grades to JSON: %s", jsonPath)
			}
		case "pdf":
			pdfPath, err := uc.exportRepo.ExportGradesToPDF(grades, args.ReportName, args.Dir)
			if err != nil {
				uc.console.LogError("Failed to export grades to PDF: %s", err)
			} else {
				uc.console.LogSuccess("Successfully exported grades to PDF: %s", pdfPath)
			}
		case "xlsx":
			xlsxPath, err := uc.exportRepo.ExportGradesToXLSX(grades, args.ReportName, args.Dir)
			if err != nil {
				uc.console.LogError("Failed to export grades to XLSX: %s", err)
			} else {
				uc.console.LogSuccess("Successfully exported grades to XLSX: %s", xlsxPath)
			}
		default:
			uc.console.LogError("%s: %s", types.ErrUnknownReportType, reportType)
		}
		progress.Increment()
	}
}

// createGradesTable cria e configura a tabela de exibição de notas.
func (uc *GradeUseCase) createGradesTable() types.TableInterface {
	table := uc.console.CreateTable()

	table.AddColumn("Student")
	table.AddColumn("Student ID")
	table.AddColumn("Total %")
	table.AddColumn("Final %")
	table.AddColumn("Final Points")

	return table
}

// addGradeToTable adiciona a nota de um aluno à tabela de exibição.
func (uc *GradeUseCase) addGradeToTable(table types.TableInterface, row entity.GradeRow, threshold int) {
	finalText := pterm.FgYellow.Sprintf("%.2f", row.Final)
	if row.Final >= float64(threshold) {
		finalText = pterm.FgGreen.Sprintf("%.2f", row.Final)
	} else if row.Final < 60 {
		finalText = pterm.FgRed.Sprintf("%.2f", row.Final)
	}

	table.AddRow(
		pterm.FgMagenta.Sprintf("%s, %s", row.Key.LastName, row.Key.FirstName),
		row.Key.StudentID,
		fmt.Sprintf("%.2f", row.Total),
		finalText,
		fmt.Sprintf("%.2f", row.FinalPts),
	)
}

// latenessBuckets converte as margens do crosstab nos dados do gráfico de
// barras do console.
func latenessBuckets(summary entity.SummaryTable) []types.LatenessBucket {
	buckets := make([]types.LatenessBucket, 0, len(summary.Buckets))
	for _, bucket := range summary.Buckets {
		buckets = append(buckets, types.LatenessBucket{
			Label:  bucket,
			Points: summary.ColumnTotals[bucket],
		})
	}
	return buckets
}
