package main

import (
	"fmt"
	"os"

	"github.com/edutools/zybook-grader-go/internal/adapter/driven/config"
	"github.com/edutools/zybook-grader-go/internal/adapter/driven/export"
	"github.com/edutools/zybook-grader-go/internal/adapter/driven/report"
	"github.com/edutools/zybook-grader-go/internal/adapter/driving/cli"
	"github.com/edutools/zybook-grader-go/internal/application/usecase"
	"github.com/edutools/zybook-grader-go/pkg/console"
	"github.com/edutools/zybook-grader-go/pkg/version"
)

func main() {
	// Inicializa o aplicativo CLI
	app := cli.NewCLIApp(version.Version)

	// Inicializa os repositórios
	reportRepo := report.NewReportRepository()
	exportRepo := export.NewExportRepository()
	configRepo := config.NewConfigRepository()
	consoleImpl := console.NewConsole()

	// Inicializa o caso de uso
	gradeUseCase := usecase.NewGradeUseCase(
		reportRepo,
		exportRepo,
		configRepo,
		consoleImpl,
	)

	// Define o caso de uso no aplicativo CLI
	app.SetGradeUseCase(gradeUseCase)

	// Executa o aplicativo
	if err := app.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
