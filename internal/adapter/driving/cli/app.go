package cli

import (
	"context"
	"os"
	"path/filepath"

	"github.com/edutools/zybook-grader-go/pkg/version"

	"github.com/edutools/zybook-grader-go/internal/application/usecase"
	"github.com/edutools/zybook-grader-go/internal/shared/types"
	"github.com/spf13/cobra"
)

// CLIApp represents the command-line interface application.
type CLIApp struct {
	rootCmd      *cobra.Command
	gradeUseCase *usecase.GradeUseCase
	version      string
}

// NewCLIApp cria uma nova aplicação CLI.
func NewCLIApp(versionStr string) *CLIApp {
	app := &CLIApp{
		version: versionStr,
	}

	// Obtem a versão formatada
	formattedVersion := version.FormatVersion()

	rootCmd := &cobra.Command{
		Use:     "zybook-grader PATH...",
		Short:   "zyBook point-report grading CLI",
		Long:    "Reconciles dated zyBook point-report exports, applies late penalties and emits final grades.",
		Version: formattedVersion,
		Args:    cobra.MinimumNArgs(1),
		RunE:    app.runCommand,
	}

	rootCmd.SetVersionTemplate(`{{printf "zyBook Grader version: %s\n" .Version}}`)

	// Adiciona flags de linha de comando
	rootCmd.PersistentFlags().StringP("config-file", "C", "", "Path to a TOML, YAML, or JSON configuration file")
	rootCmd.PersistentFlags().StringP("due-dates", "D", "", "Report file from zyBook with assignment due dates")
	rootCmd.PersistentFlags().IntP("full-grade-at", "F", types.DefaultThreshold, "Give full grade at or above this percentage")
	rootCmd.PersistentFlags().BoolP("no-threshold", "N", false, "Do not apply a full-grade threshold")
	rootCmd.PersistentFlags().IntP("penalty-factor", "P", types.DefaultPenalty, "Deduct this percentage per day for points earned late")
	rootCmd.PersistentFlags().StringP("output", "o", types.DefaultOutput, "Write final grades to this path")
	rootCmd.PersistentFlags().StringP("output-summary", "O", types.DefaultOutputSummary, "Write the daily point summary to this path")
	rootCmd.PersistentFlags().StringP("report-name", "n", "", "Specify the base name for exported report copies (without extension)")
	rootCmd.PersistentFlags().StringSliceP("report-type", "y", nil, "Specify report copy types: csv, json, pdf, xlsx")
	rootCmd.PersistentFlags().StringP("dir", "d", "", "Directory to save exported report copies (default: current directory)")

	rootCmd.MarkFlagsMutuallyExclusive("full-grade-at", "no-threshold")

	app.rootCmd = rootCmd
	return app
}

// Execute runs the CLI application.
func (app *CLIApp) Execute() error {
	return app.rootCmd.Execute()
}

// parseArgs parses command-line arguments into a CLIArgs struct.
func (app *CLIApp) parseArgs(reportPaths []string) (*types.CLIArgs, error) {
	configFile, _ := app.rootCmd.Flags().GetString("config-file")
	dueDates, _ := app.rootCmd.Flags().GetString("due-dates")
	threshold, _ := app.rootCmd.Flags().GetInt("full-grade-at")
	noThreshold, _ := app.rootCmd.Flags().GetBool("no-threshold")
	penalty, _ := app.rootCmd.Flags().GetInt("penalty-factor")
	output, _ := app.rootCmd.Flags().GetString("output")
	outputSummary, _ := app.rootCmd.Flags().GetString("output-summary")
	reportName, _ := app.rootCmd.Flags().GetString("report-name")
	reportType, _ := app.rootCmd.Flags().GetStringSlice("report-type")
	dir, _ := app.rootCmd.Flags().GetString("dir")

	// Report copies default to the current working directory
	if dir != "" {
		absDir, err := filepath.Abs(dir)
		if err != nil {
			return nil, err
		}
		dir = absDir
	} else if reportName != "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		dir = cwd
	}

	args := &types.CLIArgs{
		ConfigFile:    configFile,
		ReportPaths:   reportPaths,
		DueDatesPath:  dueDates,
		Threshold:     threshold,
		NoThreshold:   noThreshold,
		Penalty:       penalty,
		Output:        output,
		OutputSummary: outputSummary,
		ReportName:    reportName,
		ReportType:    reportType,
		Dir:           dir,
	}

	return args, nil
}

// runCommand é o ponto de entrada principal para o comando CLI.
func (app *CLIApp) runCommand(cmd *cobra.Command, args []string) error {
	// Exibe o banner de boas-vindas
	displayWelcomeBanner(app.version)

	// Verifica a versão mais recente disponível
	go version.CheckLatestVersion(app.version)

	// Analisa os argumentos da linha de comando
	cliArgs, err := app.parseArgs(args)
	if err != nil {
		return err
	}

	// Executa o pipeline de notas
	ctx := context.Background()
	return app.gradeUseCase.RunGrader(ctx, cliArgs)
}

// SetGradeUseCase sets the grade use case for the CLI app.
func (app *CLIApp) SetGradeUseCase(useCase *usecase.GradeUseCase) {
	app.gradeUseCase = useCase
}
