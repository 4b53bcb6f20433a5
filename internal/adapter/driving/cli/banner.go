package cli

import (
	"fmt"

	"github.com/edutools/zybook-grader-go/pkg/version"
	"github.com/fatih/color"
)

// displayWelcomeBanner exibe o banner de boas-vindas com informações de versão.
func displayWelcomeBanner(versionStr string) {
	banner := `
         /$$$$$$$$        /$$$$$$$                           /$$
        |_____ $$        | $$__  $$                         | $$
             /$$/  /$$   /$$ $$  \ $$  /$$$$$$   /$$$$$$   /$$$$$$$  /$$$$$$   /$$$$$$
            /$$/  | $$  | $$ $$$$$$$  /$$__  $$ |____  $$ /$$__  $$ /$$__  $$ /$$__  $$
           /$$/   | $$  | $$ $$__  $$| $$  \__/  /$$$$$$$| $$  | $$| $$$$$$$$| $$  \__/
          /$$/    | $$  | $$ $$  \ $$| $$       /$$__  $$| $$  | $$| $$_____/| $$
         /$$$$$$$$|  $$$$$$$ $$$$$$$/| $$      |  $$$$$$$|  $$$$$$$|  $$$$$$$| $$
        |________/ \____  $$_______/ |__/       \_______/ \_______/ \_______/|__/
                   /$$  | $$
                  |  $$$$$$/
                   \______/
        `
	red := color.New(color.FgRed, color.Bold).SprintFunc()
	blue := color.New(color.FgBlue, color.Bold).SprintFunc()

	fmt.Println(red(banner))

	// Obtem a string formatada da versão através do pacote version
	formattedVersion := version.FormatVersion()
	fmt.Println(blue(fmt.Sprintf("zyBook Grader CLI (v%s)", formattedVersion)))
}
