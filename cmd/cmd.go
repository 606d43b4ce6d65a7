// cmd.go - Haupt-CLI Setup und Root Command
// Hauptfunktionen: NewCLI, appendEnvDocs
package cmd

import (
	"fmt"
	"log"
	"os"
	"runtime"

	"github.com/containerd/console"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/dominomaker/dominomaker/envconfig"
)

// appendEnvDocs - Fuegt Umgebungsvariablen-Dokumentation zum Command hinzu
func appendEnvDocs(cmd *cobra.Command, envs []envconfig.EnvVar) {
	if len(envs) == 0 {
		return
	}

	envUsage := `
Environment Variables:
`
	for _, e := range envs {
		envUsage += fmt.Sprintf("      %-24s   %s\n", e.Name, e.Description)
	}

	cmd.SetUsageTemplate(cmd.UsageTemplate() + envUsage)
}

// NewCLI - Erstellt das Haupt-CLI mit allen Commands
func NewCLI() *cobra.Command {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	cobra.EnableCommandSorting = false

	if runtime.GOOS == "windows" && term.IsTerminal(int(os.Stdout.Fd())) {
		console.ConsoleFromFile(os.Stdin) //nolint:errcheck
	}

	rootCmd := &cobra.Command{
		Use:           "dominomaker",
		Short:         "Turn images into black and white domino mosaics",
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		Run: func(cmd *cobra.Command, args []string) {
			if version, _ := cmd.Flags().GetBool("version"); version {
				versionHandler(cmd, args)
				return
			}

			cmd.Print(cmd.UsageString())
		},
	}

	rootCmd.Flags().BoolP("version", "v", false, "Show version information")

	serveCmd := newServeCmd()
	convertCmd := newConvertCmd()

	// Environment-Dokumentation hinzufuegen
	envVars := envconfig.AsMap()

	appendEnvDocs(serveCmd, []envconfig.EnvVar{
		envVars["DOMINO_DEBUG"],
		envVars["DOMINO_HOST"],
		envVars["DOMINO_ORIGINS"],
		envVars["DOMINO_MAX_UPLOAD"],
		envVars["DOMINO_MAX_BOARD"],
		envVars["DOMINO_RELEASE"],
	})
	appendEnvDocs(convertCmd, []envconfig.EnvVar{
		envVars["DOMINO_HOST"],
		envVars["DOMINO_WORKERS"],
	})

	rootCmd.AddCommand(
		serveCmd,
		convertCmd,
	)

	return rootCmd
}
