package main

import (
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd(loadConfig(), run).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// newRootCmd builds the command line on top of the rc-file config; flags
// override whatever the file said.
func newRootCmd(config *Config, runFn func(config *Config, path string) error) *cobra.Command {
	chart := config.Chart.String()
	delimiter := string(config.Delimiter)

	cmd := &cobra.Command{
		Use:           "csvplot [file]",
		Short:         "Chart a CSV file in the terminal",
		Long:          "csvplot loads a two-column CSV file and draws it as a line chart (number,number rows)\nor a bar chart (label,count rows). Press e to type a path, Enter to load it, q to quit.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := parseChartKind(chart)
			if err != nil {
				return err
			}
			config.Chart = kind

			delim, err := parseDelimiter(delimiter)
			if err != nil {
				return err
			}
			config.Delimiter = delim

			var path string
			if len(args) == 1 {
				path = args[0]
			}
			return runFn(config, path)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&chart, "chart", "c", chart, "chart type: line or bar")
	flags.BoolVar(&config.Header, "header", config.Header, "treat the first row as a header and skip it")
	flags.StringVarP(&delimiter, "delimiter", "d", delimiter, "field delimiter (a single character, or \"tab\")")
	flags.StringVar(&config.SaveDirectory, "save-dir", config.SaveDirectory, "directory for exported PNG files")
	flags.StringVar(&config.LogFile, "log", config.LogFile, "write debug logs to this file")

	return cmd
}

func run(config *Config, path string) error {
	if config.LogFile != "" {
		f, err := tea.LogToFile(config.LogFile, "csvplot")
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	p := tea.NewProgram(
		initialModel(config, path),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running terminal UI: %w", err)
	}
	return nil
}
