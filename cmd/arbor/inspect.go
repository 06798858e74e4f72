package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/arbor"
	"github.com/aretw0/arbor/internal/report"
	"github.com/aretw0/arbor/internal/tui"
	"github.com/aretw0/arbor/pkg/conftree"
	"github.com/aretw0/arbor/pkg/container"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// inspectCmd represents the inspect command
var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Show the wiring a configuration file produces",
	Long:  `Installs the facility into a throwaway container and prints a report of the registered stores, factories and aliases.`,
	Run: func(cmd *cobra.Command, args []string) {
		file, _ := cmd.Flags().GetString("file")
		if !cmd.Flags().Changed("file") && len(args) > 0 {
			file = args[0]
		}

		logger, err := loggerFromFlags(cmd)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		if err := runInspect(file, logger); err != nil {
			fmt.Printf("Inspect failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(file string, logger *slog.Logger) error {
	node, err := conftree.LoadFile("arbor", file)
	if err != nil {
		return err
	}

	facility, err := arbor.New(arbor.WithLogger(logger))
	if err != nil {
		return err
	}

	result, err := facility.Install(container.New(), node)
	if err != nil {
		return err
	}
	defer result.Close()

	markdown, err := report.Generate(result)
	if err != nil {
		return err
	}

	// Render with glamour on a terminal, plain markdown when piped.
	if term.IsTerminal(int(os.Stdout.Fd())) {
		tui.PrintBanner(arbor.Version)
		render := tui.NewRenderer()
		out, err := render(markdown)
		if err != nil {
			return err
		}
		fmt.Print(out)
		return nil
	}

	fmt.Print(markdown)
	return nil
}
