package main

import (
	"fmt"
	"os"

	"github.com/aretw0/arbor"
	"github.com/aretw0/arbor/internal/report"
	"github.com/aretw0/arbor/pkg/conftree"
	"github.com/aretw0/arbor/pkg/container"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Export the facility wiring as a diagram",
	Long:  `Installs the facility into a throwaway container and outputs a Mermaid diagram (graph TD) of the manager, stores and factories.`,
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

		node, err := conftree.LoadFile("arbor", file)
		if err != nil {
			fmt.Printf("Error loading configuration: %v\n", err)
			os.Exit(1)
		}

		facility, err := arbor.New(arbor.WithLogger(logger))
		if err != nil {
			fmt.Printf("Error creating facility: %v\n", err)
			os.Exit(1)
		}

		result, err := facility.Install(container.New(), node)
		if err != nil {
			fmt.Printf("Error installing facility: %v\n", err)
			os.Exit(1)
		}
		defer result.Close()

		fmt.Print(report.Mermaid(result))
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
