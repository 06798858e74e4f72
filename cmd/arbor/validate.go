package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/arbor"
	"github.com/aretw0/arbor/pkg/conftree"
	"github.com/aretw0/arbor/pkg/container"
	"github.com/spf13/cobra"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a facility configuration file",
	Long:  `Parses the configuration, installs the facility into a throwaway container and reports the first problem found.`,
	Run: func(cmd *cobra.Command, args []string) {
		file, _ := cmd.Flags().GetString("file")
		if !cmd.Flags().Changed("file") && len(args) > 0 {
			file = args[0]
		}
		connect, _ := cmd.Flags().GetBool("connect")

		logger, err := loggerFromFlags(cmd)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		if err := runValidate(file, connect, logger); err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Configuration is valid! ✅")
	},
}

func init() {
	validateCmd.Flags().Bool("connect", false, "Also open a connection to every factory")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(file string, connect bool, logger *slog.Logger) error {
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

	if connect {
		ctx := context.Background()
		for _, id := range result.FactoryIDs() {
			factory, err := result.Factory(id)
			if err != nil {
				return err
			}
			if err := factory.Ping(ctx); err != nil {
				return fmt.Errorf("factory %s: %w", id, err)
			}
			fmt.Printf("factory %s: reachable\n", id)
		}
	}
	return nil
}
