package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mapddl/mapddl"
)

var (
	mappingFile string
	dialectName string
	configFile  string
	outputFile  string
	groupBy     string
	verbose     bool
)

var rootCmd = &cobra.Command{
	Use:   "mapddl",
	Short: "Generate DDL scripts from object-to-table mapping documents",
	Long: `mapddl reads a declarative object-to-table mapping document and derives a
relational schema (tables, columns, primary keys, foreign keys, key
generators), including inherited identity columns and junction tables for
many-to-many relations. The schema is rendered as a DDL creation script for
the selected database dialect. No database connection is made.`,
	RunE: run,
}

func init() {
	rootCmd.Flags().StringVarP(&mappingFile, "mapping", "m", "", "Mapping document (YAML)")
	rootCmd.Flags().StringVarP(&dialectName, "dialect", "D", "", "DDL dialect: mysql or postgres (default from config)")
	rootCmd.Flags().StringVarP(&configFile, "config", "c", "", "Generator configuration file (YAML)")
	rootCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")
	rootCmd.Flags().StringVar(&groupBy, "group-by", "", "Statement grouping: table or statement (default from config)")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

func run(cmd *cobra.Command, args []string) error {
	if mappingFile == "" {
		return fmt.Errorf("--mapping must be specified")
	}

	logger, err := buildLogger(verbose)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	opts := &mapddl.Options{
		Dialect:    dialectName,
		ConfigFile: configFile,
		GroupBy:    groupBy,
		Logger:     logger,
	}
	outOpts := &mapddl.OutputOptions{
		OutputFile: outputFile,
	}

	if err := mapddl.Generate(mappingFile, opts, outOpts); err != nil {
		return fmt.Errorf("failed to generate DDL: %w", err)
	}
	return nil
}

func buildLogger(verbose bool) (*zap.Logger, error) {
	if !verbose {
		return zap.NewNop(), nil
	}
	return zap.NewDevelopment()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
