package main

import (
	"flag"
	"fmt"

	"github.com/iwvelando/realestate-calc/internal/batch"
	"github.com/iwvelando/realestate-calc/internal/config"
	"github.com/iwvelando/realestate-calc/internal/logging"
	"github.com/iwvelando/realestate-calc/pkg/constants"
	"github.com/iwvelando/realestate-calc/pkg/output"
	"github.com/iwvelando/realestate-calc/pkg/validation"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// A missing .env file is not an error.
	_ = godotenv.Load()

	// Process command line flags first to get config location
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to calculations file")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	flag.Parse()

	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		return
	}

	logger, err := logging.New(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	// CLI override takes precedence over config
	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}

	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	results, err := batch.NewRunner(logger).Run(conf)
	if err != nil {
		logger.Fatal("failed to run calculations",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	for _, warning := range results.Warnings {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	switch outputFormat {
	case constants.OutputFormatPretty:
		output.PrettyFormat(results)
	case constants.OutputFormatCSV:
		output.CsvFormat(results)
	}
}
