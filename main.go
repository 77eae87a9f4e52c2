package main

import (
	"flag"
	"log"

	"wordgate/internal/di"
	"wordgate/internal/structures"
)

func main() {
	flags := &structures.CliFlags{}
	flag.StringVar(&flags.ConfigPath, "config", "config.yaml", "path to the configuration file")
	flag.BoolVar(&flags.DebugMode, "debug", false, "enable debug logging and console output")
	flag.Parse()

	if _, err := di.InitApp(flags); err != nil {
		log.Fatalf("Failed to start: %s", err)
	}
}
