package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"dock2pod/cmd"
)

var (
	version string
	commit  string
	date    string
)

func main() {
	_ = godotenv.Load()
	cmd.SetBuildInfo(version, commit, date)
	if err := cmd.Execute(); err != nil {
		log.Error("migration failed", "err", err)
		os.Exit(1)
	}
}
