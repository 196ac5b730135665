// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	endpoint string
	token    string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "edumart",
	Short: "EduMart",
	Long:  `EduMart school platform server and administration CLI.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// loadDotEnv reads an optional .env file; variables already set in the
// environment win.
func loadDotEnv() {
	_ = godotenv.Load()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&endpoint, "endpoint", "http://localhost:8080", "EduMart HTTP endpoint")
	rootCmd.PersistentFlags().StringVar(&token, "token", "", "Bearer token used by client commands")
}
