/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package cmd provides CLI commands for subopt.
package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bennypowers.dev/subopt/cmd/buffers"
	"bennypowers.dev/subopt/cmd/endpoint"
	"bennypowers.dev/subopt/cmd/retry"
	"bennypowers.dev/subopt/cmd/tokens"
	"bennypowers.dev/subopt/cmd/version"
	"bennypowers.dev/subopt/flagvalue"
	"bennypowers.dev/subopt/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "subopt",
	Short: "Parse colon-separated sub-option values",
	Long: `subopt parses option values made of colon-separated sub-options,
such as --buf source=0:offset=1000, into structured records.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.SetVerbose(viper.GetBool("verbose"))
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// flagError prefixes sub-option failures with their diagnostic category.
func flagError(cmd *cobra.Command, err error) error {
	var d *flagvalue.Diagnostic
	if errors.As(err, &d) {
		logger.Debug("%s: %s flag error: %v", cmd.Name(), d.Category, d.Unwrap())
		return fmt.Errorf("%s: %w", d.Category, err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringP("format", "f", "", "Output format (text, json, yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log debug output to stderr")
	_ = viper.BindPFlag("format", rootCmd.PersistentFlags().Lookup("format"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.SetEnvPrefix("subopt")
	viper.AutomaticEnv()

	rootCmd.SetFlagErrorFunc(flagError)

	rootCmd.AddCommand(tokens.Cmd)
	rootCmd.AddCommand(buffers.Cmd)
	rootCmd.AddCommand(endpoint.Cmd)
	rootCmd.AddCommand(retry.Cmd)
	rootCmd.AddCommand(version.Cmd)
}
