/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package version provides the version command for subopt.
package version

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bennypowers.dev/subopt/internal/output"
	"bennypowers.dev/subopt/internal/version"
)

// Cmd is the version cobra command that prints version and build information.
var Cmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print version information for subopt.`,
	Args:  cobra.NoArgs,
	RunE:  run,
}

func run(cmd *cobra.Command, args []string) error {
	format, err := output.Choose(viper.GetString("format"))
	if err != nil {
		return fmt.Errorf("error reading format: %w", err)
	}
	return output.Write(cmd.OutOrStdout(), format, version.Info(), func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "subopt %s\n", version.Full())
		return err
	})
}
