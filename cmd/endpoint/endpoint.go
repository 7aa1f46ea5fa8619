/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package endpoint provides the endpoint command for subopt.
package endpoint

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bennypowers.dev/subopt/config"
	"bennypowers.dev/subopt/flagvalue"
	"bennypowers.dev/subopt/fs"
	"bennypowers.dev/subopt/internal/output"
	"bennypowers.dev/subopt/record"
)

// ErrNoEndpoint is returned when neither the flag nor config define an endpoint.
var ErrNoEndpoint = errors.New("no endpoint given: use --endpoint or set endpoint in .config/subopt.yaml")

// Cmd is the endpoint cobra command.
var Cmd = &cobra.Command{
	Use:   "endpoint",
	Short: "Parse an endpoint definition",
	Long: `Parse an endpoint of the form host=H:port=N:tls.

The port defaults to 80. The bare sub-option tls enables TLS.
A repeated --endpoint flag overrides the earlier one.

Examples:
  subopt endpoint --endpoint host=example.com:port=8443:tls`,
	Args: cobra.NoArgs,
	RunE: run,
}

var (
	ep         record.Endpoint
	filesystem fs.FileSystem = fs.NewOSFileSystem()
)

func init() {
	Cmd.Flags().VarP(flagvalue.New(&ep).Named("host=H:port=N:tls"), "endpoint", "e", "Endpoint definition")
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Find(filesystem, ".")
	if err != nil {
		return err
	}
	format, err := output.Choose(viper.GetString("format"), cfg.Format)
	if err != nil {
		return err
	}

	result := ep
	if !cmd.Flags().Changed("endpoint") {
		var ok bool
		result, ok, err = cfg.EndpointRecord()
		if err != nil {
			return fmt.Errorf("config: %w", err)
		}
		if !ok {
			return ErrNoEndpoint
		}
	}

	return output.Write(cmd.OutOrStdout(), format, result, func(w io.Writer) error {
		scheme := "http"
		if result.TLS {
			scheme = "https"
		}
		_, err := fmt.Fprintf(w, "%s://%s\n", scheme, result.Address())
		return err
	})
}
