/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package buffers provides the buffers command for subopt.
package buffers

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bennypowers.dev/subopt/config"
	"bennypowers.dev/subopt/flagvalue"
	"bennypowers.dev/subopt/fs"
	"bennypowers.dev/subopt/internal/logger"
	"bennypowers.dev/subopt/internal/output"
	"bennypowers.dev/subopt/record"
)

// ErrNoBuffers is returned when neither flags nor config define a buffer.
var ErrNoBuffers = errors.New("no buffers given: use --buf or set buffers in .config/subopt.yaml")

// Cmd is the buffers cobra command.
var Cmd = &cobra.Command{
	Use:   "buffers",
	Short: "Parse buffer definitions",
	Long: `Parse one or more buffer definitions of the form source=N:offset=N.

Both keys default to 0 and may be given in any order. When --buf is not
given, buffers are read from .config/subopt.{yaml,yml,json}.

Examples:
  subopt buffers --buf source=0:offset=1000 --buf source=1:offset=2048
  subopt buffers --format yaml --buf offset=64`,
	Args: cobra.NoArgs,
	RunE: run,
}

var (
	bufs       []record.Buffer
	filesystem fs.FileSystem = fs.NewOSFileSystem()
)

var bufFlag = flagvalue.NewSlice(&bufs).Named("source=N:offset=N")

func init() {
	Cmd.Flags().VarP(bufFlag, "buf", "b", "Buffer definition (repeatable)")
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

	list := bufs
	if !cmd.Flags().Changed("buf") {
		list, err = cfg.BufferRecords()
		if err != nil {
			return fmt.Errorf("config buffers: %w", err)
		}
		logger.Debug("using %d buffers from config", len(list))
	}
	if len(list) == 0 {
		return ErrNoBuffers
	}

	return output.Write(cmd.OutOrStdout(), format, list, func(w io.Writer) error {
		for i, b := range list {
			if _, err := fmt.Fprintf(w, "buffer %d: source=%d offset=%d\n", i, b.Source, b.Offset); err != nil {
				return err
			}
		}
		return nil
	})
}
