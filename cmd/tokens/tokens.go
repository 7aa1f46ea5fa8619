/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package tokens provides the tokens command for subopt.
package tokens

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"bennypowers.dev/subopt/config"
	"bennypowers.dev/subopt/fs"
	"bennypowers.dev/subopt/internal/logger"
	"bennypowers.dev/subopt/internal/output"
	"bennypowers.dev/subopt/subopt"
)

// Cmd is the tokens cobra command.
var Cmd = &cobra.Command{
	Use:   "tokens VALUE...",
	Short: "Show how sub-option values are split",
	Long: `Split each value on ':' and classify every sub-option as a bare value
or a key=value pair, exactly as records receive them.

Examples:
  subopt tokens source=0:offset=1000
  subopt tokens --format json 'host=h::tls'`,
	Args: cobra.MinimumNArgs(1),
	RunE: run,
}

// Input is one value and its tokens.
type Input struct {
	Input  string         `json:"input" yaml:"input"`
	Tokens []subopt.Token `json:"tokens" yaml:"tokens"`
}

var filesystem fs.FileSystem = fs.NewOSFileSystem()

func run(cmd *cobra.Command, args []string) error {
	cfg := config.LoadOrDefault(filesystem, ".")
	format, err := output.Choose(viper.GetString("format"), cfg.Format)
	if err != nil {
		return err
	}

	inputs := make([]Input, 0, len(args))
	for _, arg := range args {
		toks := subopt.Split(arg)
		logger.Debug("%q: %d tokens", arg, len(toks))
		inputs = append(inputs, Input{Input: arg, Tokens: toks})
	}

	return output.Write(cmd.OutOrStdout(), format, inputs, func(w io.Writer) error {
		return writeText(w, inputs)
	})
}

func writeText(w io.Writer, inputs []Input) error {
	caser := cases.Title(language.English)
	for _, in := range inputs {
		if _, err := fmt.Fprintln(w, in.Input); err != nil {
			return err
		}
		for i, tok := range in.Tokens {
			var err error
			if tok.Kind == subopt.PairToken {
				_, err = fmt.Fprintf(w, "  %2d  %-5s  %q = %q\n", i+1, caser.String(tok.Kind.String()), tok.Key, tok.Value)
			} else {
				_, err = fmt.Fprintf(w, "  %2d  %-5s  %q\n", i+1, caser.String(tok.Kind.String()), tok.Value)
			}
			if err != nil {
				return err
			}
		}
	}
	return nil
}
