/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package retry provides the retry command for subopt.
package retry

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bennypowers.dev/subopt/config"
	"bennypowers.dev/subopt/flagvalue"
	"bennypowers.dev/subopt/fs"
	"bennypowers.dev/subopt/internal/output"
	"bennypowers.dev/subopt/tagged"
)

// Policy is a retry policy described by struct tags.
type Policy struct {
	Attempts int           `subopt:"attempts" default:"3" json:"attempts" yaml:"attempts"`
	Backoff  time.Duration `subopt:"backoff" default:"250ms" json:"backoff" yaml:"backoff"`
	Factor   float64       `subopt:"factor" default:"2" json:"factor" yaml:"factor"`
	Jitter   bool          `subopt:"jitter" json:"jitter" yaml:"jitter"`
}

// MaxAttempts bounds the attempts a policy may ask for.
const MaxAttempts = 100

// ErrAttemptsRange is returned for an attempts count outside 1..MaxAttempts.
var ErrAttemptsRange = fmt.Errorf("attempts must be between 1 and %d", MaxAttempts)

// Validate checks the policy after parsing.
func (p Policy) Validate() error {
	if p.Attempts < 1 || p.Attempts > MaxAttempts {
		return fmt.Errorf("%w, got %d", ErrAttemptsRange, p.Attempts)
	}
	return nil
}

// Delays returns the wait before each retry, for at most MaxAttempts attempts.
func (p Policy) Delays() []time.Duration {
	attempts := min(p.Attempts, MaxAttempts)
	if attempts <= 1 {
		return nil
	}
	delays := make([]time.Duration, 0, attempts-1)
	d := float64(p.Backoff)
	for i := 1; i < attempts; i++ {
		delays = append(delays, time.Duration(d))
		d *= p.Factor
	}
	return delays
}

// Cmd is the retry cobra command.
var Cmd = &cobra.Command{
	Use:   "retry",
	Short: "Parse a retry policy",
	Args:  cobra.NoArgs,
	RunE:  run,
}

var (
	policy     Policy
	filesystem fs.FileSystem = fs.NewOSFileSystem()
)

func init() {
	var err error
	policy, err = tagged.Defaults[Policy]()
	if err != nil {
		panic(err)
	}
	keys, err := tagged.SortedKeys[Policy]()
	if err != nil {
		panic(err)
	}

	Cmd.Long = fmt.Sprintf(`Parse a retry policy and print the resulting delays.

Keys: %s. The bare sub-option jitter enables jitter.

Examples:
  subopt retry --policy attempts=5:backoff=100ms:jitter`, strings.Join(keys, ", "))
	Cmd.Flags().VarP(flagvalue.Func(&policy, tagged.Parse[Policy]).Named("key=value:..."), "policy", "p", "Retry policy")
}

func run(cmd *cobra.Command, args []string) error {
	if err := policy.Validate(); err != nil {
		return err
	}
	cfg, err := config.Find(filesystem, ".")
	if err != nil {
		return err
	}
	format, err := output.Choose(viper.GetString("format"), cfg.Format)
	if err != nil {
		return err
	}

	type result struct {
		Policy Policy   `json:"policy" yaml:"policy"`
		Delays []string `json:"delays" yaml:"delays"`
	}
	res := result{Policy: policy}
	for _, d := range policy.Delays() {
		res.Delays = append(res.Delays, d.String())
	}

	return output.Write(cmd.OutOrStdout(), format, res, func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "attempts=%d jitter=%t delays=[%s]\n",
			policy.Attempts, policy.Jitter, strings.Join(res.Delays, " "))
		return err
	})
}
