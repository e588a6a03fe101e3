/*
Copyright © 2024 Ryan Painter paintersrp@gmail.com

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/Paintersrp/kn/internal/state"
	"github.com/Paintersrp/kn/pkg/cmd/root"
)

// stateOptions reads the flags that decide which workspace the state is
// built for. Everything else is left to cobra.
func stateOptions(args []string) state.Options {
	fs := pflag.NewFlagSet("kn", pflag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.Usage = func() {}
	fs.SetOutput(nopWriter{})

	var opts state.Options
	fs.StringVarP(&opts.Workspace, "workspace", "w", "", "")
	fs.BoolVar(&opts.Debug, "debug", false, "")
	fs.BoolP("help", "h", false, "")
	_ = fs.Parse(args)

	return opts
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }

func Execute() {
	s, err := state.NewState(stateOptions(os.Args[1:]))
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	rootCmd, err := root.NewCmdRoot(s)
	if err != nil {
		s.Close()
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	execErr := rootCmd.Execute()
	if err := s.Close(); err != nil {
		s.Logger.Warn().Err(err).Msg("failed to close state")
	}
	if execErr != nil {
		os.Exit(1)
	}
}
