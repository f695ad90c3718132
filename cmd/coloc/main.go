// Copyright 2025 go-coloc Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command coloc computes colocalization statistics of two channels.
//
// Usage:
//
//	coloc pearsons ch1.txt ch2.txt --thresholds 40,38
//	coloc threshold ch1.txt ch2.txt --implementation simple
//	coloc kendall ch1.txt ch2.txt --tie-break random --seed 7
//	coloc pvalue ch1.txt ch2.txt --dims 64,64 --randomizations 500
//	coloc all ch1.txt ch2.txt --config run.yaml
//
// Channels are plain text files of numbers separated by whitespace or
// commas, listed in x-fastest order; '#' starts a comment. Every pixel type
// flag value (uint8, uint16, float32, float64) checks that samples fit the
// type. A YAML file given with --config supplies defaults that flags
// override:
//
//	pixel_type: uint16
//	dims: [64, 64]
//	log_level: info
//	pearsons:
//	  implementation: classic
//	  thresholds: [40, 38]
//	threshold:
//	  implementation: bisection
//	kendall:
//	  tie_break: random
//	pvalue:
//	  randomizations: 1000
//	  workers: 8
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	// Interrupting a pvalue run stops it between randomizations.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
