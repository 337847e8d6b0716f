// Package metrics is a subcommand of the root command. It serves the
// Prometheus metrics this module accumulates as it runs.
package metrics

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"cpuarbiter/internal/app"
	"cpuarbiter/internal/metrics"
)

const cmdName = "metrics"

var examples = []string{
	fmt.Sprintf("  Serve Prometheus metrics on :9400:  $ %s %s serve --listen :9400", app.Name, cmdName),
}

var Cmd = &cobra.Command{
	Use:     cmdName,
	Short:   "Serve this module's Prometheus metrics",
	Example: strings.Join(examples, "\n"),
	GroupID: "primary",
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start an HTTP server exposing /metrics",
	RunE:  runServeCmd,
	Args:  cobra.NoArgs,
}

var flagListen string

const flagListenName = "listen"

func init() {
	serveCmd.Flags().StringVar(&flagListen, flagListenName, ":9400", "address to listen on")
	Cmd.AddCommand(serveCmd)
}

func runServeCmd(cmd *cobra.Command, _ []string) error {
	return metrics.Serve(cmd.Context(), flagListen)
}
