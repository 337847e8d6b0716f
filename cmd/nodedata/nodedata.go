// Package nodedata is a subcommand of the root command. It probes the
// local host's actual CPUID leaves and prints them as a raw leaf dump
// usable by decode/hasfeature.
package nodedata

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"cpuarbiter/internal/app"
	"cpuarbiter/internal/cpuid"
	"cpuarbiter/internal/nodeprobe"
)

const cmdName = "nodedata"

var examples = []string{
	fmt.Sprintf("  Dump this host's raw CPUID leaves:  $ %s %s", app.Name, cmdName),
}

var Cmd = &cobra.Command{
	Use:     cmdName,
	Short:   "Probe this host's CPUID leaves",
	Example: strings.Join(examples, "\n"),
	RunE:    runCmd,
	GroupID: "primary",
	Args:    cobra.NoArgs,
}

func runCmd(cmd *cobra.Command, _ []string) error {
	data, err := nodeprobe.NodeData()
	if err != nil {
		return err
	}
	rendered, err := cpuid.DumpYAML(data)
	if err != nil {
		return err
	}
	cmd.Print(string(rendered))
	return nil
}
