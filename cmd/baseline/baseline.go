// Package baseline is a subcommand of the root command. It computes
// the common-denominator CPU definition across a pool of hosts.
package baseline

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"cpuarbiter/internal/app"
	"cpuarbiter/internal/clicommon"
	"cpuarbiter/internal/cpudef"
	"cpuarbiter/internal/metrics"
	"cpuarbiter/internal/report"
	"cpuarbiter/internal/util"
	"cpuarbiter/internal/x86cpu"
)

const cmdName = "baseline"

var examples = []string{
	fmt.Sprintf("  Compute a baseline across three hosts' CPU definitions:  $ %s %s --catalog catalog.yaml host1.yaml host2.yaml host3.yaml", app.Name, cmdName),
}

var Cmd = &cobra.Command{
	Use:     cmdName + " --catalog FILE CPU_FILE...",
	Short:   "Compute the common-denominator CPU definition across a pool of hosts",
	Example: strings.Join(examples, "\n"),
	RunE:    runCmd,
	GroupID: "primary",
	Args:    cobra.MinimumNArgs(1),
}

var (
	flagCatalog string
	flagAllow   []string
	flagExpand  bool
)

const flagExpandName = "expand"

func init() {
	Cmd.Flags().StringVar(&flagCatalog, clicommon.FlagCatalogName, "", "path to the catalog YAML file")
	Cmd.Flags().StringSliceVar(&flagAllow, clicommon.FlagAllowlistName, nil, "restrict the resulting model to this comma-separated set of names")
	Cmd.Flags().BoolVar(&flagExpand, flagExpandName, false, "add residual leaves as extra required features")
	_ = Cmd.MarkFlagRequired(clicommon.FlagCatalogName)
}

func runCmd(cmd *cobra.Command, args []string) error {
	cat, err := clicommon.LoadCatalog(flagCatalog)
	if err != nil {
		return err
	}

	cpus := make([]*cpudef.CPUDef, 0, len(args))
	for _, path := range args {
		absPath, err := util.AbsPath(path)
		if err != nil {
			return err
		}
		raw, err := os.ReadFile(absPath) // #nosec G304
		if err != nil {
			return err
		}
		cpu, err := cpudef.LoadYAML(raw)
		if err != nil {
			return err
		}
		cpus = append(cpus, cpu)
	}

	var flags x86cpu.DecodeFlags
	if flagExpand {
		flags |= x86cpu.ExpandFeatures
	}

	result, err := x86cpu.Baseline(cat, cpus, clicommon.AllowlistSet(flagAllow), flags)
	if err != nil {
		metrics.BaselineOutcomes.WithLabelValues("error").Inc()
		return err
	}
	metrics.BaselineOutcomes.WithLabelValues("ok").Inc()

	cmd.Printf("model: %s\n", result.Model)
	if result.Vendor != "" {
		cmd.Printf("vendor: %s\n", result.Vendor)
	}

	tbl := report.Table{Headers: []string{"Feature", "Policy"}}
	for _, fp := range result.Features {
		tbl.AddRow(fp.Name, fp.Policy.String())
	}
	tbl.Write(cmd.OutOrStdout())
	return nil
}
