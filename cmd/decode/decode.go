// Package decode is a subcommand of the root command. It recovers the
// closest catalog model (and residual features) for a raw CPUID leaf
// dump.
package decode

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
	"cpuarbiter/internal/cpuid"
	"cpuarbiter/internal/metrics"
	"cpuarbiter/internal/report"
	"cpuarbiter/internal/util"
	"cpuarbiter/internal/x86cpu"
)

const cmdName = "decode"

var examples = []string{
	fmt.Sprintf("  Decode a host's raw CPUID dump into a guest definition:  $ %s %s --catalog catalog.yaml --input node.yaml --type guest", app.Name, cmdName),
}

var Cmd = &cobra.Command{
	Use:     cmdName + " --catalog FILE --input FILE",
	Short:   "Decode raw CPUID data into a CPU definition",
	Example: strings.Join(examples, "\n"),
	RunE:    runCmd,
	GroupID: "primary",
	Args:    cobra.NoArgs,
}

var (
	flagCatalog  string
	flagInput    string
	flagType     string
	flagPreferred string
	flagAllow    []string
	flagExpand   bool
	flagForbidFallback bool
)

const (
	flagInputName     = "input"
	flagTypeName      = "type"
	flagPreferredName = "preferred"
	flagExpandName    = "expand"
	flagNoFallbackName = "no-fallback"
)

func init() {
	Cmd.Flags().StringVar(&flagCatalog, clicommon.FlagCatalogName, "", "path to the catalog YAML file")
	Cmd.Flags().StringVar(&flagInput, flagInputName, "", "path to the raw CPUID leaf YAML file")
	Cmd.Flags().StringVar(&flagType, flagTypeName, "guest", "CPU definition type to produce: host or guest")
	Cmd.Flags().StringVar(&flagPreferred, flagPreferredName, "", "preferred model name, used even if excluded by --allow when fallback is permitted")
	Cmd.Flags().StringSliceVar(&flagAllow, clicommon.FlagAllowlistName, nil, "restrict candidates to this comma-separated set of model names")
	Cmd.Flags().BoolVar(&flagExpand, flagExpandName, false, "add residual leaves as extra required features")
	Cmd.Flags().BoolVar(&flagForbidFallback, flagNoFallbackName, false, "forbid falling back to the preferred model if excluded by --allow")
	_ = Cmd.MarkFlagRequired(clicommon.FlagCatalogName)
	_ = Cmd.MarkFlagRequired(flagInputName)
}

func runCmd(cmd *cobra.Command, _ []string) error {
	cat, err := clicommon.LoadCatalog(flagCatalog)
	if err != nil {
		return err
	}

	absInput, err := util.AbsPath(flagInput)
	if err != nil {
		return err
	}
	raw, err := os.ReadFile(absInput) // #nosec G304
	if err != nil {
		return err
	}
	data, err := cpuid.LoadYAML(raw)
	if err != nil {
		return err
	}

	cpuType := cpudef.TypeGuest
	if flagType == "host" {
		cpuType = cpudef.TypeHost
	}
	fallback := cpudef.FallbackAllow
	if flagForbidFallback {
		fallback = cpudef.FallbackForbid
	}
	var flags x86cpu.DecodeFlags
	if flagExpand {
		flags |= x86cpu.ExpandFeatures
	}

	result, err := x86cpu.Decode(cat, cpuType, fallback, data, clicommon.AllowlistSet(flagAllow), flagPreferred, flags)
	if err != nil {
		metrics.DecodeOutcomes.WithLabelValues("error").Inc()
		return err
	}
	metrics.DecodeOutcomes.WithLabelValues("ok").Inc()

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
