// Package encode is a subcommand of the root command. It translates a
// catalog-relative CPU definition back into one or more raw CPUID
// leaf sets.
package encode

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"fmt"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/spf13/cobra"

	"cpuarbiter/internal/app"
	"cpuarbiter/internal/clicommon"
	"cpuarbiter/internal/cpuid"
	"cpuarbiter/internal/x86cpu"
)

const cmdName = "encode"

var examples = []string{
	fmt.Sprintf("  Encode a guest definition's required and forced leaves:  $ %s %s --catalog catalog.yaml --guest guest.yaml --output required,forced", app.Name, cmdName),
}

var Cmd = &cobra.Command{
	Use:     cmdName + " --catalog FILE --guest FILE",
	Short:   "Encode a CPU definition into raw CPUID leaf sets",
	Example: strings.Join(examples, "\n"),
	RunE:    runCmd,
	GroupID: "primary",
	Args:    cobra.NoArgs,
}

var (
	flagCatalog string
	flagGuest   string
	flagOutputs []string
)

const (
	flagGuestName   = "guest"
	flagOutputsName = "output"
)

var outputByName = map[string]x86cpu.EncodeOutput{
	"forced":    x86cpu.OutputForced,
	"required":  x86cpu.OutputRequired,
	"optional":  x86cpu.OutputOptional,
	"disabled":  x86cpu.OutputDisabled,
	"forbidden": x86cpu.OutputForbidden,
	"vendor":    x86cpu.OutputVendor,
}

func init() {
	Cmd.Flags().StringVar(&flagCatalog, clicommon.FlagCatalogName, "", "path to the catalog YAML file")
	Cmd.Flags().StringVar(&flagGuest, flagGuestName, "", "path to the CPU definition YAML file")
	Cmd.Flags().StringSliceVar(&flagOutputs, flagOutputsName, []string{"required"}, "comma-separated outputs: forced,required,optional,disabled,forbidden,vendor")
	_ = Cmd.MarkFlagRequired(clicommon.FlagCatalogName)
	_ = Cmd.MarkFlagRequired(flagGuestName)
}

func runCmd(cmd *cobra.Command, _ []string) error {
	cat, err := clicommon.LoadCatalog(flagCatalog)
	if err != nil {
		return err
	}
	cpu, err := clicommon.LoadCPUDef(flagGuest)
	if err != nil {
		return err
	}

	requested := mapset.NewSet[x86cpu.EncodeOutput]()
	for _, name := range flagOutputs {
		out, ok := outputByName[name]
		if !ok {
			return fmt.Errorf("unknown output %q", name)
		}
		requested.Add(out)
	}

	results, err := x86cpu.Encode(cat, cpu, requested)
	if err != nil {
		return err
	}

	for name, out := range outputByName {
		data, ok := results[out]
		if !ok {
			continue
		}
		rendered, err := cpuid.DumpYAML(data)
		if err != nil {
			return err
		}
		cmd.Printf("# %s\n%s\n", name, rendered)
	}
	return nil
}
