// Package compare is a subcommand of the root command. It computes
// whether a guest CPU definition is identical to, a superset of, or
// incompatible with a named host model.
package compare

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"cpuarbiter/internal/app"
	"cpuarbiter/internal/clicommon"
	"cpuarbiter/internal/cpudef"
	"cpuarbiter/internal/metrics"
	"cpuarbiter/internal/x86cpu"
)

const cmdName = "compare"

var examples = []string{
	fmt.Sprintf("  Compare a guest definition against a host model:  $ %s %s --catalog catalog.yaml --host core2 --guest guest.yaml", app.Name, cmdName),
}

var Cmd = &cobra.Command{
	Use:     cmdName + " --catalog FILE --host MODEL --guest FILE",
	Short:   "Compare a guest CPU definition against a host model",
	Example: strings.Join(examples, "\n"),
	RunE:    runCmd,
	GroupID: "primary",
	Args:    cobra.NoArgs,
}

var (
	flagCatalog  string
	flagHost     string
	flagHostArch string
	flagGuest    string
)

const (
	flagHostName     = "host"
	flagHostArchName = "host-arch"
	flagGuestName    = "guest"
)

// hostArchByName mirrors internal/cpudef's own arch vocabulary for this
// one CLI-level flag; the host, unlike the guest, has no CPUDef file of
// its own to carry an arch field.
var hostArchByName = map[string]cpudef.Arch{
	"":       cpudef.ArchNone,
	"none":   cpudef.ArchNone,
	"i686":   cpudef.ArchI686,
	"x86_64": cpudef.ArchX86_64,
}

func init() {
	Cmd.Flags().StringVar(&flagCatalog, clicommon.FlagCatalogName, "", "path to the catalog YAML file")
	Cmd.Flags().StringVar(&flagHost, flagHostName, "", "name of the host model in the catalog")
	Cmd.Flags().StringVar(&flagHostArch, flagHostArchName, "", "host architecture (none, i686, x86_64) to check the guest's arch against")
	Cmd.Flags().StringVar(&flagGuest, flagGuestName, "", "path to the guest CPU definition YAML file")
	_ = Cmd.MarkFlagRequired(clicommon.FlagCatalogName)
	_ = Cmd.MarkFlagRequired(flagHostName)
	_ = Cmd.MarkFlagRequired(flagGuestName)
}

func runCmd(cmd *cobra.Command, _ []string) error {
	cat, err := clicommon.LoadCatalog(flagCatalog)
	if err != nil {
		return err
	}
	hostModel, ok := cat.FindModel(flagHost)
	if !ok {
		return fmt.Errorf("host model %q not found in catalog", flagHost)
	}
	guest, err := clicommon.LoadCPUDef(flagGuest)
	if err != nil {
		return err
	}

	hostArch, ok := hostArchByName[flagHostArch]
	if !ok {
		return fmt.Errorf("unknown host arch %q", flagHostArch)
	}

	result, guestModel, message, err := x86cpu.Compute(cat, hostModel, hostArch, guest)
	if err != nil {
		metrics.ComputeOutcomes.WithLabelValues("error").Inc()
		return err
	}
	metrics.ComputeOutcomes.WithLabelValues(result.String()).Inc()

	cmd.Printf("result: %s\n", result.String())
	if message != "" {
		cmd.Printf("message: %s\n", message)
	}
	if guestModel != nil {
		cmd.Printf("guest model: %s\n", guestModel.Name)
	}
	return nil
}
