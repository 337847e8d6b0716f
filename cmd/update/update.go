// Package update is a subcommand of the root command. It applies a
// host model's ancestry to a guest CPU definition in place, per the
// guest's selected mode.
package update

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"cpuarbiter/internal/app"
	"cpuarbiter/internal/clicommon"
	"cpuarbiter/internal/x86cpu"
)

const cmdName = "update"

var examples = []string{
	fmt.Sprintf("  Update a guest definition against a host model:  $ %s %s --catalog catalog.yaml --host core2 --guest guest.yaml", app.Name, cmdName),
}

var Cmd = &cobra.Command{
	Use:     cmdName + " --catalog FILE --host MODEL --guest FILE",
	Short:   "Update a guest CPU definition in place against a host model",
	Example: strings.Join(examples, "\n"),
	RunE:    runCmd,
	GroupID: "primary",
	Args:    cobra.NoArgs,
}

var (
	flagCatalog string
	flagHost    string
	flagGuest   string
)

const (
	flagHostName  = "host"
	flagGuestName = "guest"
)

func init() {
	Cmd.Flags().StringVar(&flagCatalog, clicommon.FlagCatalogName, "", "path to the catalog YAML file")
	Cmd.Flags().StringVar(&flagHost, flagHostName, "", "name of the host model in the catalog")
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

	if err := x86cpu.Update(cat, hostModel, guest); err != nil {
		return err
	}

	cmd.Printf("model: %s\n", guest.Model)
	if guest.Vendor != "" {
		cmd.Printf("vendor: %s\n", guest.Vendor)
	}
	for _, fp := range guest.Features {
		cmd.Printf("  %s: %s\n", fp.Name, fp.Policy.String())
	}
	return nil
}
