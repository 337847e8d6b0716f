// Package report is a subcommand of the root command. It renders the
// catalog as a human-readable workbook.
package report

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"cpuarbiter/internal/app"
	"cpuarbiter/internal/clicommon"
	"cpuarbiter/internal/report"
)

const cmdName = "report"

var examples = []string{
	fmt.Sprintf("  Render the catalog to an xlsx workbook:  $ %s %s catalog --catalog catalog.yaml --output catalog.xlsx", app.Name, cmdName),
}

// Cmd is the report parent command; "catalog" is its only subcommand
// today, left as a group so future report kinds (e.g. compare
// summaries) have a natural home.
var Cmd = &cobra.Command{
	Use:     cmdName,
	Short:   "Render catalog data for humans",
	Example: strings.Join(examples, "\n"),
	GroupID: "primary",
}

var catalogCmd = &cobra.Command{
	Use:   "catalog --catalog FILE --output FILE",
	Short: "Render the catalog as an xlsx workbook",
	RunE:  runCatalogCmd,
	Args:  cobra.NoArgs,
}

var (
	flagCatalog string
	flagOutput  string
)

const flagOutputName = "output"

func init() {
	catalogCmd.Flags().StringVar(&flagCatalog, clicommon.FlagCatalogName, "", "path to the catalog YAML file")
	catalogCmd.Flags().StringVar(&flagOutput, flagOutputName, "catalog.xlsx", "path to write the rendered xlsx workbook")
	_ = catalogCmd.MarkFlagRequired(clicommon.FlagCatalogName)
	Cmd.AddCommand(catalogCmd)
}

func runCatalogCmd(cmd *cobra.Command, _ []string) error {
	cat, err := clicommon.LoadCatalog(flagCatalog)
	if err != nil {
		return err
	}
	if err := report.WriteCatalogWorkbook(cat, flagOutput); err != nil {
		return err
	}
	cmd.Printf("wrote %s (%s vendors, %s features, %s models)\n",
		flagOutput,
		report.FormatCount(len(cat.Vendors())),
		report.FormatCount(len(cat.Features())),
		report.FormatCount(len(cat.ModelsByLoadOrder())),
	)
	return nil
}
