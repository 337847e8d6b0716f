// Package hasfeature is a subcommand of the root command. It answers
// whether a raw CPUID leaf dump satisfies a single named catalog
// feature, or a boolean expression over several of them.
package hasfeature

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/casbin/govaluate"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"cpuarbiter/internal/app"
	"cpuarbiter/internal/catalog"
	"cpuarbiter/internal/clicommon"
	"cpuarbiter/internal/cpuid"
	"cpuarbiter/internal/util"
	"cpuarbiter/internal/x86cpu"
)

const cmdName = "hasfeature"

var examples = []string{
	fmt.Sprintf("  Check a host's raw CPUID dump for a feature:    $ %s %s --catalog catalog.yaml --input node.yaml --feature avx2", app.Name, cmdName),
	fmt.Sprintf("  Check a boolean combination of features:        $ %s %s --catalog catalog.yaml --input node.yaml --expr 'avx2 && !sse2'", app.Name, cmdName),
}

var Cmd = &cobra.Command{
	Use:     cmdName + " --catalog FILE --input FILE (--feature NAME | --expr EXPR)",
	Short:   "Report whether a CPUID leaf dump satisfies a named feature or expression",
	Example: strings.Join(examples, "\n"),
	RunE:    runCmd,
	GroupID: "primary",
	Args:    cobra.NoArgs,
}

var (
	flagCatalog string
	flagInput   string
	flagFeature string
	flagExpr    string
)

const (
	flagInputName   = "input"
	flagFeatureName = "feature"
	flagExprName    = "expr"
)

func init() {
	Cmd.Flags().StringVar(&flagCatalog, clicommon.FlagCatalogName, "", "path to the catalog YAML file")
	Cmd.Flags().StringVar(&flagInput, flagInputName, "", "path to the raw CPUID leaf YAML file")
	Cmd.Flags().StringVar(&flagFeature, flagFeatureName, "", "name of a single catalog feature to test")
	Cmd.Flags().StringVar(&flagExpr, flagExprName, "", "boolean expression over feature names, e.g. \"avx2 && !sse2\"")
	_ = Cmd.MarkFlagRequired(clicommon.FlagCatalogName)
	_ = Cmd.MarkFlagRequired(flagInputName)
}

func runCmd(cmd *cobra.Command, _ []string) error {
	if (flagFeature == "") == (flagExpr == "") {
		return errors.New("exactly one of --feature or --expr must be given")
	}

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

	var result bool
	if flagFeature != "" {
		result, err = x86cpu.HasFeature(cat, data, flagFeature)
		if err != nil {
			return err
		}
	} else {
		result, err = evaluate(cat, data, flagExpr)
		if err != nil {
			return err
		}
	}

	cmd.Println(result)
	return nil
}

var identifierPattern = regexp.MustCompile(`[A-Za-z_][A-Za-z0-9_]*`)

// evaluate resolves every identifier in expr against HasFeature and
// feeds the resulting booleans through a govaluate expression, giving
// the CLI a selection-filter language over catalog features.
func evaluate(cat *catalog.Catalog, data *cpuid.Data, expr string) (bool, error) {
	compiled, err := govaluate.NewEvaluableExpression(expr)
	if err != nil {
		return false, errors.Wrap(err, "parsing expression")
	}

	params := map[string]any{}
	for _, name := range identifierPattern.FindAllString(expr, -1) {
		if _, ok := params[name]; ok {
			continue
		}
		has, err := x86cpu.HasFeature(cat, data, name)
		if err != nil {
			return false, err
		}
		params[name] = has
	}

	result, err := compiled.Evaluate(params)
	if err != nil {
		return false, errors.Wrap(err, "evaluating expression")
	}
	asBool, ok := result.(bool)
	if !ok {
		return false, errors.Errorf("expression did not evaluate to a boolean, got %T", result)
	}
	return asBool, nil
}
