// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordCatalogSize(t *testing.T) {
	RecordCatalogSize(2, 5, 3)

	assert.Equal(t, float64(2), testutil.ToFloat64(CatalogSize.WithLabelValues("vendors")))
	assert.Equal(t, float64(5), testutil.ToFloat64(CatalogSize.WithLabelValues("features")))
	assert.Equal(t, float64(3), testutil.ToFloat64(CatalogSize.WithLabelValues("models")))
}

func TestComputeOutcomesIncrement(t *testing.T) {
	before := testutil.ToFloat64(ComputeOutcomes.WithLabelValues("identical"))
	ComputeOutcomes.WithLabelValues("identical").Inc()
	after := testutil.ToFloat64(ComputeOutcomes.WithLabelValues("identical"))
	assert.Equal(t, before+1, after)
}
