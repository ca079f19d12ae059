package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/confgraph/internal/model"
)

// RecordNames lists the resolved record names of a harness run in output
// order.
func RecordNames(result *HarnessResult) []string {
	if result.Result == nil {
		return nil
	}
	out := make([]string, 0, len(result.Result.Classes))
	for _, c := range result.Result.Classes {
		out = append(out, c.Name())
	}
	return out
}

// RecordNamed returns the resolved record for a unit, failing the test
// when there is none.
func RecordNamed(t *testing.T, result *HarnessResult, unitName string) *model.ConfigClass {
	t.Helper()
	require.NotNil(t, result.Result)
	for _, c := range result.Result.Classes {
		if c.Name() == unitName {
			return c
		}
	}
	t.Fatalf("no configuration record for unit %q, have %v", unitName, RecordNames(result))
	return nil
}

// MethodNames lists a record's bean method names in collected order.
func MethodNames(c *model.ConfigClass) []string {
	out := make([]string, 0, len(c.Methods))
	for _, m := range c.Methods {
		out = append(out, m.Name)
	}
	return out
}

// ImporterNames lists the names of the units whose imports produced a
// record, in first-seen order.
func ImporterNames(c *model.ConfigClass) []string {
	imported := c.ImportedBy()
	out := make([]string, 0, len(imported))
	for _, imp := range imported {
		out = append(out, imp.Name())
	}
	return out
}

// AssertResolved checks that a unit produced a configuration record.
func AssertResolved(t *testing.T, result *HarnessResult, unitName string) {
	t.Helper()
	require.Contains(t, RecordNames(result), unitName,
		"expected a configuration record for unit '%s'", unitName)
}

// AssertNotResolved checks that a unit produced no configuration record.
func AssertNotResolved(t *testing.T, result *HarnessResult, unitName string) {
	t.Helper()
	require.NotContains(t, RecordNames(result), unitName,
		"expected no configuration record for unit '%s'", unitName)
}
