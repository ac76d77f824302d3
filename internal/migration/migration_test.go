package migration

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunnerStepsAreIdempotent(t *testing.T) {
	r := NewRunner()
	assert.Equal(t, "1.0.0", r.Version())

	steps := r.steps()
	assert.NotEmpty(t, steps)
	for _, step := range steps {
		assert.True(t, strings.Contains(step.statement, "IF NOT EXISTS"), step.name)
	}
	assert.Contains(t, steps[0].statement, "table_snapshots")
}
