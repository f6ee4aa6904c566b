package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordCategory_IncrementsCounterForLabels(t *testing.T) {
	before := testutil.ToFloat64(CategoriesProcessed.WithLabelValues("PBP", "Complete"))
	RecordCategory("PBP", "Complete", 0.01)
	after := testutil.ToFloat64(CategoriesProcessed.WithLabelValues("PBP", "Complete"))

	assert.Equal(t, before+1, after)
}

func TestRecordRun_ObservesDurationWithoutPanic(t *testing.T) {
	assert.NotPanics(t, func() { RecordRun("Complete", 1.5) })
}
