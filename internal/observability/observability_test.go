package observability

import (
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRecordActivity(t *testing.T) {
	before := testutil.ToFloat64(activitiesCounter.WithLabelValues("created"))
	RecordActivity("created")
	RecordActivity("created")
	assert.Equal(t, before+2, testutil.ToFloat64(activitiesCounter.WithLabelValues("created")))
}

func TestObserveRequest(t *testing.T) {
	before := testutil.ToFloat64(httpRequests.WithLabelValues(http.MethodPost, "201"))
	ObserveRequest(http.MethodPost, http.StatusCreated, 15*time.Millisecond)
	assert.Equal(t, before+1, testutil.ToFloat64(httpRequests.WithLabelValues(http.MethodPost, "201")))
}

func TestNewLogger(t *testing.T) {
	log, err := NewLogger("debug")
	require.NoError(t, err)
	assert.True(t, log.Core().Enabled(zap.DebugLevel))

	log, err = NewLogger("warn")
	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(zap.InfoLevel))

	_, err = NewLogger("loud")
	assert.Error(t, err)
}
