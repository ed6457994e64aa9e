package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPushModeValid(t *testing.T) {
	for _, mode := range []PushMode{PushNone, PushEvery, PushBatch, PushEnd} {
		assert.True(t, mode.Valid(), "mode %s", mode)
	}
	assert.False(t, PushMode("each").Valid())
	assert.False(t, PushMode("").Valid())
}

func TestEstimatePushes(t *testing.T) {
	tests := []struct {
		mode  PushMode
		n     int
		batch int
		want  int
	}{
		{PushNone, 10, 5, 0},
		{PushEvery, 10, 5, 10},
		{PushBatch, 10, 5, 2},
		{PushBatch, 10, 4, 3},
		{PushBatch, 3, 5, 1},
		{PushEnd, 10, 5, 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, EstimatePushes(tt.mode, tt.n, tt.batch),
			"mode=%s n=%d batch=%d", tt.mode, tt.n, tt.batch)
	}
}

func TestDurationMarshalsAsString(t *testing.T) {
	p := Plan{NominalInterval: Duration(90 * time.Second)}
	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"nominal_interval":"1m30s"`)
}
