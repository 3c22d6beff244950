package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDailySpec(t *testing.T) {
	spec, err := buildDailySpec("08:00")
	require.NoError(t, err)
	assert.Equal(t, "0 0 8 * * *", spec)

	spec, err = buildDailySpec("21:30")
	require.NoError(t, err)
	assert.Equal(t, "0 30 21 * * *", spec)
}

func TestBuildDailySpecRejectsBadInput(t *testing.T) {
	for _, value := range []string{"", "8", "25:00", "12:61", "aa:bb", "12:00:00"} {
		_, err := buildDailySpec(value)
		assert.Error(t, err, "value %q", value)
	}
}
