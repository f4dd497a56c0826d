package duration

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	d, err := Resolve("30 mins")
	require.NoError(t, err)
	assert.Equal(t, 30*time.Minute, d)

	d, err = Resolve("1 week")
	require.NoError(t, err)
	assert.Equal(t, 7*24*time.Hour, d)
}

func TestResolveUnknown(t *testing.T) {
	_, err := Resolve("2 fortnights")
	assert.Error(t, err)

	_, err = Resolve("1 min")
	assert.Error(t, err)
}

func TestResolveCoversEveryCommandChoice(t *testing.T) {
	for _, choice := range []string{
		"5 mins", "15 mins", "30 mins", "1 hour",
		"1 day", "1 week", "1 month",
	} {
		d, err := Resolve(choice)
		require.NoError(t, err, choice)
		assert.Positive(t, d, choice)
	}
}
