package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIgnoresNonChoreText(t *testing.T) {
	assert.Nil(t, Parse("hello there"))
	assert.Nil(t, Parse("/start"))
	assert.Nil(t, Parse("/chore"))
	assert.Nil(t, Parse("/chore    "))
}

func TestParseSimpleChore(t *testing.T) {
	draft := Parse("/chore wash dishes")
	require.NotNil(t, draft)
	assert.Equal(t, "wash dishes", draft.Title)
	assert.Empty(t, draft.Freq)
	assert.Equal(t, 1, draft.Interval)
}

func TestParseFrequencyWords(t *testing.T) {
	cases := []struct {
		text string
		freq string
	}{
		{"/chore vacuum daily", "daily"},
		{"/chore vacuum WEEKLY", "weekly"},
		{"/chore pay rent monthly", "monthly"},
	}
	for _, tc := range cases {
		draft := Parse(tc.text)
		require.NotNil(t, draft, "text %q", tc.text)
		assert.Equal(t, tc.freq, draft.Freq, "text %q", tc.text)
	}
}

func TestParseEveryNUnits(t *testing.T) {
	draft := Parse("/chore water plants every 3 days")
	require.NotNil(t, draft)
	assert.Equal(t, "daily", draft.Freq)
	assert.Equal(t, 3, draft.Interval)
	assert.Equal(t, "water plants", draft.Title)

	draft = Parse("/chore deep clean every 2 weeks")
	require.NotNil(t, draft)
	assert.Equal(t, "weekly", draft.Freq)
	assert.Equal(t, 2, draft.Interval)

	draft = Parse("/chore descale kettle every 6 months")
	require.NotNil(t, draft)
	assert.Equal(t, "monthly", draft.Freq)
	assert.Equal(t, 6, draft.Interval)
}

func TestParseWeekdaysAndAssignee(t *testing.T) {
	draft := Parse("/chore take out trash weekly mon,thu assignee=Alex_Smith")
	require.NotNil(t, draft)
	assert.Equal(t, "weekly", draft.Freq)
	assert.Equal(t, "mon,thu", draft.ByWeekday)
	assert.Equal(t, "Alex Smith", draft.Assignee)
	assert.Equal(t, "take out trash", draft.Title)
}

func TestParseMonthday(t *testing.T) {
	draft := Parse("/chore pay rent monthly day=1")
	require.NotNil(t, draft)
	assert.Equal(t, "monthly", draft.Freq)
	assert.Equal(t, "1", draft.ByMonthday)
	assert.Equal(t, "pay rent", draft.Title)
}

func TestParseTitleFallsBackToBody(t *testing.T) {
	// Everything is stripped as rule syntax, so the raw body survives.
	draft := Parse("/chore weekly")
	require.NotNil(t, draft)
	assert.Equal(t, "weekly", draft.Title)
	assert.Equal(t, "weekly", draft.Freq)
}

func TestParseBodyWithoutPrefix(t *testing.T) {
	draft := ParseBody("mow the lawn every 2 weeks sat")
	require.NotNil(t, draft)
	assert.Equal(t, "weekly", draft.Freq)
	assert.Equal(t, 2, draft.Interval)
	assert.Equal(t, "sat", draft.ByWeekday)
	assert.Equal(t, "mow the lawn", draft.Title)
}
