package price

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	var tests = []struct {
		name     string
		given    string
		expected []Record
	}{
		{
			name:     "single record",
			given:    "date;hour;price\n20240101;1;123,45\n",
			expected: []Record{{Date: "20240101", Hour: 1, Price: 123.45}},
		},
		{
			name:  "negative price and crlf",
			given: "Data;Godzina;RCE\r\n20240414;13;-12,50\r\n20240414;14;0,00\r\n",
			expected: []Record{
				{Date: "20240414", Hour: 13, Price: -12.5},
				{Date: "20240414", Hour: 14, Price: 0},
			},
		},
		{
			name:  "malformed lines are skipped",
			given: "date;hour;price\n20240101;x;1,0\n\n20240101;2\n20240101;3;abc\n20240101;4;4,25\n;5;1,0\n",
			expected: []Record{
				{Date: "20240101", Hour: 4, Price: 4.25},
			},
		},
		{
			name:     "header only",
			given:    "date;hour;price\n",
			expected: []Record{},
		},
		{
			name:     "empty",
			given:    "",
			expected: []Record{},
		},
		{
			name:  "stray quote only drops its own line",
			given: "date;hour;price\n20240101;1;\"1,0\n20240101;2;2,0\n20240101;3;3,0\n",
			expected: []Record{
				{Date: "20240101", Hour: 2, Price: 2},
				{Date: "20240101", Hour: 3, Price: 3},
			},
		},
		{
			name:  "quoted header",
			given: "\"date;hour;price\n20240101;1;1,0\n20240101;2;2,0\n",
			expected: []Record{
				{Date: "20240101", Hour: 1, Price: 1},
				{Date: "20240101", Hour: 2, Price: 2},
			},
		},
		{
			name:     "leading blank lines before header",
			given:    "\n\r\ndate;hour;price\n20240101;5;5,5\n",
			expected: []Record{{Date: "20240101", Hour: 5, Price: 5.5}},
		},
		{
			name:     "extra columns are ignored",
			given:    "date;hour;price;unit\n20240101;24;301,7;PLN/MWh\n",
			expected: []Record{{Date: "20240101", Hour: 24, Price: 301.7}},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Parse(tt.given))
		})
	}
}

func TestAggregate(t *testing.T) {
	stats, err := Aggregate([]Record{{Price: 10}, {Price: -5}, {Price: 20}})
	require.NoError(t, err)
	assert.InDelta(t, 8.3333, stats.Average, 0.0001)
	assert.Equal(t, -5.0, stats.Min)
	assert.Equal(t, 20.0, stats.Max)
	assert.LessOrEqual(t, stats.Min, stats.Average)
	assert.LessOrEqual(t, stats.Average, stats.Max)
}

func TestAggregateEmpty(t *testing.T) {
	_, err := Aggregate(nil)
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestSelectHour(t *testing.T) {
	records := []Record{
		{Date: "20240101", Hour: 22, Price: 1},
		{Date: "20240101", Hour: 23, Price: 2},
		{Date: "20240101", Hour: 23, Price: 3},
		{Date: "20240101", Hour: 24, Price: 4},
	}

	r, ok := SelectHour(records, 22, DefaultHourLabelOffset)
	assert.True(t, ok)
	assert.Equal(t, 23, r.Hour)
	assert.Equal(t, 2.0, r.Price)

	r, ok = SelectHour(records, 22, 2)
	assert.True(t, ok)
	assert.Equal(t, 24, r.Hour)

	_, ok = SelectHour(records, 5, DefaultHourLabelOffset)
	assert.False(t, ok)
}
