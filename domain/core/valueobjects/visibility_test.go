package valueobjects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVisibility(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Visibility
		wantErr bool
	}{
		{name: "inner", input: "inner", want: VisibilityInner},
		{name: "outer", input: "outer", want: VisibilityOuter},
		{name: "empty", input: "", wantErr: true},
		{name: "unknown", input: "public", wantErr: true},
		{name: "case sensitive", input: "Inner", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseVisibility(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseVisibilityFilter_EmptySelectsBoth(t *testing.T) {
	filter, err := ParseVisibilityFilter("")

	require.NoError(t, err)
	assert.Equal(t, FilterBoth, filter)
}

func TestVisibilityFilter_Matches(t *testing.T) {
	tests := []struct {
		name   string
		filter VisibilityFilter
		value  Visibility
		want   bool
	}{
		{name: "zero value matches inner", filter: VisibilityFilter(""), value: VisibilityInner, want: true},
		{name: "zero value matches outer", filter: VisibilityFilter(""), value: VisibilityOuter, want: true},
		{name: "both matches inner", filter: FilterBoth, value: VisibilityInner, want: true},
		{name: "both matches outer", filter: FilterBoth, value: VisibilityOuter, want: true},
		{name: "inner matches inner", filter: FilterInner, value: VisibilityInner, want: true},
		{name: "inner rejects outer", filter: FilterInner, value: VisibilityOuter, want: false},
		{name: "outer rejects inner", filter: FilterOuter, value: VisibilityInner, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Matches(tt.value))
		})
	}
}

func TestCircleDistance_Closer(t *testing.T) {
	assert.True(t, DistanceSelf.Closer(DistanceInner))
	assert.True(t, DistanceInner.Closer(DistanceOuter))
	assert.True(t, DistanceOuter.Closer(DistanceNone))
	assert.False(t, DistanceNone.Closer(DistanceInner))
}
