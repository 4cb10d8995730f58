package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGet(t *testing.T) {
	type testCase struct {
		name        string
		set         string
		expected    string
		expectedErr string
	}
	testCases := []testCase{
		{name: "Unset", set: "", expected: "0.0.1-dev"},
		{name: "Plain", set: "1.2.3", expected: "1.2.3"},
		{name: "Prefixed dirty", set: "v1.2.3-dirty", expected: "1.2.3-dirty"},
		{name: "Invalid", set: "v7", expectedErr: "invalid version format: v7 (expected x.y.z)"},
	}

	old := Version
	defer func() { Version = old }()

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			Version = tc.set
			got, err := Get()
			if tc.expectedErr != "" {
				assert.EqualError(t, err, tc.expectedErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}
