package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanVersion(t *testing.T) {
	cases := []struct {
		name     string
		version  string
		expected string
	}{
		{
			name:     "empty version",
			version:  "",
			expected: "",
		},
		{
			name:     "release tag untouched",
			version:  "v1.2.3",
			expected: "v1.2.3",
		},
		{
			name:     "prerelease tag untouched",
			version:  "v1.2.3-alpha.1",
			expected: "v1.2.3-alpha.1",
		},
		{
			name:     "build metadata stripped",
			version:  "v1.2.3+dirty",
			expected: "v1.2.3",
		},
		{
			name:     "pseudo version collapsed",
			version:  "v0.1.2-0.20220101123456-abcdef123456",
			expected: "v0.1.2",
		},
		{
			name:     "dev version untouched",
			version:  "dev",
			expected: "dev",
		},
	}

	for _, test := range cases {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, cleanVersion(test.version))
		})
	}
}

func TestGenerateBannerTruncatesCommit(t *testing.T) {
	banner := GenerateBanner("v1.0.0", "abcdef1234567890")

	assert.Contains(t, banner, "abcdef")
	assert.NotContains(t, banner, "abcdef1")
}

func TestSetupOutcomeString(t *testing.T) {
	assert.Equal(t, "success", OutcomeSuccess.String())
	assert.Equal(t, "user_cancelled", OutcomeUserCancelled.String())
	assert.Equal(t, "dry_run", OutcomeDryRun.String())
	assert.Equal(t, "error", OutcomeError.String())
}
