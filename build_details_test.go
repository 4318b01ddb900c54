package openapiglue

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersion(t *testing.T) {
	result := Version()

	assert.NotEmpty(t, result)
	assert.True(t,
		result == "dev" || strings.HasPrefix(result, "v"),
		"Version() should be 'dev' or start with 'v', got: %s", result)
}

func TestCommit(t *testing.T) {
	result := Commit()

	assert.NotEmpty(t, result)
	if result != "unknown" {
		assert.GreaterOrEqual(t, len(result), 7, "short hash expected, got: %s", result)
		for _, ch := range result {
			assert.True(t, (ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'f'),
				"Commit() should contain only hex characters, got: %s", result)
		}
	}
}

func TestBuildTime(t *testing.T) {
	result := BuildTime()

	assert.NotEmpty(t, result)
	if result != "unknown" {
		assert.Contains(t, result, "T", "BuildTime() should be RFC3339, got: %s", result)
	}
}

func TestUserAgent(t *testing.T) {
	assert.Equal(t, "openapi-glue/"+Version(), UserAgent())
}
