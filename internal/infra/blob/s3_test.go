package blob

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestObjectKey(t *testing.T) {
	at := time.Date(2026, 3, 9, 23, 0, 0, 0, time.FixedZone("X", -2*3600))
	key, sum := ObjectKey("exports/abc/", at, []byte(`{"a":1}`))

	assert.Len(t, sum, 64)
	assert.True(t, strings.HasPrefix(key, "exports/abc/2026/03/10/"))
	assert.True(t, strings.HasSuffix(key, sum+".json"))

	again, _ := ObjectKey("exports/abc", at, []byte(`{"a":1}`))
	assert.Equal(t, key, again)
}

func TestNormalizeEndpoint(t *testing.T) {
	assert.Equal(t, "", normalizeEndpoint("  "))
	assert.Equal(t, "https://minio:9000", normalizeEndpoint("minio:9000"))
	assert.Equal(t, "http://localhost:9000", normalizeEndpoint("http://localhost:9000"))
}
