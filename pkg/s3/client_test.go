package s3

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseURL(t *testing.T) {
	bucket, key, err := ParseURL("s3://menus/vr/catalog.yaml")
	require.NoError(t, err)
	assert.Equal(t, "menus", bucket)
	assert.Equal(t, "vr/catalog.yaml", key)

	for _, bad := range []string{"menus/catalog.yaml", "s3://menus", "s3:///catalog.yaml", "https://menus/x"} {
		_, _, err := ParseURL(bad)
		assert.Error(t, err, bad)
	}
}

func TestIsURL(t *testing.T) {
	assert.True(t, IsURL("s3://a/b"))
	assert.False(t, IsURL("./catalog.yaml"))
}
