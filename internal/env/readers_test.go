package env

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/confgraph/internal/resource"
)

func readFrom(t *testing.T, location, content, format string) (Source, error) {
	t.Helper()
	loader := &resource.MapLoader{Files: map[string]string{location: content}}
	res, err := loader.Get(context.Background(), location)
	require.NoError(t, err)
	return ReadSource(location, res, format)
}

func TestReadProperties(t *testing.T) {
	s, err := readFrom(t, "app.properties", `
# comment
! also a comment
name = svc
server.port=8080
label: blue
`, "")
	require.NoError(t, err)

	v, ok := s.Lookup("name")
	require.True(t, ok)
	assert.Equal(t, "svc", v)

	v, _ = s.Lookup("server.port")
	assert.Equal(t, "8080", v)

	v, _ = s.Lookup("label")
	assert.Equal(t, "blue", v)
}

func TestReadPropertiesErrors(t *testing.T) {
	_, err := readFrom(t, "bad.properties", "no separator here\n", "")
	assert.ErrorContains(t, err, "no separator")

	_, err = readFrom(t, "bad2.properties", "= value\n", "")
	assert.ErrorContains(t, err, "empty key")
}

func TestReadYAML(t *testing.T) {
	s, err := readFrom(t, "app.yaml", `
server:
  port: 8080
  hosts:
    - a
    - b
name: svc
`, "")
	require.NoError(t, err)

	v, ok := s.Lookup("server.port")
	require.True(t, ok)
	assert.Equal(t, 8080, v)

	v, _ = s.Lookup("server.hosts[0]")
	assert.Equal(t, "a", v)

	v, _ = s.Lookup("name")
	assert.Equal(t, "svc", v)
}

func TestReadYAMLErrors(t *testing.T) {
	_, err := readFrom(t, "broken.yaml", "a: [unclosed\n", "")
	assert.ErrorContains(t, err, "failed to parse property source")
}

func TestReadJSONThroughYAMLReader(t *testing.T) {
	s, err := readFrom(t, "app.json", `{"server": {"port": 8080}}`, "")
	require.NoError(t, err)
	v, ok := s.Lookup("server.port")
	require.True(t, ok)
	assert.Equal(t, 8080, v)
}

func TestReadHCL(t *testing.T) {
	s, err := readFrom(t, "app.hcl", `
name  = "svc"
port  = 8080
ratio = 1.5
flags = { verbose = true }
hosts = ["a", "b"]
`, "")
	require.NoError(t, err)

	v, _ := s.Lookup("name")
	assert.Equal(t, "svc", v)

	v, _ = s.Lookup("port")
	assert.Equal(t, int64(8080), v)

	v, _ = s.Lookup("ratio")
	assert.Equal(t, 1.5, v)

	v, _ = s.Lookup("flags.verbose")
	assert.Equal(t, true, v)

	v, _ = s.Lookup("hosts[1]")
	assert.Equal(t, "b", v)
}

func TestReadHCLErrors(t *testing.T) {
	_, err := readFrom(t, "broken.hcl", "a = [", "")
	assert.ErrorContains(t, err, "failed to parse property source")
}

func TestExplicitFormatOverridesExtension(t *testing.T) {
	s, err := readFrom(t, "odd.txt", "k = v\n", "properties")
	require.NoError(t, err)
	v, ok := s.Lookup("k")
	require.True(t, ok)
	assert.Equal(t, "v", v)

	_, err = readFrom(t, "odd.txt", "k = v\n", "")
	assert.ErrorContains(t, err, "unsupported property source format")
}
