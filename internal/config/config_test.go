package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"schema-generator/internal/gen"
)

func lookupFrom(vars map[string]string) Lookup {
	return func(key string) (string, bool) {
		v, ok := vars[key]

		return v, ok
	}
}

func TestDefault(t *testing.T) {
	c := Default()

	assert.Equal(t, "api", c.Package)
	assert.Equal(t, FormatGo, c.Format)
	assert.Equal(t, "info", c.LogLevel)
	assert.Empty(t, c.Scalars)
	require.NoError(t, c.Validate())
}

func TestParse(t *testing.T) {
	yaml := `
package: clubhouse
format: yaml
log_level: debug
scalars:
  UUID:
    type: string
  Color:
    type: color.RGBA
    import: image/color
`
	c, err := Parse([]byte(yaml))
	require.NoError(t, err)

	assert.Equal(t, "clubhouse", c.Package)
	assert.Equal(t, FormatYAML, c.Format)
	assert.Equal(t, "debug", c.LogLevel)
	assert.Equal(t, map[string]gen.ScalarType{
		"UUID":  {Type: "string"},
		"Color": {Type: "color.RGBA", Import: "image/color"},
	}, c.Scalars)
	require.NoError(t, c.Validate())
}

func TestParse_Empty(t *testing.T) {
	c, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
}

func TestParse_UnknownKey(t *testing.T) {
	_, err := Parse([]byte("packag: api\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "field packag not found")
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema-generator.yaml")
	require.NoError(t, os.WriteFile(path, []byte("package: models\n"), 0o644))

	c, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "models", c.Package)
	assert.Equal(t, FormatGo, c.Format)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestApplyEnv(t *testing.T) {
	c := Default()
	c.ApplyEnv(lookupFrom(map[string]string{
		EnvPackage:  "fromenv",
		EnvFormat:   "",
		EnvLogLevel: "warn",
	}))

	assert.Equal(t, "fromenv", c.Package)
	assert.Equal(t, FormatGo, c.Format, "empty values are ignored")
	assert.Equal(t, "warn", c.LogLevel)
}

func TestEnv(t *testing.T) {
	t.Setenv(EnvPackage, "process")

	lookup := Env(map[string]string{
		EnvPackage: "dotenv",
		EnvFormat:  "yaml",
	})

	v, ok := lookup(EnvPackage)
	assert.True(t, ok)
	assert.Equal(t, "process", v, "process environment wins over .env")

	v, ok = lookup(EnvFormat)
	assert.True(t, ok)
	assert.Equal(t, "yaml", v)

	_, ok = lookup("SCHEMA_GENERATOR_DOES_NOT_EXIST")
	assert.False(t, ok)
}

func TestReadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DotEnvFile)
	require.NoError(t, os.WriteFile(path, []byte("SCHEMA_GENERATOR_PACKAGE=fromfile\n# comment\nSCHEMA_GENERATOR_FORMAT=\"yaml\"\n"), 0o644))

	vars, err := ReadDotEnv(path)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		EnvPackage: "fromfile",
		EnvFormat:  "yaml",
	}, vars)

	vars, err = ReadDotEnv(filepath.Join(dir, "missing.env"))
	require.NoError(t, err)
	assert.Empty(t, vars)
}

func TestValidate(t *testing.T) {
	c := &Config{
		Package:  "my-api",
		Format:   "json",
		LogLevel: "trace",
		Scalars:  map[string]gen.ScalarType{"B": {}, "A": {Import: "time"}},
	}

	err := c.Validate()
	require.Error(t, err)

	errs := multierr.Errors(err)
	require.Len(t, errs, 5)
	assert.Contains(t, errs[0].Error(), `package: "my-api"`)
	assert.Contains(t, errs[1].Error(), `format: "json"`)
	assert.Contains(t, errs[2].Error(), `log_level: "trace"`)
	assert.Equal(t, "scalars.A: missing type", errs[3].Error())
	assert.Equal(t, "scalars.B: missing type", errs[4].Error())
}

func TestGeneratorConfig(t *testing.T) {
	c := Default()
	c.Package = "models"
	c.Scalars = map[string]gen.ScalarType{
		"UUID":  {Type: "string"},
		"Color": {Type: "string"},
	}

	gc := c.GeneratorConfig()
	assert.Equal(t, "models", gc.PackageName)
	assert.Equal(t, gen.ScalarType{Type: "string"}, gc.Scalars["UUID"])
	assert.Equal(t, gen.ScalarType{Type: "string"}, gc.Scalars["Color"])
	assert.Equal(t, gen.DefaultScalars()["Date"], gc.Scalars["Date"])

	// The built-in table is not modified.
	assert.Equal(t, "uuid.UUID", gen.DefaultScalars()["UUID"].Type)
}
