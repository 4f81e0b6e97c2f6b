package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/syssam/tablegen/compiler/gen"
)

// Format is a configuration file syntax.
type Format string

// Supported formats.
const (
	YAML Format = "yaml"
	TOML Format = "toml"
)

// EnvFile is the name of the dotenv file read next to a configuration file.
const EnvFile = ".env"

// FormatOf returns the format of a file by its extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML, nil
	case ".toml":
		return TOML, nil
	default:
		return "", gen.NewConfigError("path", path, "unsupported configuration format")
	}
}

// Decode reads a File in the given format. Unknown keys are rejected.
func Decode(r io.Reader, format Format) (*File, error) {
	var f File
	switch format {
	case YAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	case TOML:
		md, err := toml.NewDecoder(r).Decode(&f)
		if err != nil {
			return nil, fmt.Errorf("decode toml: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("decode toml: unknown key %q", undecoded[0].String())
		}
	default:
		return nil, gen.NewConfigError("format", format, "unsupported configuration format")
	}
	return &f, nil
}

// Contexts converts the file into resolved contexts keyed by id. getenv
// expands ${VAR} references in connection DSNs; nil means os.Getenv.
// Every conversion problem is reported in one *gen.ConfigurationError, and
// extends chains are resolved before returning.
func (f *File) Contexts(getenv func(string) string) (map[string]*gen.Context, error) {
	if getenv == nil {
		getenv = os.Getenv
	}
	c := &converter{getenv: getenv}
	contexts := c.contexts(f)
	if len(c.problems) > 0 {
		return nil, &gen.ConfigurationError{Problems: c.problems}
	}
	if err := gen.ResolveExtends(contexts); err != nil {
		return nil, err
	}
	return contexts, nil
}

// Load reads the configuration file at path and returns its resolved
// contexts. Variables from a .env file in the same directory take
// precedence over the process environment during expansion.
func Load(path string) (map[string]*gen.Context, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	f, err := Decode(bytes.NewReader(data), format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	env, err := readEnv(filepath.Join(filepath.Dir(path), EnvFile))
	if err != nil {
		return nil, err
	}
	return f.Contexts(lookupEnv(env))
}

// readEnv reads a dotenv file. A missing file yields an empty map.
func readEnv(path string) (map[string]string, error) {
	env, err := godotenv.Read(path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return env, nil
}

func lookupEnv(env map[string]string) func(string) string {
	return func(key string) string {
		if v, ok := env[key]; ok {
			return v
		}
		return os.Getenv(key)
	}
}

func expand(s string, getenv func(string) string) string {
	if s == "" {
		return s
	}
	return os.Expand(s, getenv)
}
