package storage

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

type codec interface {
	marshal(value any) ([]byte, error)
	unmarshal(data []byte, value any) error
}

type tomlCodec struct{}

func (tomlCodec) marshal(value any) ([]byte, error) {
	var buffer bytes.Buffer
	if err := toml.NewEncoder(&buffer).Encode(value); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

func (tomlCodec) unmarshal(data []byte, value any) error {
	_, err := toml.Decode(string(data), value)
	return err
}

type yamlCodec struct{}

func (yamlCodec) marshal(value any) ([]byte, error) {
	return yaml.Marshal(value)
}

func (yamlCodec) unmarshal(data []byte, value any) error {
	return yaml.Unmarshal(data, value)
}

// codecFor picks YAML for .yaml and .yml files and TOML otherwise.
func codecFor(path string) codec {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yamlCodec{}
	default:
		return tomlCodec{}
	}
}
