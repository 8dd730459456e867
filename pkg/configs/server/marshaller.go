package server

import (
	"os"

	"gopkg.in/yaml.v3"
)

type ServerConfig struct {
	// port the API server listens on
	ServerPort string `yaml:"port"`

	// postgres connection URI of the metadata store
	DBURI string `yaml:"dburi"`

	// directory holding versioned schema .sql files.
	// empty disables schema management.
	SchemaRepository string `yaml:"schemaRepository"`
}

func LoadServerConfig(filepath string) (*ServerConfig, error) {
	content, err := os.ReadFile(filepath)
	if err != nil {
		return nil, err
	}
	return Unmarshal(content)
}

func Unmarshal(conf []byte) (*ServerConfig, error) {
	var out ServerConfig
	err := yaml.Unmarshal(conf, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
