package server_test

import (
	"testing"

	kcs "github.com/khipulab/khipu/pkg/configs/server"
)

func TestLoadServerConfig(t *testing.T) {

	t.Run("it can be created from a config file", func(t *testing.T) {
		result, err := kcs.LoadServerConfig("./testdata/config.yaml")

		if err != nil {
			t.Errorf("failed to parse config.: %v", err)
		}
		expectedURI := "postgres://khipu-test-pgdb-svc:32555/khipu"
		if result.DBURI != expectedURI {
			t.Errorf("unmatch dburi:%s, expected:%s", result.DBURI, expectedURI)
		}
		expectedServerPort := "8080"
		if result.ServerPort != expectedServerPort {
			t.Errorf("unmatch serverport:%s, expected:%s", result.ServerPort, expectedServerPort)
		}
		expectedRepository := "/khipu/schemas"
		if result.SchemaRepository != expectedRepository {
			t.Errorf("unmatch schemarepository:%s, expected:%s", result.SchemaRepository, expectedRepository)
		}
	})

	t.Run("it fails on a missing file", func(t *testing.T) {
		if _, err := kcs.LoadServerConfig("./testdata/no-such-config.yaml"); err == nil {
			t.Error("no error on missing config file")
		}
	})
}
