package common

import (
	"fmt"
	"os"
	"path"
	"runtime"
	"testing"

	"fedvlm/api/models"

	"github.com/stretchr/testify/require"
	yaml "gopkg.in/yaml.v2"
)

const ScenarioVariantId string = "13-42298583-A-G"

func folderPath() string {
	// get this file's path
	_, filename, _, _ := runtime.Caller(0)
	return path.Dir(filename)
}

func InitConfig() *models.Config {
	var cfg models.Config

	// retrieve common's test.config
	f, err := os.Open(fmt.Sprintf("%s/test.config.yml", folderPath()))
	if err != nil {
		processError(err)
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	err = decoder.Decode(&cfg)
	if err != nil {
		processError(err)
	}

	return &cfg
}

// LoadFixture returns the raw bytes of fixtures/<name>.
func LoadFixture(_t *testing.T, name string) []byte {
	raw, err := os.ReadFile(fmt.Sprintf("%s/fixtures/%s", folderPath(), name))
	require.NoError(_t, err)
	return raw
}

func FixturePath(name string) string {
	return fmt.Sprintf("%s/fixtures/%s", folderPath(), name)
}

func processError(err error) {
	fmt.Println(err)
	os.Exit(2)
}
