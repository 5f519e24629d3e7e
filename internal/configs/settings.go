package configs

import (
	"log"
	"os"
	"path/filepath"

	"github.com/PolarWolf314/sealpref/internal/storage"
	"github.com/PolarWolf314/sealpref/internal/utils"
)

type UserSettings struct {
	UserConfigsPath string
	DataRoot        string
	Username        string
}

var UserSealprefSettings *UserSettings

func init() {
	configDir, err := os.UserConfigDir()
	if err != nil {
		log.Fatalf("error getting config directory: %s", err)
	}

	dataRoot, err := storage.DataRoot()
	if err != nil {
		log.Fatalf("error getting data directory: %s", err)
	}

	username, err := utils.GetUsername()
	if err != nil {
		log.Fatalf("error getting username: %s", err)
	}

	UserSealprefSettings = &UserSettings{
		UserConfigsPath: filepath.Join(configDir, "sealpref"),
		DataRoot:        dataRoot,
		Username:        username,
	}
}
