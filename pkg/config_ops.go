package pkg

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// LoadDefaultPaths reads the optional ppkutil config file for fallback
// paths. No config file found is not an error when none was asked for,
// the command line flags carry everything on their own.
func LoadDefaultPaths(configPath string) (DefaultPaths, error) {

	conf := viper.New()

	conf.SetConfigType("yaml")
	if len(configPath) > 0 {
		conf.SetConfigFile(configPath)
	} else {
		conf.SetConfigName("ppkutil")
		conf.AddConfigPath("./")
		if homeDir, err := os.UserHomeDir(); err == nil {
			conf.AddConfigPath(filepath.Join(homeDir, ".config", "ppkutil"))
		}
	}

	if err := conf.ReadInConfig(); err != nil {
		var notFoundErr viper.ConfigFileNotFoundError
		if errors.As(err, &notFoundErr) && len(configPath) == 0 {
			return DefaultPaths{}, nil
		}
		return DefaultPaths{}, errors.Wrap(err, "reading ppkutil config")
	}

	return DefaultPaths{
		KeyPath:        conf.GetString("defaults.keypath"),
		OutputPath:     conf.GetString("defaults.outputpath"),
		KnownHostsPath: conf.GetString("defaults.knownhostspath"),
	}, nil
}
