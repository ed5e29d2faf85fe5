// SPDX-License-Identifier: ice License 1.0

package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

//nolint:gochecknoinits // Because we load the configs once, for the whole runtime.
func init() {
	loadFirstApplicationConfigFile()
	dotEnvPath := `.env`
	for range 5 {
		if err := godotenv.Load(dotEnvPath); err == nil {
			break
		}
		dotEnvPath = fmt.Sprintf(`../%v`, dotEnvPath)
	}
}

func MustLoadFromKey(key string, cfg any) {
	if err := viper.UnmarshalKey(key, cfg); err != nil {
		log.Panic(errors.Wrapf(err, "failed to load config by key %q", key))
	}
}

// EnvVariable resolves the `{MODULE}_{SUFFIX}` environment variable for the given
// applicationYAMLKey, falling back to the bare `{SUFFIX}` one.
func EnvVariable(applicationYAMLKey, suffix string) string {
	module := strings.ToUpper(strings.ReplaceAll(strings.ReplaceAll(applicationYAMLKey, "-", "_"), "/", "_"))
	if val := os.Getenv(fmt.Sprintf("%v_%v", module, suffix)); val != "" {
		return val
	}

	return os.Getenv(suffix)
}

func loadFirstApplicationConfigFile() {
	for _, f := range findAllApplicationConfigFiles() {
		viper.SetConfigFile(f)
		if err := viper.ReadInConfig(); err == nil {
			return
		} else if !errors.Is(err, os.ErrNotExist) {
			log.Panic(err)
		}
	}

	log.Panic(errors.New("could not find any application.yaml files"))
}

func findAllApplicationConfigFiles() []string {
	var hints []string
	if p, err := os.Getwd(); err == nil {
		hints = append(hints, p)
	}
	if p, err := os.Executable(); err == nil {
		hints = append(hints, filepath.Dir(p))
	}

	var files []string
	for _, dir := range hints {
		files = append(files, globbed(filepath.Join(dir, ".testdata", "application.yaml"))...)
		files = append(files, globbed(filepath.Join(dir, "application.yaml"))...)
	}

	return append(files, relativeFiles()...)
}

func relativeFiles() []string {
	//nolint:dogsled // Because those 3 blank identifiers are useless.
	_, callerFile, _, _ := runtime.Caller(0)
	files := globbed(filepath.Join(filepath.Dir(callerFile), "..", "application.yaml"))

	return append(files, globbed(filepath.Join(filepath.Dir(callerFile), "..", "..", "application.yaml"))...)
}

func globbed(pattern string) []string {
	files, err := filepath.Glob(pattern)
	if err != nil {
		log.Println(errors.Wrapf(err, "glob failed for [%v]", pattern))
	}

	return files
}
