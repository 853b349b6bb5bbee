package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables that supply defaults for fields left empty by the job file and the command line
const (
	EnvDataDir = "COCOCONV_DATADIR"
	EnvType    = "COCOCONV_TYPE"
)

// Job describes one conversion run of cococonvert.
// Job files are YAML, so plain JSON job files work too.
//
//	dataDir: /data/tt100k
//	type: tt100k
//	check: true
//	overfitImages: 20
//	skipUnknownCategories: false
type Job struct {
	DataDir               string `yaml:"dataDir"`               // Root directory of the source dataset
	Type                  string `yaml:"type"`                  // Dataset type, eg "tt100k"
	Check                 bool   `yaml:"check"`                 // Validate the output files after converting
	OverfitImages         int    `yaml:"overfitImages"`         // If > 0, write an overfitting subset with this many training images
	SkipUnknownCategories bool   `yaml:"skipUnknownCategories"` // Skip objects with unknown categories, instead of failing
}

func LoadJob(filename string) (*Job, error) {
	raw, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("Error loading %v: %w", filename, err)
	}
	job := &Job{}
	if err := yaml.Unmarshal(raw, job); err != nil {
		return nil, fmt.Errorf("Error parsing %v: %w", filename, err)
	}
	return job, nil
}

// Validate checks that the fields needed to run a conversion are present
func (j *Job) Validate() error {
	if j.DataDir == "" {
		return fmt.Errorf("No dataset directory specified")
	}
	if j.Type == "" {
		return fmt.Errorf("No dataset type specified")
	}
	if j.OverfitImages < 0 {
		return fmt.Errorf("overfitImages must not be negative (%v)", j.OverfitImages)
	}
	return nil
}

// LoadEnv reads job defaults from envFile (if it exists) and from the process environment.
// Process environment variables take precedence over the file.
func LoadEnv(envFile string) (map[string]string, error) {
	env := map[string]string{}
	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			if env, err = godotenv.Read(envFile); err != nil {
				return nil, fmt.Errorf("Error reading %v: %w", envFile, err)
			}
		}
	}
	for _, key := range []string{EnvDataDir, EnvType} {
		if v := os.Getenv(key); v != "" {
			env[key] = v
		}
	}
	return env, nil
}

// ApplyEnv fills the empty fields of j from env
func (j *Job) ApplyEnv(env map[string]string) {
	if j.DataDir == "" {
		j.DataDir = env[EnvDataDir]
	}
	if j.Type == "" {
		j.Type = env[EnvType]
	}
}
