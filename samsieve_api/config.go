package samsieve_api

import (
	"os"

	"github.com/pkg/errors"
	cli "github.com/urfave/cli/v2"
	"gopkg.in/yaml.v2"
)

const defaultThreads = 8

// The struct representing the optional YAML configuration file
// Missing keys stay nil so that they can be told apart from zero values
type FileConfig struct {
	MapQ             *int  `yaml:"mapq"`
	SingleEnd        *bool `yaml:"single_end_mapq_filtering"`
	EditDistance     *int  `yaml:"nm"`
	RemoveDuplicates *bool `yaml:"remove_dup"`
	RemoveSingletons *bool `yaml:"remove_singletons"`
	Threads          *int  `yaml:"threads"`
}

// Read the configuration file and cast it to its struct
func ReadFileConfig(path string) (*FileConfig, error) {
	configFile, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open the config file")
	}

	var config FileConfig
	if err := yaml.UnmarshalStrict(configFile, &config); err != nil {
		return nil, errors.Wrap(err, "failed to parse the config file")
	}
	return &config, nil
}

// Build the filter settings from the command line and the optional config file
// Flags given on the command line take precedence over the config file
func ReadFilterConfig(Cctx *cli.Context) (*FilterConfig, error) {
	fileConfig := &FileConfig{}
	if path := Cctx.String("config"); path != "" {
		var err error
		if fileConfig, err = ReadFileConfig(path); err != nil {
			return nil, err
		}
	}

	config := fileConfig.toFilterConfig()

	if Cctx.IsSet("mapq") {
		mapq := Cctx.Int("mapq")
		config.MapQ = mapq
		fileConfig.MapQ = &mapq
	}
	if fileConfig.MapQ == nil {
		return nil, errors.New("a mapping quality cutoff is required, set --mapq or 'mapq' in the config file")
	}
	if Cctx.IsSet("single-end-mapq-filtering") {
		config.SingleEnd = Cctx.Bool("single-end-mapq-filtering")
	}
	if Cctx.IsSet("nm") {
		config.EditDistance = Cctx.Int("nm")
		config.HasEditDistance = true
	}
	if Cctx.IsSet("remove-dup") {
		config.RemoveDuplicates = Cctx.Bool("remove-dup")
	}
	if Cctx.IsSet("remove-singletons") {
		config.RemoveSingletons = Cctx.Bool("remove-singletons")
	}
	if Cctx.IsSet("threads") {
		config.Threads = Cctx.Int("threads")
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Convert the file values to filter settings, filling in the defaults
func (fileConfig *FileConfig) toFilterConfig() *FilterConfig {
	config := &FilterConfig{Threads: defaultThreads}
	if fileConfig.MapQ != nil {
		config.MapQ = *fileConfig.MapQ
	}
	if fileConfig.SingleEnd != nil {
		config.SingleEnd = *fileConfig.SingleEnd
	}
	if fileConfig.EditDistance != nil {
		config.EditDistance = *fileConfig.EditDistance
		config.HasEditDistance = true
	}
	if fileConfig.RemoveDuplicates != nil {
		config.RemoveDuplicates = *fileConfig.RemoveDuplicates
	}
	if fileConfig.RemoveSingletons != nil {
		config.RemoveSingletons = *fileConfig.RemoveSingletons
	}
	if fileConfig.Threads != nil {
		config.Threads = *fileConfig.Threads
	}
	return config
}

// Check that every setting is in range
func (config *FilterConfig) Validate() error {
	if config.MapQ < 0 || config.MapQ > 255 {
		return errors.Errorf("mapping quality cutoff %d must be in 0-255", config.MapQ)
	}
	if config.HasEditDistance && config.EditDistance < 0 {
		return errors.Errorf("edit distance cutoff %d must not be negative", config.EditDistance)
	}
	if config.Threads < 1 {
		return errors.Errorf("thread count %d must be at least 1", config.Threads)
	}
	return nil
}
