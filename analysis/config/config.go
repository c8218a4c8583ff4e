// Copyright the Palisade authors. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"fmt"
	"os"
	"path"

	"github.com/xyproto/env/v2"
	"gopkg.in/yaml.v3"

	"github.com/palisade-tools/palisade/internal/funcutil"
)

// EnvConfigFile is the environment variable that overrides the global config filename.
const EnvConfigFile = "PALISADE_CONFIG"

var (
	// The global config file
	configFile string
)

// SetGlobalConfig sets the global config filename
func SetGlobalConfig(filename string) {
	configFile = filename
}

// LoadGlobal loads the config file that has been set by SetGlobalConfig, unless the
// PALISADE_CONFIG environment variable is set, in which case that file is loaded instead.
func LoadGlobal() (*Config, error) {
	return Load(env.Str(EnvConfigFile, configFile))
}

// Config is the user-facing configuration of a run. If some field is not defined in the
// config file, it will be empty/zero in the struct. Private fields are not populated from a
// yaml file, but computed after initialization.
type Config struct {
	Options

	sourceFile string

	// AnalysisPlan lists the analyses to run on each method, in order. Entries must be
	// unique and must name registered analyses.
	AnalysisPlan []string `yaml:"analysis-plan"`
}

// Options holds the scalar knobs of a run.
type Options struct {
	// ReportsDir is the directory where reports will be written. Empty means no reports.
	ReportsDir string `yaml:"reports-dir"`

	// ReportDeadCode specifies whether a dead-code report should be printed for each
	// analyzed method.
	ReportDeadCode bool `yaml:"report-dead-code"`

	// UseWorklistSolver selects the worklist fixpoint solver instead of the round-robin
	// full-pass solver.
	UseWorklistSolver bool `yaml:"use-worklist-solver"`

	// MaxAlarms sets a limit for the number of alarms reported by an analysis. If
	// MaxAlarms > 0, then at most MaxAlarms will be reported. Otherwise it is ignored.
	MaxAlarms int `yaml:"max-alarms"`

	// LogLevel controls the verbosity of the tool
	LogLevel int `yaml:"log-level"`

	// SilenceWarn suppresses warnings
	SilenceWarn bool `yaml:"silence-warn"`
}

// NewDefault returns an empty default config.
func NewDefault() *Config {
	return &Config{
		sourceFile:   "",
		AnalysisPlan: nil,
		Options: Options{
			ReportsDir:        "",
			ReportDeadCode:    false,
			UseWorklistSolver: false,
			MaxAlarms:         0,
			LogLevel:          int(InfoLevel),
			SilenceWarn:       false,
		},
	}
}

// Load reads a configuration from a file
func Load(filename string) (*Config, error) {
	cfg := NewDefault()
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("could not read config file: %w", err)
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("could not unmarshal config file as yaml: %w", err)
	}

	cfg.sourceFile = filename

	// If logLevel has not been specified (i.e. it is 0) set the default to Info
	if cfg.LogLevel == 0 {
		cfg.LogLevel = int(InfoLevel)
	}

	var seen []string
	for _, id := range cfg.AnalysisPlan {
		if funcutil.Contains(seen, id) {
			return nil, fmt.Errorf("analysis plan lists %q more than once", id)
		}
		seen = append(seen, id)
	}

	return cfg, nil
}

// RelPath returns filename path relative to the config source file
func (c Config) RelPath(filename string) string {
	return path.Join(path.Dir(c.sourceFile), filename)
}
