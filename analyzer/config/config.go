package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/umahmood/haversine"
	"gopkg.in/yaml.v3"

	"tripstats/communication"
	"tripstats/deriver"
	"tripstats/domain/entities/trip"
	"tripstats/loader"
	"tripstats/renderer"
	"tripstats/utils"
)

const (
	ConfigPathEnvVarName = "CONFIG_PATH"
	defaultConfigPath    = "./analyzer/config/config.yaml"
)

var ErrInvalidConfig = errors.New("invalid analyzer config")

// ColumnsConfig names of the source columns
type ColumnsConfig struct {
	Timestamp string `yaml:"timestamp"`
	Latitude  string `yaml:"latitude"`
	Longitude string `yaml:"longitude"`
	Base      string `yaml:"base"`
}

// InputConfig where the monthly exports live and how they are named
// + FilePattern: fmt pattern with one %s, filled with each entry of Months
type InputConfig struct {
	Dir         string        `yaml:"dir"`
	FilePattern string        `yaml:"file_pattern"`
	Months      []string      `yaml:"months"`
	Delimiter   string        `yaml:"delimiter"`
	Columns     ColumnsConfig `yaml:"columns"`
}

type CoordConfig struct {
	Lat float64 `yaml:"lat"`
	Lon float64 `yaml:"lon"`
}

type DeriveConfig struct {
	TimestampLayout string      `yaml:"timestamp_layout"`
	Months          []int       `yaml:"months"`
	CityCenter      CoordConfig `yaml:"city_center"`
}

type OutputConfig struct {
	Dir         string                `yaml:"dir"`
	Hourly      renderer.ChartOptions `yaml:"hourly"`
	MonthHour   renderer.ChartOptions `yaml:"month_hour"`
	Daily       renderer.ChartOptions `yaml:"daily"`
	Base        renderer.ChartOptions `yaml:"base"`
	ExtraCharts bool                  `yaml:"extra_charts"`
}

type StoreConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

type RabbitConfig struct {
	Enabled    bool                                    `yaml:"enabled"`
	Exchange   communication.ExchangeDeclarationConfig `yaml:"exchange"`
	Publishing communication.PublishingConfig          `yaml:"publishing"`
}

type AnalyzerConfig struct {
	LogLevel string       `yaml:"log_level"`
	Input    InputConfig  `yaml:"input"`
	Derive   DeriveConfig `yaml:"derive"`
	Output   OutputConfig `yaml:"output"`
	Palette  []string     `yaml:"palette"`
	Store    StoreConfig  `yaml:"store"`
	Rabbit   RabbitConfig `yaml:"rabbit"`
}

// DefaultConfig six monthly exports of 2014 in the working directory, both charts written next to them
func DefaultConfig() *AnalyzerConfig {
	return &AnalyzerConfig{
		LogLevel: "info",
		Input: InputConfig{
			Dir:         ".",
			FilePattern: "uber-raw-data-%s.csv",
			Months:      []string{"apr14", "may14", "jun14", "jul14", "aug14", "sep14"},
			Delimiter:   ",",
			Columns: ColumnsConfig{
				Timestamp: "Date/Time",
				Latitude:  "Lat",
				Longitude: "Lon",
				Base:      "Base",
			},
		},
		Derive: DeriveConfig{
			TimestampLayout: deriver.DefaultTimestampLayout,
			Months:          []int{4, 5, 6, 7, 8, 9},
			CityCenter:      CoordConfig{Lat: 40.7128, Lon: -74.0060},
		},
		Output: OutputConfig{
			Dir:       ".",
			Hourly:    renderer.HourlyChartOptions(),
			MonthHour: renderer.MonthHourChartOptions(),
			Daily:     renderer.DailyChartOptions(),
			Base:      renderer.BaseChartOptions(),
		},
		Palette: []string{"#CC1011", "#665555", "#05a399", "#cfcaca", "#f5e840", "#0683c9", "#e075b0"},
		Store: StoreConfig{
			Path: "./tripstats.db",
		},
		Rabbit: RabbitConfig{
			Exchange:   communication.DefaultExchangeConfig(),
			Publishing: communication.DefaultPublishingConfig(),
		},
	}
}

// LoadConfig reads the file named by CONFIG_PATH, or the default config file if the variable is unset.
// A missing default file leaves the built-in defaults untouched.
func LoadConfig() (*AnalyzerConfig, error) {
	if configPath := os.Getenv(ConfigPathEnvVarName); configPath != "" {
		return LoadConfigFrom(configPath, true)
	}
	return LoadConfigFrom(defaultConfigPath, false)
}

// LoadConfigFrom overlays the YAML file at configPath on top of DefaultConfig
func LoadConfigFrom(configPath string, required bool) (*AnalyzerConfig, error) {
	analyzerConfig := DefaultConfig()

	configFile, err := utils.GetConfigFile(configPath)
	if err != nil {
		if !required && errors.Is(err, os.ErrNotExist) {
			return analyzerConfig, nil
		}
		return nil, err
	}

	err = yaml.Unmarshal(configFile, analyzerConfig)
	if err != nil {
		return nil, fmt.Errorf("error parsing analyzer config file: %s", err)
	}

	if err := analyzerConfig.Validate(); err != nil {
		return nil, err
	}

	return analyzerConfig, nil
}

func (ac *AnalyzerConfig) Validate() error {
	if len(ac.Input.Months) == 0 {
		return fmt.Errorf("%w: no input months", ErrInvalidConfig)
	}
	for _, label := range ac.Input.Months {
		// labels look like apr14: abbreviated month followed by the year
		if len(label) < 3 {
			return fmt.Errorf("%w: input month %q", ErrInvalidConfig, label)
		}
		if _, err := trip.ParseMonth(label[:3]); err != nil {
			return fmt.Errorf("%w: input month %q: %s", ErrInvalidConfig, label, err)
		}
	}
	if strings.Count(ac.Input.FilePattern, "%s") != 1 {
		return fmt.Errorf("%w: file pattern %q must contain exactly one %%s", ErrInvalidConfig, ac.Input.FilePattern)
	}
	if utf8.RuneCountInString(ac.Input.Delimiter) > 1 {
		return fmt.Errorf("%w: delimiter %q is not a single character", ErrInvalidConfig, ac.Input.Delimiter)
	}
	for _, month := range ac.Derive.Months {
		if _, err := trip.NewMonth(month); err != nil {
			return fmt.Errorf("%w: %s", ErrInvalidConfig, err)
		}
	}
	return nil
}

// Paths returns the input files in load order
func (ac *AnalyzerConfig) Paths() []string {
	paths := make([]string, 0, len(ac.Input.Months))
	for _, month := range ac.Input.Months {
		paths = append(paths, filepath.Join(ac.Input.Dir, fmt.Sprintf(ac.Input.FilePattern, month)))
	}
	return paths
}

func (ac *AnalyzerConfig) LoaderConfig() loader.Config {
	delimiter := ','
	if ac.Input.Delimiter != "" {
		delimiter, _ = utf8.DecodeRuneInString(ac.Input.Delimiter)
	}

	columns := ac.Input.Columns
	return loader.Config{
		RequiredColumns: []string{columns.Timestamp, columns.Latitude, columns.Longitude, columns.Base},
		Delimiter:       delimiter,
	}
}

func (ac *AnalyzerConfig) DeriverConfig() deriver.Config {
	return deriver.Config{
		Columns: deriver.Columns{
			Timestamp: ac.Input.Columns.Timestamp,
			Latitude:  ac.Input.Columns.Latitude,
			Longitude: ac.Input.Columns.Longitude,
			Base:      ac.Input.Columns.Base,
		},
		TimestampLayout: ac.Derive.TimestampLayout,
		Months:          ac.Derive.Months,
		CityCenter:      haversine.Coord{Lat: ac.Derive.CityCenter.Lat, Lon: ac.Derive.CityCenter.Lon},
	}
}
