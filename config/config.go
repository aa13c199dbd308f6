package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const (
	defaultPath = "."

	defaultFulfillmentInterval = 2 * time.Minute
	defaultSweepInterval       = 5 * time.Minute
	defaultMaxDelay            = 10 * time.Minute
	defaultGraceBuffer         = 5 * time.Minute
	defaultRemoteTimeout       = 30 * time.Second
	defaultLeaseTier           = "testing"
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port     int `json:"port" yaml:"port" validate:"gte=0,lte=65535"`
		Timeouts struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	// Marketplace is the store API that owns notifications, orders and listings
	Marketplace MarketplaceConfig `json:"marketplace" yaml:"marketplace"`

	// Fleet is the device-fleet API that owns device records and the rented registry
	Fleet FleetConfig `json:"fleet" yaml:"fleet"`

	Schedule ScheduleConfig `json:"schedule" yaml:"schedule"`

	Liveness LivenessConfig `json:"liveness" yaml:"liveness"`

	Lease LeaseConfig `json:"lease" yaml:"lease"`

	Sweep SweepConfig `json:"sweep" yaml:"sweep"`

	Fulfillment FulfillmentConfig `json:"fulfillment" yaml:"fulfillment"`

	// PubSub configuration for lifecycle event publishing
	PubSub *PubSubConfig `json:"pubsub" yaml:"pubsub"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// MarketplaceConfig holds the store endpoint and the credential pair used to
// build its Basic authorization header
type MarketplaceConfig struct {
	BaseURL  string        `json:"baseUrl" yaml:"baseUrl" validate:"required,url"`
	Username string        `json:"username" yaml:"username" validate:"required,excludes=:"`
	Password string        `json:"password" yaml:"password" validate:"required"`
	Timeout  time.Duration `json:"timeout" yaml:"timeout"`
}

// FleetConfig holds the device-fleet endpoint
type FleetConfig struct {
	BaseURL string        `json:"baseUrl" yaml:"baseUrl" validate:"required,url"`
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// TaskSchedule controls one periodic task
type TaskSchedule struct {
	Enabled  bool          `json:"enabled" yaml:"enabled"`
	Interval time.Duration `json:"interval" yaml:"interval"`
}

// ScheduleConfig defines the poll intervals of the three periodic tasks
type ScheduleConfig struct {
	// Run every enabled task once immediately at startup
	RunOnStart  bool         `json:"runOnStart" yaml:"runOnStart"`
	Fulfillment TaskSchedule `json:"fulfillment" yaml:"fulfillment"`
	RentedSweep TaskSchedule `json:"rentedSweep" yaml:"rentedSweep"`
	ListedSweep TaskSchedule `json:"listedSweep" yaml:"listedSweep"`
}

// LivenessConfig defines when a device counts as unresponsive or expired
type LivenessConfig struct {
	// Longest a device may go without checking in
	MaxDelay time.Duration `json:"maxDelay" yaml:"maxDelay"`

	// Time a listed device is given past its expiration to re-register
	GraceBuffer time.Duration `json:"graceBuffer" yaml:"graceBuffer"`
}

// LeaseConfig selects the lease length applied on fulfillment
type LeaseConfig struct {
	Tier string `json:"tier" yaml:"tier"`

	// Tiers overrides or extends the built-in tier table
	Tiers map[string]time.Duration `json:"tiers" yaml:"tiers"`
}

// SweepConfig controls how much work a liveness sweep does per cycle
type SweepConfig struct {
	// StopAtFirst ends a sweep after the first device it acts on
	StopAtFirst bool `json:"stopAtFirst" yaml:"stopAtFirst"`
}

// FulfillmentConfig defines what goes into the access note sent to buyers
type FulfillmentConfig struct {
	// SSHHost is the public host renters connect to
	SSHHost string `json:"sshHost" yaml:"sshHost" validate:"required"`
}

// PubSubConfig defines Pub/Sub configuration for event publishing
type PubSubConfig struct {
	// Provider type: "local", "google" or "kafka"; empty disables publishing
	Provider string `json:"provider" yaml:"provider" validate:"omitempty,oneof=local google kafka"`

	// Google Cloud project ID (for google provider)
	ProjectID string `json:"projectId" yaml:"projectId"`

	// Topic ID (for google and kafka providers)
	TopicID string `json:"topicId" yaml:"topicId"`

	// Local HTTP endpoint for development (for local provider)
	LocalEndpoint string `json:"localEndpoint" yaml:"localEndpoint"`

	// Kafka bootstrap brokers (for kafka provider)
	Brokers []string `json:"brokers" yaml:"brokers"`
}

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	return loadWithEnvInto(new(T), currEnv, configPath...)
}

// loadWithEnvInto decodes over cfg, so fields the file and environment leave
// unset keep the value cfg already holds.
func loadWithEnvInto[T any](cfg *T, currEnv string, configPath ...string) (*T, error) {
	koanfInstance := koanf.New(".")

	// Build list of paths to search for config file
	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			abs := filepath.Join(pwd, path)
			searchPaths = append(searchPaths, abs)
		}
	}

	// Try to find and load the config file
	var configFile string
	var found bool
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
			found = true

			break
		}
	}

	if !found {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	// Environment variables override the file.
	// MARKETPLACE_BASEURL -> marketplace.baseUrl (not marketplace.baseurl)
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			return canonicalizeEnvKey(k, existingConfigMap), v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
			MatchName: func(mapKey, fieldName string) bool {
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

// New loads config.yaml (plus .env and the process environment), fills in
// defaults and validates the result. Any error here is fatal at startup.
func New() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, errors.Wrap(err, "load .env failed")
	}

	cfg, err := loadWithEnvInto(newDefaultConfig(), "config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	applyDefaults(cfg)

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the struct-tag rules and the cross-field rules validator
// tags cannot express.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return errors.Wrap(err, "invalid config")
	}

	for name, task := range map[string]TaskSchedule{
		"fulfillment": cfg.Schedule.Fulfillment,
		"rentedSweep": cfg.Schedule.RentedSweep,
		"listedSweep": cfg.Schedule.ListedSweep,
	} {
		if task.Enabled && task.Interval <= 0 {
			return errors.Errorf("invalid config: schedule.%s.interval must be positive", name)
		}
	}

	if cfg.Liveness.MaxDelay <= 0 {
		return errors.New("invalid config: liveness.maxDelay must be positive")
	}
	if cfg.Liveness.GraceBuffer < 0 {
		return errors.New("invalid config: liveness.graceBuffer must not be negative")
	}

	if cfg.PubSub != nil {
		switch cfg.PubSub.Provider {
		case "google":
			if cfg.PubSub.ProjectID == "" || cfg.PubSub.TopicID == "" {
				return errors.New("invalid config: pubsub.projectId and pubsub.topicId are required for google provider")
			}
		case "kafka":
			if len(cfg.PubSub.Brokers) == 0 || cfg.PubSub.TopicID == "" {
				return errors.New("invalid config: pubsub.brokers and pubsub.topicId are required for kafka provider")
			}
		case "local":
			if cfg.PubSub.LocalEndpoint == "" {
				return errors.New("invalid config: pubsub.localEndpoint is required for local provider")
			}
		}
	}

	return nil
}

// newDefaultConfig holds the defaults for settings where zero is a valid value.
func newDefaultConfig() *Config {
	cfg := &Config{}
	cfg.Liveness.GraceBuffer = defaultGraceBuffer

	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Marketplace.Timeout <= 0 {
		cfg.Marketplace.Timeout = defaultRemoteTimeout
	}
	if cfg.Fleet.Timeout <= 0 {
		cfg.Fleet.Timeout = defaultRemoteTimeout
	}
	if cfg.Schedule.Fulfillment.Interval == 0 {
		cfg.Schedule.Fulfillment.Interval = defaultFulfillmentInterval
	}
	if cfg.Schedule.RentedSweep.Interval == 0 {
		cfg.Schedule.RentedSweep.Interval = defaultSweepInterval
	}
	if cfg.Schedule.ListedSweep.Interval == 0 {
		cfg.Schedule.ListedSweep.Interval = defaultSweepInterval
	}
	if cfg.Liveness.MaxDelay == 0 {
		cfg.Liveness.MaxDelay = defaultMaxDelay
	}
	if strings.TrimSpace(cfg.Lease.Tier) == "" {
		cfg.Lease.Tier = defaultLeaseTier
	}
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}
