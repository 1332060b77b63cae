// Package config provides configuration management for the gf256 CLI tool.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Davincible/gf256/pkg/gf"
)

// Config represents the main configuration structure
type Config struct {
	Version  string         `json:"version"`
	Defaults DefaultSettings `json:"defaults"`
	Field    FieldSettings  `json:"field"`
	Security SecurityConfig `json:"security"`
	UI       UIConfig       `json:"ui"`
	Storage  StorageConfig  `json:"storage"`
	Advanced AdvancedConfig `json:"advanced"`
}

// DefaultSettings contains default values for the sharing/coding commands.
type DefaultSettings struct {
	ShamirShares    int `json:"shamir_shares"`    // Default: 5
	ShamirThreshold int `json:"shamir_threshold"` // Default: 3
	RAIDParity      int `json:"raid_parity"`      // Default: 1
	RSBlockSize     int `json:"rs_block_size"`    // Default: 255
	RSDataSize      int `json:"rs_data_size"`     // Default: 223
}

// FieldSettings describes the default GF(2^n) field used when a
// command doesn't specify one explicitly.
type FieldSettings struct {
	Width      int    `json:"width"`      // Default: 8
	Polynomial uint64 `json:"polynomial"` // Default: 0x1d (x^8+x^4+x^3+x^2+1, degree 8)
	Generator  uint64 `json:"generator"`  // Default: 0x02
	Strategy   string `json:"strategy"`   // auto, naive, table, rem_table, small_rem_table, barret
}

// SecurityConfig contains security-related settings
type SecurityConfig struct {
	RequirePassphrase   bool   `json:"require_passphrase"`    // Force passphrase use for storage
	MinPassphraseLength int    `json:"min_passphrase_length"` // Minimum passphrase length
	WipeMemory          bool   `json:"wipe_memory"`           // Secure memory wiping of coefficients
	ConstantTime        bool   `json:"constant_time"`         // Force constant-time (Barret) multiply
	WarningLevel        string `json:"warning_level"`         // none, normal, paranoid
}

// UIConfig contains user interface settings
type UIConfig struct {
	UseColor     bool   `json:"use_color"`     // Enable colored output
	ProgressBar  bool   `json:"progress_bar"`  // Show progress indicators
	Verbosity    string `json:"verbosity"`     // quiet, normal, verbose
	ConfirmActions bool `json:"confirm_actions"` // Require confirmation before overwriting files
}

// StorageConfig contains storage-related settings
type StorageConfig struct {
	DefaultPath    string `json:"default_path"`    // Default storage directory
	FilePermissions string `json:"file_permissions"` // Default file permissions
	EncryptStorage bool   `json:"encrypt_storage"` // Encrypt saved shares/blocks
}

// AdvancedConfig contains advanced/experimental features
type AdvancedConfig struct {
	EnableXMUL   bool `json:"enable_xmul"`   // Allow hardware carry-less multiply
	NoTables     bool `json:"no_tables"`     // Disable log/antilog and remainder tables
	FullTables   bool `json:"full_tables"`   // Prefer full log/antilog tables when available
}

// FieldProfile is a saved field configuration for quick reuse across
// invocations -- e.g. a custom-width field a user validated once and
// wants to reference by name afterward.
type FieldProfile struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Width       int    `json:"width"`
	Polynomial  uint64 `json:"polynomial"`
	Generator   uint64 `json:"generator"`
	Tags        []string `json:"tags"`
}

// ConfigManager manages configuration loading and saving
type ConfigManager struct {
	config     *Config
	configPath string
	profiles   map[string]*FieldProfile
}

// NewConfigManager creates a new configuration manager
func NewConfigManager() (*ConfigManager, error) {
	cm := &ConfigManager{
		profiles: make(map[string]*FieldProfile),
	}

	configPath, err := getConfigPath()
	if err != nil {
		return nil, err
	}
	cm.configPath = configPath

	if err := cm.LoadConfig(); err != nil {
		cm.config = DefaultConfig()
		if err := cm.SaveConfig(); err != nil {
			return nil, fmt.Errorf("failed to save default config: %w", err)
		}
	}

	if err := cm.LoadProfiles(); err != nil {
		cm.profiles = make(map[string]*FieldProfile)
	}

	return cm, nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: "1.0.0",
		Defaults: DefaultSettings{
			ShamirShares:    5,
			ShamirThreshold: 3,
			RAIDParity:      1,
			RSBlockSize:     255,
			RSDataSize:      223,
		},
		Field: FieldSettings{
			Width:      8,
			Polynomial: 0x1d,
			Generator:  0x02,
			Strategy:   "auto",
		},
		Security: SecurityConfig{
			RequirePassphrase:   false,
			MinPassphraseLength: 8,
			WipeMemory:          true,
			ConstantTime:        false,
			WarningLevel:        "normal",
		},
		UI: UIConfig{
			UseColor:       true,
			ProgressBar:    true,
			Verbosity:      "normal",
			ConfirmActions: true,
		},
		Storage: StorageConfig{
			DefaultPath:     "~/.gf256/shares",
			FilePermissions: "0600",
			EncryptStorage:  false,
		},
		Advanced: AdvancedConfig{
			EnableXMUL: true,
			NoTables:   false,
			FullTables: false,
		},
	}
}

// LoadConfig loads the configuration from disk
func (cm *ConfigManager) LoadConfig() error {
	data, err := os.ReadFile(cm.configPath)
	if err != nil {
		return err
	}

	config := &Config{}
	if err := json.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}

	cm.config = config
	return nil
}

// SaveConfig saves the configuration to disk
func (cm *ConfigManager) SaveConfig() error {
	configDir := filepath.Dir(cm.configPath)
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(cm.config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(cm.configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// GetConfig returns the current configuration
func (cm *ConfigManager) GetConfig() *Config {
	return cm.config
}

// SetConfig updates the configuration
func (cm *ConfigManager) SetConfig(config *Config) {
	cm.config = config
}

// LoadProfiles loads saved field profiles
func (cm *ConfigManager) LoadProfiles() error {
	profilesPath := filepath.Join(filepath.Dir(cm.configPath), "profiles.json")

	data, err := os.ReadFile(profilesPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	profiles := make(map[string]*FieldProfile)
	if err := json.Unmarshal(data, &profiles); err != nil {
		return fmt.Errorf("failed to parse profiles: %w", err)
	}

	cm.profiles = profiles
	return nil
}

// SaveProfiles saves field profiles to disk
func (cm *ConfigManager) SaveProfiles() error {
	profilesPath := filepath.Join(filepath.Dir(cm.configPath), "profiles.json")

	data, err := json.MarshalIndent(cm.profiles, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal profiles: %w", err)
	}

	if err := os.WriteFile(profilesPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write profiles: %w", err)
	}

	return nil
}

// AddProfile adds a new field profile
func (cm *ConfigManager) AddProfile(profile *FieldProfile) error {
	if profile.Name == "" {
		return fmt.Errorf("profile name cannot be empty")
	}

	cm.profiles[profile.Name] = profile
	return cm.SaveProfiles()
}

// GetProfile retrieves a field profile by name
func (cm *ConfigManager) GetProfile(name string) (*FieldProfile, error) {
	profile, exists := cm.profiles[name]
	if !exists {
		return nil, fmt.Errorf("profile '%s' not found", name)
	}
	return profile, nil
}

// ListProfiles returns all available profiles
func (cm *ConfigManager) ListProfiles() []*FieldProfile {
	profiles := make([]*FieldProfile, 0, len(cm.profiles))
	for _, profile := range cm.profiles {
		profiles = append(profiles, profile)
	}
	return profiles
}

// DeleteProfile removes a field profile
func (cm *ConfigManager) DeleteProfile(name string) error {
	if _, exists := cm.profiles[name]; !exists {
		return fmt.Errorf("profile '%s' not found", name)
	}

	delete(cm.profiles, name)
	return cm.SaveProfiles()
}

// getConfigPath returns the configuration file path
func getConfigPath() (string, error) {
	if customPath := os.Getenv("GF256_CONFIG"); customPath != "" {
		return customPath, nil
	}

	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "gf256", "config.json"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(homeDir, ".config", "gf256", "config.json"), nil
}

// strategyByName maps a config string to a gf.Strategy, defaulting to
// Auto for anything unrecognized.
func strategyByName(name string) gf.Strategy {
	switch name {
	case "naive":
		return gf.Naive
	case "table":
		return gf.Table
	case "rem_table":
		return gf.RemTable
	case "small_rem_table":
		return gf.SmallRemTable
	case "barret":
		return gf.Barret
	default:
		return gf.Auto
	}
}

// FieldConfig builds a gf.Config from the stored field defaults and
// security/advanced overrides.
func (cm *ConfigManager) FieldConfig() gf.Config {
	f := cm.config.Field
	useXMUL := cm.config.Advanced.EnableXMUL
	return gf.Config{
		UseXMUL:      &useXMUL,
		Polynomial:   f.Polynomial,
		Generator:    f.Generator,
		Mode:         strategyByName(f.Strategy),
		ConstantTime: cm.config.Security.ConstantTime,
		NoTables:     cm.config.Advanced.NoTables,
		FullTables:   cm.config.Advanced.FullTables,
	}
}

// ValidatePassphrasePolicy checks a passphrase against the configured
// security policy.
func (cm *ConfigManager) ValidatePassphrasePolicy(passphrase string) error {
	if cm.config.Security.RequirePassphrase && passphrase == "" {
		return fmt.Errorf("passphrase is required by security policy")
	}

	if passphrase != "" && len(passphrase) < cm.config.Security.MinPassphraseLength {
		return fmt.Errorf("passphrase must be at least %d characters", cm.config.Security.MinPassphraseLength)
	}

	return nil
}
