package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the build manifest describing one release pipeline run.
type Config struct {
	// Project is the human-readable name of the application being released.
	Project string `yaml:"project"`
	// Environment selects the isolated environment activated for every tool invocation.
	Environment Environment `yaml:"environment"`
	// Install describes how the package is installed before bundling.
	Install Install `yaml:"install"`
	// Bundle describes the packaging tool invocations producing the executables.
	Bundle Bundle `yaml:"bundle"`
	// Installer describes the installer-compiler invocation.
	Installer Installer `yaml:"installer"`
	// Timeout is the per-step ceiling for external tool invocations.
	Timeout time.Duration `yaml:"timeout"`
}

// Environment names a dotenv-defined environment overlay.
type Environment struct {
	// Name is the environment name; empty means the process environment is used as is.
	Name string `yaml:"name"`
	// Dir is the directory holding <name>.env files, relative to the manifest.
	Dir string `yaml:"dir"`
}

// Install holds the package install invocation.
type Install struct {
	// Command is the install argv, e.g. [python, setup.py, install].
	Command []string `yaml:"command"`
	// Dir is the directory the command runs from, relative to the manifest.
	Dir string `yaml:"dir"`
}

// Bundle holds the packaging tool parameters shared by both executable variants.
type Bundle struct {
	// Tool is the packaging tool binary.
	Tool string `yaml:"tool"`
	// EntryScript is the application entry point handed to the tool.
	EntryScript string `yaml:"entry_script"`
	// ConsoleName is the output name of the console-mode executable.
	ConsoleName string `yaml:"console_name"`
	// WindowlessName is the output name of the windowless executable.
	WindowlessName string `yaml:"windowless_name"`
	// HiddenImports are module hints the tool's static scanner cannot discover itself.
	HiddenImports []string `yaml:"hidden_imports"`
	// OutputDir is where the tool places per-name distribution folders.
	OutputDir string `yaml:"output_dir"`
}

// Installer holds the installer-compiler invocation.
type Installer struct {
	// Tool is the installer-compiler binary.
	Tool string `yaml:"tool"`
	// Script is the packaging script handed to the compiler, relative to the manifest.
	Script string `yaml:"script"`
	// Output is where the compiler places the setup executable, relative to the manifest.
	Output string `yaml:"output"`
}

const (
	// DefaultConfigFilename is the default name of the build manifest.
	DefaultConfigFilename = "forge.yaml"

	// DefaultEnvironmentDir is where named environment files live by default.
	DefaultEnvironmentDir = "envs"

	// DefaultInstallDir is the default install directory: the repository root,
	// one level above the manifest.
	DefaultInstallDir = ".."

	// DefaultOutputDir is the packaging tool's default distribution directory.
	DefaultOutputDir = "dist"

	// DefaultInstallerOutput is where installer compilers place the setup
	// executable unless the packaging script says otherwise.
	DefaultInstallerOutput = "Output/setup.exe"

	// DefaultTimeout is the default per-step ceiling.
	DefaultTimeout = 30 * time.Minute

	// DefaultFilePermissions is the default file permission for manifest files.
	DefaultFilePermissions = 0o600
)

// DefaultInstallCommand is the install invocation used when the manifest
// provides none.
func DefaultInstallCommand() []string {
	return []string{"python", "setup.py", "install"}
}

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errProjectRequired is returned when the project name is missing.
	errProjectRequired = errors.New("project name must be provided")
	// errBundleToolRequired is returned when the packaging tool is missing.
	errBundleToolRequired = errors.New("bundle tool must be provided")
	// errEntryScriptRequired is returned when the entry script is missing.
	errEntryScriptRequired = errors.New("bundle entry script must be provided")
	// errOutputNamesRequired is returned when either output name is missing.
	errOutputNamesRequired = errors.New("console and windowless output names must be provided")
	// errOutputNamesEqual is returned when both variants share one output name.
	errOutputNamesEqual = errors.New("console and windowless output names must differ")
	// errInstallerToolRequired is returned when the installer compiler is missing.
	errInstallerToolRequired = errors.New("installer tool must be provided")
	// errInstallerScriptRequired is returned when the installer script is missing.
	errInstallerScriptRequired = errors.New("installer script must be provided")
)

// Load reads a build manifest from the provided path and validates it.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal manifest: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes a build manifest to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}

	// Restrict permissions.
	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	return nil
}

// Validate checks the manifest for required fields and applies defaults.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if cfg.Project == "" {
		return errProjectRequired
	}

	if cfg.Bundle.Tool == "" {
		return errBundleToolRequired
	}

	if cfg.Bundle.EntryScript == "" {
		return errEntryScriptRequired
	}

	if cfg.Bundle.ConsoleName == "" || cfg.Bundle.WindowlessName == "" {
		return errOutputNamesRequired
	}

	if cfg.Bundle.ConsoleName == cfg.Bundle.WindowlessName {
		return errOutputNamesEqual
	}

	if cfg.Installer.Tool == "" {
		return errInstallerToolRequired
	}

	if cfg.Installer.Script == "" {
		return errInstallerScriptRequired
	}

	// Apply defaults for optional fields.
	if cfg.Environment.Dir == "" {
		cfg.Environment.Dir = DefaultEnvironmentDir
	}

	if len(cfg.Install.Command) == 0 {
		cfg.Install.Command = DefaultInstallCommand()
	}

	if cfg.Install.Dir == "" {
		cfg.Install.Dir = DefaultInstallDir
	}

	if cfg.Installer.Output == "" {
		cfg.Installer.Output = DefaultInstallerOutput
	}

	if cfg.Bundle.OutputDir == "" {
		cfg.Bundle.OutputDir = DefaultOutputDir
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	return nil
}
