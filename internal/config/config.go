package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
	"github.com/pelletier/go-toml/v2"
)

// DefaultPath is the config file consulted when no --config flag is given.
const DefaultPath = "/etc/metrics-bootstrap/config.toml"

// envPrefix namespaces environment overrides (e.g. MBS_INSTALL_DIR).
const envPrefix = "mbs"

// Config carries every value the provisioning steps need. Values are resolved
// once at startup and passed explicitly between steps; nothing reads the
// environment after Load returns.
type Config struct {
	// InstallDir receives the exporter binaries.
	InstallDir string `toml:"install_dir" split_words:"true"`
	// SystemdDir receives the generated unit files.
	SystemdDir string `toml:"systemd_dir" split_words:"true"`

	NodeExporter  NodeExporter  `toml:"node_exporter"`
	SlurmExporter SlurmExporter `toml:"slurm_exporter"`
	Verify        Verify        `toml:"verify"`
}

// NodeExporter configures the prebuilt node exporter installation.
type NodeExporter struct {
	// Version pins the release archive to download.
	Version string `toml:"version"`
	Port    int    `toml:"port"`
	User    string `toml:"user"`
	// TextfileDir is the textfile-collector directory owned by User.
	TextfileDir string `toml:"textfile_dir" split_words:"true"`
	// DownloadBaseURL is the release host; the versioned archive path is
	// appended to it.
	DownloadBaseURL string `toml:"download_base_url" split_words:"true"`
}

// SlurmExporter configures the source-built Slurm exporter installation.
// The ref is an explicit pin; tracking the upstream default branch is opt-in
// by setting it to a branch name.
type SlurmExporter struct {
	RepoURL string `toml:"repo_url" split_words:"true"`
	Ref     string `toml:"ref"`
	Port    int    `toml:"port"`
	User    string `toml:"user"`
}

// Verify configures the endpoint probes.
type Verify struct {
	TimeoutSeconds int `toml:"timeout_seconds" split_words:"true"`
	Retries        int `toml:"retries"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		InstallDir: "/usr/local/bin",
		SystemdDir: "/etc/systemd/system",
		NodeExporter: NodeExporter{
			Version:         "1.8.2",
			Port:            9100,
			User:            "node_exporter",
			TextfileDir:     "/var/lib/node_exporter/textfile_collector",
			DownloadBaseURL: "https://github.com/prometheus/node_exporter/releases/download",
		},
		SlurmExporter: SlurmExporter{
			RepoURL: "https://github.com/vpenso/prometheus-slurm-exporter.git",
			Ref:     "0.20",
			Port:    8080,
			User:    "slurm_exporter",
		},
		Verify: Verify{
			TimeoutSeconds: 5,
			Retries:        3,
		},
	}
}

// Load resolves the effective configuration: defaults, then the TOML file at
// path, then MBS_* environment overrides. A missing file is only an error when
// path is not the default location.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		if path != DefaultPath {
			return Config{}, fmt.Errorf("config file %s: %w", path, err)
		}
	case err != nil:
		return Config{}, fmt.Errorf("read config file %s: %w", path, err)
	default:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("apply environment overrides: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.NodeExporter.Version == "" {
		return errors.New("node_exporter.version must not be empty")
	}
	if c.SlurmExporter.Ref == "" {
		return errors.New("slurm_exporter.ref must not be empty")
	}
	if c.NodeExporter.Port <= 0 || c.SlurmExporter.Port <= 0 {
		return errors.New("exporter ports must be positive")
	}
	if c.NodeExporter.User == c.SlurmExporter.User {
		return fmt.Errorf("exporters must run as distinct users (both %q)", c.NodeExporter.User)
	}
	return nil
}

// NodeExporterBinary is the install path of the node exporter binary.
func (c Config) NodeExporterBinary() string {
	return filepath.Join(c.InstallDir, "node_exporter")
}

// SlurmExporterBinary is the install path of the slurm exporter binary.
func (c Config) SlurmExporterBinary() string {
	return filepath.Join(c.InstallDir, "slurm_exporter")
}

// NodeExporterArchiveURL is the versioned release archive URL for the given
// GOARCH-style architecture.
func (c Config) NodeExporterArchiveURL(arch string) string {
	v := c.NodeExporter.Version
	return fmt.Sprintf("%s/v%s/node_exporter-%s.linux-%s.tar.gz", c.NodeExporter.DownloadBaseURL, v, v, arch)
}
