package plumbing

import (
	"fmt"
	"os"
	"strings"

	"github.com/brickster241/gegit/utils"
	"github.com/brickster241/gegit/utils/errors"
	"github.com/brickster241/gegit/utils/log"
	"gopkg.in/ini.v1"
)

// UntrackedMode controls whether untracked files are listed.
type UntrackedMode string

const (
	UntrackedNormal UntrackedMode = "normal"
	UntrackedNo     UntrackedMode = "no"
)

// ConfigKeyNotFoundError is returned by GetConfigValue for unset keys.
type ConfigKeyNotFoundError struct {
	Key string
}

func (e *ConfigKeyNotFoundError) Error() string {
	return "config key not found: " + e.Key
}

// InvalidUntrackedModeError is returned for a showUntrackedFiles value that is not a known mode.
type InvalidUntrackedModeError struct {
	Value string
}

func (e *InvalidUntrackedModeError) Error() string {
	return fmt.Sprintf("invalid untracked files mode %q (expected no, normal or all)", e.Value)
}

// ParseUntrackedMode maps a config or flag value onto a mode. "all" lists untracked files like "normal"; boolean spellings are accepted.
func ParseUntrackedMode(value string) (UntrackedMode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "no", "false", "off", "0":
		return UntrackedNo, nil
	case "", "normal", "all", "yes", "true", "on", "1":
		return UntrackedNormal, nil
	}
	return "", errors.WithStackTrace(&InvalidUntrackedModeError{Value: value})
}

// RepoConfig holds the settings from .git/config that gegit reads.
type RepoConfig struct {
	ExcludesFile  string        // core.excludesFile, "~" expanded
	ShowUntracked UntrackedMode // status.showUntrackedFiles
	UserName      string        // user.name
	UserEmail     string        // user.email
}

// DefaultRepoConfig is used when .git/config is missing.
func DefaultRepoConfig() *RepoConfig {
	return &RepoConfig{ShowUntracked: UntrackedNormal}
}

// LoadConfig reads .git/config. Git keys are case-insensitive, so sections and keys are matched that way.
func (r *Repo) LoadConfig() (*RepoConfig, error) {

	cfgPath := r.GitPath("config")
	if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
		log.Debugf("no config at %s, using defaults", cfgPath)
		return DefaultRepoConfig(), nil
	}

	cfg, err := ini.InsensitiveLoad(cfgPath)
	if err != nil {
		return nil, errors.WithStackTraceAndPrefix(err, "reading %s", cfgPath)
	}

	out := DefaultRepoConfig()

	// core.excludesFile
	if excludes := cfg.Section("core").Key("excludesfile").String(); excludes != "" {
		expanded, err := utils.ExpandPath(excludes)
		if err != nil {
			return nil, errors.WithStackTrace(err)
		}
		out.ExcludesFile = expanded
	}

	// status.showUntrackedFiles
	if key := cfg.Section("status").Key("showuntrackedfiles"); key.String() != "" {
		mode, err := ParseUntrackedMode(key.String())
		if err != nil {
			return nil, errors.WithStackTraceAndPrefix(err, "status.showUntrackedFiles in %s", cfgPath)
		}
		out.ShowUntracked = mode
	}

	out.UserName = cfg.Section("user").Key("name").String()
	out.UserEmail = cfg.Section("user").Key("email").String()

	return out, nil
}

// splitConfigKey turns "section.name" or "section.sub.name" into the ini section and key names.
func splitConfigKey(key string) (string, string, error) {
	first := strings.Index(key, ".")
	last := strings.LastIndex(key, ".")
	if first <= 0 || last == len(key)-1 {
		return "", "", errors.Errorf("invalid config key: %s", key)
	}

	section := strings.ToLower(key[:first])
	if first != last {
		section = fmt.Sprintf("%s %q", section, key[first+1:last])
	}
	return section, key[last+1:], nil
}

// GetConfigValue returns the value of a dotted config key such as "user.name".
func (r *Repo) GetConfigValue(key string) (string, error) {
	section, name, err := splitConfigKey(key)
	if err != nil {
		return "", err
	}

	cfg, err := ini.LoadSources(ini.LoadOptions{Insensitive: true, Loose: true}, r.GitPath("config"))
	if err != nil {
		return "", errors.WithStackTraceAndPrefix(err, "reading %s", r.GitPath("config"))
	}

	sec, err := cfg.GetSection(strings.ToLower(section))
	if err != nil || !sec.HasKey(strings.ToLower(name)) {
		return "", errors.WithStackTrace(&ConfigKeyNotFoundError{Key: key})
	}
	return sec.Key(strings.ToLower(name)).String(), nil
}

// SetConfigValue writes a dotted config key, creating .git/config and the section as needed.
func (r *Repo) SetConfigValue(key, value string) error {
	section, name, err := splitConfigKey(key)
	if err != nil {
		return err
	}

	cfgPath := r.GitPath("config")
	cfg, err := ini.LoadSources(ini.LoadOptions{Loose: true}, cfgPath)
	if err != nil {
		return errors.WithStackTraceAndPrefix(err, "reading %s", cfgPath)
	}

	cfg.Section(section).Key(name).SetValue(value)
	log.WithField("key", key).Debug("config value set")

	if err := cfg.SaveTo(cfgPath); err != nil {
		return errors.WithStackTrace(err)
	}
	return nil
}
