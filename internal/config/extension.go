package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"
)

var (
	ErrInvalidAuthType = errors.New("invalid authentication type")
	ErrInvalidPolicy   = errors.New("invalid scanning policy")
)

// AuthType selects which credentials authenticate against the platform.
type AuthType string

const (
	AuthBasic       AuthType = "basic"
	AuthAccessToken AuthType = "accessToken"
)

// ParseAuthType accepts the persisted spelling and a few CLI-friendly aliases.
func ParseAuthType(s string) (AuthType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "basic":
		return AuthBasic, nil
	case "accesstoken", "access-token", "token":
		return AuthAccessToken, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidAuthType, s)
}

// Policy is the scanning policy that filters scan results.
type Policy int

const (
	PolicyVulnerabilities Policy = iota
	PolicyProject
	PolicyWatches
)

func (p Policy) String() string {
	switch p {
	case PolicyProject:
		return "project"
	case PolicyWatches:
		return "watches"
	default:
		return "allVulnerabilities"
	}
}

// ParsePolicy is the inverse of Policy.String.
func ParsePolicy(s string) (Policy, error) {
	switch strings.TrimSpace(s) {
	case "allVulnerabilities", "vulnerabilities":
		return PolicyVulnerabilities, nil
	case "project":
		return PolicyProject, nil
	case "watches":
		return PolicyWatches, nil
	}
	return PolicyVulnerabilities, fmt.Errorf("%w: %q", ErrInvalidPolicy, s)
}

// ExtensionConfig holds the connection details for the JFrog platform and the
// optional scanning policy selector. Empty strings mean "not set".
// Password and AccessToken never reach the YAML file; see Store.
type ExtensionConfig struct {
	URL         string   `yaml:"url,omitempty" json:"url,omitempty"`
	AuthType    AuthType `yaml:"authType,omitempty" json:"authType,omitempty"`
	Username    string   `yaml:"username,omitempty" json:"username,omitempty"`
	Password    string   `yaml:"-" json:"password,omitempty"`
	AccessToken string   `yaml:"-" json:"accessToken,omitempty"`
	Project     string   `yaml:"project,omitempty" json:"project,omitempty"`
	Watches     string   `yaml:"watches,omitempty" json:"watches,omitempty"`
}

// UsesAccessToken reports whether the token fields are the active credentials.
// Anything but an explicit access token mode is treated as basic auth.
func (c ExtensionConfig) UsesAccessToken() bool {
	return c.AuthType == AuthAccessToken
}

// DerivePolicy infers the active policy from which selector field is populated.
// Watches wins when both are present.
func DerivePolicy(cfg ExtensionConfig) Policy {
	policy := PolicyVulnerabilities
	if cfg.Project != "" {
		policy = PolicyProject
	}
	if cfg.Watches != "" {
		policy = PolicyWatches
	}
	return policy
}

// Reconcile returns the sanitized copy of draft that is safe to persist.
// The steps run in a fixed order:
//  1. Vulnerabilities or Project policy drops the watch list.
//  2. Vulnerabilities or Watches policy drops the project.
//  3. While editing connection details, the credentials of the inactive auth mode are dropped.
//  4. Otherwise both secrets are dropped, since they were not re-entered.
func Reconcile(draft ExtensionConfig, policy Policy, editingConnection bool) ExtensionConfig {
	out := draft

	if policy == PolicyVulnerabilities || policy == PolicyProject {
		out.Watches = ""
	}
	if policy == PolicyVulnerabilities || policy == PolicyWatches {
		out.Project = ""
	}

	if editingConnection {
		if out.UsesAccessToken() {
			out.Username = ""
			out.Password = ""
		} else {
			out.AccessToken = ""
		}
	} else {
		out.Password = ""
		out.AccessToken = ""
	}

	return out
}

// HasFullConnectionDetails reports whether the draft carries a URL plus a
// complete set of credentials (username and password, or an access token).
func HasFullConnectionDetails(cfg ExtensionConfig) bool {
	if cfg.URL == "" {
		return false
	}
	return (cfg.Username != "" && cfg.Password != "") || cfg.AccessToken != ""
}

// PolicyChanged reports whether the policy or either selector field differs
// from the saved snapshot.
func PolicyChanged(savedPolicy, policy Policy, saved, draft ExtensionConfig) bool {
	if savedPolicy != policy {
		return true
	}
	return saved.Watches != draft.Watches || saved.Project != draft.Project
}

// WatchList splits the comma-delimited watch list into trimmed, unique names.
func WatchList(cfg ExtensionConfig) []string {
	names := lo.Map(strings.Split(cfg.Watches, ","), func(s string, _ int) string {
		return strings.TrimSpace(s)
	})
	return lo.Uniq(lo.Compact(names))
}

const redactedValue = "********"

// Redacted returns a copy with secrets masked, for logs and command output.
func Redacted(cfg ExtensionConfig) ExtensionConfig {
	if cfg.Password != "" {
		cfg.Password = redactedValue
	}
	if cfg.AccessToken != "" {
		cfg.AccessToken = redactedValue
	}
	return cfg
}
