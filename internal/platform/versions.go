package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os/exec"
	"strings"

	"jfrogext/internal/config"
	"jfrogext/pkg/logging"

	"github.com/Masterminds/semver/v3"
)

const (
	xrayVersionEndpoint = "/xray/api/v1/system/version"

	xrayReleaseNotesBase = "https://www.jfrog.com/confluence/display/JFROG/Xray+Release+Notes#XrayReleaseNotes-Xray"
	cliReleaseNotesBase  = "https://github.com/jfrog/jfrog-cli/releases/tag/v"
)

// Versions holds display-only version metadata.
type Versions struct {
	Xray string `json:"xrayVersion,omitempty"`
	CLI  string `json:"jfrogCliVersion,omitempty"`
}

// XrayReleaseNotes links to the release notes of the Xray version, if known.
func (v Versions) XrayReleaseNotes() string {
	if v.Xray == "" {
		return ""
	}
	return xrayReleaseNotesBase + v.Xray
}

// CLIReleaseNotes links to the GitHub release of the CLI version, if known.
func (v Versions) CLIReleaseNotes() string {
	if v.CLI == "" {
		return ""
	}
	return cliReleaseNotesBase + v.CLI
}

// CommandRunner runs a command and returns its standard output.
type CommandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	var stdout bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("running %s: %w", name, err)
	}
	return stdout.Bytes(), nil
}

// VersionProbe discovers the Xray and JFrog CLI versions.
type VersionProbe struct {
	store      SecretLoader
	client     *http.Client
	binary     string
	minVersion string
	run        CommandRunner
}

// NewVersionProbe creates a probe from the application config.
func NewVersionProbe(store SecretLoader, cfg config.AppConfig) *VersionProbe {
	timeout := cfg.Verify.Timeout
	if timeout <= 0 {
		timeout = config.DefaultVerifyTimeout
	}
	binary := cfg.CLI.Binary
	if binary == "" {
		binary = config.DefaultBinary
	}
	return &VersionProbe{
		store:      store,
		client:     &http.Client{Timeout: timeout},
		binary:     binary,
		minVersion: cfg.CLI.MinVersion,
		run:        runCommand,
	}
}

// WithRunner replaces the command runner used for the CLI version.
func (p *VersionProbe) WithRunner(run CommandRunner) *VersionProbe {
	p.run = run
	return p
}

// Versions returns whatever versions could be discovered. The error joins
// every lookup that failed; the returned Versions are valid either way.
func (p *VersionProbe) Versions(ctx context.Context) (Versions, error) {
	var (
		v    Versions
		errs []error
	)

	if cli, err := p.cliVersion(ctx); err != nil {
		errs = append(errs, err)
	} else {
		v.CLI = cli
	}

	if xray, err := p.xrayVersion(ctx); err != nil {
		errs = append(errs, err)
	} else {
		v.Xray = xray
	}

	return v, errors.Join(errs...)
}

func (p *VersionProbe) cliVersion(ctx context.Context) (string, error) {
	out, err := p.run(ctx, p.binary, "--version")
	if err != nil {
		return "", fmt.Errorf("CLI version: %w", err)
	}
	version, err := ParseCLIVersion(string(out))
	if err != nil {
		return "", fmt.Errorf("CLI version: %w", err)
	}
	if p.minVersion != "" {
		if ok, err := MeetsMinimum(version, p.minVersion); err != nil {
			logging.Warn("Versions", "Invalid minimum CLI version %q: %v", p.minVersion, err)
		} else if !ok {
			logging.Warn("Versions", "JFrog CLI %s is older than the supported minimum %s", version, p.minVersion)
		}
	}
	return version, nil
}

func (p *VersionProbe) xrayVersion(ctx context.Context) (string, error) {
	cfg, err := p.store.LoadWithSecrets(ctx)
	if err != nil {
		return "", fmt.Errorf("Xray version: %w", err)
	}
	req, err := newRequest(ctx, cfg, xrayVersionEndpoint)
	if err != nil {
		return "", fmt.Errorf("Xray version: %w", err)
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("Xray version: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("Xray version: %s %s", resp.Status, readBody(resp))
	}
	var payload struct {
		XrayVersion  string `json:"xray_version"`
		XrayRevision string `json:"xray_revision"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("Xray version: decoding response: %w", err)
	}
	if payload.XrayVersion == "" {
		return "", errors.New("Xray version: empty version in response")
	}
	return payload.XrayVersion, nil
}

// ParseCLIVersion extracts the semantic version from `jf --version` output,
// e.g. "jf version 2.52.8".
func ParseCLIVersion(output string) (string, error) {
	fields := strings.Fields(output)
	if len(fields) == 0 {
		return "", errors.New("empty version output")
	}
	raw := fields[len(fields)-1]
	v, err := semver.NewVersion(raw)
	if err != nil {
		return "", fmt.Errorf("parsing %q: %w", raw, err)
	}
	return v.String(), nil
}

// MeetsMinimum reports whether version satisfies ">= minimum".
func MeetsMinimum(version, minimum string) (bool, error) {
	c, err := semver.NewConstraint(">= " + minimum)
	if err != nil {
		return false, err
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return false, err
	}
	return c.Check(v), nil
}
