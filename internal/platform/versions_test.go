package platform

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"jfrogext/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedRunner(out string, err error) CommandRunner {
	return func(context.Context, string, ...string) ([]byte, error) {
		return []byte(out), err
	}
}

func TestParseCLIVersion(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		want    string
		wantErr bool
	}{
		{name: "jf output", output: "jf version 2.52.8\n", want: "2.52.8"},
		{name: "bare version", output: "2.0.0", want: "2.0.0"},
		{name: "v prefix", output: "jfrog version v1.2.3", want: "1.2.3"},
		{name: "empty", output: "  ", wantErr: true},
		{name: "garbage", output: "jf version unknown", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCLIVersion(tt.output)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMeetsMinimum(t *testing.T) {
	ok, err := MeetsMinimum("2.52.8", "2.0.0")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = MeetsMinimum("1.9.0", "2.0.0")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = MeetsMinimum("1.9.0", "not-a-version")
	assert.Error(t, err)
}

func TestVersions_ReleaseNotes(t *testing.T) {
	v := Versions{Xray: "3.80.1", CLI: "2.52.8"}
	assert.Equal(t, "https://www.jfrog.com/confluence/display/JFROG/Xray+Release+Notes#XrayReleaseNotes-Xray3.80.1", v.XrayReleaseNotes())
	assert.Equal(t, "https://github.com/jfrog/jfrog-cli/releases/tag/v2.52.8", v.CLIReleaseNotes())
	assert.Empty(t, Versions{}.XrayReleaseNotes())
	assert.Empty(t, Versions{}.CLIReleaseNotes())
}

func TestVersionProbe_Versions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, xrayVersionEndpoint, r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"xray_version":"3.80.1","xray_revision":"abc"}`))
	}))
	defer srv.Close()

	store := fakeSecrets{cfg: config.ExtensionConfig{URL: srv.URL, AuthType: config.AuthAccessToken, AccessToken: "tok"}}
	probe := NewVersionProbe(store, config.GetDefaultConfig()).WithRunner(fixedRunner("jf version 2.52.8", nil))

	v, err := probe.Versions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Versions{Xray: "3.80.1", CLI: "2.52.8"}, v)
}

func TestVersionProbe_PartialFailure(t *testing.T) {
	store := fakeSecrets{cfg: config.ExtensionConfig{}}
	probe := NewVersionProbe(store, config.GetDefaultConfig()).WithRunner(fixedRunner("jf version 1.0.0", nil))

	v, err := probe.Versions(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoURL)
	assert.Equal(t, "1.0.0", v.CLI, "an old CLI is reported, only warned about")
	assert.Empty(t, v.Xray)
}

func TestVersionProbe_CommandFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	store := fakeSecrets{cfg: config.ExtensionConfig{URL: srv.URL}}
	probe := NewVersionProbe(store, config.GetDefaultConfig()).WithRunner(fixedRunner("", errors.New("jf: not found")))

	v, err := probe.Versions(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, "jf: not found")
	assert.ErrorContains(t, err, "403")
	assert.Equal(t, Versions{}, v)
}
