package version

import (
	"runtime/debug"
	"strings"
	"testing"
)

func TestFromBuildInfo(t *testing.T) {
	settings := []debug.BuildSetting{
		{Key: "vcs.revision", Value: "0123456789abcdef"},
		{Key: "vcs.modified", Value: "true"},
		{Key: "vcs.time", Value: "2026-03-02T10:00:00Z"},
	}

	tests := []struct {
		name        string
		mainVersion string
		version     string
		commit      string
		wantVersion string
		wantCommit  string
	}{
		{"from vcs", "(devel)", "", "", "dev-20260302", "0123456-dirty"},
		{"module version", "v0.3.1", "", "", "v0.3.1", "0123456-dirty"},
		{"ldflags win", "v0.3.1", "v1.0.0", "abc", "v1.0.0", "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := &debug.BuildInfo{Main: debug.Module{Version: tt.mainVersion}, Settings: settings}
			v, c := fromBuildInfo(info, tt.version, tt.commit)
			if v != tt.wantVersion || c != tt.wantCommit {
				t.Errorf("fromBuildInfo() = %q, %q, want %q, %q", v, c, tt.wantVersion, tt.wantCommit)
			}
		})
	}
}

func TestFull(t *testing.T) {
	if full := Full(); !strings.Contains(full, Version) || !strings.Contains(full, "commit: ") {
		t.Errorf("Full() = %q", full)
	}
	if info := Get(); info.Version != Version || !strings.Contains(info.Platform, "/") {
		t.Errorf("Get() = %+v", info)
	}
}
