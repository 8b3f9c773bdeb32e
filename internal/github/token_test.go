package github

import (
	"context"
	"testing"
)

func TestParseRepoURL(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantOwner string
		wantRepo  string
		wantOk    bool
	}{
		{
			name:      "https URL",
			raw:       "https://github.com/KrishnaswamyLab/TPHATE",
			wantOwner: "KrishnaswamyLab",
			wantRepo:  "TPHATE",
			wantOk:    true,
		},
		{
			name:      "http URL",
			raw:       "http://github.com/owner/repo",
			wantOwner: "owner",
			wantRepo:  "repo",
			wantOk:    true,
		},
		{
			name:      "www prefix",
			raw:       "https://www.github.com/owner/repo",
			wantOwner: "owner",
			wantRepo:  "repo",
			wantOk:    true,
		},
		{
			name:      "git suffix",
			raw:       "https://github.com/owner/repo.git",
			wantOwner: "owner",
			wantRepo:  "repo",
			wantOk:    true,
		},
		{
			name:      "trailing slash",
			raw:       "https://github.com/owner/repo/",
			wantOwner: "owner",
			wantRepo:  "repo",
			wantOk:    true,
		},
		{
			name:      "extra path segments",
			raw:       "https://github.com/owner/repo/tree/main",
			wantOwner: "owner",
			wantRepo:  "repo",
			wantOk:    true,
		},
		{
			name:      "bare host form",
			raw:       "github.com/owner/repo",
			wantOwner: "owner",
			wantRepo:  "repo",
			wantOk:    true,
		},
		{
			name:   "not github",
			raw:    "https://gitlab.com/owner/repo",
			wantOk: false,
		},
		{
			name:   "owner only",
			raw:    "https://github.com/owner",
			wantOk: false,
		},
		{
			name:   "empty",
			raw:    "",
			wantOk: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			owner, repo, ok := ParseRepoURL(tt.raw)
			if ok != tt.wantOk {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOk)
			}
			if !ok {
				return
			}
			if owner != tt.wantOwner || repo != tt.wantRepo {
				t.Errorf("got %s/%s, want %s/%s", owner, repo, tt.wantOwner, tt.wantRepo)
			}
		})
	}
}

func TestResolveAuthTokenPrefersEnv(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "ghp_testtoken")

	token, source, err := ResolveAuthToken(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if token != "ghp_testtoken" {
		t.Errorf("token = %q", token)
	}
	if source != AuthTokenSourceEnv {
		t.Errorf("source = %q, want %q", source, AuthTokenSourceEnv)
	}
}
