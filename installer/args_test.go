package installer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAngularNewArgs(t *testing.T) {
	cases := []struct {
		name string
		opts NewProjectOptions
		args []string
	}{
		{
			name: "pinned version with routing and scss",
			opts: NewProjectOptions{
				Name:       "shop-admin",
				CLIVersion: "17.3.2",
				Routing:    true,
				Style:      "scss",
			},
			args: []string{
				"--yes", "@angular/cli@17.3.2", "new", "shop-admin",
				"--routing=true", "--style=scss", "--skip-git", "--defaults",
			},
		},
		{
			name: "defaults fill version and style",
			opts: NewProjectOptions{
				Name: "demo",
			},
			args: []string{
				"--yes", "@angular/cli@latest", "new", "demo",
				"--routing=false", "--style=css", "--skip-git", "--defaults",
			},
		},
		{
			name: "skip install appends flag",
			opts: NewProjectOptions{
				Name:        "demo",
				CLIVersion:  "16.2.0",
				SkipInstall: true,
			},
			args: []string{
				"--yes", "@angular/cli@16.2.0", "new", "demo",
				"--routing=false", "--style=css", "--skip-git", "--defaults",
				"--skip-install",
			},
		},
	}

	for _, test := range cases {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.args, angularNewArgs(test.opts))
		})
	}
}

func TestInstallArgs(t *testing.T) {
	cases := []struct {
		name           string
		specs          []string
		dev            bool
		legacyPeerDeps bool
		args           []string
	}{
		{
			name:  "runtime install",
			specs: []string{"@angular/material@17.3.2", "ngx-toastr@18.0.0"},
			args:  []string{"install", "@angular/material@17.3.2", "ngx-toastr@18.0.0"},
		},
		{
			name:  "dev install",
			specs: []string{"prettier@3.2.5"},
			dev:   true,
			args:  []string{"install", "prettier@3.2.5", "--save-dev"},
		},
		{
			name:           "legacy peer deps retry",
			specs:          []string{"ngx-toastr@18.0.0"},
			legacyPeerDeps: true,
			args:           []string{"install", "ngx-toastr@18.0.0", "--legacy-peer-deps"},
		},
		{
			name:           "dev retry keeps both flags ordered",
			specs:          []string{"prettier@3.2.5"},
			dev:            true,
			legacyPeerDeps: true,
			args:           []string{"install", "prettier@3.2.5", "--save-dev", "--legacy-peer-deps"},
		},
	}

	for _, test := range cases {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.args, installArgs(test.specs, test.dev, test.legacyPeerDeps))
		})
	}
}

func TestGitInitArgs(t *testing.T) {
	steps := gitInitArgs("Initial commit")

	assert.Equal(t, [][]string{
		{"init"},
		{"add", "-A"},
		{"commit", "-m", "Initial commit"},
	}, steps)
}
