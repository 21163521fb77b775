package branding

import "testing"

func TestEmbeddedBranding(t *testing.T) {
	if CLIName() != "cordova-react-vite" {
		t.Errorf("CLIName() = %q", CLIName())
	}
	if EnvVar("home") != "CRV_HOME" {
		t.Errorf("EnvVar(home) = %q, want CRV_HOME", EnvVar("home"))
	}
	if Example() != "cordova-react-vite Boxit Tracker boxitsoft.ir" {
		t.Errorf("Example() = %q", Example())
	}
}
