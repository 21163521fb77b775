package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/mohammadFeiz/cordova-react-vite/internal/manifest"
	"github.com/mohammadFeiz/cordova-react-vite/internal/naming"
)

// runCLI executes the command tree in an isolated working directory and
// config home, returning stdout, stderr and the error.
func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("CRV_HOME", t.TempDir())

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
		resetFlags(rootCmd)
	})

	err := execute(context.Background(), args)
	return stdout.String(), stderr.String(), err
}

func resetFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	})
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func assertDirEmpty(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		names := make([]string, len(entries))
		for i, e := range entries {
			names[i] = e.Name()
		}
		t.Errorf("expected %s to be empty, found %v", dir, names)
	}
}

func TestRootRequiresNameAndDomain(t *testing.T) {
	for _, args := range [][]string{{}, {"boxitsoft.ir"}} {
		dir := chdirTemp(t)
		_, _, err := runCLI(t, args...)
		if err == nil {
			t.Fatalf("args %v: expected error", args)
		}
		if !IsUsageError(err) {
			t.Errorf("args %v: error %v should be a usage error", args, err)
		}
		if !strings.Contains(err.Error(), "wrong statement, example: cordova-react-vite Boxit Tracker boxitsoft.ir") {
			t.Errorf("args %v: unexpected message %q", args, err.Error())
		}
		assertDirEmpty(t, dir)
	}
}

func TestCreateDryRun(t *testing.T) {
	dir := chdirTemp(t)
	stdout, _, err := runCLI(t, "Boxit", "Tracker", "boxitsoft.ir", "--dry-run", "--shell", "posix")
	if err != nil {
		t.Fatalf("dry run error: %v", err)
	}

	for _, want := range []string{
		"npm name: boxit-tracker",
		"cordova id: ir.boxitsoft.boxittracker",
		"would run: npm create vite@latest react -- --template react-ts",
		`would run: npx cordova create cordova ir.boxitsoft.boxittracker "Boxit Tracker"`,
		"would run: npx cordova plugin add cordova-sqlite-storage",
		"package.json written",
		"Next steps:",
	} {
		if !strings.Contains(stdout, want) {
			t.Errorf("output missing %q\n--- output ---\n%s", want, stdout)
		}
	}
	assertDirEmpty(t, dir)
}

func TestCreateDryRunVariantAndPlugins(t *testing.T) {
	chdirTemp(t)
	stdout, _, err := runCLI(t, "Field", "App", "example.com",
		"--dry-run", "--variant", "minimal", "--platform", "ios", "--plugin", "cordova-plugin-camera")
	if err != nil {
		t.Fatalf("dry run error: %v", err)
	}
	if strings.Contains(stdout, "cordova-sqlite-storage") {
		t.Error("minimal variant should not add the sqlite plugin")
	}
	if !strings.Contains(stdout, "would run: npx cordova platform add ios") {
		t.Errorf("platform flag ignored:\n%s", stdout)
	}
	if !strings.Contains(stdout, "would run: npx cordova plugin add cordova-plugin-camera") {
		t.Errorf("plugin flag ignored:\n%s", stdout)
	}
}

func TestCreateDryRunRefusesExistingProject(t *testing.T) {
	dir := chdirTemp(t)
	if err := os.MkdirAll(filepath.Join(dir, "boxit-tracker"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "boxit-tracker", "keep.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	_, _, err := runCLI(t, "Boxit", "Tracker", "boxitsoft.ir", "--dry-run")
	if err == nil || !strings.Contains(err.Error(), "not empty") {
		t.Fatalf("expected existing-directory error, got %v", err)
	}
}

func TestCreateInvalidOptions(t *testing.T) {
	tests := []struct {
		flag  string
		value string
	}{
		{"--variant", "angular"},
		{"--shell", "fish"},
		{"--existing", "overwrite"},
	}

	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			dir := chdirTemp(t)
			_, _, err := runCLI(t, "App", "example.com", "--dry-run", tt.flag, tt.value)
			if err == nil {
				t.Fatalf("%s %s: expected error", tt.flag, tt.value)
			}
			assertDirEmpty(t, dir)
		})
	}
}

func TestNamesJSON(t *testing.T) {
	stdout, _, err := runCLI(t, "names", "Boxit", "Tracker", "ir.boxitsoft", "--json")
	if err != nil {
		t.Fatalf("names error: %v", err)
	}

	var ids naming.Identifiers
	if err := json.Unmarshal([]byte(stdout), &ids); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, stdout)
	}
	if ids.NativeID != "boxitsoft.ir.boxittracker" {
		t.Errorf("nativeId = %q", ids.NativeID)
	}
	if ids.PackageName != "boxit-tracker" {
		t.Errorf("packageName = %q", ids.PackageName)
	}
}

func TestNamesWarnsOnUnusualID(t *testing.T) {
	stdout, _, err := runCLI(t, "names", "App", "my-site.com")
	if err != nil {
		t.Fatalf("names error: %v", err)
	}
	if !strings.Contains(stdout, "cordova id:   com.my-site.app") {
		t.Errorf("unexpected output:\n%s", stdout)
	}
	if !strings.Contains(stdout, "[WARN]") {
		t.Errorf("expected a warning for the hyphenated segment:\n%s", stdout)
	}
}

func TestNameWordsMatchingSubcommands(t *testing.T) {
	tests := []struct {
		args        []string
		wantPackage string
	}{
		{[]string{"help", "desk", "example.com"}, "help-desk"},
		{[]string{"config", "app", "example.com"}, "config-app"},
		{[]string{"version", "two", "example.com"}, "version-two"},
		{[]string{"doctor", "who", "example.com"}, "doctor-who"},
		{[]string{"variants", "example.com"}, "variants"},
		{[]string{"names", "App"}, "names"},
		{[]string{"completion", "app", "example.com"}, "completion-app"},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			dir := chdirTemp(t)
			stdout, _, err := runCLI(t, append(tt.args, "--dry-run")...)
			if err != nil {
				t.Fatalf("error: %v", err)
			}
			if !strings.Contains(stdout, "npm name: "+tt.wantPackage) {
				t.Errorf("expected project %s, got:\n%s", tt.wantPackage, stdout)
			}
			if !strings.Contains(stdout, "would run: npm create vite@latest") {
				t.Errorf("project was not scaffolded:\n%s", stdout)
			}
			assertDirEmpty(t, dir)
		})
	}
}

func TestSubcommandsStillDispatch(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"help", "names"}, "Print the identifiers"},
		{[]string{"names", "Boxit", "Tracker", "boxitsoft.ir"}, "npm name:     boxit-tracker"},
		{[]string{"config", "list"}, "platform = "},
		{[]string{"names", "--help"}, "Print the identifiers"},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			stdout, _, err := runCLI(t, tt.args...)
			if err != nil {
				t.Fatalf("error: %v", err)
			}
			if !strings.Contains(stdout, tt.want) {
				t.Errorf("output missing %q:\n%s", tt.want, stdout)
			}
			if strings.Contains(stdout, "would run:") {
				t.Errorf("subcommand created a project:\n%s", stdout)
			}
		})
	}
}

func TestConfigGetUnknownKey(t *testing.T) {
	_, _, err := runCLI(t, "config", "get", "colour")
	if err == nil || !strings.Contains(err.Error(), "unknown config key") {
		t.Fatalf("expected unknown key error, got %v", err)
	}
}

func TestUnusualPackageNameWarns(t *testing.T) {
	chdirTemp(t)
	_, stderr, err := runCLI(t, "Bob's", "App", "example.com", "--dry-run")
	if err != nil {
		t.Fatalf("dry run error: %v", err)
	}
	if !strings.Contains(stderr, `[WARN] npm name "bob's-app"`) {
		t.Errorf("expected npm name warning on stderr:\n%s", stderr)
	}
}

func TestVariants(t *testing.T) {
	stdout, _, err := runCLI(t, "variants")
	if err != nil {
		t.Fatalf("variants error: %v", err)
	}
	for _, want := range []string{"* aio", "minimal", "tailwind", "cordova-sqlite-storage"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("output missing %q:\n%s", want, stdout)
		}
	}
}

func TestConfigSetGet(t *testing.T) {
	chdirTemp(t)
	home := t.TempDir()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	t.Setenv("CRV_HOME", home)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
		viper.Set("platform", nil)
	})
	if err := execute(context.Background(), []string{"config", "set", "platform", "ios"}); err != nil {
		t.Fatalf("config set error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(home, "config.yaml")); err != nil {
		t.Fatalf("config file not written: %v", err)
	}

	out.Reset()
	if err := execute(context.Background(), []string{"config", "get", "platform"}); err != nil {
		t.Fatalf("config get error: %v", err)
	}
	if strings.TrimSpace(out.String()) != "ios" {
		t.Errorf("config get platform = %q, want ios", out.String())
	}
}

func TestDoctorCheckManifest(t *testing.T) {
	dir := chdirTemp(t)
	path := filepath.Join(dir, "package.json")
	m := manifest.Build("boxit-tracker", "Boxit Tracker", manifest.BuildOptions{})
	data, err := manifest.Marshal(m)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	stdout, _, err := runCLI(t, "doctor", "--check-manifest", path)
	if err != nil {
		t.Fatalf("doctor error: %v", err)
	}
	if !strings.Contains(stdout, "[ OK ] Valid manifest: boxit-tracker (v1.0.0)") {
		t.Errorf("unexpected output:\n%s", stdout)
	}

	bad := filepath.Join(dir, "bad.json")
	os.WriteFile(bad, []byte(`{"name":"Bad Name","version":"1.0.0","description":"","scripts":{}}`), 0644)
	stdout, _, err = runCLI(t, "doctor", "--check-manifest", bad)
	if err == nil {
		t.Fatal("expected error for invalid manifest")
	}
	if !strings.Contains(stdout, "validation issue(s)") {
		t.Errorf("unexpected output:\n%s", stdout)
	}
}

func TestVersionShort(t *testing.T) {
	buildVersion = "1.2.3"
	stdout, _, err := runCLI(t, "version", "--short")
	if err != nil {
		t.Fatalf("version error: %v", err)
	}
	if strings.TrimSpace(stdout) != "1.2.3" {
		t.Errorf("version --short = %q", stdout)
	}
}
