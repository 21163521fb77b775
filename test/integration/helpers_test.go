//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	BinDir  string // stub npm/npx, prepended to PATH
	WorkDir string // where projects are created
	LogFile string // one line per stub invocation: "<cwd>|<program> <args>"
}

// failOnMatch makes a stub exit 3 when its arguments contain $CRV_STUB_FAIL.
const failOnMatch = `if [ -n "$CRV_STUB_FAIL" ]; then
  case "$*" in
    *"$CRV_STUB_FAIL"*) exit 3 ;;
  esac
fi`

// npmStub mimics the parts of npm the scaffolder relies on.
const npmStub = `#!/bin/sh
echo "$PWD|npm $*" >> "$CRV_STUB_LOG"
` + failOnMatch + `
if [ "$1" = "create" ]; then
  mkdir -p "$3"
  printf '{"name":"%s","private":true}\n' "$3" > "$3/package.json"
  cat > "$3/index.html" <<'HTML'
<!doctype html>
<html lang="en">
  <body>
    <div id="root"></div>
    <script type="module" src="/src/main.tsx"></script>
  </body>
</html>
HTML
fi
exit 0
`

// npxStub mimics "npx cordova" create, platform add and plugin add.
const npxStub = `#!/bin/sh
echo "$PWD|npx $*" >> "$CRV_STUB_LOG"
` + failOnMatch + `
[ "$1" = "cordova" ] || exit 1
shift
case "$1" in
  create)
    mkdir -p "$2/www"
    printf '<widget id="%s"><name>%s</name></widget>\n' "$3" "$4" > "$2/config.xml"
    ;;
  platform)
    mkdir -p "platforms/$3"
    ;;
  plugin)
    mkdir -p "plugins/$3"
    ;;
  *)
    exit 1
    ;;
esac
exit 0
`

// setupTestEnv installs the stub tools on PATH and sandboxes the working
// directory. The env vars are restored after the test.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("stub tools are POSIX shell scripts")
	}

	work, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	env := &testEnv{
		BinDir:  t.TempDir(),
		WorkDir: work,
	}
	env.LogFile = filepath.Join(t.TempDir(), "invocations.log")

	writeExecutable(t, filepath.Join(env.BinDir, "npm"), npmStub)
	writeExecutable(t, filepath.Join(env.BinDir, "npx"), npxStub)

	t.Setenv("PATH", env.BinDir+string(os.PathListSeparator)+os.Getenv("PATH"))
	t.Setenv("CRV_STUB_LOG", env.LogFile)
	t.Setenv("CRV_STUB_FAIL", "")
	return env
}

// invocations returns the logged stub calls in order.
func (e *testEnv) invocations(t *testing.T) []string {
	t.Helper()
	data, err := os.ReadFile(e.LogFile)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		t.Fatalf("reading invocation log: %v", err)
	}
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}

func writeExecutable(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0755); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// assertFileExists fails the test if the file does not exist.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s (error: %v)", path, err)
	}
}

// assertFileNotExists fails the test if the file exists.
func assertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("expected file NOT to exist: %s", path)
	}
}

// assertDirExists fails the test if the directory does not exist.
func assertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Errorf("expected directory to exist: %s (error: %v)", path, err)
		return
	}
	if !info.IsDir() {
		t.Errorf("expected %s to be a directory, but it is a file", path)
	}
}

// assertFileContains fails if the file doesn't exist or doesn't contain substr.
func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("file %s does not contain %q.\nContents:\n%s", path, substr, string(data))
	}
}
