// Package toolchain checks that the external tools the scaffolder shells out
// to (node, npm, npx, and optionally the Android build chain) are installed
// and recent enough.
package toolchain
