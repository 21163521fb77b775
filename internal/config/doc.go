// Package config manages user-level settings stored at
// ~/.cordova-react-vite/config.yaml, overridable through CRV_* environment
// variables (optionally loaded from a .env file) and command-line flags.
// Settings include the default preset, Cordova platform, extra plugins,
// script shell flavour, and the policy for an existing project directory.
package config
