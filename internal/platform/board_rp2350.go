//go:build rp2350

package platform

// DefaultBoard is the settings profile for this build target.
const DefaultBoard = "pico2"
