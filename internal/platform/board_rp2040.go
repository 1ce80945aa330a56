//go:build rp2040

package platform

// DefaultBoard is the settings profile for this build target.
const DefaultBoard = "pico"
