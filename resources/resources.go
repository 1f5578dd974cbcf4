// Package resources embeds the default icon set drawn by wthr-ink.
package resources

import "embed"

// Icons holds icon-<category>.png files at its root.
//
//go:embed icon-*.png
var Icons embed.FS
