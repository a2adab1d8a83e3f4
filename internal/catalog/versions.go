package catalog

import "fmt"

// version is one entry of the difficulty version table.
type version struct {
	label string
	name  string
}

// versions maps a difficulty version to the label of its infinite-class
// chart and the name of the game version that introduced it.
var versions = map[int]version{
	2: {label: "INF", name: "INFINITE INFECTION"},
	3: {label: "GRV", name: "GRAVITY WARS"},
	4: {label: "HVN", name: "HEAVENLY HAVEN"},
	5: {label: "VVD", name: "VIVID WAVE"},
	6: {label: "XCD", name: "EXCEED GEAR"},
}

// VersionLabel returns the short title label for a difficulty version,
// or "Version N" for versions not in the table.
func VersionLabel(v int) string {
	if e, ok := versions[v]; ok {
		return e.label
	}
	return fmt.Sprintf("Version %d", v)
}

// VersionName returns the game version name for a difficulty version,
// or "Version N" for versions not in the table.
func VersionName(v int) string {
	if e, ok := versions[v]; ok {
		return e.name
	}
	return fmt.Sprintf("Version %d", v)
}
