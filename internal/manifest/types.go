package manifest

// Manifest is the descriptor read from an extension's root directory
// (plugin-info.json, or its plugin-info.yaml variant).
type Manifest struct {
	ID          string `yaml:"id" json:"id"`
	DisplayName string `yaml:"displayName" json:"displayName"`
	Version     string `yaml:"version,omitempty" json:"version,omitempty"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Author      string `yaml:"author,omitempty" json:"author,omitempty"`
	AssetDir    string `yaml:"assetDir,omitempty" json:"assetDir,omitempty"`

	// Extra holds descriptor fields this core does not interpret. They are
	// preserved so the settings subsystem can pass them through untouched.
	Extra map[string]interface{} `yaml:"-" json:"-"`
}

// FileNames are the manifest file names probed at an extension's root,
// in preference order.
var FileNames = []string{"plugin-info.json", "plugin-info.yaml"}

// knownKeys are the top-level descriptor fields parsed into Manifest;
// everything else lands in Extra.
var knownKeys = map[string]bool{
	"id":          true,
	"displayName": true,
	"version":     true,
	"description": true,
	"author":      true,
	"assetDir":    true,
}
