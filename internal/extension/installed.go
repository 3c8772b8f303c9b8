package extension

import (
	"net/http"
	"path/filepath"

	"github.com/inkframe-labs/inkframe/internal/manifest"
	"github.com/inkframe-labs/inkframe/internal/router"
)

// Installed is an extension loaded from a working copy on disk. It carries
// only manifest metadata and contributes no endpoints.
type Installed struct {
	id          string
	displayName string
	dir         string
}

func (e *Installed) ID() string          { return e.id }
func (e *Installed) DisplayName() string { return e.displayName }

// Dir returns the extension's working copy directory.
func (e *Installed) Dir() string { return e.dir }

// AssetInstalled is an installed extension whose manifest declares an asset
// directory. It serves those files under /ext/<id>/.
type AssetInstalled struct {
	Installed
	assetDir string
}

// EndpointGroups contributes a single file-serving group for the asset
// directory.
func (e *AssetInstalled) EndpointGroups() []router.EndpointGroup {
	prefix := "/ext/" + e.id + "/"
	root := filepath.Join(e.dir, e.assetDir)
	handler := http.StripPrefix(prefix, http.FileServer(http.Dir(root)))

	return []router.EndpointGroup{{
		Name: e.id + "-assets",
		Routes: []router.Route{
			{Method: http.MethodGet, Pattern: prefix, Handler: handler},
		},
	}}
}

// NewInstalled builds the extension for a validated manifest and its working
// copy directory. Manifests that declare an asset directory get the
// file-serving capability; the rest are metadata only.
func NewInstalled(m *manifest.Manifest, dir string) Extension {
	name := m.DisplayName
	if name == "" {
		name = m.ID
	}

	base := Installed{id: m.ID, displayName: name, dir: dir}
	if m.AssetDir != "" {
		return &AssetInstalled{Installed: base, assetDir: m.AssetDir}
	}
	return &base
}
