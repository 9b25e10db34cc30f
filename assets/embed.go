package assets

import (
	_ "embed"
)

// Embedded default page catalog for pinchview.
//
//go:embed catalog.yaml
var catalogManifest []byte

// CatalogManifest returns a copy of the embedded YAML catalog manifest.
func CatalogManifest() []byte {
	out := make([]byte, len(catalogManifest))
	copy(out, catalogManifest)
	return out
}

// CatalogManifestName is the file name of the embedded manifest. Its
// extension selects the decoder.
const CatalogManifestName = "catalog.yaml"
