package dictionary

import (
	"embed"
	"io/fs"
)

//go:embed content/*.yaml
var contentFS embed.FS

//go:embed schema/dictionary.schema.json
var schemaJSON []byte

// Content returns the bundled locale documents, one "<locale>.yaml" per locale.
func Content() fs.FS {
	sub, err := fs.Sub(contentFS, "content")
	if err != nil {
		panic("dictionary: embedded content missing: " + err.Error())
	}
	return sub
}

// Schema returns the JSON Schema every published dictionary must satisfy.
func Schema() []byte {
	return schemaJSON
}
