package dictionary

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// KeyPaths returns every mapping key path of a YAML document, dot separated,
// with sequence indices collapsed to "[]" (resume.work[].company).
func KeyPaths(doc []byte) (map[string]bool, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(doc, &root); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	paths := make(map[string]bool)
	walkKeys(&root, "", paths)
	return paths, nil
}

func walkKeys(n *yaml.Node, prefix string, paths map[string]bool) {
	switch n.Kind {
	case yaml.DocumentNode:
		for _, c := range n.Content {
			walkKeys(c, prefix, paths)
		}
	case yaml.MappingNode:
		for i := 0; i+1 < len(n.Content); i += 2 {
			p := n.Content[i].Value
			if prefix != "" {
				p = prefix + "." + p
			}
			paths[p] = true
			walkKeys(n.Content[i+1], p, paths)
		}
	case yaml.SequenceNode:
		for _, c := range n.Content {
			walkKeys(c, prefix+"[]", paths)
		}
	case yaml.AliasNode:
		if n.Alias != nil {
			walkKeys(n.Alias, prefix, paths)
		}
	}
}

// Parity checks that every document, keyed by locale, has the same set of
// key paths. Keys found in any locale but missing from another are reported.
func Parity(docs map[string][]byte) error {
	perLocale := make(map[string]map[string]bool, len(docs))
	union := make(map[string]bool)

	for locale, doc := range docs {
		paths, err := KeyPaths(doc)
		if err != nil {
			return &LoadError{Locale: locale, Cause: err}
		}
		perLocale[locale] = paths
		for p := range paths {
			union[p] = true
		}
	}

	missing := make(map[string][]string)
	for locale, paths := range perLocale {
		for p := range union {
			if !paths[p] {
				missing[locale] = append(missing[locale], p)
			}
		}
		sort.Strings(missing[locale])
	}

	if len(missing) > 0 {
		return &ParityError{Missing: missing}
	}
	return nil
}
