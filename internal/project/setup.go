package project

import (
	"fmt"
	"os"
	"regexp"

	"relgate/internal/data/models"
	"relgate/internal/errs"
)

var (
	setupAssignRes = map[string]*regexp.Regexp{
		"name":            regexp.MustCompile(`(?m)\bname\s*=\s*["']([^"']+)["']`),
		"url":             regexp.MustCompile(`(?m)\burl\s*=\s*["']([^"']+)["']`),
		"license":         regexp.MustCompile(`(?m)\blicense\s*=\s*["']([^"']+)["']`),
		"python_requires": regexp.MustCompile(`(?m)\bpython_requires\s*=\s*["']([^"']+)["']`),
	}
)

// ReadSetupManifest parses the canonical dependency declaration out of
// setup.py: the install_requires list literal plus the scalar metadata
// assignments around it. setup.py is Python source, so this is a scan, not
// an evaluation; only quoted literals are honored.
func ReadSetupManifest(path string) (*models.SetupManifest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.MissingFile(path, err)
		}
		return nil, err
	}
	content := string(raw)

	specs, found := listLiteral(content, "install_requires")
	if !found {
		return nil, errs.FormatMismatch(path, "no install_requires list found")
	}

	m := &models.SetupManifest{Path: path}
	for _, spec := range specs {
		req, err := models.ParseRequirement(spec)
		if err != nil {
			return nil, errs.FormatMismatch(path, "bad requirement: %v", err)
		}
		m.Requirements = append(m.Requirements, req)
	}

	assign := func(key string) string {
		if sm := setupAssignRes[key].FindStringSubmatch(content); sm != nil {
			return sm[1]
		}
		return ""
	}
	m.Name = assign("name")
	m.URL = assign("url")
	m.License = assign("license")
	m.PythonRequires = assign("python_requires")
	m.Keywords, _ = listLiteral(content, "keywords")
	m.Classifiers, _ = listLiteral(content, "classifiers")

	return m, nil
}

// Describe assembles the distribution metadata record from the version
// marker and the canonical declaration. It is a one-shot operation: any
// missing input is fatal to packaging, there is nothing to retry.
func Describe(layout Layout) (*models.Descriptor, error) {
	marker, err := ReadVersionMarker(layout.VersionFile())
	if err != nil {
		return nil, fmt.Errorf("version marker: %w", err)
	}
	manifest, err := ReadSetupManifest(layout.SetupFile())
	if err != nil {
		return nil, fmt.Errorf("canonical declaration: %w", err)
	}
	name := manifest.Name
	if name == "" {
		name = layout.Package
	}
	return &models.Descriptor{
		Name:           name,
		Version:        marker.Version,
		License:        manifest.License,
		URL:            manifest.URL,
		PythonRequires: manifest.PythonRequires,
		Keywords:       manifest.Keywords,
		Classifiers:    manifest.Classifiers,
		Requirements:   manifest.Requirements,
	}, nil
}

// Precompiled for the idents this package scans for; listLiteral compiles
// on the fly for any other, so the map is never written after init.
var listOpenRes = map[string]*regexp.Regexp{
	"install_requires": listOpenRe("install_requires"),
	"keywords":         listOpenRe("keywords"),
	"classifiers":      listOpenRe("classifiers"),
}

func listOpenRe(ident string) *regexp.Regexp {
	return regexp.MustCompile(`(?m)\b` + regexp.QuoteMeta(ident) + `\s*=\s*\[`)
}

// listLiteral extracts the quoted string entries of a Python list literal
// assigned (or passed as a keyword argument) to ident. Returns found=false
// when no such list exists. Entries are the quoted literals inside the
// brackets, in order; comment lines hold no quotes and fall out naturally.
func listLiteral(content, ident string) (entries []string, found bool) {
	re, ok := listOpenRes[ident]
	if !ok {
		re = listOpenRe(ident)
	}
	loc := re.FindStringIndex(content)
	if loc == nil {
		return nil, false
	}

	depth := 1
	var quote byte
	var lit []byte
	for i := loc[1]; i < len(content); i++ {
		c := content[i]
		if quote != 0 {
			if c == quote {
				entries = append(entries, string(lit))
				lit = nil
				quote = 0
			} else {
				lit = append(lit, c)
			}
			continue
		}
		switch c {
		case '\'', '"':
			quote = c
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return entries, true
			}
		case '#':
			// Comment to end of line.
			for i < len(content) && content[i] != '\n' {
				i++
			}
		}
	}
	// Unterminated list; treat whatever was collected as the literal.
	return entries, true
}
