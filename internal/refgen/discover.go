package refgen

import (
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/docfoundry/internal/foundation/errors"
)

const (
	initModule = "__init__"
	cacheDir   = "__pycache__"
	sourceExt  = ".py"
	indexPage  = "index.md"
)

// Page is one generated reference page.
type Page struct {
	// Parts is the dotted module path split into segments. Package pages
	// (from __init__.py) do not carry the trailing "__init__".
	Parts []string
	// DocPath is the page path relative to the output directory, using
	// forward slashes.
	DocPath string
	// Source is the Python file the page documents.
	Source string
}

// Module returns the dotted module path.
func (p Page) Module() string { return strings.Join(p.Parts, ".") }

// Directive returns the page body.
func (p Page) Directive() string { return "::: " + p.Module() + "\n" }

// Discover lists the importable modules under srcRoot in path order.
//
// Files under __pycache__ and private modules (any segment starting with an
// underscore, other than __init__) are skipped, and so is every file with a
// directory between it and srcRoot that lacks an __init__.py.
func Discover(srcRoot string) ([]Page, error) {
	info, err := os.Stat(srcRoot)
	if err != nil || !info.IsDir() {
		return nil, errors.NotFoundError("source root not found").
			WithContext("dir", srcRoot).
			Build()
	}

	var pages []Page
	err = filepath.WalkDir(srcRoot, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == cacheDir {
				return fs.SkipDir
			}
			return nil
		}
		if filepath.Ext(p) != sourceExt {
			return nil
		}

		page, ok := pageFor(srcRoot, p)
		if ok {
			pages = append(pages, page)
		}
		return nil
	})
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "walk source root").
			WithContext("dir", srcRoot).
			Build()
	}
	return pages, nil
}

func pageFor(srcRoot, file string) (Page, bool) {
	if !isPackageModule(srcRoot, file) {
		return Page{}, false
	}

	rel, err := filepath.Rel(srcRoot, file)
	if err != nil {
		return Page{}, false
	}
	modulePath := strings.TrimSuffix(filepath.ToSlash(rel), sourceExt)
	parts := strings.Split(modulePath, "/")
	for _, part := range parts {
		if part == "" || (strings.HasPrefix(part, "_") && part != initModule) {
			return Page{}, false
		}
	}

	docPath := modulePath + ".md"
	if parts[len(parts)-1] == initModule {
		parts = parts[:len(parts)-1]
		docPath = path.Join(path.Dir(modulePath), indexPage)
	}
	if len(parts) == 0 {
		return Page{}, false
	}

	return Page{Parts: parts, DocPath: docPath, Source: file}, true
}

// isPackageModule reports whether every directory from file's parent up to
// (but excluding) srcRoot contains an __init__.py.
func isPackageModule(srcRoot, file string) bool {
	root := filepath.Clean(srcRoot)
	for dir := filepath.Dir(file); ; dir = filepath.Dir(dir) {
		rel, err := filepath.Rel(root, dir)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return false
		}
		if rel == "." {
			return true
		}
		if _, err := os.Stat(filepath.Join(dir, initModule+sourceExt)); err != nil {
			return false
		}
	}
}
