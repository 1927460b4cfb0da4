package hierarchy

import (
	"os"
	"path/filepath"
	"sort"
)

// fsDirProvider serves a directory tree as an element hierarchy. Refs are
// absolute paths. The tree is live: entries removed on disk surface as gone
// elements on the next fetch, which exercises the same destroyed-element
// handling a real inspected program does.
type fsDirProvider struct{}

// NewFSDirProvider returns a Provider over the local filesystem.
func NewFSDirProvider() Provider {
	return &fsDirProvider{}
}

func (p *fsDirProvider) FetchChildren(ref ElementRef) ([]ElementRef, error) {
	entries, err := readDirSorted(string(ref))
	if err != nil {
		if os.IsNotExist(err) {
			err = ErrElementGone
		}
		return nil, &ProviderError{Op: "fetch children of", Ref: ref, Err: err}
	}
	refs := make([]ElementRef, len(entries))
	for i, e := range entries {
		refs[i] = ElementRef(filepath.Join(string(ref), e.Name()))
	}
	return refs, nil
}

func (p *fsDirProvider) FetchAttributes(ref ElementRef) (AttributeSet, error) {
	path := string(ref)
	info, err := os.Lstat(path)
	if err != nil {
		if os.IsNotExist(err) {
			err = ErrElementGone
		}
		return AttributeSet{}, &ProviderError{Op: "fetch attributes of", Ref: ref, Err: err}
	}

	attrs := AttributeSet{
		Title: filepath.Base(path),
		Help:  path,
	}
	switch {
	case info.Mode()&os.ModeSymlink != 0:
		attrs.Role = "AXLink"
		attrs.TypeDescription = "symbolic link"
	case info.IsDir():
		attrs.Role = "AXGroup"
		attrs.Subrole = "AXDirectory"
		attrs.TypeDescription = "directory"
		if entries, err := readDirSorted(path); err == nil {
			attrs.ChildCount = len(entries)
		}
	default:
		attrs.Role = "AXStaticText"
		attrs.Subrole = "AXFile"
		attrs.TypeDescription = "file"
		if ext := filepath.Ext(path); ext != "" {
			attrs.TypeDescription = ext[1:] + " file"
		}
	}
	return attrs, nil
}

func (p *fsDirProvider) Validate(root ElementRef) (ElementRef, error) {
	abs, err := filepath.Abs(string(root))
	if err != nil {
		return "", &ProviderError{Op: "validate", Ref: root, Err: err}
	}
	info, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			err = ErrElementGone
		}
		return "", &ProviderError{Op: "validate", Ref: root, Err: err}
	}
	if !info.IsDir() {
		return "", &ProviderError{Op: "validate", Ref: root, Err: os.ErrInvalid}
	}
	return ElementRef(abs), nil
}

// readDirSorted lists a directory with directories first, each group sorted
// by name, matching the order a user expects in a file browser.
func readDirSorted(path string) ([]os.DirEntry, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].IsDir() != entries[j].IsDir() {
			return entries[i].IsDir()
		}
		return entries[i].Name() < entries[j].Name()
	})
	return entries, nil
}
