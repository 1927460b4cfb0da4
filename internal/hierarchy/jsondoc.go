package hierarchy

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/ohler55/ojg/oj"
)

// jsonDocProvider serves a hierarchy described by a JSON document. Each
// object in the document is one element; recognized keys are "role",
// "subrole", "title", "type", "help", "children" and "gone". Anything else is
// ignored. The document is parsed once; refs are dotted child-index paths
// rooted at "$" (e.g. "$.0.2" is the third child of the first child).
type jsonDocProvider struct {
	root      any
	destroyed map[ElementRef]bool
}

// NewJSONDocProvider parses doc and returns a Provider over it.
func NewJSONDocProvider(doc string) (Provider, error) {
	root, err := oj.ParseString(doc)
	if err != nil {
		return nil, fmt.Errorf("parse hierarchy document: %w", err)
	}
	return &jsonDocProvider{
		root:      root,
		destroyed: make(map[ElementRef]bool),
	}, nil
}

// NewJSONFileProvider reads and parses the JSON document at path.
func NewJSONFileProvider(path string) (Provider, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read hierarchy document: %w", err)
	}
	return NewJSONDocProvider(string(data))
}

// RootRef is the reference of a JSON document provider's root element.
const RootRef = ElementRef("$")

func (p *jsonDocProvider) FetchChildren(ref ElementRef) ([]ElementRef, error) {
	el, err := p.resolve(ref)
	if err != nil {
		return nil, &ProviderError{Op: "fetch children of", Ref: ref, Err: err}
	}
	n := len(childList(el))
	refs := make([]ElementRef, n)
	for i := range refs {
		refs[i] = ElementRef(string(ref) + "." + strconv.Itoa(i))
	}
	return refs, nil
}

func (p *jsonDocProvider) FetchAttributes(ref ElementRef) (AttributeSet, error) {
	el, err := p.resolve(ref)
	if err != nil {
		return AttributeSet{}, &ProviderError{Op: "fetch attributes of", Ref: ref, Err: err}
	}
	return AttributeSet{
		Role:            stringField(el, "role"),
		Subrole:         stringField(el, "subrole"),
		Title:           stringField(el, "title"),
		TypeDescription: stringField(el, "type"),
		Help:            stringField(el, "help"),
		ChildCount:      len(childList(el)),
	}, nil
}

func (p *jsonDocProvider) Validate(root ElementRef) (ElementRef, error) {
	if _, err := p.resolve(root); err != nil {
		return "", &ProviderError{Op: "validate", Ref: root, Err: err}
	}
	return root, nil
}

// Destroy marks ref and its entire subtree as gone, simulating asynchronous
// element destruction by the inspected program.
func (p *jsonDocProvider) Destroy(ref ElementRef) {
	p.destroyed[ref] = true
}

// resolve walks the parsed document to the element named by ref.
func (p *jsonDocProvider) resolve(ref ElementRef) (map[string]any, error) {
	if p.isDestroyed(ref) {
		return nil, ErrElementGone
	}
	parts := strings.Split(string(ref), ".")
	if len(parts) == 0 || parts[0] != "$" {
		return nil, fmt.Errorf("malformed element reference")
	}
	el, ok := p.root.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("document root is not an object")
	}
	for _, part := range parts[1:] {
		idx, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("malformed element reference")
		}
		children := childList(el)
		if idx < 0 || idx >= len(children) {
			return nil, ErrElementGone
		}
		el, ok = children[idx].(map[string]any)
		if !ok {
			return nil, ErrElementGone
		}
	}
	if gone, _ := el["gone"].(bool); gone {
		return nil, ErrElementGone
	}
	return el, nil
}

// isDestroyed reports whether ref or any of its ancestors was destroyed.
func (p *jsonDocProvider) isDestroyed(ref ElementRef) bool {
	if len(p.destroyed) == 0 {
		return false
	}
	s := string(ref)
	for {
		if p.destroyed[ElementRef(s)] {
			return true
		}
		i := strings.LastIndexByte(s, '.')
		if i < 0 {
			return false
		}
		s = s[:i]
	}
}

func childList(el map[string]any) []any {
	children, _ := el["children"].([]any)
	return children
}

func stringField(el map[string]any, key string) string {
	s, _ := el[key].(string)
	return s
}
