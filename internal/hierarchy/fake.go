package hierarchy

// FakeElement is one scripted element served by a Fake provider.
type FakeElement struct {
	Attrs    AttributeSet
	Children []ElementRef
	Gone     bool
}

// Fake is a scripted in-memory Provider for tests. It counts every fetch per
// element so tests can assert exactly how many round trips an operation cost.
type Fake struct {
	Elements map[ElementRef]*FakeElement

	ChildrenFetches  map[ElementRef]int
	AttributeFetches map[ElementRef]int
	ValidateCalls    int
}

// NewFake returns an empty Fake provider.
func NewFake() *Fake {
	return &Fake{
		Elements:         make(map[ElementRef]*FakeElement),
		ChildrenFetches:  make(map[ElementRef]int),
		AttributeFetches: make(map[ElementRef]int),
	}
}

// Add registers an element with the given attributes and children. The child
// count attribute is derived from the child list.
func (f *Fake) Add(ref ElementRef, attrs AttributeSet, children ...ElementRef) *Fake {
	attrs.ChildCount = len(children)
	f.Elements[ref] = &FakeElement{Attrs: attrs, Children: children}
	return f
}

// MarkGone flips the element to destroyed; later fetches fail with
// ErrElementGone.
func (f *Fake) MarkGone(ref ElementRef) {
	if el, ok := f.Elements[ref]; ok {
		el.Gone = true
	}
}

// TotalFetches returns the combined number of children and attribute fetches
// across all elements.
func (f *Fake) TotalFetches() int {
	n := 0
	for _, c := range f.ChildrenFetches {
		n += c
	}
	for _, c := range f.AttributeFetches {
		n += c
	}
	return n
}

func (f *Fake) FetchChildren(ref ElementRef) ([]ElementRef, error) {
	f.ChildrenFetches[ref]++
	el, ok := f.Elements[ref]
	if !ok || el.Gone {
		return nil, &ProviderError{Op: "fetch children of", Ref: ref, Err: ErrElementGone}
	}
	out := make([]ElementRef, len(el.Children))
	copy(out, el.Children)
	return out, nil
}

func (f *Fake) FetchAttributes(ref ElementRef) (AttributeSet, error) {
	f.AttributeFetches[ref]++
	el, ok := f.Elements[ref]
	if !ok || el.Gone {
		return AttributeSet{}, &ProviderError{Op: "fetch attributes of", Ref: ref, Err: ErrElementGone}
	}
	return el.Attrs, nil
}

func (f *Fake) Validate(root ElementRef) (ElementRef, error) {
	f.ValidateCalls++
	el, ok := f.Elements[root]
	if !ok || el.Gone {
		return "", &ProviderError{Op: "validate", Ref: root, Err: ErrElementGone}
	}
	return root, nil
}
