package treecache

import (
	"fmt"
	"strings"
)

// Terminology selects the vocabulary used to render nodes into description
// strings. It affects formatting only, never cache contents, so switching
// modes needs no invalidation.
type Terminology int

const (
	// TermNatural renders plain human-readable words.
	TermNatural Terminology = iota
	// TermRaw renders provider attribute values verbatim.
	TermRaw
	// TermAccessibility renders accessibility-API constant names.
	TermAccessibility
	// TermAppleScript renders AppleScript-style class names and quoting.
	TermAppleScript
	// TermJavaScript renders JavaScript-style accessor names.
	TermJavaScript
	// TermObjC renders Objective-C-style class names and string literals.
	TermObjC
)

var terminologyNames = []string{
	"natural", "raw", "accessibility", "applescript", "javascript", "objc",
}

func (t Terminology) String() string {
	if t < 0 || int(t) >= len(terminologyNames) {
		return "natural"
	}
	return terminologyNames[t]
}

// Next cycles to the following terminology mode.
func (t Terminology) Next() Terminology {
	return Terminology((int(t) + 1) % len(terminologyNames))
}

// ParseTerminology parses a mode name as accepted on the command line.
func ParseTerminology(s string) (Terminology, error) {
	for i, name := range terminologyNames {
		if s == name {
			return Terminology(i), nil
		}
	}
	return TermNatural, fmt.Errorf("unknown terminology %q (valid: %s)",
		s, strings.Join(terminologyNames, ", "))
}

// TerminologyNames lists the accepted mode names in order.
func TerminologyNames() []string {
	out := make([]string, len(terminologyNames))
	copy(out, terminologyNames)
	return out
}

// Terminology returns the active description vocabulary.
func (c *Cache) Terminology() Terminology {
	return c.term
}

// SetTerminology switches the description vocabulary, taking effect on the
// next description request.
func (c *Cache) SetTerminology(t Terminology) {
	c.term = t
}

// BriefDescription renders the shortest label for a node: role plus title.
// Pure function of cached attributes; never fetches.
func (c *Cache) BriefDescription(n *Node) string {
	if n == nil {
		return ""
	}
	return describeBrief(n, c.term)
}

// MediumDescription adds the element's type description (or subrole) to the
// brief form.
func (c *Cache) MediumDescription(n *Node) string {
	if n == nil {
		return ""
	}
	s := describeBrief(n, c.term)
	if qual := typeQualifier(n, c.term); qual != "" {
		s += " (" + qual + ")"
	}
	return s
}

// FullDescription adds child count, help text and the destroyed marker.
func (c *Cache) FullDescription(n *Node) string {
	if n == nil {
		return ""
	}
	parts := []string{c.MediumDescription(n)}
	if !n.exists {
		parts = append(parts, "destroyed")
	} else {
		switch n.attrs.ChildCount {
		case 0:
		case 1:
			parts = append(parts, "1 child")
		default:
			parts = append(parts, fmt.Sprintf("%d children", n.attrs.ChildCount))
		}
	}
	if n.attrs.Help != "" {
		parts = append(parts, "help: "+n.attrs.Help)
	}
	return strings.Join(parts, ", ")
}

func describeBrief(n *Node, t Terminology) string {
	role := roleName(n.attrs.Role, t)
	title := n.attrs.Title
	switch t {
	case TermRaw:
		if title == "" {
			return role
		}
		return role + " " + title
	case TermAccessibility:
		if title == "" {
			return role
		}
		return role + " \"" + title + "\""
	case TermAppleScript:
		if title == "" {
			return role
		}
		return role + " \"" + title + "\""
	case TermJavaScript:
		if title == "" {
			return role
		}
		return role + "[\"" + title + "\"]"
	case TermObjC:
		if title == "" {
			return role
		}
		return role + " @\"" + title + "\""
	default: // TermNatural
		if title == "" {
			return role
		}
		return role + " “" + title + "”"
	}
}

// typeQualifier picks the secondary descriptor: the provider's type
// description when present, otherwise the subrole rendered per mode.
func typeQualifier(n *Node, t Terminology) string {
	if n.attrs.TypeDescription != "" {
		return n.attrs.TypeDescription
	}
	if n.attrs.Subrole == "" {
		return ""
	}
	return roleName(n.attrs.Subrole, t)
}

// roleName renders an accessibility role constant in the given vocabulary.
// Roles arrive in the provider's native "AXStaticText" form.
func roleName(role string, t Terminology) string {
	if role == "" {
		if t == TermNatural || t == TermAppleScript {
			return "element"
		}
		return "AXUnknown"
	}
	switch t {
	case TermRaw:
		return role
	case TermAccessibility:
		return "NSAccessibility" + stripAX(role) + "Role"
	case TermJavaScript:
		return pluralize(lowerCamel(stripAX(role)))
	case TermObjC:
		return stripAX(role)
	default: // TermNatural, TermAppleScript
		return roleWords(role)
	}
}

func stripAX(role string) string {
	return strings.TrimPrefix(role, "AX")
}

// roleWords splits a role constant into lowercase words: "AXStaticText"
// becomes "static text".
func roleWords(role string) string {
	s := stripAX(role)
	var b strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			b.WriteByte(' ')
		}
		if r >= 'A' && r <= 'Z' {
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}

func lowerCamel(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

func pluralize(s string) string {
	switch {
	case s == "":
		return s
	case strings.HasSuffix(s, "s") || strings.HasSuffix(s, "x"):
		return s + "es"
	default:
		return s + "s"
	}
}
