// Package css parses the inline style attribute and the content of style elements of SVG documents.
package css // import "github.com/tdewolff/svgclean/css"

import (
	"strings"
)

// Property is a single property:value pair.
type Property struct {
	Name, Value string
}

// Style is an inline style, an ordered map of properties to values.
type Style struct {
	props []Property
}

// ParseStyle parses the content of a style attribute. Declarations are separated by semicolons and must contain exactly one colon, others are dropped. Whitespace is removed from property names and trimmed from values. A repeated property keeps its first position and its last value.
func ParseStyle(s string) *Style {
	style := &Style{}
	for _, decl := range strings.Split(s, ";") {
		kv := strings.Split(decl, ":")
		if len(kv) != 2 {
			continue
		}
		name := strings.Join(strings.Fields(kv[0]), "")
		if name == "" {
			continue
		}
		style.Set(name, strings.TrimSpace(kv[1]))
	}
	return style
}

// Len returns the number of properties.
func (s *Style) Len() int {
	return len(s.props)
}

func (s *Style) index(name string) int {
	for i, p := range s.props {
		if p.Name == name {
			return i
		}
	}
	return -1
}

// Get returns the value of a property and whether it is present.
func (s *Style) Get(name string) (string, bool) {
	if i := s.index(name); i != -1 {
		return s.props[i].Value, true
	}
	return "", false
}

// Has returns true if the property is present.
func (s *Style) Has(name string) bool {
	return s.index(name) != -1
}

// Set sets the value of a property, keeping its position if already present.
func (s *Style) Set(name, value string) {
	if i := s.index(name); i != -1 {
		s.props[i].Value = value
		return
	}
	s.props = append(s.props, Property{name, value})
}

// Remove deletes the given properties.
func (s *Style) Remove(names ...string) {
	j := 0
	for _, p := range s.props {
		if !contains(names, p.Name) {
			s.props[j] = p
			j++
		}
	}
	s.props = s.props[:j]
}

// Properties returns a copy of the properties in order.
func (s *Style) Properties() []Property {
	return append([]Property(nil), s.props...)
}

// Names returns the property names in order.
func (s *Style) Names() []string {
	names := make([]string, len(s.props))
	for i, p := range s.props {
		names[i] = p.Name
	}
	return names
}

// String renders the style as name:value; pairs.
func (s *Style) String() string {
	sb := strings.Builder{}
	for _, p := range s.props {
		sb.WriteString(p.Name)
		sb.WriteByte(':')
		sb.WriteString(p.Value)
		sb.WriteByte(';')
	}
	return sb.String()
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
