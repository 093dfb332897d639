package graphics

import (
	"fmt"
	"strings"
)

// Attribute is a named per-vertex shader input
type Attribute int

const (
	AttributePosition Attribute = iota
	AttributeColour
	AttributeTexture
	attributeCount
)

var attributeNames = [attributeCount]string{
	AttributePosition: "position",
	AttributeColour:   "colour",
	AttributeTexture:  "texture",
}

var attributeComponents = [attributeCount]int32{
	AttributePosition: 3,
	AttributeColour:   3,
	AttributeTexture:  2,
}

// Name returns the shader variable name the attribute is looked up by
func (a Attribute) Name() string {
	if a < 0 || a >= attributeCount {
		return ""
	}
	return attributeNames[a]
}

// Components returns the number of float32 components
func (a Attribute) Components() int32 {
	if a < 0 || a >= attributeCount {
		return 0
	}
	return attributeComponents[a]
}

// VertexLayout enumerates the interleaved vertex formats a program can consume.
// Position is always first, followed by colour and then texture coordinates when present.
type VertexLayout int

const (
	LayoutPosition VertexLayout = iota
	LayoutPositionColour
	LayoutPositionTexture
	LayoutPositionColourTexture
)

var layoutAttributes = map[VertexLayout][]Attribute{
	LayoutPosition:              {AttributePosition},
	LayoutPositionColour:        {AttributePosition, AttributeColour},
	LayoutPositionTexture:       {AttributePosition, AttributeTexture},
	LayoutPositionColourTexture: {AttributePosition, AttributeColour, AttributeTexture},
}

var layoutNames = map[VertexLayout]string{
	LayoutPosition:              "position",
	LayoutPositionColour:        "position_colour",
	LayoutPositionTexture:       "position_texture",
	LayoutPositionColourTexture: "position_colour_texture",
}

// Attributes returns the enabled attributes in buffer order
func (l VertexLayout) Attributes() []Attribute {
	return layoutAttributes[l]
}

// Has reports whether the layout carries the attribute
func (l VertexLayout) Has(a Attribute) bool {
	_, ok := l.Offset(a)
	return ok
}

// FloatsPerVertex is the number of float32 values in one interleaved vertex
func (l VertexLayout) FloatsPerVertex() int {
	n := 0
	for _, a := range l.Attributes() {
		n += int(a.Components())
	}
	return n
}

// Stride is the byte distance between consecutive vertices
func (l VertexLayout) Stride() int32 {
	return int32(l.FloatsPerVertex() * 4)
}

// Offset returns the byte offset of the attribute within a vertex
func (l VertexLayout) Offset(a Attribute) (int, bool) {
	offset := 0
	for _, attr := range l.Attributes() {
		if attr == a {
			return offset, true
		}
		offset += int(attr.Components()) * 4
	}
	return 0, false
}

func (l VertexLayout) String() string {
	if name, ok := layoutNames[l]; ok {
		return name
	}
	return fmt.Sprintf("VertexLayout(%d)", int(l))
}

// ParseVertexLayout parses the String form of a layout
func ParseVertexLayout(s string) (VertexLayout, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for l, name := range layoutNames {
		if name == s {
			return l, nil
		}
	}
	return LayoutPosition, fmt.Errorf("unknown vertex layout %q", s)
}
