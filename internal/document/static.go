package document

import "strings"

// Static is an in-memory Node. Query answers come from Paths rather than
// from evaluating the path, which keeps synthetic trees small.
type Static struct {
	Tag   string
	Value string
	Attrs map[string]string
	Nodes []Node
	Paths map[string][]Node
}

// TextNode returns a Static text node.
func TextNode(value string) *Static {
	return &Static{Tag: TextNodeName, Value: value}
}

// Element returns a Static element with the given children.
func Element(tag string, children ...Node) *Static {
	return &Static{Tag: tag, Nodes: children}
}

// On registers the nodes returned for path and returns s.
func (s *Static) On(path string, nodes ...Node) *Static {
	if s.Paths == nil {
		s.Paths = make(map[string][]Node)
	}
	s.Paths[path] = append(s.Paths[path], nodes...)
	return s
}

// WithAttr sets an attribute and returns s.
func (s *Static) WithAttr(name, value string) *Static {
	if s.Attrs == nil {
		s.Attrs = make(map[string]string)
	}
	s.Attrs[name] = value
	return s
}

func (s *Static) Query(path string) []Node {
	return s.Paths[path]
}

func (s *Static) Children() []Node {
	return s.Nodes
}

func (s *Static) Name() string {
	return s.Tag
}

func (s *Static) Text() string {
	if len(s.Nodes) == 0 {
		return s.Value
	}
	var b strings.Builder
	b.WriteString(s.Value)
	for _, child := range s.Nodes {
		b.WriteString(child.Text())
	}
	return b.String()
}

func (s *Static) Attr(name string) (string, bool) {
	value, ok := s.Attrs[name]
	return value, ok
}
