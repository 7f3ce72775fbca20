package document

import (
	"reflect"
	"strings"
	"testing"
)

const fixture = `<html><head>
<meta name="DC.Identifier" content="10.1073/pnas.1">
</head><body>
<ol class="affiliation-list">
  <li><address><sup>a</sup>Department of Physics, <span>MIT</span>, USA</address></li>
  <li><address><sup>b</sup>Institut Pasteur, France</address></li>
</ol>
<a class="xref-fn">3</a>
</body></html>`

func TestParse(t *testing.T) {
	root, err := Parse(strings.NewReader(fixture))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if got := FirstAttr(root, `meta[name="DC.Identifier"]`, "content"); got != "10.1073/pnas.1" {
		t.Errorf("FirstAttr() = %q, want %q", got, "10.1073/pnas.1")
	}

	addresses := root.Query("ol.affiliation-list li address")
	if len(addresses) != 2 {
		t.Fatalf("Query() returned %d addresses, want 2", len(addresses))
	}

	var names []string
	for _, child := range addresses[0].Children() {
		names = append(names, child.Name())
	}
	wantNames := []string{"sup", TextNodeName, "span", TextNodeName}
	if !reflect.DeepEqual(names, wantNames) {
		t.Errorf("Children() names = %v, want %v", names, wantNames)
	}

	if got := addresses[0].Text(); got != "aDepartment of Physics, MIT, USA" {
		t.Errorf("Text() = %q", got)
	}
	if got := Texts(root, "address sup"); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("Texts() = %v", got)
	}
}

func TestFirstNonEmpty(t *testing.T) {
	root, err := Parse(strings.NewReader(fixture))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	got := FirstNonEmpty(root, "a.xref-aff sup", "a.xref-fn sup", "a.xref-aff", "a.xref-fn")
	if !reflect.DeepEqual(got, []string{"3"}) {
		t.Errorf("FirstNonEmpty() = %v, want [3]", got)
	}
	if got := FirstNonEmpty(root, "nav", "footer"); got != nil {
		t.Errorf("FirstNonEmpty() = %v, want nil", got)
	}
	if got := FirstText(root, "nav"); got != "" {
		t.Errorf("FirstText() = %q, want empty", got)
	}
}

func TestStatic(t *testing.T) {
	address := Element("address", Element("sup", TextNode("1")), TextNode("University A, "), TextNode("Japan"))
	root := Element("html").On("address", address)
	root.WithAttr("lang", "en")

	if got := FirstText(root, "address"); got != "1University A, Japan" {
		t.Errorf("FirstText() = %q", got)
	}
	if got := len(root.Query("li")); got != 0 {
		t.Errorf("Query(unknown) returned %d nodes", got)
	}
	if v, ok := root.Attr("lang"); !ok || v != "en" {
		t.Errorf("Attr(lang) = %q, %v", v, ok)
	}
	if got := address.Children()[0].Name(); got != "sup" {
		t.Errorf("Name() = %q, want sup", got)
	}
}
