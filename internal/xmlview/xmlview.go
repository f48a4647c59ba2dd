// Package xmlview parses XML content into a browsable, queryable document.
package xmlview

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
	"github.com/kk-code-lab/peek/internal/resource"
)

// ErrInvalidQuery is returned by Query for expressions that do not compile.
var ErrInvalidQuery = errors.New("invalid xpath")

// Document is a parsed XML document.
type Document struct {
	root *xmlquery.Node
}

// IsXMLMIMEType reports whether mimeType names an XML serialisation. HTML is
// deliberately excluded; it parses as a document, not as XML.
func IsXMLMIMEType(mimeType string) bool {
	mt := strings.ToLower(strings.TrimSpace(resource.BaseMIMEType(mimeType)))
	switch mt {
	case "text/xml", "application/xml", "application/xhtml+xml", "image/svg+xml":
		return true
	}
	return strings.HasSuffix(mt, "+xml")
}

// Parse parses content using mimeType as a hint. It returns false when the
// MIME type is not an XML type or the content is not well-formed XML with a
// root element.
func Parse(content, mimeType string) (*Document, bool) {
	if !IsXMLMIMEType(mimeType) {
		return nil, false
	}
	entities, err := checkWellFormed(content)
	if err != nil {
		return nil, false
	}
	root, err := xmlquery.ParseWithOptions(strings.NewReader(content), xmlquery.ParserOptions{
		Decoder: &xmlquery.DecoderOptions{
			Strict:        true,
			Entity:        entities,
			CharsetReader: utf8Passthrough,
		},
	})
	if err != nil {
		return nil, false
	}
	doc := &Document{root: root}
	if doc.Root() == nil {
		return nil, false
	}
	return doc, true
}

// utf8Passthrough ignores the encoding declaration. Content has already been
// decoded to UTF-8 by the provider.
func utf8Passthrough(_ string, input io.Reader) (io.Reader, error) {
	return input, nil
}

// entityDecl matches general entities declared with a literal value.
// Parameter entities and SYSTEM/PUBLIC entities do not match.
var entityDecl = regexp.MustCompile(`<!ENTITY\s+([^\s%"'>]+)\s+(?:"([^"]*)"|'([^']*)')\s*>`)

// internalEntities collects the literal entities of a DOCTYPE internal subset.
func internalEntities(directive string, into map[string]string) {
	for _, m := range entityDecl.FindAllStringSubmatch(directive, -1) {
		value := m[2]
		if value == "" {
			value = m[3]
		}
		if _, seen := into[m[1]]; !seen {
			// The first declaration of an entity is binding.
			into[m[1]] = value
		}
	}
}

// checkWellFormed walks every token. Only entities declared with a literal
// value in the document's own DOCTYPE are expanded; external entities are
// never resolved. It returns the entities for building the tree.
func checkWellFormed(content string) (map[string]string, error) {
	entities := map[string]string{}
	decoder := xml.NewDecoder(strings.NewReader(content))
	decoder.Entity = entities
	decoder.CharsetReader = utf8Passthrough

	depth := 0
	roots := 0
	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if depth == 0 {
				roots++
			}
			depth++
		case xml.EndElement:
			depth--
		case xml.Directive:
			if depth == 0 && roots == 0 {
				internalEntities(string(t), entities)
			}
		case xml.CharData:
			if depth == 0 && strings.TrimSpace(string(t)) != "" {
				return nil, errors.New("text outside the root element")
			}
		}
	}
	if roots != 1 {
		return nil, fmt.Errorf("expected one root element, found %d", roots)
	}
	return entities, nil
}

// Root returns the document element.
func (d *Document) Root() *xmlquery.Node {
	if d == nil || d.root == nil {
		return nil
	}
	for child := d.root.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == xmlquery.ElementNode {
			return child
		}
	}
	return nil
}

// Query evaluates an XPath expression and returns the matching nodes
// serialised: elements as XML, attributes and text as their values.
func (d *Document) Query(expr string) ([]string, error) {
	compiled, err := xpath.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidQuery, err)
	}

	nodes := xmlquery.QuerySelectorAll(d.root, compiled)
	results := make([]string, 0, len(nodes))
	for _, n := range nodes {
		switch n.Type {
		case xmlquery.ElementNode:
			results = append(results, n.OutputXML(true))
		default:
			results = append(results, n.InnerText())
		}
	}
	return results, nil
}

// Lines renders the document as an indented outline, one node per line.
// Elements holding a single short text child stay on one line.
func (d *Document) Lines() []string {
	if d == nil || d.root == nil {
		return nil
	}
	var lines []string
	for child := d.root.FirstChild; child != nil; child = child.NextSibling {
		lines = appendNode(lines, child, 0)
	}
	return lines
}

func appendNode(lines []string, n *xmlquery.Node, depth int) []string {
	indent := strings.Repeat("  ", depth)
	switch n.Type {
	case xmlquery.DeclarationNode:
		var b strings.Builder
		b.WriteString("<?")
		b.WriteString(n.Data)
		writeAttrs(&b, n)
		b.WriteString("?>")
		lines = append(lines, b.String())

	case xmlquery.NotationNode:
		lines = append(lines, indent+"<!"+strings.Join(strings.Fields(n.Data), " ")+">")

	case xmlquery.CommentNode:
		lines = append(lines, indent+"<!--"+n.Data+"-->")

	case xmlquery.CharDataNode:
		lines = append(lines, indent+"<![CDATA["+n.Data+"]]>")

	case xmlquery.TextNode:
		for _, line := range strings.Split(strings.TrimSpace(n.Data), "\n") {
			if text := strings.TrimSpace(line); text != "" {
				lines = append(lines, indent+text)
			}
		}

	case xmlquery.ElementNode:
		name := qualifiedName(n)
		var open strings.Builder
		open.WriteString("<")
		open.WriteString(name)
		writeAttrs(&open, n)

		if !hasContent(n) {
			open.WriteString("/>")
			lines = append(lines, indent+open.String())
			return lines
		}
		open.WriteString(">")

		if text, ok := singleTextChild(n); ok {
			lines = append(lines, indent+open.String()+text+"</"+name+">")
			return lines
		}

		lines = append(lines, indent+open.String())
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			lines = appendNode(lines, child, depth+1)
		}
		lines = append(lines, indent+"</"+name+">")
	}
	return lines
}

func qualifiedName(n *xmlquery.Node) string {
	if n.Prefix != "" {
		return n.Prefix + ":" + n.Data
	}
	return n.Data
}

func writeAttrs(b *strings.Builder, n *xmlquery.Node) {
	for _, attr := range n.Attr {
		b.WriteString(" ")
		if attr.Name.Space != "" {
			b.WriteString(attr.Name.Space)
			b.WriteString(":")
		}
		b.WriteString(attr.Name.Local)
		b.WriteString(`="`)
		b.WriteString(attr.Value)
		b.WriteString(`"`)
	}
}

func hasContent(n *xmlquery.Node) bool {
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if child.Type != xmlquery.TextNode || strings.TrimSpace(child.Data) != "" {
			return true
		}
	}
	return false
}

func singleTextChild(n *xmlquery.Node) (string, bool) {
	child := n.FirstChild
	if child == nil || child.NextSibling != nil || child.Type != xmlquery.TextNode {
		return "", false
	}
	text := strings.TrimSpace(child.Data)
	if strings.Contains(text, "\n") {
		return "", false
	}
	return text, true
}
