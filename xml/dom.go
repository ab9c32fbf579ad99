package xml

// Node is one node of the tree DOMBuilder assembles: an element, a text
// run, a comment, or a processing instruction.
type Node struct {
	Kind     NodeKind
	Name     Name
	Attrs    *OrderedMap
	Text     string
	PITarget string
	Parent   *Node
	Children []*Node
}

// NodeKind tags which of Node's fields are meaningful.
type NodeKind int

const (
	ElementNode NodeKind = iota
	TextNode
	CommentNode
	PINode
)

// AddChild appends child to n's children, linking child.Parent back to n.
func (n *Node) AddChild(child *Node) {
	child.Parent = n
	n.Children = append(n.Children, child)
}

// Document is the root of a parsed tree. DOCTYPE is the name reported by
// StartDTD; ContentHandler has no XML-declaration callback, so DOMBuilder
// leaves Version and Standalone at their zero values.
type Document struct {
	Version    string
	Standalone bool
	DOCTYPE    string
	Root       *Node
	top        []*Node
}

// DOMBuilder is a ContentHandler that assembles a Document, the same role
// moznion-helium's TreeBuilder plays for its SAX interface -- rebuilt
// here against this package's ContentHandler and OrderedMap rather than
// helium's sax.Context/Node types.
type DOMBuilder struct {
	BaseHandler
	doc  *Document
	node *Node
}

func NewDOMBuilder() *DOMBuilder {
	return &DOMBuilder{}
}

// Document returns the tree built by the most recent parse. Valid only
// after EndDocument has fired.
func (b *DOMBuilder) Document() *Document { return b.doc }

func (b *DOMBuilder) StartDocument() error {
	b.doc = &Document{}
	b.node = nil
	return nil
}

func (b *DOMBuilder) EndDocument() error {
	if len(b.doc.top) > 0 {
		b.doc.Root = b.doc.top[0]
	}
	return nil
}

func (b *DOMBuilder) StartDTD(name, publicID, systemID string) error {
	b.doc.DOCTYPE = name
	return nil
}

func (b *DOMBuilder) StartElement(name Name, attrs []Attribute) error {
	n := &Node{Kind: ElementNode, Name: name, Attrs: NewMap()}
	for _, a := range attrs {
		n.Attrs.Put(a.Name.String(), a.Value)
	}
	b.attach(n)
	b.node = n
	return nil
}

func (b *DOMBuilder) EndElement(name Name) error {
	if b.node != nil {
		b.node = b.node.Parent
	}
	return nil
}

func (b *DOMBuilder) Characters(text string) error {
	b.attach(&Node{Kind: TextNode, Text: text})
	return nil
}

func (b *DOMBuilder) Comment(text string) error {
	b.attach(&Node{Kind: CommentNode, Text: text})
	return nil
}

func (b *DOMBuilder) ProcessingInstruction(target, data string) error {
	b.attach(&Node{Kind: PINode, PITarget: target, Text: data})
	return nil
}

func (b *DOMBuilder) attach(n *Node) {
	if b.node == nil {
		b.doc.top = append(b.doc.top, n)
		return
	}
	b.node.AddChild(n)
}

var _ ContentHandler = (*DOMBuilder)(nil)
