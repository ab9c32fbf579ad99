package xml

import (
	"bufio"
	encxml "encoding/xml"
	"fmt"
	"io"
)

// EncoderOption configures an Encoder.
type EncoderOption func(*encoderConfig)

type encoderConfig struct {
	pretty bool
	indent string
}

// Pretty turns on newline/indent formatting between elements.
func Pretty(v bool) EncoderOption {
	return func(c *encoderConfig) { c.pretty = v }
}

// WithIndent sets the per-depth indent string used when Pretty is on.
// Defaults to two spaces.
func WithIndent(s string) EncoderOption {
	return func(c *encoderConfig) { c.indent = s }
}

// Encoder re-serializes a Document (or a live stream of ContentHandler
// events, via EncodingHandler) back to XML text. Attribute and element
// order is preserved exactly as built -- OrderedMap's insertion order --
// unlike the teacher's Marshal, which sorted map keys because its source
// data structure (a bare map[string]any) had no order to preserve.
type Encoder struct {
	w   *bufio.Writer
	cfg encoderConfig
}

// NewEncoder constructs an Encoder writing to w.
func NewEncoder(w io.Writer, opts ...EncoderOption) *Encoder {
	cfg := encoderConfig{indent: "  "}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Encoder{w: bufio.NewWriter(w), cfg: cfg}
}

// EncodeDocument writes doc's entire tree and flushes the underlying
// writer.
func (e *Encoder) EncodeDocument(doc *Document) error {
	if doc.DOCTYPE != "" {
		fmt.Fprintf(e.w, "<!DOCTYPE %s>", doc.DOCTYPE)
		if e.cfg.pretty {
			e.w.WriteByte('\n')
		}
	}
	for _, n := range doc.top {
		if err := e.encodeNode(n, 0); err != nil {
			return err
		}
	}
	return e.w.Flush()
}

func (e *Encoder) encodeNode(n *Node, depth int) error {
	indent := ""
	if e.cfg.pretty && depth > 0 {
		indent = "\n"
		for i := 0; i < depth; i++ {
			indent += e.cfg.indent
		}
	}

	switch n.Kind {
	case TextNode:
		return encxml.EscapeText(e.w, []byte(n.Text))
	case CommentNode:
		fmt.Fprint(e.w, indent+"<!--"+n.Text+"-->")
		return nil
	case PINode:
		fmt.Fprint(e.w, indent+"<?"+n.PITarget+" "+n.Text+"?>")
		return nil
	}

	fmt.Fprint(e.w, indent+"<"+n.Name.String())
	if n.Attrs != nil {
		for _, k := range n.Attrs.Keys() {
			v := n.Attrs.Get(k)
			var buf []byte
			w := &byteSliceWriter{buf: &buf}
			_ = encxml.EscapeText(w, []byte(fmt.Sprintf("%v", v)))
			fmt.Fprintf(e.w, ` %s="%s"`, k, string(buf))
		}
	}
	if len(n.Children) == 0 {
		fmt.Fprint(e.w, "/>")
		return nil
	}
	fmt.Fprint(e.w, ">")
	for _, child := range n.Children {
		if err := e.encodeNode(child, depth+1); err != nil {
			return err
		}
	}
	if e.cfg.pretty && hasElementChild(n) {
		fmt.Fprint(e.w, indent)
	}
	fmt.Fprint(e.w, "</"+n.Name.String()+">")
	return nil
}

func hasElementChild(n *Node) bool {
	for _, c := range n.Children {
		if c.Kind == ElementNode {
			return true
		}
	}
	return false
}

// byteSliceWriter is a minimal io.Writer over a *[]byte, used to capture
// encxml.EscapeText's output for attribute values without allocating a
// bytes.Buffer per attribute.
type byteSliceWriter struct{ buf *[]byte }

func (w *byteSliceWriter) Write(p []byte) (int, error) {
	*w.buf = append(*w.buf, p...)
	return len(p), nil
}

// EncodingHandler is a ContentHandler that streams events straight to an
// io.Writer as it receives them, for round-tripping a parse without
// materializing a Document first.
type EncodingHandler struct {
	BaseHandler
	w     *bufio.Writer
	open  []Name
	depth int
	cfg   encoderConfig
}

func NewEncodingHandler(w io.Writer, opts ...EncoderOption) *EncodingHandler {
	cfg := encoderConfig{indent: "  "}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &EncodingHandler{w: bufio.NewWriter(w), cfg: cfg}
}

func (h *EncodingHandler) StartElement(name Name, attrs []Attribute) error {
	fmt.Fprint(h.w, "<"+name.String())
	for _, a := range attrs {
		if !a.Specified {
			continue
		}
		var buf []byte
		bw := &byteSliceWriter{buf: &buf}
		_ = encxml.EscapeText(bw, []byte(a.Value))
		fmt.Fprintf(h.w, ` %s="%s"`, a.Name.String(), string(buf))
	}
	fmt.Fprint(h.w, ">")
	h.open = append(h.open, name)
	h.depth++
	return nil
}

func (h *EncodingHandler) EndElement(name Name) error {
	fmt.Fprint(h.w, "</"+name.String()+">")
	if len(h.open) > 0 {
		h.open = h.open[:len(h.open)-1]
	}
	h.depth--
	return nil
}

func (h *EncodingHandler) Characters(text string) error {
	return encxml.EscapeText(h.w, []byte(text))
}

func (h *EncodingHandler) Comment(text string) error {
	fmt.Fprint(h.w, "<!--"+text+"-->")
	return nil
}

func (h *EncodingHandler) ProcessingInstruction(target, data string) error {
	fmt.Fprint(h.w, "<?"+target+" "+data+"?>")
	return nil
}

func (h *EncodingHandler) EndDocument() error {
	return h.w.Flush()
}

var _ ContentHandler = (*EncodingHandler)(nil)
