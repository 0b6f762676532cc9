package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"xtread/internal/cst"
	"xtread/internal/source"
	"xtread/internal/token"
)

// NodeOutput is the serialisable form of one CST node.
type NodeOutput struct {
	Kind     string           `json:"kind" yaml:"kind"`
	Span     source.Span      `json:"span" yaml:"span"`
	Text     string           `json:"text,omitempty" yaml:"text,omitempty"`
	Value    string           `json:"value,omitempty" yaml:"value,omitempty"`
	Number   *token.NumberLit `json:"number,omitempty" yaml:"number,omitempty"`
	Type     string           `json:"type,omitempty" yaml:"type,omitempty"`
	Children []NodeOutput     `json:"children,omitempty" yaml:"children,omitempty"`
	Tail     *NodeOutput      `json:"tail,omitempty" yaml:"tail,omitempty"`
}

// ProgramOutput is the root of tree dumps. Spans point into the file on
// disk; Normalized lists the load-time rewrites they were mapped through.
type ProgramOutput struct {
	File       string         `json:"file" yaml:"file"`
	Normalized []string       `json:"normalized,omitempty" yaml:"normalized,omitempty"`
	Data       []NodeOutput   `json:"data" yaml:"data"`
	Trivia     []token.Trivia `json:"trivia,omitempty" yaml:"trivia,omitempty"`
}

// BuildProgramOutput converts the whole program; trivia are included when kept.
func BuildProgramOutput(prog *cst.Program) ProgramOutput {
	out := ProgramOutput{
		Data: make([]NodeOutput, 0, len(prog.Top)),
	}
	if prog.File != nil {
		out.File = prog.File.Path
		out.Normalized = normalizations(prog.File.Flags)
	}
	for _, id := range prog.Top {
		out.Data = append(out.Data, buildNode(prog, id))
	}
	if len(prog.Trivia) > 0 {
		out.Trivia = make([]token.Trivia, len(prog.Trivia))
		for i, tv := range prog.Trivia {
			tv.Span = programDiskSpan(prog, tv.Span)
			out.Trivia[i] = tv
		}
	}
	return out
}

func normalizations(flags source.FileFlags) []string {
	var out []string
	if flags&source.FileHadBOM != 0 {
		out = append(out, "bom")
	}
	if flags&source.FileNormalizedCRLF != 0 {
		out = append(out, "crlf")
	}
	if flags&source.FileNormalizedNFC != 0 {
		out = append(out, "nfc")
	}
	return out
}

func programDiskSpan(prog *cst.Program, span source.Span) source.Span {
	if prog.File == nil {
		return span
	}
	return prog.File.DiskSpan(span)
}

func buildNode(prog *cst.Program, id cst.NodeID) NodeOutput {
	n := prog.Nodes
	node := n.Get(id)
	out := NodeOutput{Kind: node.Kind.String(), Span: programDiskSpan(prog, node.Span)}
	if !node.Kind.IsCompound() {
		out.Text = prog.Text(id)
	}
	switch node.Kind {
	case cst.NodeBoolean:
		d, _ := n.Boolean(id)
		out.Value = fmt.Sprint(d.Value)
	case cst.NodeCharacter:
		d, _ := n.Character(id)
		out.Value = string(d.Value)
	case cst.NodeString:
		d, _ := n.String(id)
		out.Value = d.Value
	case cst.NodeNumber:
		d, _ := n.Number(id)
		lit := d.Lit
		out.Number = &lit
	case cst.NodeSymbol, cst.NodeXtlangType, cst.NodeGenericIdentifier:
		out.Value, _ = n.Name(id)
	case cst.NodeTypedIdentifier:
		d, _ := n.TypedIdentifier(id)
		out.Value = n.Interner.MustLookup(d.Name)
		out.Type = n.Interner.MustLookup(d.Type)
	case cst.NodeList:
		d, _ := n.List(id)
		for _, it := range d.Items {
			out.Children = append(out.Children, buildNode(prog, it))
		}
		if d.Tail.IsValid() {
			tail := buildNode(prog, d.Tail)
			out.Tail = &tail
		}
	default:
		for _, kid := range n.Children(id) {
			out.Children = append(out.Children, buildNode(prog, kid))
		}
	}
	return out
}

// FormatTreeJSON выводит дерево в JSON.
func FormatTreeJSON(w io.Writer, prog *cst.Program) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildProgramOutput(prog))
}

// FormatTreeYAML выводит дерево в YAML.
func FormatTreeYAML(w io.Writer, prog *cst.Program) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(BuildProgramOutput(prog)); err != nil {
		return err
	}
	return encoder.Close()
}

// FormatTreePretty печатает дерево с ветками ├─ └─.
func FormatTreePretty(w io.Writer, prog *cst.Program, fs *source.FileSet) error {
	header := "<buffer>"
	if prog.File != nil {
		header = prog.File.Path
	}
	if _, err := fmt.Fprintf(w, "%s (%d data)\n", header, len(prog.Top)); err != nil {
		return err
	}
	for i, id := range prog.Top {
		prettyNode(w, prog, fs, id, "", i == len(prog.Top)-1, "")
	}
	return nil
}

func prettyNode(w io.Writer, prog *cst.Program, fs *source.FileSet, id cst.NodeID, prefix string, last bool, role string) {
	branch, next := "├─ ", "│  "
	if last {
		branch, next = "└─ ", "   "
	}
	node := prog.Nodes.Get(id)
	label := node.Kind.String()
	if !node.Kind.IsCompound() {
		label += " " + prog.Text(id)
	}
	fmt.Fprintf(w, "%s%s%s%s (span: %s)\n", prefix, branch, role, label, formatSpan(node.Span, fs))

	kids := prog.Nodes.Children(id)
	tail := cst.NoNodeID
	if d, ok := prog.Nodes.List(id); ok {
		tail = d.Tail
	}
	for i, kid := range kids {
		r := ""
		if kid == tail && i == len(kids)-1 {
			r = "tail: "
		}
		prettyNode(w, prog, fs, kid, prefix+next, i == len(kids)-1, r)
	}
}
