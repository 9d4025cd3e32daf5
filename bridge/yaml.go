package bridge

import (
	"bytes"
	"fmt"

	"github.com/alttpo/cstn"
	"gopkg.in/yaml.v3"
)

// TupleTag marks YAML sequences that came from CSTN tuples.
const TupleTag = "!tuple"

// ToYAML converts v to a YAML node tree.
func ToYAML(v *cstn.Value) (*yaml.Node, error) {
	if v == nil {
		return nil, &cstn.UnsupportedTypeError{Kind: -1, Msg: "nil value"}
	}

	switch v.Kind {
	case cstn.KindString:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.Text}, nil
	case cstn.KindInteger:
		if v.Int == nil {
			return nil, &cstn.UnsupportedTypeError{Kind: v.Kind, Msg: "nil integer"}
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: v.Int.String()}, nil
	case cstn.KindList, cstn.KindTuple:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		if v.Kind == cstn.KindTuple {
			n.Tag = TupleTag
			n.Style = yaml.FlowStyle
		}
		for _, c := range v.Items {
			cn, err := ToYAML(c)
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, cn)
		}
		return n, nil
	case cstn.KindMap:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, p := range v.Pairs {
			kn, err := ToYAML(p.Key)
			if err != nil {
				return nil, err
			}
			vn, err := ToYAML(p.Value)
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, kn, vn)
		}
		return n, nil
	}

	return nil, &cstn.UnsupportedTypeError{Kind: v.Kind}
}

// MarshalYAML renders v as a YAML document indented by indent spaces.
func MarshalYAML(v *cstn.Value, indent int) ([]byte, error) {
	n, err := ToYAML(v)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(indent)
	if err := enc.Encode(n); err != nil {
		return nil, fmt.Errorf("encoding yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding yaml: %w", err)
	}

	return buf.Bytes(), nil
}
