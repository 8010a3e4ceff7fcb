package params

import (
	"fmt"
	"math"
	"strconv"

	"gopkg.in/yaml.v3"
)

// MarshalYAML implements yaml.Marshaler. Maps keep store order.
func (v Value) MarshalYAML() (any, error) {
	return v.yamlNode(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler. Mapping keys keep document order;
// scalars decode by their resolved tag, anything untagged as a string.
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	out, err := fromYAML(node)
	if err != nil {
		return err
	}
	*v = out
	return nil
}

// MarshalYAML implements yaml.Marshaler, emitting a mapping in insertion order.
func (s *Store) MarshalYAML() (any, error) {
	return s.yamlNode(), nil
}

// UnmarshalYAML decodes a YAML mapping into the store, replacing its content.
func (s *Store) UnmarshalYAML(node *yaml.Node) error {
	v, err := fromYAML(node)
	if err != nil {
		return err
	}
	m, ok := v.AsMap()
	if !ok {
		return ErrNotMapping
	}
	*s = *m
	return nil
}

func (r readOnly) MarshalYAML() (any, error) { return r.s.MarshalYAML() }

func (s *Store) yamlNode() *yaml.Node {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, e := range s.entries() {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.Key},
			e.Value.yamlNode(),
		)
	}
	return node
}

func (v Value) yamlNode() *yaml.Node {
	switch v.kind {
	case KindString:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.str}
	case KindNumber:
		return numberNode(v.num)
	case KindBool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(v.b)}
	case KindMap:
		return v.m.yamlNode()
	case KindList:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range v.list {
			node.Content = append(node.Content, item.yamlNode())
		}
		return node
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}
}

func numberNode(f float64) *yaml.Node {
	node := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float"}
	switch {
	case math.IsNaN(f):
		node.Value = ".nan"
	case math.IsInf(f, 1):
		node.Value = ".inf"
	case math.IsInf(f, -1):
		node.Value = "-.inf"
	case f == math.Trunc(f) && math.Abs(f) < 1<<53:
		node.Tag = "!!int"
		node.Value = strconv.FormatInt(int64(f), 10)
	default:
		node.Value = formatNumber(f)
	}
	return node
}

func fromYAML(node *yaml.Node) (Value, error) {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return Null(), nil
		}
		return fromYAML(node.Content[0])
	case yaml.AliasNode:
		return fromYAML(node.Alias)
	case yaml.MappingNode:
		s := New(nil)
		for i := 0; i+1 < len(node.Content); i += 2 {
			item, err := fromYAML(node.Content[i+1])
			if err != nil {
				return Value{}, err
			}
			s.Set(node.Content[i].Value, item)
		}
		return Map(s), nil
	case yaml.SequenceNode:
		items := make([]Value, 0, len(node.Content))
		for _, c := range node.Content {
			item, err := fromYAML(c)
			if err != nil {
				return Value{}, err
			}
			items = append(items, item)
		}
		return List(items...), nil
	case yaml.ScalarNode:
		return scalarFromYAML(node)
	}
	return Value{}, fmt.Errorf("%w: yaml node kind %d", ErrUnknownKind, node.Kind)
}

func scalarFromYAML(node *yaml.Node) (Value, error) {
	switch node.ShortTag() {
	case "!!null":
		return Null(), nil
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return Value{}, err
		}
		return Bool(b), nil
	case "!!int", "!!float":
		var f float64
		if err := node.Decode(&f); err != nil {
			return Value{}, err
		}
		return Number(f), nil
	default:
		return String(node.Value), nil
	}
}
