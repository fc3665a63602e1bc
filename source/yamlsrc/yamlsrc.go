// Package yamlsrc parses YAML documents into the same jsonshape.Value tree
// the JSON parser produces, so YAML input can feed bound schemas unchanged.
// Mapping key order is preserved.
package yamlsrc

import (
	"strconv"

	"gopkg.in/yaml.v3"

	jsonshape "github.com/jsonshape/jsonshape"
)

// ParseBytes parses a single YAML document from b.
func ParseBytes(b []byte) (jsonshape.Value, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return jsonshape.Value{}, jsonshape.Issues{jsonshape.Issue{
			Path: "/", Code: jsonshape.CodeParseError, Message: err.Error(), Cause: err,
		}}
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return jsonshape.Null(), nil
	}
	return fromNode(doc.Content[0])
}

func fromNode(n *yaml.Node) (jsonshape.Value, error) {
	switch n.Kind {
	case yaml.AliasNode:
		return fromNode(n.Alias)
	case yaml.MappingNode:
		obj := jsonshape.NewObject()
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i].Value
			val, err := fromNode(n.Content[i+1])
			if err != nil {
				return jsonshape.Value{}, err
			}
			obj.Set(key, val)
		}
		return jsonshape.ObjVal(obj), nil
	case yaml.SequenceNode:
		elems := make([]jsonshape.Value, 0, len(n.Content))
		for _, c := range n.Content {
			val, err := fromNode(c)
			if err != nil {
				return jsonshape.Value{}, err
			}
			elems = append(elems, val)
		}
		return jsonshape.Value{Kind: jsonshape.KindArray, Arr: elems}, nil
	case yaml.ScalarNode:
		return fromScalar(n)
	default:
		return jsonshape.Value{}, jsonshape.Issues{jsonshape.Issue{
			Path: "/", Code: jsonshape.CodeParseError,
			Message: "unsupported YAML node at line " + strconv.Itoa(n.Line),
		}}
	}
}

func fromScalar(n *yaml.Node) (jsonshape.Value, error) {
	switch n.Tag {
	case "!!null":
		return jsonshape.Null(), nil
	case "!!bool":
		b, err := strconv.ParseBool(n.Value)
		if err != nil {
			// YAML 1.1 spellings (yes/on) that ParseBool rejects
			b = n.Value == "yes" || n.Value == "on" || n.Value == "Yes" || n.Value == "On"
		}
		return jsonshape.BoolVal(b), nil
	case "!!int":
		i, err := strconv.ParseInt(n.Value, 0, 64)
		if err != nil {
			f, _ := strconv.ParseFloat(n.Value, 64)
			return jsonshape.FloatVal(f), nil
		}
		return jsonshape.IntVal(i), nil
	case "!!float":
		f, err := strconv.ParseFloat(n.Value, 64)
		if err != nil {
			return jsonshape.Value{}, jsonshape.Issues{jsonshape.Issue{
				Path: "/", Code: jsonshape.CodeParseError,
				Message: "bad float " + strconv.Quote(n.Value), Cause: err,
			}}
		}
		return jsonshape.FloatVal(f), nil
	default:
		// !!str, !!timestamp, !!binary and custom tags stay textual
		return jsonshape.StrVal(n.Value), nil
	}
}
