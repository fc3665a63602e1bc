// Package gojson parses JSON text into a jsonshape.Value tree using
// goccy/go-json as the tokenizer. Object member order is preserved.
package gojson

import (
	"bytes"
	"io"
	"strconv"
	"strings"

	j "github.com/goccy/go-json"

	jsonshape "github.com/jsonshape/jsonshape"
)

// ParseBytes parses a single JSON document from b.
func ParseBytes(b []byte) (jsonshape.Value, error) {
	return ParseReader(bytes.NewReader(b))
}

// ParseReader parses a single JSON document from r. Trailing non-whitespace
// input after the document is a parse_error.
func ParseReader(r io.Reader) (jsonshape.Value, error) {
	dec := j.NewDecoder(r)
	dec.UseNumber()
	p := &parser{dec: dec}
	v, err := p.parseValue()
	if err != nil {
		return jsonshape.Value{}, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return jsonshape.Value{}, jsonshape.Issues{jsonshape.Issue{
			Path: "/", Code: jsonshape.CodeParseError, Message: "trailing data after JSON document",
		}}
	}
	return v, nil
}

type parser struct {
	dec *j.Decoder
}

func (p *parser) parseValue() (jsonshape.Value, error) {
	tok, err := p.dec.Token()
	if err != nil {
		return jsonshape.Value{}, wrapParse(err)
	}
	return p.valueFromToken(tok)
}

func (p *parser) valueFromToken(tok j.Token) (jsonshape.Value, error) {
	switch t := tok.(type) {
	case j.Delim:
		switch t {
		case '{':
			return p.parseObject()
		case '[':
			return p.parseArray()
		}
		return jsonshape.Value{}, jsonshape.Issues{jsonshape.Issue{
			Path: "/", Code: jsonshape.CodeParseError, Message: "unexpected delimiter " + string(t),
		}}
	case string:
		return jsonshape.StrVal(t), nil
	case bool:
		return jsonshape.BoolVal(t), nil
	case j.Number:
		return numberValue(string(t)), nil
	case float64:
		// UseNumber makes this unreachable; kept for driver compatibility
		return jsonshape.FloatVal(t), nil
	case nil:
		return jsonshape.Null(), nil
	default:
		return jsonshape.Value{}, jsonshape.Issues{jsonshape.Issue{
			Path: "/", Code: jsonshape.CodeParseError, Message: "unexpected token",
		}}
	}
}

func (p *parser) parseObject() (jsonshape.Value, error) {
	obj := jsonshape.NewObject()
	for {
		tok, err := p.dec.Token()
		if err != nil {
			return jsonshape.Value{}, wrapParse(err)
		}
		if d, ok := tok.(j.Delim); ok && d == '}' {
			return jsonshape.ObjVal(obj), nil
		}
		key, ok := tok.(string)
		if !ok {
			return jsonshape.Value{}, jsonshape.Issues{jsonshape.Issue{
				Path: "/", Code: jsonshape.CodeParseError, Message: "object key is not a string",
			}}
		}
		val, err := p.parseValue()
		if err != nil {
			return jsonshape.Value{}, err
		}
		obj.Set(key, val)
	}
}

func (p *parser) parseArray() (jsonshape.Value, error) {
	var elems []jsonshape.Value
	for {
		tok, err := p.dec.Token()
		if err != nil {
			return jsonshape.Value{}, wrapParse(err)
		}
		if d, ok := tok.(j.Delim); ok && d == ']' {
			return jsonshape.Value{Kind: jsonshape.KindArray, Arr: elems}, nil
		}
		val, err := p.valueFromToken(tok)
		if err != nil {
			return jsonshape.Value{}, err
		}
		elems = append(elems, val)
	}
}

// numberValue classifies a JSON number literal: no fraction or exponent means
// an integer token. An integer that overflows int64 degrades to a float.
func numberValue(lit string) jsonshape.Value {
	if !strings.ContainsAny(lit, ".eE") {
		if i, err := strconv.ParseInt(lit, 10, 64); err == nil {
			return jsonshape.IntVal(i)
		}
	}
	f, _ := strconv.ParseFloat(lit, 64)
	return jsonshape.FloatVal(f)
}

func wrapParse(err error) error {
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return jsonshape.Issues{jsonshape.Issue{
		Path: "/", Code: jsonshape.CodeParseError, Message: err.Error(), Cause: err,
	}}
}
