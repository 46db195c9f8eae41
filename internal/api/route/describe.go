package route

import (
	"encoding/json"
	"reflect"
	"regexp"
	"strings"
)

// Description is the machine-readable projection of a registry: every route
// with its method, full path, path parameters and payload shapes.
type Description struct {
	Routes []RouteDescription `json:"routes"`
}

// RouteDescription describes one route.
type RouteDescription struct {
	Method string  `json:"method"`
	Path   string  `json:"path"`
	Params []Param `json:"params,omitempty"`
	Input  *Shape  `json:"input,omitempty"`
	Output *Shape  `json:"output"`
}

// Param is a path placeholder such as {id}.
type Param struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Shape kinds.
const (
	KindObject  = "object"
	KindArray   = "array"
	KindMap     = "map"
	KindString  = "string"
	KindNumber  = "number"
	KindInteger = "integer"
	KindBoolean = "boolean"
	KindAny     = "any"
)

// Shape is the JSON shape of a payload type.
type Shape struct {
	Kind   string  `json:"kind"`
	Name   string  `json:"name,omitempty"`
	Fields []Field `json:"fields,omitempty"`
	Elem   *Shape  `json:"elem,omitempty"`
}

// Field is a property of an object shape.
type Field struct {
	Name     string `json:"name"`
	Optional bool   `json:"optional,omitempty"`
	Shape    *Shape `json:"shape"`
}

var paramPattern = regexp.MustCompile(`\{([^}/]+)\}`)

// Describe projects the registered routes into a Description.
func (r *Registry) Describe() Description {
	desc := Description{Routes: make([]RouteDescription, 0, len(r.routes))}
	for _, d := range r.routes {
		rd := RouteDescription{
			Method: d.Method,
			Path:   d.Path,
			Params: pathParams(d.Path),
			Output: shapeOf(d.Output, map[reflect.Type]bool{}),
		}
		if d.Input != nil {
			rd.Input = shapeOf(d.Input, map[reflect.Type]bool{})
		}
		desc.Routes = append(desc.Routes, rd)
	}
	return desc
}

func pathParams(path string) []Param {
	var params []Param
	for _, m := range paramPattern.FindAllStringSubmatch(path, -1) {
		// chi allows {name:regexp}; only the name is part of the contract.
		name, _, _ := strings.Cut(m[1], ":")
		params = append(params, Param{Name: name, Type: KindString})
	}
	return params
}

var rawMessageType = reflect.TypeFor[json.RawMessage]()

func shapeOf(t reflect.Type, seen map[reflect.Type]bool) *Shape {
	if t == rawMessageType {
		return &Shape{Kind: KindAny}
	}

	switch t.Kind() {
	case reflect.Pointer:
		return shapeOf(t.Elem(), seen)
	case reflect.String:
		return &Shape{Kind: KindString}
	case reflect.Bool:
		return &Shape{Kind: KindBoolean}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return &Shape{Kind: KindInteger}
	case reflect.Float32, reflect.Float64:
		return &Shape{Kind: KindNumber}
	case reflect.Slice, reflect.Array:
		if t.Elem().Kind() == reflect.Uint8 {
			return &Shape{Kind: KindString}
		}
		return &Shape{Kind: KindArray, Elem: shapeOf(t.Elem(), seen)}
	case reflect.Map:
		return &Shape{Kind: KindMap, Name: t.Name(), Elem: shapeOf(t.Elem(), seen)}
	case reflect.Struct:
		return structShape(t, seen)
	default:
		return &Shape{Kind: KindAny}
	}
}

func structShape(t reflect.Type, seen map[reflect.Type]bool) *Shape {
	s := &Shape{Kind: KindObject, Name: t.Name()}
	if seen[t] {
		return s
	}
	seen[t] = true
	defer delete(seen, t)

	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}

		name := f.Name
		optional := false
		if tag, ok := f.Tag.Lookup("json"); ok {
			tagName, opts, _ := strings.Cut(tag, ",")
			if tagName == "-" && opts == "" {
				continue
			}
			if tagName != "" {
				name = tagName
			}
			optional = strings.Contains(opts, "omitempty") || strings.Contains(opts, "omitzero")
		}
		if f.Type.Kind() == reflect.Pointer {
			optional = true
		}

		s.Fields = append(s.Fields, Field{
			Name:     name,
			Optional: optional,
			Shape:    shapeOf(f.Type, seen),
		})
	}
	return s
}
