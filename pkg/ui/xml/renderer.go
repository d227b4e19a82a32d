// Package xml provides machine-readable XML output.
//
// Results are converted through their JSON form, so the element names match
// the JSON keys. Lists become repeated <item> elements.
package xml

import (
	"bytes"
	stdjson "encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/arthur-debert/snortamv/pkg/ui/json"
	"github.com/beevik/etree"
)

// Named results choose their root element
type Named interface {
	ResultName() string
}

// Renderer writes one XML document per value
type Renderer struct {
	output io.Writer
}

// New creates a new XML renderer
func New(output io.Writer) (*Renderer, error) {
	return &Renderer{output: output}, nil
}

// RenderResult renders any result type as XML
func (r *Renderer) RenderResult(result interface{}) error {
	root := "result"
	if n, ok := result.(Named); ok {
		root = n.ResultName()
	}
	return r.write(root, result)
}

// RenderError renders an error as XML
func (r *Renderer) RenderError(err error) error {
	return r.write("error", json.ErrorObject(err))
}

// RenderMessage renders a simple message as XML
func (r *Renderer) RenderMessage(msg string) error {
	return r.write("message", map[string]string{"text": msg})
}

func (r *Renderer) write(rootName string, v interface{}) error {
	tree, err := generic(v)
	if err != nil {
		return err
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	fill(doc.CreateElement(rootName), tree)
	doc.Indent(2)

	_, err = doc.WriteTo(r.output)
	return err
}

// generic turns v into maps, slices and scalars via its JSON encoding
func generic(v interface{}) (interface{}, error) {
	data, err := stdjson.Marshal(v)
	if err != nil {
		return nil, err
	}
	dec := stdjson.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var out interface{}
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}

func fill(el *etree.Element, v interface{}) {
	switch val := v.(type) {
	case map[string]interface{}:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fill(el.CreateElement(k), val[k])
		}
	case []interface{}:
		for _, item := range val {
			fill(el.CreateElement("item"), item)
		}
	case nil:
	default:
		el.SetText(fmt.Sprint(val))
	}
}
