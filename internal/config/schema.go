package config

import (
	"bytes"
	_ "embed"
	"errors"
	"strconv"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/specialistvlad/blockgen/internal/document"
	"github.com/specialistvlad/blockgen/internal/generr"
)

//go:embed schema/blocks_data.schema.json
var blocksDataSchema []byte

const schemaURL = "https://blockgen.local/blocks_data.schema.json"

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

func schema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		c := jsonschema.NewCompiler()
		c.Draft = jsonschema.Draft7
		if err := c.AddResource(schemaURL, bytes.NewReader(blocksDataSchema)); err != nil {
			compileErr = err
			return
		}
		compiled, compileErr = c.Compile(schemaURL)
	})
	return compiled, compileErr
}

// Validate checks an evaluated _blocks_data.json document against the
// embedded schema. The first failure is reported as a ConfigShape error
// located at the offending value.
func Validate(file string, doc document.Value) error {
	s, err := schema()
	if err != nil {
		// The schema is embedded; failing to compile it is a build defect.
		panic(err)
	}
	err = s.Validate(document.ToAny(doc))
	if err == nil {
		return nil
	}
	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return generr.Shape("Failed to validate the blocks data.").At(file, nil).Wrap(err)
	}
	leaf := firstLeaf(verr)
	kind := generr.ConfigShape
	if strings.HasSuffix(leaf.KeywordLocation, "/required") {
		kind = generr.MissingProperty
	}
	return generr.New(kind, "The blocks data does not match the expected shape: %s.", leaf.Message).
		At(file, pointerPath(doc, leaf.InstanceLocation))
}

func firstLeaf(e *jsonschema.ValidationError) *jsonschema.ValidationError {
	for len(e.Causes) > 0 {
		e = e.Causes[0]
	}
	return e
}

// pointerPath turns a JSON pointer into a document.Path, using doc to tell
// array indices from object keys that look like numbers.
func pointerPath(doc document.Value, pointer string) document.Path {
	path := document.Root
	if pointer == "" || pointer == "/" {
		return path
	}
	cur := doc
	for _, raw := range strings.Split(strings.TrimPrefix(pointer, "/"), "/") {
		tok := strings.ReplaceAll(strings.ReplaceAll(raw, "~1", "/"), "~0", "~")
		switch tv := cur.(type) {
		case *document.Array:
			if i, err := strconv.Atoi(tok); err == nil && i >= 0 && i < tv.Len() {
				path = path.Index(i)
				cur = tv.At(i)
				continue
			}
		case *document.Object:
			if next, ok := tv.Get(tok); ok {
				path = path.Key(tok)
				cur = next
				continue
			}
		}
		path = path.Key(tok)
		cur = nil
	}
	return path
}
