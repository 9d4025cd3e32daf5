package bridge

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/alttpo/cstn"
	"github.com/tidwall/jsonc"
)

var ErrNoCSTNForm = errors.New("json value has no cstn form")

// FromJSON converts a JSON or JSONC document to a value. Objects become
// maps with string keys in document order, arrays become lists and
// integral numbers become integers.
func FromJSON(data []byte) (*cstn.Value, error) {
	stripped := jsonc.ToJSON(data)

	dec := json.NewDecoder(bytes.NewReader(stripped))
	dec.UseNumber()

	v, err := decodeJSON(dec, 0)
	if err != nil {
		return nil, err
	}

	if _, err := dec.Token(); err != io.EOF {
		if err == nil {
			return nil, fmt.Errorf("parsing json: trailing data after value")
		}
		return nil, fmt.Errorf("parsing json: %w", err)
	}

	return v, nil
}

func decodeJSON(dec *json.Decoder, depth int) (*cstn.Value, error) {
	if depth > cstn.DefaultMaxDepth {
		return nil, fmt.Errorf("parsing json: %w", cstn.ErrTooDeep)
	}

	tok, err := dec.Token()
	if err == io.EOF {
		return nil, fmt.Errorf("parsing json: %w", io.ErrUnexpectedEOF)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing json: %w", err)
	}

	switch t := tok.(type) {
	case string:
		return cstn.String(t), nil
	case json.Number:
		v, err := cstn.IntegerString(t.String(), 10)
		if err != nil {
			return nil, fmt.Errorf("%w: number %s is not an integer", ErrNoCSTNForm, t)
		}
		return v, nil
	case json.Delim:
		switch t {
		case '[':
			items := make([]*cstn.Value, 0)
			for dec.More() {
				c, err := decodeJSON(dec, depth+1)
				if err != nil {
					return nil, err
				}
				items = append(items, c)
			}
			if _, err := dec.Token(); err != nil {
				return nil, fmt.Errorf("parsing json: %w", err)
			}
			return cstn.List(items...), nil
		case '{':
			pairs := make([]cstn.Pair, 0)
			for dec.More() {
				kt, err := dec.Token()
				if err != nil {
					return nil, fmt.Errorf("parsing json: %w", err)
				}
				key, ok := kt.(string)
				if !ok {
					return nil, fmt.Errorf("parsing json: object key %v is not a string", kt)
				}
				v, err := decodeJSON(dec, depth+1)
				if err != nil {
					return nil, err
				}
				pairs = append(pairs, cstn.P(cstn.String(key), v))
			}
			if _, err := dec.Token(); err != nil {
				return nil, fmt.Errorf("parsing json: %w", err)
			}
			return cstn.NewMap(pairs...), nil
		}
	case bool:
		return nil, fmt.Errorf("%w: boolean %v", ErrNoCSTNForm, t)
	case nil:
		return nil, fmt.Errorf("%w: null", ErrNoCSTNForm)
	}

	return nil, fmt.Errorf("parsing json: unexpected token %v", tok)
}
