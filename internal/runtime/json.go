package runtime

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// DecodeJSON binds a JSON document to the runtime value model. Object
// members keep document order, matching the host array's insertion order;
// whole numbers decode as Integer, everything else numeric as Float.
func DecodeJSON(data []byte) (Object, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	obj, err := decodeValue(dec)
	if err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, fmt.Errorf("trailing data after JSON value")
	}
	return obj, nil
}

func decodeValue(dec *json.Decoder) (Object, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			arr := NewArray()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("object key is %T, want string", keyTok)
				}
				val, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				arr.Set(StringKey(key), val)
			}
			if _, err := dec.Token(); err != nil { // consume '}'
				return nil, err
			}
			return arr, nil

		case '[':
			arr := NewArray()
			for dec.More() {
				val, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				arr.Append(val)
			}
			if _, err := dec.Token(); err != nil { // consume ']'
				return nil, err
			}
			return arr, nil
		}
		return nil, fmt.Errorf("unexpected delimiter %v", t)

	case string:
		return &String{Value: t}, nil

	case bool:
		return &Boolean{Value: t}, nil

	case json.Number:
		s := t.String()
		if !strings.ContainsAny(s, ".eE") {
			if n, err := t.Int64(); err == nil {
				return &Integer{Value: n}, nil
			}
		}
		f, err := t.Float64()
		if err != nil {
			return nil, err
		}
		return &Float{Value: f}, nil

	case nil:
		return &Nil{}, nil

	default:
		return nil, fmt.Errorf("unexpected JSON token %T", tok)
	}
}
