package shaarli

import (
	"fmt"
	"strconv"
	"strings"
)

// The datastore payload is a PHP serialize() graph. This decoder covers
// the subset Shaarli actually emits (null, bool, int, double, string,
// array, object) and decodes objects to plain field lists instead of
// instantiating anything, so a crafted datastore cannot inject types.

// phpPair is one key/value entry of a PHP array or object body.
type phpPair struct {
	key   any
	value any
}

// phpArray preserves PHP array entries in order. Keys are int64 or string.
type phpArray []phpPair

// phpObject is a serialized PHP object reduced to its class name and fields.
type phpObject struct {
	class  string
	fields phpArray
}

// stringField returns the named field's string value, matching on the
// cleaned key.
func (o *phpObject) stringField(name string) (string, bool) {
	for _, f := range o.fields {
		key, ok := f.key.(string)
		if !ok {
			continue
		}
		if cleanKey(key) == name {
			if s, ok := f.value.(string); ok {
				return s, true
			}
		}
	}
	return "", false
}

// cleanKey strips the null-byte visibility markers PHP adds to private
// ("\x00Class\x00name") and protected ("\x00*\x00name") property names.
func cleanKey(key string) string {
	return strings.ReplaceAll(key, "\x00", "")
}

type phpDecoder struct {
	data []byte
	pos  int
}

// decodePHPValue decodes a single serialized PHP value from data.
func decodePHPValue(data []byte) (any, error) {
	d := &phpDecoder{data: data}
	v, err := d.decode()
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (d *phpDecoder) decode() (any, error) {
	if d.pos >= len(d.data) {
		return nil, fmt.Errorf("unexpected end of data at offset %d", d.pos)
	}

	switch d.data[d.pos] {
	case 'N':
		if err := d.expect("N;"); err != nil {
			return nil, err
		}
		return nil, nil

	case 'b':
		if err := d.expect("b:"); err != nil {
			return nil, err
		}
		raw, err := d.readUntil(';')
		if err != nil {
			return nil, err
		}
		return raw == "1", nil

	case 'i':
		if err := d.expect("i:"); err != nil {
			return nil, err
		}
		raw, err := d.readUntil(';')
		if err != nil {
			return nil, err
		}
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad integer %q at offset %d", raw, d.pos)
		}
		return n, nil

	case 'd':
		if err := d.expect("d:"); err != nil {
			return nil, err
		}
		raw, err := d.readUntil(';')
		if err != nil {
			return nil, err
		}
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("bad double %q at offset %d", raw, d.pos)
		}
		return f, nil

	case 's':
		if err := d.expect("s:"); err != nil {
			return nil, err
		}
		s, err := d.readString()
		if err != nil {
			return nil, err
		}
		if err := d.expect(";"); err != nil {
			return nil, err
		}
		return s, nil

	case 'a':
		if err := d.expect("a:"); err != nil {
			return nil, err
		}
		return d.readBody()

	case 'O':
		if err := d.expect("O:"); err != nil {
			return nil, err
		}
		class, err := d.readString()
		if err != nil {
			return nil, err
		}
		if err := d.expect(":"); err != nil {
			return nil, err
		}
		fields, err := d.readBody()
		if err != nil {
			return nil, err
		}
		return &phpObject{class: class, fields: fields}, nil

	default:
		return nil, fmt.Errorf("unknown type marker %q at offset %d", d.data[d.pos], d.pos)
	}
}

// readBody reads "<count>:{entries}" shared by arrays and objects.
func (d *phpDecoder) readBody() (phpArray, error) {
	raw, err := d.readUntil(':')
	if err != nil {
		return nil, err
	}
	count, err := strconv.Atoi(raw)
	if err != nil || count < 0 {
		return nil, fmt.Errorf("bad entry count %q at offset %d", raw, d.pos)
	}
	if err := d.expect("{"); err != nil {
		return nil, err
	}

	// The count comes from the upload and a pair needs at least four
	// bytes of input, so cap the preallocation by the remaining data.
	entries := make(phpArray, 0, min(count, (len(d.data)-d.pos)/4))
	for range count {
		key, err := d.decode()
		if err != nil {
			return nil, err
		}
		value, err := d.decode()
		if err != nil {
			return nil, err
		}
		entries = append(entries, phpPair{key: key, value: value})
	}

	if err := d.expect("}"); err != nil {
		return nil, err
	}
	return entries, nil
}

// readString reads a length-prefixed string: `<len>:"<bytes>"`. The
// length counts bytes, not runes, so multibyte titles decode intact.
func (d *phpDecoder) readString() (string, error) {
	raw, err := d.readUntil(':')
	if err != nil {
		return "", err
	}
	length, err := strconv.Atoi(raw)
	if err != nil || length < 0 {
		return "", fmt.Errorf("bad string length %q at offset %d", raw, d.pos)
	}
	if err := d.expect(`"`); err != nil {
		return "", err
	}
	if d.pos+length > len(d.data) {
		return "", fmt.Errorf("string overruns data at offset %d", d.pos)
	}
	s := string(d.data[d.pos : d.pos+length])
	d.pos += length
	if err := d.expect(`"`); err != nil {
		return "", err
	}
	return s, nil
}

func (d *phpDecoder) expect(tok string) error {
	if d.pos+len(tok) > len(d.data) || string(d.data[d.pos:d.pos+len(tok)]) != tok {
		return fmt.Errorf("expected %q at offset %d", tok, d.pos)
	}
	d.pos += len(tok)
	return nil
}

func (d *phpDecoder) readUntil(delim byte) (string, error) {
	start := d.pos
	for d.pos < len(d.data) {
		if d.data[d.pos] == delim {
			s := string(d.data[start:d.pos])
			d.pos++
			return s, nil
		}
		d.pos++
	}
	return "", fmt.Errorf("missing %q after offset %d", delim, start)
}
