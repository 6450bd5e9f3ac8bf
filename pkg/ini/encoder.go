package ini

import (
	"fmt"
	"io"
)

// Encoder writes INI documents to an output stream.
type Encoder struct {
	w io.Writer
}

// NewEncoder returns a new encoder that writes to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

// Encode writes the INI encoding of v to the stream.
//
// A *Document is written losslessly with its own formatting; any other value
// is encoded with Marshal.
func (e *Encoder) Encode(v any) error {
	if doc, ok := v.(*Document); ok {
		_, err := doc.WriteTo(e.w)
		return err
	}

	data, err := Marshal(v)
	if err != nil {
		return err
	}
	if _, err := e.w.Write(data); err != nil {
		return fmt.Errorf("ini: write: %w", err)
	}
	return nil
}

// Decoder reads an INI document from an input stream.
type Decoder struct {
	r io.Reader
}

// NewDecoder returns a new decoder that reads from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: r}
}

// Decode reads the rest of the stream as one INI document.
//
// If v is a *Document it receives the parsed document, formatting included.
// Otherwise the document is stored in v as by Unmarshal.
func (d *Decoder) Decode(v any) error {
	doc, err := ParseReader(d.r)
	if err != nil {
		return err
	}
	if target, ok := v.(*Document); ok {
		if target == nil {
			return fmt.Errorf("ini: Decode(nil *Document)")
		}
		*target = *doc
		return nil
	}
	return UnmarshalDocument(doc, v)
}
