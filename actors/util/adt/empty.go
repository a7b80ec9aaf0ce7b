package adt

import (
	"fmt"
	"io"

	"github.com/filecoin-project/go-state-types/cbor"
)

// EmptyValue is the value stored against each key of a Set.
type EmptyValue struct{}

var _ cbor.Marshaler = (*EmptyValue)(nil)
var _ cbor.Unmarshaler = (*EmptyValue)(nil)

// 0x80 is empty list (major type 4 with zero length)
// This is encoded with empty-list since we use tuple-encoding for everything.
const emptyListEncoded = 0x80

func (EmptyValue) MarshalCBOR(w io.Writer) error {
	_, err := w.Write([]byte{emptyListEncoded})
	return err
}

func (*EmptyValue) UnmarshalCBOR(r io.Reader) error {
	buf := make([]byte, 1)
	if _, err := io.ReadFull(r, buf); err != nil {
		return err
	}
	if buf[0] != emptyListEncoded {
		return fmt.Errorf("invalid empty value %x", buf[0])
	}
	return nil
}
