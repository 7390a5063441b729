package vm

// loader.go holds the program image loader.

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/CairBin/go-lc3-vm/internal/log"
)

// ErrInvalidImage is returned for image files that cannot be decoded.
var ErrInvalidImage = errors.New("invalid image")

// ObjectCode is a program image: an origin address and the words to place
// there.
type ObjectCode struct {
	Orig Word
	Code []Word
}

// UnmarshalBinary decodes an image from its file format: a sequence of
// big-endian words, the first of which is the origin. A payload with an odd
// number of bytes is padded with a single zero byte to complete the last
// word.
func (obj *ObjectCode) UnmarshalBinary(b []byte) error {
	if len(b) < 2 {
		return fmt.Errorf("%w: image too small", ErrInvalidImage)
	}

	in := bytes.NewReader(b)
	if err := binary.Read(in, binary.BigEndian, &obj.Orig); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidImage, err)
	}

	payload := b[2:]
	if len(payload)%2 != 0 {
		padded := make([]byte, len(payload)+1)
		copy(padded, payload)
		payload = padded
	}

	obj.Code = make([]Word, len(payload)/2)
	if err := binary.Read(bytes.NewReader(payload), binary.BigEndian, obj.Code); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidImage, err)
	}

	return nil
}

func (obj ObjectCode) String() string {
	return fmt.Sprintf("ObjectCode(orig:%s len:%d)", obj.Orig, len(obj.Code))
}

// Loader stores object code into the machine's memory.
type Loader struct {
	log *log.Logger
}

// NewLoader creates an object loader.
func NewLoader() *Loader {
	return &Loader{
		log: log.DefaultLogger(),
	}
}

// Load writes the object's words consecutively beginning at its origin and
// returns the count written. Placement that would pass the top of the
// address space is silently clipped. Loading over a previous image
// overwrites the overlapping region; there is no relocation.
func (l *Loader) Load(mem *Memory, obj ObjectCode) (uint16, error) {
	var count uint16

	addr := obj.Orig

	for _, code := range obj.Code {
		mem.Write(addr, code)
		count++

		if addr == 0xffff {
			break
		}

		addr++
	}

	l.log.Debug("Loaded object", "OBJ", obj, "WORDS", count)

	return count, nil
}
