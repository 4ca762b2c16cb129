package nbt

import "fmt"

// ByteArray is the payload of a TAG_Byte_Array tag: a length-prefixed
// sequence of raw bytes. It behaves as an ordinary Go slice; callers
// mutate it in place the same way they would any []byte.
type ByteArray []byte

func (ByteArray) ID() ID { return IDByteArray }
func (v ByteArray) String() string {
	return fmt.Sprintf("[%d bytes]", len(v))
}

// IntArray is the payload of a TAG_Int_Array tag.
type IntArray []int32

func (IntArray) ID() ID { return IDIntArray }
func (v IntArray) String() string {
	return fmt.Sprintf("[%d ints]", len(v))
}

// LongArray is the payload of a TAG_Long_Array tag (id 12). The original
// YoNBT draft this codec's decode/encode pipeline is grounded on stops at
// Int_Array; the format and this module both define id 12.
type LongArray []int64

func (LongArray) ID() ID { return IDLongArray }
func (v LongArray) String() string {
	return fmt.Sprintf("[%d longs]", len(v))
}
