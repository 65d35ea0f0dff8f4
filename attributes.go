package memns

// Attributes is a bitmask of FILE_ATTRIBUTE_* style flags. Only AttrReadOnly
// and AttrDirectory carry meaning inside the namespace; the rest are stored
// for the callback layer.
type Attributes uint32

const (
	AttrReadOnly  Attributes = 0x00000001
	AttrHidden    Attributes = 0x00000002
	AttrSystem    Attributes = 0x00000004
	AttrDirectory Attributes = 0x00000010
	AttrArchive   Attributes = 0x00000020
	AttrNormal    Attributes = 0x00000080
)

// Has reports whether every bit of flag is set
func (a Attributes) Has(flag Attributes) bool {
	return a&flag == flag
}

func (a Attributes) IsReadOnly() bool {
	return a.Has(AttrReadOnly)
}
