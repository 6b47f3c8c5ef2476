// Package record implements the fixed-layout load/unload codecs for the
// values the pager persists: Property, LabeledProperty, Symbol, FString,
// FList, Document, Vertex, and Edge. Every multi-byte field passes
// through package byteorder rather than an aliased pointer cast,
// following spec §9's strict-aliasing mandate; the original's direct
// `*(uint32_t*)(buf+off)` casts are translated to explicit slice
// load/store calls. Grounded on property.c/.h, symbol.h, fstring.c/.h,
// flist.h, document.h, vertex.h, edge.h.
package record

import "github.com/wardlem/fabricdb/byteorder"

// DataType identifies the kind of value a Property carries.
type DataType uint8

const (
	Void    DataType = 0x00
	False   DataType = 0x01
	True    DataType = 0x02
	Integer DataType = 0x03
	Real    DataType = 0x04
	Ratio   DataType = 0x05
	UChar   DataType = 0x06
	Date    DataType = 0x0F

	String0 DataType = 0x10
	String1 DataType = 0x11
	String2 DataType = 0x12
	String3 DataType = 0x13
	String4 DataType = 0x14
	String5 DataType = 0x15
	String6 DataType = 0x16
	String7 DataType = 0x17
	String8 DataType = 0x18
	String  DataType = 0x19
	Blob    DataType = 0x1F

	Document DataType = 0x20
	Array    DataType = 0x21
	Symbol   DataType = 0x22
)

// IsVoid reports whether the property carries no value.
func (d DataType) IsVoid() bool { return d == Void }

// IsBoolean reports whether the property is True or False.
func (d DataType) IsBoolean() bool { return d == True || d == False }

// IsNumeric reports whether the property's type lies in the numeric
// range [Integer, Date].
func (d DataType) IsNumeric() bool { return d >= Integer && d <= Date }

// IsString reports whether the property's type lies in the inline or
// out-of-line string range [String0, String].
func (d DataType) IsString() bool { return d >= String0 && d <= String }

// IsReference reports whether the property's data holds an id into
// another record rather than an inline scalar: a u64 id for String,
// Blob, Document, and Array, or a u32 symbol id for Symbol.
func (d DataType) IsReference() bool { return d >= String }

// PropertyDiskSize is the on-disk size of a Property record.
const PropertyDiskSize = 9

// Ratio is a pair of 32-bit integers representing a RATIO property.
type Ratio struct {
	Numer int32
	Denom int32
}

// Property is a small, tagged value embedded inline in a Vertex, Edge,
// FList, or Document record. Data holds the raw 8-byte on-disk payload;
// the accessor methods interpret it according to DataType, mirroring the
// source's union-by-convention encoding.
type Property struct {
	DataType DataType
	Data     [8]byte
}

// LoadProperty decodes a Property from the first PropertyDiskSize bytes
// of src.
func LoadProperty(src []byte) Property {
	var p Property
	p.DataType = DataType(src[0])
	copy(p.Data[:], src[1:9])
	return p
}

// Unload encodes p into the first PropertyDiskSize bytes of dst.
func (p Property) Unload(dst []byte) {
	dst[0] = uint8(p.DataType)
	copy(dst[1:9], p.Data[:])
}

// Bool returns the property's boolean value; non-boolean types read as
// false.
func (p Property) Bool() bool {
	return p.DataType == True
}

// Int64 returns the property's value as an i64; valid only for Integer
// and Date, otherwise 0.
func (p Property) Int64() int64 {
	switch p.DataType {
	case Integer, Date:
		return byteorder.FromLEI64(p.Data[:])
	}
	return 0
}

// Uint64 returns the property's value as the u64 reference id it carries;
// valid only for Document, Array, Blob, and String, otherwise 0.
func (p Property) Uint64() uint64 {
	switch p.DataType {
	case Document, Array, Blob, String:
		return byteorder.FromLEU64(p.Data[:])
	}
	return 0
}

// Float64 returns the property's value as an f64; valid only for Real,
// otherwise 0.
func (p Property) Float64() float64 {
	if p.DataType == Real {
		return byteorder.FromLEF64(p.Data[:])
	}
	return 0
}

// Int32 returns the property's value as an i32; valid only for UChar,
// otherwise 0.
func (p Property) Int32() int32 {
	if p.DataType == UChar {
		return byteorder.FromLEI32(p.Data[:4])
	}
	return 0
}

// Uint32 returns the property's value as a symbol id; valid only for
// Symbol, otherwise 0.
func (p Property) Uint32() uint32 {
	if p.DataType == Symbol {
		return byteorder.FromLEU32(p.Data[:4])
	}
	return 0
}

// ToRatio returns the property's value as a Ratio; valid only for Ratio,
// otherwise the zero Ratio.
func (p Property) ToRatio() Ratio {
	if p.DataType != Ratio {
		return Ratio{}
	}
	return Ratio{
		Numer: byteorder.FromLEI32(p.Data[0:4]),
		Denom: byteorder.FromLEI32(p.Data[4:8]),
	}
}

// NewInt64Property builds an Integer or Date property from v.
func NewInt64Property(dataType DataType, v int64) Property {
	var p Property
	p.DataType = dataType
	byteorder.ToLEI64(p.Data[:], v)
	return p
}

// NewFloat64Property builds a Real property from v.
func NewFloat64Property(v float64) Property {
	var p Property
	p.DataType = Real
	byteorder.ToLEF64(p.Data[:], v)
	return p
}

// NewRatioProperty builds a Ratio property from r.
func NewRatioProperty(r Ratio) Property {
	var p Property
	p.DataType = Ratio
	byteorder.ToLEI32(p.Data[0:4], r.Numer)
	byteorder.ToLEI32(p.Data[4:8], r.Denom)
	return p
}

// NewReferenceProperty builds a String/Blob/Document/Array property
// carrying the u64 id ref.
func NewReferenceProperty(dataType DataType, ref uint64) Property {
	var p Property
	p.DataType = dataType
	byteorder.ToLEU64(p.Data[:], ref)
	return p
}

// NewSymbolProperty builds a Symbol property carrying the u32 symbol id.
func NewSymbolProperty(symbolID uint32) Property {
	var p Property
	p.DataType = Symbol
	byteorder.ToLEU32(p.Data[:4], symbolID)
	return p
}

// LabeledPropertyDiskSize is the on-disk size of a LabeledProperty record.
const LabeledPropertyDiskSize = 4 + PropertyDiskSize

// LabeledProperty pairs a Property with the symbol id of its label, used
// as the entry format for Document records.
type LabeledProperty struct {
	LabelID uint32
	Prop    Property
}

// LoadLabeledProperty decodes a LabeledProperty from the first
// LabeledPropertyDiskSize bytes of src.
func LoadLabeledProperty(src []byte) LabeledProperty {
	return LabeledProperty{
		LabelID: byteorder.FromLEU32(src[0:4]),
		Prop:    LoadProperty(src[4:13]),
	}
}

// Unload encodes lp into the first LabeledPropertyDiskSize bytes of dst.
func (lp LabeledProperty) Unload(dst []byte) {
	byteorder.ToLEU32(dst[0:4], lp.LabelID)
	lp.Prop.Unload(dst[4:13])
}
