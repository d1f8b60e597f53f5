// Package endian provides byte order utilities for the UTF-16 codecs.
//
// It combines the ByteOrder and AppendByteOrder interfaces from
// encoding/binary into a single EndianEngine interface so a single
// UTF-16 converter implementation can serve both byte orders: the
// little-endian and big-endian codecs differ only in the engine they
// carry.
//
// The returned EndianEngine instances are immutable and stateless, and
// safe for concurrent use.
package endian

import "encoding/binary"

// EndianEngine combines ByteOrder and AppendByteOrder from
// encoding/binary. It is satisfied by binary.LittleEndian and
// binary.BigEndian.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}
