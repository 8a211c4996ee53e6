package store

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// Digest вычисляет отпечаток содержимого хранилища, не зависящий от порядка обхода.
// Два хранилища с одинаковыми записями дают одинаковый отпечаток.
func Digest(s Store) uint64 {
	var buf [14]byte
	var sum, mix uint64

	for _, e := range s.All() {
		binary.LittleEndian.PutUint32(buf[0:4], uint32(int32(e.Pos.X)))
		binary.LittleEndian.PutUint32(buf[4:8], uint32(int32(e.Pos.Y)))
		binary.LittleEndian.PutUint32(buf[8:12], uint32(int32(e.Pos.Z)))
		binary.LittleEndian.PutUint16(buf[12:14], uint16(e.ID))

		h := xxhash.Sum64(buf[:])
		sum += h
		mix ^= h * 0x9E3779B97F4A7C15
	}

	binary.LittleEndian.PutUint64(buf[0:8], sum^mix)
	binary.LittleEndian.PutUint32(buf[8:12], uint32(s.Len()))
	return xxhash.Sum64(buf[:12])
}
