package store

import (
	"github.com/annel0/blockverse/internal/vec"
	"github.com/annel0/blockverse/internal/world/block"
)

// MapStore хранит блоки в обычной карте Go
type MapStore struct {
	blocks map[vec.Vec3]block.ID
}

// NewMapStore создаёт пустое хранилище
func NewMapStore() *MapStore {
	return &MapStore{
		blocks: make(map[vec.Vec3]block.ID),
	}
}

// Get возвращает материал в ячейке; Air для отсутствующих записей
func (s *MapStore) Get(pos vec.Vec3) block.ID {
	if id, ok := s.blocks[pos]; ok {
		return id
	}
	return block.Air
}

// Set вставляет или перезаписывает блок; Air удаляет запись
func (s *MapStore) Set(pos vec.Vec3, id block.ID) {
	if id == block.Air {
		delete(s.blocks, pos)
		return
	}
	s.blocks[pos] = id
}

// All возвращает снимок записей
func (s *MapStore) All() []Entry {
	out := make([]Entry, 0, len(s.blocks))
	for pos, id := range s.blocks {
		out = append(out, Entry{Pos: pos, ID: id})
	}
	return out
}

// Len возвращает число записей
func (s *MapStore) Len() int {
	return len(s.blocks)
}

// Clear удаляет все записи
func (s *MapStore) Clear() {
	s.blocks = make(map[vec.Vec3]block.ID)
}
