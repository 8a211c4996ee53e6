// Package store содержит разреженное хранилище блоков — единственный источник
// истины о содержимом мира. Пустота (Air) представлена отсутствием записи.
package store

import (
	"errors"
	"fmt"
	"io"

	"github.com/annel0/blockverse/internal/vec"
	"github.com/annel0/blockverse/internal/world/block"
)

// Поддерживаемые реализации хранилища
const (
	BackendMap    = "map"
	BackendBadger = "badger"
)

// ErrUnknownBackend возвращается для неизвестного имени реализации
var ErrUnknownBackend = errors.New("неизвестная реализация хранилища")

// Entry — непустая запись хранилища
type Entry struct {
	Pos vec.Vec3
	ID  block.ID
}

// Store — разреженное отображение координат решётки на материалы.
// Не потокобезопасно: пишет только поток симуляции.
type Store interface {
	block.ReadWriter

	// All возвращает снимок всех непустых записей; порядок не определён.
	All() []Entry
	// Len возвращает число непустых записей.
	Len() int
	// Clear удаляет все записи.
	Clear()
}

// New создаёт хранилище по имени реализации ("" означает map)
func New(backend string) (Store, error) {
	switch backend {
	case "", BackendMap:
		return NewMapStore(), nil
	case BackendBadger:
		return NewBadgerStore()
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}

// Close освобождает ресурсы хранилища, если реализация их держит
func Close(s Store) error {
	if c, ok := s.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
