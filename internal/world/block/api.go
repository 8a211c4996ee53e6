package block

import (
	"github.com/annel0/blockverse/internal/vec"
)

// Reader даёт доступ только на чтение к содержимому мира.
// Используется пространственными запросами, физикой и выборкой видимости.
type Reader interface {
	// Get возвращает материал в ячейке; Air для незаданных координат.
	Get(pos vec.Vec3) ID
}

// Writer изменяет содержимое мира.
type Writer interface {
	// Set устанавливает материал в ячейке; Air удаляет запись.
	Set(pos vec.Vec3, id ID)
}

// ReadWriter объединяет Reader и Writer; так работает редактор блоков.
type ReadWriter interface {
	Reader
	Writer
}
