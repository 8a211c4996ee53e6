package store

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/annel0/blockverse/internal/logging"
	"github.com/annel0/blockverse/internal/vec"
	"github.com/annel0/blockverse/internal/world/block"
	"github.com/dgraph-io/badger/v3"
)

const (
	keySize   = 12
	valueSize = 2
	signFlip  = 0x80000000
)

// BadgerStore хранит блоки во встроенной BadgerDB, работающей только в памяти.
// Ключ — три int32 с инвертированным знаковым битом (big-endian), значение — uint16.
// Контракт Store не возвращает ошибок, поэтому внутренние ошибки Badger
// логируются, а операция деградирует до no-op (или Air при чтении).
// Координаты вне диапазона int32 не кодируются: чтение даёт Air, запись игнорируется.
type BadgerStore struct {
	db    *badger.DB
	count int
	log   *logging.Logger
}

// NewBadgerStore открывает пустую in-memory базу
func NewBadgerStore() (*BadgerStore, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil // Отключаем логирование BadgerDB

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("не удалось открыть BadgerDB: %w", err)
	}

	return &BadgerStore{
		db:  db,
		log: logging.GetStorageLogger(),
	}, nil
}

func inKeyRange(pos vec.Vec3) bool {
	for _, c := range [3]int{pos.X, pos.Y, pos.Z} {
		if c < math.MinInt32 || c > math.MaxInt32 {
			return false
		}
	}
	return true
}

func encodeKey(pos vec.Vec3) []byte {
	key := make([]byte, keySize)
	binary.BigEndian.PutUint32(key[0:4], uint32(int32(pos.X))^signFlip)
	binary.BigEndian.PutUint32(key[4:8], uint32(int32(pos.Y))^signFlip)
	binary.BigEndian.PutUint32(key[8:12], uint32(int32(pos.Z))^signFlip)
	return key
}

func decodeKey(key []byte) vec.Vec3 {
	return vec.Vec3{
		X: int(int32(binary.BigEndian.Uint32(key[0:4]) ^ signFlip)),
		Y: int(int32(binary.BigEndian.Uint32(key[4:8]) ^ signFlip)),
		Z: int(int32(binary.BigEndian.Uint32(key[8:12]) ^ signFlip)),
	}
}

func encodeValue(id block.ID) []byte {
	val := make([]byte, valueSize)
	binary.BigEndian.PutUint16(val, uint16(id))
	return val
}

// Get возвращает материал в ячейке
func (s *BadgerStore) Get(pos vec.Vec3) block.ID {
	id := block.Air
	if !inKeyRange(pos) {
		return id
	}
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(encodeKey(pos))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			if len(val) != valueSize {
				return fmt.Errorf("неверная длина значения: %d", len(val))
			}
			id = block.ID(binary.BigEndian.Uint16(val))
			return nil
		})
	})

	if err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
		s.log.Error("Ошибка чтения блока %v из BadgerDB: %v", pos, err)
		return block.Air
	}
	return id
}

// Set вставляет, перезаписывает или (для Air) удаляет блок
func (s *BadgerStore) Set(pos vec.Vec3, id block.ID) {
	if !inKeyRange(pos) {
		s.log.Warn("Координаты %v вне диапазона ключей BadgerDB, запись пропущена", pos)
		return
	}
	key := encodeKey(pos)
	delta := 0

	err := s.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(key)
		existed := err == nil
		if err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}

		if id == block.Air {
			if !existed {
				return nil
			}
			delta = -1
			return txn.Delete(key)
		}

		if !existed {
			delta = 1
		}
		return txn.Set(key, encodeValue(id))
	})

	if err != nil {
		s.log.Error("Ошибка записи блока %v в BadgerDB: %v", pos, err)
		return
	}
	s.count += delta
}

// All возвращает снимок всех записей в порядке ключей
func (s *BadgerStore) All() []Entry {
	out := make([]Entry, 0, s.count)
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			key := item.Key()
			if len(key) != keySize {
				continue
			}
			pos := decodeKey(key)
			err := item.Value(func(val []byte) error {
				if len(val) != valueSize {
					return nil
				}
				out = append(out, Entry{Pos: pos, ID: block.ID(binary.BigEndian.Uint16(val))})
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		s.log.Error("Ошибка обхода BadgerDB: %v", err)
	}
	return out
}

// Len возвращает число записей
func (s *BadgerStore) Len() int {
	return s.count
}

// Clear удаляет все записи
func (s *BadgerStore) Clear() {
	if err := s.db.DropAll(); err != nil {
		s.log.Error("Ошибка очистки BadgerDB: %v", err)
		return
	}
	s.count = 0
}

// Close закрывает базу
func (s *BadgerStore) Close() error {
	return s.db.Close()
}
