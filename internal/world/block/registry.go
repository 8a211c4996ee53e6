package block

import "fmt"

// ID представляет идентификатор материала блока
type ID uint16

// Константы ID блоков. Air обозначает пустоту и никогда не хранится.
const (
	Air    ID = iota // 0
	Stone            // 1
	Grass            // 2
	Water            // 3
	Sand             // 4
	Dirt             // 5
	Wood             // 6 - ствол дерева
	Leaves           // 7 - крона дерева
)

// registry неизменяем после инициализации пакета
var registry = map[ID]Properties{
	Air:    {Name: "air"},
	Stone:  {Name: "stone", Solid: true, Breakable: true, Placeable: true},
	Grass:  {Name: "grass", Solid: true, Breakable: true, Placeable: true},
	Water:  {Name: "water", Liquid: true},
	Sand:   {Name: "sand", Solid: true, Breakable: true, Placeable: true},
	Dirt:   {Name: "dirt", Solid: true, Breakable: true, Placeable: true},
	Wood:   {Name: "wood", Solid: true, Breakable: true, Placeable: true},
	Leaves: {Name: "leaves", Solid: true, Breakable: true, Placeable: true},
}

// Get возвращает свойства для указанного ID
func Get(id ID) (Properties, bool) {
	props, exists := registry[id]
	return props, exists
}

// IsValid проверяет, является ли ID зарегистрированным материалом
func IsValid(id ID) bool {
	_, exists := registry[id]
	return exists
}

// Parse находит материал по имени
func Parse(name string) (ID, error) {
	for id, props := range registry {
		if props.Name == name {
			return id, nil
		}
	}
	return Air, fmt.Errorf("неизвестный материал %q", name)
}

// All возвращает все зарегистрированные материалы, кроме Air
func All() []ID {
	ids := make([]ID, 0, len(registry))
	for id := range registry {
		if id != Air {
			ids = append(ids, id)
		}
	}
	return ids
}
