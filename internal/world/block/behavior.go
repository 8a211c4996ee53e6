package block

// Properties описывает физические свойства материала
type Properties struct {
	Name      string
	Solid     bool // Блокирует движение игрока
	Breakable bool // Может быть разрушен редактором
	Placeable bool // Может быть выбран для установки
	Liquid    bool
}

// String возвращает имя материала
func (id ID) String() string {
	if props, ok := Get(id); ok {
		return props.Name
	}
	return "unknown"
}

// IsEmpty возвращает true для пустоты
func (id ID) IsEmpty() bool {
	return id == Air
}

// IsSolid возвращает true, если материал твёрдый. Неизвестные ID считаются твёрдыми.
func (id ID) IsSolid() bool {
	props, ok := Get(id)
	if !ok {
		return id != Air
	}
	return props.Solid
}

// IsWater возвращает true для воды
func (id ID) IsWater() bool {
	return id == Water
}

// IsBreakable возвращает true, если блок можно разрушить
func (id ID) IsBreakable() bool {
	props, ok := Get(id)
	return ok && props.Breakable
}

// IsPlaceable возвращает true, если материал можно установить
func (id ID) IsPlaceable() bool {
	props, ok := Get(id)
	return ok && props.Placeable
}
