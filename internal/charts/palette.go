package charts

import "github.com/wcharczuk/go-chart/v2/drawing"

// Палитра категорий мобильного приложения; индекс выбирается
// детерминированно по имени категории.
var colorPalette = []string{
	"00FDF0",
	"2EAFC3",
	"3C66FE",
	"791BBF",
	"511ABE",
	"4F01FB",
	"0B0A6E",
	"B18C8B",
	"ECD942",
	"F0325A",
	"21D253",
	"59F381",
	"426C39",
	"36FBA2",
	"06BF58",
	"FA6BEF",
	"970219",
	"92EFB1",
	"57FB3F",
	"253A32",
}

// PaletteIndex — чистая детерминированная функция имени категории.
// Скользящий хеш charCode + (hash<<5 - hash) воспроизводит раскраску
// мобильного приложения бит-в-бит: сдвиг работает в 32-битной
// арифметике, накопление — в 64-битной.
func PaletteIndex(name string) int {
	var hash int64
	for _, r := range name {
		hash = int64(r) + int64(int32(hash)<<5) - hash
	}

	index := hash % int64(len(colorPalette))
	if index < 0 {
		index = -index
	}
	return int(index)
}

func categoryColor(name string) drawing.Color {
	return drawing.ColorFromHex(colorPalette[PaletteIndex(name)])
}
