package client

// Палитра цветов событий календаря, по одному цвету на training element
var defaultPalette = []string{
	"#4CAF50", // green
	"#2196F3", // blue
	"#FF9800", // orange
	"#9C27B0", // purple
	"#F44336", // red
	"#009688", // teal
	"#3F51B5", // indigo
	"#795548", // brown
}

// colorTable лениво закрепляет цвет за training element id.
// Когда палитра исчерпана, цвета идут по второму кругу.
type colorTable struct {
	palette  []string
	assigned map[uint]string
	next     int
}

func newColorTable(palette []string) *colorTable {
	return &colorTable{
		palette:  palette,
		assigned: make(map[uint]string),
	}
}

func (t *colorTable) colorFor(id uint) string {
	if color, ok := t.assigned[id]; ok {
		return color
	}
	color := t.palette[t.next%len(t.palette)]
	t.assigned[id] = color
	t.next++
	return color
}
