package layout

// Small constructors used by the style templates.

func Spacer(height float64) Row {
	return Row{MinHeight: height}
}

func NewCell(span int, texts ...Text) Cell {
	return Cell{Span: span, Texts: texts}
}

func (c Cell) WithFill(color Color) Cell {
	c.Fill = &color
	return c
}

func (c Cell) WithBorder(border Border, color Color) Cell {
	c.Border = border
	c.BorderColor = color
	return c
}

func NewText(content string, style TextStyle) Text {
	return Text{Content: content, Style: style}
}

// Line is a full-width row drawn as a bottom rule.
func Line(color Color) Row {
	return Row{MinHeight: 2, Cells: []Cell{{Span: GridColumns, Border: BorderBottom, BorderColor: color}}}
}

// FullRow places the texts in a single full-width cell.
func FullRow(height float64, texts ...Text) Row {
	return Row{MinHeight: height, Cells: []Cell{NewCell(GridColumns, texts...)}}
}
