package frame

// GraphicKind discriminates the closed set of overlay shapes a stage can
// attach to an image slot.
type GraphicKind int

const (
	KindPoint GraphicKind = iota
	KindLine
	KindRectangle
	KindText
)

// Color is three unsigned bytes, per the stream sink's wire format.
type Color struct {
	R, G, B uint8
}

// Pt is a pixel coordinate; the wire format carries these as two floats.
type Pt struct {
	X, Y float64
}

// VectorGraphic is a tagged union over the four overlay shapes the stream
// sink's wire format understands (spec.md §6). Only the fields relevant
// to Kind are meaningful.
type VectorGraphic struct {
	Kind  GraphicKind
	Color Color

	Point Pt // KindPoint

	Start Pt // KindLine
	End   Pt // KindLine

	TopLeft     Pt // KindRectangle
	BottomRight Pt // KindRectangle

	TextPoint Pt     // KindText
	Text      string // KindText
}

// NewPoint builds a KindPoint overlay.
func NewPoint(c Color, p Pt) VectorGraphic {
	return VectorGraphic{Kind: KindPoint, Color: c, Point: p}
}

// NewLine builds a KindLine overlay.
func NewLine(c Color, start, end Pt) VectorGraphic {
	return VectorGraphic{Kind: KindLine, Color: c, Start: start, End: end}
}

// NewRectangle builds a KindRectangle overlay.
func NewRectangle(c Color, topLeft, bottomRight Pt) VectorGraphic {
	return VectorGraphic{Kind: KindRectangle, Color: c, TopLeft: topLeft, BottomRight: bottomRight}
}

// NewText builds a KindText overlay.
func NewText(c Color, p Pt, text string) VectorGraphic {
	return VectorGraphic{Kind: KindText, Color: c, TextPoint: p, Text: text}
}
