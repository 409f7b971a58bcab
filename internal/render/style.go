package render

// PaperSize is a page size in points (1" = 72pt).
type PaperSize struct {
	Name   string
	Width  float64
	Height float64
}

var (
	// A4Size is 210mm x 297mm.
	A4Size = PaperSize{Name: "A4", Width: 595.28, Height: 841.89}

	// Margin is 2cm, applied on all four sides.
	Margin = 2 / 2.54 * 72.0
)

// Style is a fixed paragraph style. Sizes and leading are in points.
type Style struct {
	Size        float64
	Leading     float64
	Bold        bool
	Align       string
	Color       [3]int
	SpaceBefore float64
	SpaceAfter  float64
}

const fontFamily = "Helvetica"

var (
	black = [3]int{0, 0, 0}
	grey  = [3]int{128, 128, 128}
	muted = [3]int{96, 96, 96}
)

// The five styles used by every draft.
var (
	Heading    = Style{Size: 16, Leading: 20, Bold: true, Align: "C", Color: black, SpaceAfter: 12}
	Subheading = Style{Size: 12.5, Leading: 16, Bold: true, Align: "L", Color: black, SpaceBefore: 8, SpaceAfter: 6}
	Body       = Style{Size: 10.5, Leading: 14, Align: "L", Color: black}
	Small      = Style{Size: 9.2, Leading: 12, Align: "L", Color: muted}
	Meta       = Style{Size: 9.2, Leading: 12, Align: "L", Color: grey}
)

func (s Style) fontStyle() string {
	if s.Bold {
		return "B"
	}
	return ""
}
