package board

import (
	"fmt"
	"image"
	"image/color"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// DefaultTextSize is the font size used when a style leaves it unset.
const DefaultTextSize = 20

// TextStyle holds the typographic properties of a text annotation.
type TextStyle struct {
	Size      float64
	Family    string
	Weight    string
	Color     color.RGBA
	Underline bool
	Border    bool
}

// DefaultTextStyle returns 20px black sans text with no decorations.
func DefaultTextStyle() TextStyle {
	return TextStyle{Size: DefaultTextSize, Family: "sans", Weight: "normal", Color: color.RGBA{0, 0, 0, 255}}
}

type fontKey struct {
	family string
	weight string
}

type faceKey struct {
	fontKey
	size float64
}

var fontData = map[fontKey][]byte{
	{"sans", "normal"}:      goregular.TTF,
	{"sans", "bold"}:        gobold.TTF,
	{"sans", "italic"}:      goitalic.TTF,
	{"sans", "bold-italic"}: gobolditalic.TTF,
	{"mono", "normal"}:      gomono.TTF,
	{"mono", "bold"}:        gomonobold.TTF,
	{"mono", "italic"}:      gomonoitalic.TTF,
	{"mono", "bold-italic"}: gomonobolditalic.TTF,
}

var (
	fontsMu sync.Mutex
	fonts   = map[fontKey]*opentype.Font{}
	faces   sync.Map // map[faceKey]font.Face
)

// normalizeFamily maps CSS-like family names onto the embedded Go fonts.
// Anything that is not recognisably monospace renders as sans.
func normalizeFamily(family string) string {
	f := strings.ToLower(family)
	for _, hint := range []string{"mono", "courier", "consol"} {
		if strings.Contains(f, hint) {
			return "mono"
		}
	}
	return "sans"
}

func normalizeWeight(weight string) string {
	w := strings.ToLower(strings.TrimSpace(weight))
	bold := strings.Contains(w, "bold")
	if n, err := strconv.Atoi(w); err == nil {
		bold = n >= 600
	}
	italic := strings.Contains(w, "italic") || strings.Contains(w, "oblique")
	switch {
	case bold && italic:
		return "bold-italic"
	case bold:
		return "bold"
	case italic:
		return "italic"
	}
	return "normal"
}

func faceFor(st TextStyle) (font.Face, error) {
	size := st.Size
	if size <= 0 {
		size = DefaultTextSize
	}
	key := faceKey{fontKey{normalizeFamily(st.Family), normalizeWeight(st.Weight)}, size}
	if face, ok := faces.Load(key); ok {
		return face.(font.Face), nil
	}
	fontsMu.Lock()
	f, ok := fonts[key.fontKey]
	if !ok {
		var err error
		f, err = opentype.Parse(fontData[key.fontKey])
		if err != nil {
			fontsMu.Unlock()
			return nil, fmt.Errorf("parse %s %s font: %w", key.family, key.weight, err)
		}
		fonts[key.fontKey] = f
	}
	fontsMu.Unlock()
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, err
	}
	actual, _ := faces.LoadOrStore(key, face)
	return actual.(font.Face), nil
}

// MeasureText returns the advance width of text in pixels.
func MeasureText(text string, st TextStyle) (int, error) {
	face, err := faceFor(st)
	if err != nil {
		return 0, err
	}
	return font.MeasureString(face, text).Ceil(), nil
}

// DrawText renders text with the top of its line box at (x, y).
func DrawText(img *image.RGBA, x, y int, text string, st TextStyle) error {
	face, err := faceFor(st)
	if err != nil {
		return err
	}
	drawer := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(st.Color),
		Face: face,
		Dot:  fixed.P(x, y+face.Metrics().Ascent.Ceil()),
	}
	drawer.DrawString(text)
	return nil
}

// textAnnotation is the most recently committed text. It stays movable until
// the next commit or clear.
type textAnnotation struct {
	content string
	style   TextStyle
	at      image.Point
	advance int
	glyphs  image.Rectangle // ink bounds relative to at
	under   *image.RGBA
}

func newTextAnnotation(content string, st TextStyle, at image.Point) (*textAnnotation, error) {
	face, err := faceFor(st)
	if err != nil {
		return nil, err
	}
	bounds, advance := font.BoundString(face, content)
	ascent := face.Metrics().Ascent.Ceil()
	glyphs := image.Rect(bounds.Min.X.Floor(), bounds.Min.Y.Floor()+ascent, bounds.Max.X.Ceil(), bounds.Max.Y.Ceil()+ascent)
	return &textAnnotation{content: content, style: st, at: at, advance: advance.Ceil(), glyphs: glyphs}, nil
}

// boxHeight approximates the glyph height with the numeric font size, as the
// border decoration does.
func (t *textAnnotation) boxHeight() int {
	if t.style.Size <= 0 {
		return DefaultTextSize
	}
	return int(t.style.Size)
}

// box is the hit-test rectangle: measured advance by font size.
func (t *textAnnotation) box() image.Rectangle {
	return image.Rect(t.at.X, t.at.Y, t.at.X+t.advance, t.at.Y+t.boxHeight())
}

// footprint covers every pixel render may touch.
func (t *textAnnotation) footprint() image.Rectangle {
	r := t.box().Union(t.glyphs.Add(t.at))
	r.Max.Y = max(r.Max.Y, t.at.Y+t.boxHeight()+1)
	return r.Inset(-2)
}

func (t *textAnnotation) render(img *image.RGBA) error {
	if err := DrawText(img, t.at.X, t.at.Y, t.content, t.style); err != nil {
		return err
	}
	size := t.boxHeight()
	if t.style.Border {
		strokeRect(img, t.at, t.at.Add(image.Pt(t.advance, size)), t.style.Color, 1)
	}
	if t.style.Underline {
		y := t.at.Y + size
		fillRect(img, image.Rect(t.at.X, y-1, t.at.X+t.advance, y+1), t.style.Color)
	}
	return nil
}
