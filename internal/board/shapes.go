package board

import (
	"image"
	"math"
)

// CircleRadius is the Euclidean distance from the gesture start to the
// current pointer.
func CircleRadius(start, cur image.Point) float64 {
	return math.Hypot(float64(cur.X-start.X), float64(cur.Y-start.Y))
}

// TriangleVertices returns the apex at start and the two base vertices: cur
// and its mirror about start.X. The base is horizontal through cur.Y.
func TriangleVertices(start, cur image.Point) (apex, base1, base2 image.Point) {
	return start, cur, image.Pt(2*start.X-cur.X, cur.Y)
}

// DrawShape renders tool's shape spanning start to cur. Freehand and unknown
// tools draw nothing.
func DrawShape(img *image.RGBA, tool Tool, start, cur image.Point, st Style) {
	switch tool {
	case ToolRect:
		if st.Fill {
			fillRect(img, image.Rect(start.X, start.Y, cur.X, cur.Y), st.Color)
			return
		}
		strokeRect(img, start, cur, st.Color, st.Width)
	case ToolCircle:
		r := int(math.Round(CircleRadius(start, cur)))
		if st.Fill {
			drawFilledCircle(img, start.X, start.Y, r, st.Color)
			return
		}
		drawCircle(img, start.X, start.Y, r, st.Color, st.Width)
	case ToolTriangle:
		apex, b1, b2 := TriangleVertices(start, cur)
		pts := []image.Point{apex, b1, b2}
		if st.Fill {
			fillPolygon(img, pts, st.Color)
			return
		}
		strokePolygon(img, pts, st.Color, st.Width)
	}
}
