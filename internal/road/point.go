package road

// Point is a perceived road-center sample. Y is the vertical scan row, X the
// horizontal offset measured at that row. The field order follows the
// sampling convention of the perception stage.
type Point struct {
	Y float64
	X float64
}

// Line describes x = Slope*y + Intercept.
type Line struct {
	Intercept float64
	Slope     float64
}

// XAt returns the horizontal position on the line at vertical position y.
func (l Line) XAt(y float64) float64 {
	return l.Slope*y + l.Intercept
}
