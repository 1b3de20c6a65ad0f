package course

import "github.com/planbiir/wingo/internal/geo"

// Segment is an open course timed from Start to End, such as a platform
// segment ridden once per attempt.
type Segment struct {
	Name  string    `json:"name"`
	Start geo.Point `json:"start"`
	End   geo.Point `json:"end"`
}

func (s Segment) Validate() error {
	if err := geo.ValidateCoordinate(s.Start); err != nil {
		return geo.Errorf(geo.ErrInvalidCoordinate, []int{0}, "segment start: %v", err)
	}
	if err := geo.ValidateCoordinate(s.End); err != nil {
		return geo.Errorf(geo.ErrInvalidCoordinate, []int{1}, "segment end: %v", err)
	}
	return nil
}

func (s Segment) NearStart(p geo.Point, radius float64) bool {
	return geo.IsWithin(p, s.Start, radius)
}

func (s Segment) NearEnd(p geo.Point, radius float64) bool {
	return geo.IsWithin(p, s.End, radius)
}

// Length is the straight-line distance between start and end.
func (s Segment) Length() float64 {
	return geo.Distance(s.Start, s.End)
}
