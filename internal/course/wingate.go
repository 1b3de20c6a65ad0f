package course

import "github.com/planbiir/wingo/internal/geo"

// WingateLoop is the running loop in Wingate Park, Brooklyn, traced
// clockwise from the start line. The official lap is 319.5 m.
var WingateLoop = []geo.Point{
	{Lat: 40.658200, Lon: -73.944410},
	{Lat: 40.657980, Lon: -73.944370},
	{Lat: 40.657830, Lon: -73.944290},
	{Lat: 40.657730, Lon: -73.944130},
	{Lat: 40.657710, Lon: -73.943960},
	{Lat: 40.657750, Lon: -73.943800},
	{Lat: 40.657850, Lon: -73.943670},
	{Lat: 40.658000, Lon: -73.943600},
	{Lat: 40.658180, Lon: -73.943600},
	{Lat: 40.658350, Lon: -73.943670},
	{Lat: 40.658480, Lon: -73.943800},
	{Lat: 40.658550, Lon: -73.943960},
	{Lat: 40.658550, Lon: -73.944130},
	{Lat: 40.658780, Lon: -73.944270},
	{Lat: 40.658740, Lon: -73.944360},
	{Lat: 40.658640, Lon: -73.944450},
	{Lat: 40.658490, Lon: -73.944480},
	{Lat: 40.658220, Lon: -73.944440},
}

// Wingate returns the built-in Wingate loop with default options.
func Wingate() *Course {
	c, err := New("Wingate Loop", WingateLoop, DefaultOptions())
	if err != nil {
		panic(err)
	}
	return c
}
