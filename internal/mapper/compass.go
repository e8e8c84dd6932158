package mapper

import "github.com/soar/skinview/internal/controller"

const (
	north = iota
	northeast
	east
	southeast
	south
	southwest
	west
	northwest
)

var compassNames = [8]string{
	north:     "north",
	northeast: "northeast",
	east:      "east",
	southeast: "southeast",
	south:     "south",
	southwest: "southwest",
	west:      "west",
	northwest: "northwest",
}

// Compass derives the eight compass directions from the up, down, left and
// right buttons. ok is false unless the state exposes all four.
//
// Up together with down (or left with right) is not handled: the first
// adjacent pair in clockwise order from north collapses and the rest are
// left as seeded.
func Compass(st controller.State) (dirs map[string]bool, ok bool) {
	up, okU := st.Button("up")
	down, okD := st.Button("down")
	left, okL := st.Button("left")
	right, okR := st.Button("right")
	if !okU || !okD || !okL || !okR {
		return nil, false
	}

	var f [8]bool
	f[north] = up
	f[east] = right
	f[south] = down
	f[west] = left

	switch {
	case f[north] && f[east]:
		f[northeast] = true
		f[north], f[east] = false, false
	case f[east] && f[south]:
		f[southeast] = true
		f[east], f[south] = false, false
	case f[south] && f[west]:
		f[southwest] = true
		f[south], f[west] = false, false
	case f[west] && f[north]:
		f[northwest] = true
		f[west], f[north] = false, false
	}

	dirs = make(map[string]bool, len(f))
	for i, name := range compassNames {
		dirs[name] = f[i]
	}
	return dirs, true
}
