package domain

// Reference floor plan: 38 waypoints (there is no P11), depot P0.
// Coordinates are in metres on the plant drawing, y growing downwards.
const (
	ReferenceLayoutName = "jlr-plant"
	ReferenceDepot      = "P0"
)

var referenceWaypoints = []Waypoint{
	{ID: "P0", Position: Position{X: 845, Y: 44}},
	{ID: "P1", Position: Position{X: 764, Y: 128}},
	{ID: "P2", Position: Position{X: 664, Y: 128}},
	{ID: "P3", Position: Position{X: 564, Y: 128}},
	{ID: "P4", Position: Position{X: 464, Y: 128}},
	{ID: "P5", Position: Position{X: 364, Y: 128}},
	{ID: "P6", Position: Position{X: 264, Y: 128}},
	{ID: "P7", Position: Position{X: 264, Y: 180}},
	{ID: "P8", Position: Position{X: 264, Y: 255}},
	{ID: "P9", Position: Position{X: 382, Y: 255}},
	{ID: "P10", Position: Position{X: 473, Y: 255}},
	{ID: "P12", Position: Position{X: 552, Y: 255}},
	{ID: "P13", Position: Position{X: 658, Y: 255}},
	{ID: "P14", Position: Position{X: 765, Y: 255}},
	{ID: "P15", Position: Position{X: 264, Y: 320}},
	{ID: "P16", Position: Position{X: 264, Y: 397}},
	{ID: "P17", Position: Position{X: 264, Y: 473}},
	{ID: "P18", Position: Position{X: 364, Y: 473}},
	{ID: "P19", Position: Position{X: 464, Y: 473}},
	{ID: "P20", Position: Position{X: 564, Y: 473}},
	{ID: "P21", Position: Position{X: 664, Y: 473}},
	{ID: "P22", Position: Position{X: 764, Y: 473}},
	{ID: "P23", Position: Position{X: 864, Y: 473}},
	{ID: "P24", Position: Position{X: 964, Y: 473}},
	{ID: "P25", Position: Position{X: 936, Y: 392}},
	{ID: "P26", Position: Position{X: 946, Y: 320}},
	{ID: "P27", Position: Position{X: 934, Y: 128}},
	{ID: "P28", Position: Position{X: 1069, Y: 128}},
	{ID: "P29", Position: Position{X: 1142, Y: 128}},
	{ID: "P30", Position: Position{X: 1213, Y: 128}},
	{ID: "P31", Position: Position{X: 1282, Y: 128}},
	{ID: "P32", Position: Position{X: 1370, Y: 128}},
	{ID: "P33", Position: Position{X: 1474, Y: 180}},
	{ID: "P34", Position: Position{X: 1366, Y: 255}},
	{ID: "P35", Position: Position{X: 1282, Y: 255}},
	{ID: "P36", Position: Position{X: 1212, Y: 255}},
	{ID: "P37", Position: Position{X: 1136, Y: 255}},
	{ID: "P38", Position: Position{X: 1062, Y: 255}},
}

var referenceSuccessors = map[string][]string{
	"P0":  {"P1", "P27"},
	"P1":  {"P2"},
	"P2":  {"P3"},
	"P3":  {"P4"},
	"P4":  {"P5"},
	"P5":  {"P6"},
	"P6":  {"P7"},
	"P7":  {"P8"},
	"P8":  {"P9", "P15"},
	"P9":  {"P10"},
	"P10": {"P12"},
	"P12": {"P13"},
	"P13": {"P14"},
	"P14": {"P38", "P26", "P27"},
	"P38": {"P37"},
	"P37": {"P36"},
	"P36": {"P35"},
	"P35": {"P34"},
	"P34": {"P33"},
	"P33": {"P32"},
	"P32": {"P31"},
	"P31": {"P30"},
	"P30": {"P29"},
	"P29": {"P28"},
	"P28": {"P27"},
	"P27": {"P0"},
	"P15": {"P16"},
	"P16": {"P17"},
	"P17": {"P18"},
	"P18": {"P19"},
	"P19": {"P20"},
	"P20": {"P21"},
	"P21": {"P22"},
	"P22": {"P23"},
	"P23": {"P24"},
	"P24": {"P25"},
	"P25": {"P26"},
	"P26": {"P27"},
}

// ReferenceWaypoints returns a copy of the compiled-in waypoint table.
func ReferenceWaypoints() []Waypoint {
	out := make([]Waypoint, len(referenceWaypoints))
	copy(out, referenceWaypoints)
	return out
}

// ReferenceSuccessors returns a copy of the compiled-in successor table.
func ReferenceSuccessors() map[string][]string {
	out := make(map[string][]string, len(referenceSuccessors))
	for from, next := range referenceSuccessors {
		out[from] = append([]string(nil), next...)
	}
	return out
}

// ReferenceLayout builds the compiled-in plant layout.
// The tables are constants, so a failure here is a programming error.
func ReferenceLayout() *Layout {
	g, err := NewGraph(ReferenceWaypoints(), ReferenceSuccessors())
	if err != nil {
		panic("reference layout: " + err.Error())
	}
	l, err := NewLayout(ReferenceLayoutName, ReferenceDepot, g)
	if err != nil {
		panic("reference layout: " + err.Error())
	}
	return l
}
