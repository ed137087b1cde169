// Package components defines the ECS components carried by scene entities.
package components

// Group identifies one of the fixed entity groups that make up the tree.
type Group uint8

const (
	GroupFoliage Group = iota
	GroupLights
	GroupOrnaments
	GroupDecorations
	GroupTopper

	GroupCount = 5
)

// String returns the group name for logging and CSV output.
func (g Group) String() string {
	switch g {
	case GroupFoliage:
		return "foliage"
	case GroupLights:
		return "lights"
	case GroupOrnaments:
		return "ornaments"
	case GroupDecorations:
		return "decorations"
	case GroupTopper:
		return "topper"
	}
	return "unknown"
}

// Groups lists all groups in draw order.
func Groups() [GroupCount]Group {
	return [GroupCount]Group{
		GroupFoliage, GroupLights, GroupOrnaments, GroupDecorations, GroupTopper,
	}
}
