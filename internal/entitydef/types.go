package entitydef

// Kind classifies a definition by which of color/bounds it carries.
type Kind int

const (
	// KindBase definitions have neither color nor bounds; they are
	// inherited by name from other definitions via a "base" property.
	KindBase Kind = iota
	// KindBrush definitions have a color but no bounds.
	KindBrush
	// KindPoint definitions have both color and bounds: fixed-size,
	// rendered as a colored box or a model.
	KindPoint
)

// SpawnFlag is one named bit of a "spawnflags" property; Bit is
// 1 << position-in-list.
type SpawnFlag struct {
	Name string
	Bit  int
}

// ChoiceOption is one (value, description) pair of a "choice" property.
type ChoiceOption struct {
	Value       int
	Description string
}

// ChoiceProperty lists the allowed integer values for a named property.
type ChoiceProperty struct {
	Name    string
	Options []ChoiceOption
}

// ModelProperty names a model asset path, and optionally a skin index
// extracted from a ":N" suffix.
type ModelProperty struct {
	Path    string
	Skin    int
	HasSkin bool
	Extra   string
	HasExtra bool
}

// DefaultProperty supplies a default value for a named property.
type DefaultProperty struct {
	Name  string
	Value string
}

// Definition is one parsed `/* ... */` entity definition.
type Definition struct {
	Name  string
	Kind  Kind
	Color [3]float64

	BoundsMin, BoundsMax [3]float64

	Flags    []SpawnFlag
	Choices  []ChoiceProperty
	Models   []ModelProperty
	Defaults []DefaultProperty
	Bases    []string

	Description string
}
