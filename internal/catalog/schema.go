package catalog

// On-disk shapes. They are decoded strictly and only live until validation
// turns them into domain types.

type spriteDoc struct {
	Texture string  `yaml:"texture"`
	Area    *[4]int `yaml:"area"`
}

type terrainDoc struct {
	Defense float64    `yaml:"defense"`
	Capture int        `yaml:"capture"`
	Sprite  *spriteDoc `yaml:"sprite"`
}

type rangeDoc struct {
	Kind  string `yaml:"kind"`
	Min   *int   `yaml:"min"`
	Max   *int   `yaml:"max"`
	Range *int   `yaml:"range"`
}

type attackDoc struct {
	Damage    float64            `yaml:"damage"`
	Range     rangeDoc           `yaml:"range"`
	Modifiers map[string]float64 `yaml:"modifiers"`
}

type defenseDoc struct {
	Defense float64 `yaml:"defense"`
	Class   string  `yaml:"class"`
}

type movementDoc struct {
	Movement int    `yaml:"movement"`
	Class    string `yaml:"class"`
}

type roleDoc struct {
	Attack   attackDoc   `yaml:"attack"`
	Defense  defenseDoc  `yaml:"defense"`
	Movement movementDoc `yaml:"movement"`
	Capture  int         `yaml:"capture"`
	Sprite   spriteDoc   `yaml:"sprite"`
}

type catalogDoc struct {
	MovementClasses map[string]map[string]int `yaml:"movement_classes"`
	Roles           map[string]roleDoc        `yaml:"roles"`
	Terrain         map[string]terrainDoc     `yaml:"terrain"`
	DefenseClasses  []string                  `yaml:"defense_classes"`
}

// Point is one level layer entry: x, y and a faction code (0 = none).
type Point [3]int

type levelDoc struct {
	Name           string                        `yaml:"name"`
	Schema         string                        `yaml:"schema"`
	DefaultTerrain string                        `yaml:"default_terrain"`
	Layers         map[string]map[string][]Point `yaml:"layers"`
}
