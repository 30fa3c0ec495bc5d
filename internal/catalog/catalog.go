// Package catalog loads game data (terrain, movement classes, unit roles) and
// level layouts from YAML and turns them into validated domain values.
package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"

	"tactics-core/internal/domain"
	"tactics-core/pkg/logger"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

var (
	ErrInvalidCatalog = errors.New("invalid catalog")
	ErrInvalidLevel   = errors.New("invalid level")
)

// LoadCatalog reads and validates a catalog file.
func LoadCatalog(path string) (*domain.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	cat, err := ParseCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return cat, nil
}

// ParseCatalog decodes a catalog document. Unknown keys are rejected and every
// validation problem found is reported, joined into one error.
func ParseCatalog(data []byte) (*domain.Catalog, error) {
	var doc catalogDoc
	if err := decodeStrict(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}

	v := &validator{sentinel: ErrInvalidCatalog}
	cat := &domain.Catalog{
		Terrain:         make(map[string]*domain.Terrain, len(doc.Terrain)),
		MovementClasses: make(map[string]*domain.MovementClass, len(doc.MovementClasses)),
		Kinds:           make(map[string]*domain.UnitKind, len(doc.Roles)),
		DefenseClasses:  make(map[string]struct{}, len(doc.DefenseClasses)),
	}

	for _, class := range doc.DefenseClasses {
		cat.DefenseClasses[class] = struct{}{}
	}

	for _, name := range sortedKeys(doc.Terrain) {
		ts := doc.Terrain[name]
		if ts.Capture < 0 {
			v.fail("terrain %q: negative capture threshold %d", name, ts.Capture)
		}
		cat.Terrain[name] = &domain.Terrain{
			Name:    name,
			Defense: ts.Defense,
			Capture: max(ts.Capture, 0),
			Sprite:  buildSprite(ts.Sprite),
		}
	}

	for _, name := range sortedKeys(doc.MovementClasses) {
		costs := doc.MovementClasses[name]
		for _, terrain := range sortedKeys(costs) {
			if _, ok := cat.Terrain[terrain]; !ok {
				v.fail("movement class %q: unknown terrain %q", name, terrain)
			}
			if c := costs[terrain]; c < 1 {
				v.fail("movement class %q: cost %d for terrain %q, must be at least 1", name, c, terrain)
			}
		}
		for _, terrain := range sortedKeys(cat.Terrain) {
			if _, ok := costs[terrain]; !ok {
				v.fail("movement class %q: no cost for terrain %q", name, terrain)
			}
		}
		cat.MovementClasses[name] = &domain.MovementClass{Name: name, Costs: maps.Clone(costs)}
	}

	for _, name := range sortedKeys(doc.Roles) {
		if kind := buildKind(v, cat, name, doc.Roles[name]); kind != nil {
			cat.Kinds[name] = kind
		}
	}

	if err := v.err(); err != nil {
		return nil, err
	}

	logger.Log.WithFields(logrus.Fields{
		"component":        "catalog",
		"terrain":          len(cat.Terrain),
		"movement_classes": len(cat.MovementClasses),
		"roles":            len(cat.Kinds),
		"defense_classes":  len(cat.DefenseClasses),
	}).Info("Catalog loaded.")
	return cat, nil
}

func buildKind(v *validator, cat *domain.Catalog, name string, rs roleDoc) *domain.UnitKind {
	before := len(v.errs)

	rk, err := buildRange(rs.Attack.Range)
	if err != nil {
		v.fail("role %q: %v", name, err)
	}
	class, ok := cat.MovementClasses[rs.Movement.Class]
	if !ok {
		v.fail("role %q: unknown movement class %q", name, rs.Movement.Class)
	}
	if rs.Movement.Movement < 0 {
		v.fail("role %q: negative movement %d", name, rs.Movement.Movement)
	}
	if _, ok := cat.DefenseClasses[rs.Defense.Class]; !ok {
		v.fail("role %q: unknown defense class %q", name, rs.Defense.Class)
	}
	for _, target := range sortedKeys(rs.Attack.Modifiers) {
		if _, ok := cat.DefenseClasses[target]; !ok {
			v.fail("role %q: modifier for unknown defense class %q", name, target)
		}
	}
	if rs.Capture < 0 {
		v.fail("role %q: negative capture %d", name, rs.Capture)
	}

	if len(v.errs) > before {
		return nil
	}
	sprite := buildSprite(&rs.Sprite)
	return &domain.UnitKind{
		Name: name,
		Attack: domain.AttackInfo{
			Damage:    rs.Attack.Damage,
			Range:     rk,
			Modifiers: maps.Clone(rs.Attack.Modifiers),
		},
		Defense:  domain.DefenseInfo{Value: rs.Defense.Defense, Class: rs.Defense.Class},
		Movement: domain.MovementInfo{Budget: rs.Movement.Movement, Class: class},
		Capture:  rs.Capture,
		Sprite:   *sprite,
	}
}

func buildRange(rs rangeDoc) (domain.RangeKind, error) {
	switch rs.Kind {
	case "melee":
		return domain.MeleeRange(), nil
	case "ranged":
		if rs.Min == nil || rs.Max == nil {
			return domain.RangeKind{}, errors.New("ranged attack needs min and max")
		}
		if *rs.Min < 0 || *rs.Min > *rs.Max {
			return domain.RangeKind{}, fmt.Errorf("bad ranged bounds %d..%d", *rs.Min, *rs.Max)
		}
		return domain.RangedRange(*rs.Min, *rs.Max), nil
	case "spear":
		if rs.Range == nil {
			return domain.RangeKind{}, errors.New("spear attack needs range")
		}
		if *rs.Range < 0 {
			return domain.RangeKind{}, fmt.Errorf("negative spear range %d", *rs.Range)
		}
		return domain.SpearRange(*rs.Range), nil
	default:
		return domain.RangeKind{}, fmt.Errorf("unknown range kind %q", rs.Kind)
	}
}

func buildSprite(ss *spriteDoc) *domain.Sprite {
	if ss == nil {
		return nil
	}
	s := &domain.Sprite{Texture: ss.Texture}
	if ss.Area != nil {
		area := *ss.Area
		s.Area = &area
	}
	return s
}

func decodeStrict(data []byte, out any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("empty document")
		}
		return err
	}
	return nil
}

// validator collects every problem instead of stopping at the first one.
type validator struct {
	sentinel error
	errs     []error
}

func (v *validator) fail(format string, args ...any) {
	v.errs = append(v.errs, fmt.Errorf("%w: %s", v.sentinel, fmt.Sprintf(format, args...)))
}

func (v *validator) err() error {
	return errors.Join(v.errs...)
}

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}
