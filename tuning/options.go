package tuning

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Container identifies a particle-storage data structure. Traversals are
// only applicable to a subset of containers; see CompatibleTraversals.
type Container int

const (
	DirectSum Container = iota
	LinkedCells
	VerletLists
	VerletListsCells
	VerletClusterLists
	Octree
)

var containerNames = [...]string{
	"DirectSum",
	"LinkedCells",
	"VerletLists",
	"VerletListsCells",
	"VerletClusterLists",
	"Octree",
}

func (c Container) String() string {
	if int(c) < 0 || int(c) >= len(containerNames) {
		return fmt.Sprintf("Container(%d)", int(c))
	}
	return containerNames[c]
}

// AllContainers returns every recognized Container in declaration order.
func AllContainers() []Container {
	out := make([]Container, len(containerNames))
	for i := range containerNames {
		out[i] = Container(i)
	}
	return out
}

// Traversal identifies a pairwise-interaction traversal algorithm. Not every
// Traversal is applicable to every Container; see CompatibleTraversals.
type Traversal int

const (
	DSSequential Traversal = iota
	LCC01
	LCC04
	LCC04CombinedSoA
	LCC08
	LCC18
	LCSliced
	LCSlicedBalanced
	LCSlicedC02
	VLListIteration
	VLCC01
	VLCC18
	VLCSliced
	VLCSlicedBalanced
	VLCSlicedC02
	VCLClusterIteration
	VCLC06
	VCLSliced
	VCLSlicedBalanced
	VCLSlicedC02
	OTC01
	OTC18
)

var traversalNames = [...]string{
	"DSSequential",
	"LCC01",
	"LCC04",
	"LCC04CombinedSoA",
	"LCC08",
	"LCC18",
	"LCSliced",
	"LCSlicedBalanced",
	"LCSlicedC02",
	"VLListIteration",
	"VLCC01",
	"VLCC18",
	"VLCSliced",
	"VLCSlicedBalanced",
	"VLCSlicedC02",
	"VCLClusterIteration",
	"VCLC06",
	"VCLSliced",
	"VCLSlicedBalanced",
	"VCLSlicedC02",
	"OTC01",
	"OTC18",
}

func (t Traversal) String() string {
	if int(t) < 0 || int(t) >= len(traversalNames) {
		return fmt.Sprintf("Traversal(%d)", int(t))
	}
	return traversalNames[t]
}

// AllTraversals returns every recognized Traversal in declaration order.
func AllTraversals() []Traversal {
	out := make([]Traversal, len(traversalNames))
	for i := range traversalNames {
		out[i] = Traversal(i)
	}
	return out
}

// DataLayout identifies how particle data is laid out in memory for a
// traversal: array-of-structs or struct-of-arrays.
type DataLayout int

const (
	AoS DataLayout = iota
	SoA
)

var dataLayoutNames = [...]string{"AoS", "SoA"}

func (d DataLayout) String() string {
	if int(d) < 0 || int(d) >= len(dataLayoutNames) {
		return fmt.Sprintf("DataLayout(%d)", int(d))
	}
	return dataLayoutNames[d]
}

// AllDataLayouts returns every recognized DataLayout in declaration order.
func AllDataLayouts() []DataLayout {
	return []DataLayout{AoS, SoA}
}

// Newton3Option controls whether a traversal exploits the symmetry of
// pairwise forces (computing each interaction once instead of twice). A
// force functor may reject Newton3 at runtime; see Controller.RemoveN3Option.
type Newton3Option int

const (
	Newton3Enabled Newton3Option = iota
	Newton3Disabled
)

var newton3Names = [...]string{"Enabled", "Disabled"}

func (n Newton3Option) String() string {
	if int(n) < 0 || int(n) >= len(newton3Names) {
		return fmt.Sprintf("Newton3Option(%d)", int(n))
	}
	return newton3Names[n]
}

// AllNewton3Options returns every recognized Newton3Option in declaration order.
func AllNewton3Options() []Newton3Option {
	return []Newton3Option{Newton3Enabled, Newton3Disabled}
}

// compatibleTraversals is the capability oracle: the fixed table of which
// traversals are physically applicable to which container. Grounded on
// TraversalSelector.h's per-container #include list — each container there
// pulls in exactly one traversal family.
var compatibleTraversals = map[Container][]Traversal{
	DirectSum: {
		DSSequential,
	},
	LinkedCells: {
		LCC01, LCC04, LCC04CombinedSoA, LCC08, LCC18,
		LCSliced, LCSlicedBalanced, LCSlicedC02,
	},
	VerletLists: {
		VLListIteration,
	},
	VerletListsCells: {
		VLCC01, VLCC18, VLCSliced, VLCSlicedBalanced, VLCSlicedC02,
	},
	VerletClusterLists: {
		VCLClusterIteration, VCLC06, VCLSliced, VCLSlicedBalanced, VCLSlicedC02,
	},
	Octree: {
		OTC01, OTC18,
	},
}

// CompatibleTraversals is the capability oracle consumed by NewSearchSpace:
// it returns every traversal physically applicable to container. The
// returned slice is a defensive copy; callers may mutate it freely.
func CompatibleTraversals(container Container) []Traversal {
	ts := compatibleTraversals[container]
	out := make([]Traversal, len(ts))
	copy(out, ts)
	return out
}

// IsTraversalCompatible reports whether traversal is applicable to container.
func IsTraversalCompatible(container Container, traversal Traversal) bool {
	for _, t := range compatibleTraversals[container] {
		if t == traversal {
			return true
		}
	}
	return false
}

// ParseContainer parses a Container by its String() name (case-sensitive).
func ParseContainer(name string) (Container, error) {
	for i, n := range containerNames {
		if n == name {
			return Container(i), nil
		}
	}
	return 0, fmt.Errorf("unknown container %q", name)
}

// ParseTraversal parses a Traversal by its String() name (case-sensitive).
func ParseTraversal(name string) (Traversal, error) {
	for i, n := range traversalNames {
		if n == name {
			return Traversal(i), nil
		}
	}
	return 0, fmt.Errorf("unknown traversal %q", name)
}

// ParseDataLayout parses a DataLayout by its String() name (case-sensitive).
func ParseDataLayout(name string) (DataLayout, error) {
	for i, n := range dataLayoutNames {
		if n == name {
			return DataLayout(i), nil
		}
	}
	return 0, fmt.Errorf("unknown data layout %q", name)
}

// ParseNewton3Option parses a Newton3Option by its String() name (case-sensitive).
func ParseNewton3Option(name string) (Newton3Option, error) {
	for i, n := range newton3Names {
		if n == name {
			return Newton3Option(i), nil
		}
	}
	return 0, fmt.Errorf("unknown newton3 option %q", name)
}

// UnmarshalYAML lets Container appear in YAML as its string name.
func (c *Container) UnmarshalYAML(value *yaml.Node) error {
	var name string
	if err := value.Decode(&name); err != nil {
		return err
	}
	parsed, err := ParseContainer(name)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// MarshalYAML renders Container as its string name.
func (c Container) MarshalYAML() (interface{}, error) {
	return c.String(), nil
}

// UnmarshalYAML lets Traversal appear in YAML as its string name.
func (t *Traversal) UnmarshalYAML(value *yaml.Node) error {
	var name string
	if err := value.Decode(&name); err != nil {
		return err
	}
	parsed, err := ParseTraversal(name)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// MarshalYAML renders Traversal as its string name.
func (t Traversal) MarshalYAML() (interface{}, error) {
	return t.String(), nil
}

// UnmarshalYAML lets DataLayout appear in YAML as its string name.
func (d *DataLayout) UnmarshalYAML(value *yaml.Node) error {
	var name string
	if err := value.Decode(&name); err != nil {
		return err
	}
	parsed, err := ParseDataLayout(name)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalYAML renders DataLayout as its string name.
func (d DataLayout) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}

// UnmarshalYAML lets Newton3Option appear in YAML as its string name.
func (n *Newton3Option) UnmarshalYAML(value *yaml.Node) error {
	var name string
	if err := value.Decode(&name); err != nil {
		return err
	}
	parsed, err := ParseNewton3Option(name)
	if err != nil {
		return err
	}
	*n = parsed
	return nil
}

// MarshalYAML renders Newton3Option as its string name.
func (n Newton3Option) MarshalYAML() (interface{}, error) {
	return n.String(), nil
}
