package models

// Point is a 2D coordinate in floor-plan pixels
type Point struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
}

// Size is a 2D extent in floor-plan pixels
type Size struct {
	Width  float64 `yaml:"width" json:"width"`
	Height float64 `yaml:"height" json:"height"`
}

// Cabinet represents a rack cabinet and the devices mounted in it
type Cabinet struct {
	ID       string   `yaml:"id" json:"id" validate:"required"`
	Name     string   `yaml:"name" json:"name"`
	Devices  []Device `yaml:"devices" json:"devices"`
	Position *Point   `yaml:"position,omitempty" json:"position,omitempty"`
}

// Placed reports whether the cabinet has been given a floor-plan position
func (c *Cabinet) Placed() bool {
	return c.Position != nil
}

// DisplayName returns the name, falling back to the ID
func (c *Cabinet) DisplayName() string {
	if c.Name != "" {
		return c.Name
	}
	return c.ID
}

// Clone returns a deep copy so snapshots never share device slices or positions
func (c Cabinet) Clone() Cabinet {
	out := c
	if c.Devices != nil {
		out.Devices = make([]Device, len(c.Devices))
		copy(out.Devices, c.Devices)
	}
	if c.Position != nil {
		p := *c.Position
		out.Position = &p
	}
	return out
}

// LocationRecord is an explicit placement parsed from the location sheet
type LocationRecord struct {
	CabinetID string  `yaml:"cabinet_id" json:"cabinetId"`
	Name      string  `yaml:"name" json:"name"`
	Group     string  `yaml:"group,omitempty" json:"group,omitempty"`
	X         float64 `yaml:"x" json:"x"`
	Y         float64 `yaml:"y" json:"y"`
}

// Layout is the on-disk document written by the CLI between invocations
type Layout struct {
	Source      string    `yaml:"source,omitempty" json:"source,omitempty"`
	IngestionID string    `yaml:"ingestion_id,omitempty" json:"ingestionId,omitempty"`
	Cabinets    []Cabinet `yaml:"cabinets" json:"cabinets"`
}
