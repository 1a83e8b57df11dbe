package fleet

// TruckSpec is the static vehicle specification shared by the fleet.
// One instance, read-only.
type TruckSpec struct {
	CapacityCubicYards  float64 `yaml:"capacityCubicYards" json:"capacityCubicYards"`
	CompactionRatio     float64 `yaml:"compactionRatio" json:"compactionRatio"`
	MaxPayloadTons      float64 `yaml:"maxPayloadTons" json:"maxPayloadTons"`
	MaxRouteHoursPerDay float64 `yaml:"maxRouteHoursPerDay" json:"maxRouteHoursPerDay"`
	AvgStopTimeMinutes  float64 `yaml:"avgStopTimeMinutes" json:"avgStopTimeMinutes"`
}

// EffectiveCapacity is volumetric capacity after compaction.
func (t TruckSpec) EffectiveCapacity() float64 {
	return t.CapacityCubicYards * t.CompactionRatio
}

// DefaultTruckSpec models a 25yd rear loader at 2.5:1 compaction.
func DefaultTruckSpec() TruckSpec {
	return TruckSpec{
		CapacityCubicYards:  25,
		CompactionRatio:     2.5,
		MaxPayloadTons:      10,
		MaxRouteHoursPerDay: 10,
		AvgStopTimeMinutes:  0.5,
	}
}

// Config holds the fleet-wide planning parameters.
type Config struct {
	Trucks             int     `yaml:"trucks" json:"trucks"`
	WorkingDaysPerWeek int     `yaml:"workingDaysPerWeek" json:"workingDaysPerWeek"`
	// UtilizationBuffer caps plannable load as a fraction of raw
	// available hours; load beyond it triggers additional trucks.
	UtilizationBuffer float64 `yaml:"utilizationBuffer" json:"utilizationBuffer"`
	// DefaultCommittedFraction approximates committed hours when no
	// utilization snapshot is supplied.
	DefaultCommittedFraction float64 `yaml:"defaultCommittedFraction" json:"defaultCommittedFraction"`
	// FixedOverheadHours per trip covers transit to the disposal site,
	// tipping, and washdown.
	FixedOverheadHours float64 `yaml:"fixedOverheadHours" json:"fixedOverheadHours"`
}

func DefaultConfig() Config {
	return Config{
		Trucks:                   3,
		WorkingDaysPerWeek:       5,
		UtilizationBuffer:        0.85,
		DefaultCommittedFraction: 0.75,
		FixedOverheadHours:       0.75,
	}
}

// WeeklyHoursPerTruck is one truck's plannable route hours per week.
func (c Config) WeeklyHoursPerTruck(spec TruckSpec) float64 {
	return spec.MaxRouteHoursPerDay * float64(c.WorkingDaysPerWeek)
}
