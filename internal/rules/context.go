package rules

// Context is the per-trade structured fact bundle a rule evaluator consumes.
// Only the section for the evaluated trade needs to be populated; a nil
// section reads as "no data found for this trade". All numeric fields are
// optional pointers - nil means "unknown", never "zero", and an unknown
// value must not flag.
type Context struct {
	// ProjectType is the building type (wohngebaeude, buerogebaeude,
	// schule, krankenhaus, industriebau, mischnutzung). Evaluators fall
	// back to buerogebaeude when the type has no catalog entry.
	ProjectType string

	Sanitary        *SanitaryFacts
	Heating         *HeatingFacts
	Ventilation     *VentilationFacts
	Electrical      *ElectricalFacts
	Communication   *CommunicationFacts
	FireSuppression *FireSuppressionFacts
	Automation      *AutomationFacts
}

// SanitaryFacts (KG410).
type SanitaryFacts struct {
	Systems  []SanitarySystem
	Fixtures []SanitaryFixture
}

type SanitarySystem struct {
	Name            string
	DocumentID      string
	HotWaterTemp    *float64 // °C
	CirculationTemp *float64 // °C
	// Velocities holds flow velocities per medium in m/s
	// (kaltwasser, warmwasser, zirkulation, abwasser).
	Velocities map[string]float64
	// Materials holds the piping material per medium.
	Materials map[string]string
	// Insulation holds insulation thickness per medium in mm.
	Insulation map[string]float64
}

type SanitaryFixture struct {
	ID             string
	DocumentID     string
	Zone           string // usage area (labor, gewerblich, ...)
	StagnationHrs  *float64
	Backflow       bool // backflow preventer documented
}

// HeatingFacts (KG420).
type HeatingFacts struct {
	Rooms     []HeatingRoom
	TotalLoad *float64 // kW; summed from rooms when absent
	System    HeatingSystem
	Generator HeatingGenerator
}

type HeatingRoom struct {
	Name         string
	HeatLoad     *float64 // kW, or W for legacy inputs (values >1000 are read as W)
	SpecificLoad *float64 // W/m²
}

type HeatingSystem struct {
	SupplyTemp         *float64 // °C
	ReturnTemp         *float64 // °C
	Pressure           *float64 // bar
	HydraulicBalancing bool
	Components         []string
}

type HeatingGenerator struct {
	Type       string   // waermepumpe, gaskessel, ...
	Power      *float64 // kW
	COP        *float64
	Efficiency *float64 // fraction
}

// VentilationFacts (KG430).
type VentilationFacts struct {
	Rooms   []VentilationRoom
	Systems []VentilationSystem
}

type VentilationRoom struct {
	Name      string
	Supply    *float64 // m³/h
	Exhaust   *float64 // m³/h
	Persons   *float64
	AirChange *float64 // 1/h
	CO2       *float64 // ppm
}

type VentilationSystem struct {
	ID              string
	Flow            *float64 // m³/h
	HeatRecovery    bool
	HeatRecoveryEta *float64 // fraction
	FilterClasses   []string
}

// ElectricalFacts (KG440).
type ElectricalFacts struct {
	Circuits          []Circuit
	Lighting          []LightingZone
	Consumers         []Consumer
	EmergencyLighting bool // safety lighting documented
}

type Circuit struct {
	Name            string
	DocumentID      string
	VoltageDropPct  *float64
	DiversityFactor *float64
	ReservePct      *float64
}

type LightingZone struct {
	ID    string
	Name  string
	Usage string   // falls back to the project type
	Area  *float64 // m²
	Power *float64 // W
}

type Consumer struct {
	Zone        string
	UPSRequired bool // consumer declares its zone as UPS-supplied
}

// CommunicationFacts (KG450).
type CommunicationFacts struct {
	Networks      []Network
	FireAlarm     *FireAlarm
	SecurityAreas []SecurityArea
}

type Network struct {
	Zone      string
	RackFill  *float64 // fraction
	Shielding bool
}

type FireAlarm struct {
	Standard       string
	RedundantPaths bool
}

type SecurityArea struct {
	Name            string
	RedundantLink   bool
	AccessControl   bool
	VideoMonitoring *bool // nil = not specified
}

// FireSuppressionFacts (KG474).
type FireSuppressionFacts struct {
	Sprinkler   []SprinklerZone
	Hydrants    []Hydrant
	WaterSupply WaterSupply
}

type SprinklerZone struct {
	Name           string
	HazardClass    string   // hoch, normal, niedrig; empty reads as normal
	Density        *float64 // l/min·m²
	Duration       *float64 // min
	PumpRedundancy bool
}

type Hydrant struct {
	Name     string
	Flow     *float64 // l/min
	Pressure *float64 // bar
}

type WaterSupply struct {
	Duration *float64 // min
}

// AutomationFacts (KG480).
type AutomationFacts struct {
	Systems       []AutomationSystem
	Points        []PointGroup
	TrendDays     *float64
	AlarmResponse *float64 // seconds
}

type AutomationSystem struct {
	TradeRef string // served trade code (kg420, ...)
	Class    string // BACS efficiency class A-D; empty reads as D
}

type PointGroup struct {
	Category string   // hvac, lighting, metering
	Area     *float64 // m²
	Count    *float64
}
