package facts

import (
	"github.com/Kevin180791/tgacheck/internal/finding"
)

// Project is a fully extracted TGA review job: the building profile plus the
// per-document fact blocks the upstream extraction produced. The engine only
// reads this structure; nothing here touches PDFs or plans.
type Project struct {
	Name        string     `yaml:"projekt"`
	ProjectType string     `yaml:"projekt_typ"`
	Phase       string     `yaml:"leistungsphase,omitempty"`
	Documents   []Document `yaml:"dokumente"`
}

// Document types as the planning workflow distinguishes them.
const (
	DocTypePlan        = "plan"
	DocTypeCalculation = "berechnung"
	DocTypeSchema      = "schema"
	DocTypeReport      = "bericht"
)

// Document is one submitted planning document and its extracted facts.
// Every metadata block is optional; a nil block simply contributes nothing
// to the corresponding check.
type Document struct {
	ID         string        `yaml:"id"`
	Filename   string        `yaml:"dateiname"`
	Type       string        `yaml:"typ"`
	Trade      finding.Trade `yaml:"gewerk"`
	PlanNumber string        `yaml:"plan_nummer,omitempty"`
	Revision   string        `yaml:"revision,omitempty"`
	Level      string        `yaml:"geschoss,omitempty"`

	// Legend lists the terms extracted from the plan legend, already
	// normalized to plain strings.
	Legend []string `yaml:"legende,omitempty"`

	Geometry   *Geometry   `yaml:"geometrie,omitempty"`
	Interfaces *Interfaces `yaml:"schnittstellen,omitempty"`
	Openings   *Openings   `yaml:"sud,omitempty"`

	Sanitary        *SanitarySection        `yaml:"sanitaer,omitempty"`
	Heating         *HeatingSection         `yaml:"heizung,omitempty"`
	Ventilation     *VentilationSection     `yaml:"lueftung,omitempty"`
	Electrical      *ElectricalSection      `yaml:"elektro,omitempty"`
	Communication   *CommunicationSection   `yaml:"kommunikation,omitempty"`
	FireSuppression *FireSuppressionSection `yaml:"feuerloeschung,omitempty"`
	Automation      *AutomationSection      `yaml:"automation,omitempty"`
}

// PlanRef is the human reference for a document: plan number when assigned,
// otherwise the filename.
func (d Document) PlanRef() string {
	if d.PlanNumber != "" {
		return d.PlanNumber
	}
	return d.Filename
}

// Geometry carries placed elements for the collision check.
type Geometry struct {
	Level    string            `yaml:"level,omitempty"`
	PlanRef  string            `yaml:"plan_ref,omitempty"`
	Elements []GeometryElement `yaml:"elemente"`
}

// GeometryElement is one placed component. Box keeps the raw key/value
// pairs because extractors emit several aliases (x_min/xmin, x+width,
// breite, niveau); coord normalizes them.
type GeometryElement struct {
	ID      string              `yaml:"id,omitempty"`
	Name    string              `yaml:"name,omitempty"`
	Level   string              `yaml:"level,omitempty"`
	PlanRef string              `yaml:"plan_ref,omitempty"`
	Box     map[string]Quantity `yaml:"bbox"`
}

// Interfaces carries cross-trade supply declarations. Electrical documents
// publish supply circuits; heating documents declare their electrical
// demands against them.
type Interfaces struct {
	Supplies []InterfaceSupply `yaml:"versorgungen,omitempty"`
	Heating  []InterfaceDemand `yaml:"elektro,omitempty"`
}

type InterfaceSupply struct {
	Reference string   `yaml:"referenz"`
	Capacity  Quantity `yaml:"kapazitaet_kw"`
	PlanRef   string   `yaml:"plan_ref,omitempty"`
}

type InterfaceDemand struct {
	// Supply names the electrical circuit this consumer draws from.
	Supply  string   `yaml:"versorgung"`
	Power   Quantity `yaml:"leistung_kw"`
	PlanRef string   `yaml:"plan_ref,omitempty"`
}

// Openings carries the Schlitz- und Durchbruchsplanung: openings the TGA
// trades request and the openings the structural planning confirmed.
type Openings struct {
	PlanRef   string                `yaml:"plan_ref,omitempty"`
	Requests  []OpeningRequest      `yaml:"anforderungen,omitempty"`
	Confirmed []OpeningConfirmation `yaml:"bestaetigt,omitempty"`
}

type OpeningRequest struct {
	ID       string   `yaml:"id"`
	Level    string   `yaml:"geschoss,omitempty"`
	PlanRef  string   `yaml:"plan_ref,omitempty"`
	Width    Quantity `yaml:"breite"`
	Height   Quantity `yaml:"hoehe"`
	Diameter Quantity `yaml:"durchmesser"`
	X        Quantity `yaml:"x"`
	Y        Quantity `yaml:"y"`
}

type OpeningConfirmation struct {
	Reference string   `yaml:"referenz"`
	Status    string   `yaml:"status,omitempty"`
	Level     string   `yaml:"geschoss,omitempty"`
	PlanRef   string   `yaml:"plan_ref,omitempty"`
	Width     Quantity `yaml:"breite"`
	Height    Quantity `yaml:"hoehe"`
	Diameter  Quantity `yaml:"durchmesser"`
	X         Quantity `yaml:"x"`
	Y         Quantity `yaml:"y"`
}

// SanitarySection holds the KG410 facts of one document. A document reads
// as one potable-water system; fixtures are listed individually.
type SanitarySection struct {
	HotWaterTemp    Quantity            `yaml:"warmwassertemperatur"`
	CirculationTemp Quantity            `yaml:"zirkulationstemperatur"`
	Velocities      map[string]Quantity `yaml:"geschwindigkeiten,omitempty"`
	Materials       map[string]string   `yaml:"werkstoffe,omitempty"`
	Insulation      map[string]Quantity `yaml:"daemmung,omitempty"`
	Fixtures        []SanitaryFixture   `yaml:"entnahmestellen,omitempty"`
}

type SanitaryFixture struct {
	ID            string   `yaml:"id"`
	Zone          string   `yaml:"bereich,omitempty"`
	StagnationHrs Quantity `yaml:"stagnation_stunden"`
	Backflow      bool     `yaml:"ruecksaugsicherung,omitempty"`
}

// HeatingSection holds the KG420 facts of one document.
type HeatingSection struct {
	TotalLoad Quantity          `yaml:"gesamtheizlast_kw"`
	Rooms     []HeatingRoom     `yaml:"raeume,omitempty"`
	System    *HeatingSystem    `yaml:"system,omitempty"`
	Generator *HeatingGenerator `yaml:"erzeuger,omitempty"`
}

type HeatingRoom struct {
	Name         string   `yaml:"name"`
	HeatLoad     Quantity `yaml:"heizlast"`
	SpecificLoad Quantity `yaml:"spezifische_heizlast"`
}

type HeatingSystem struct {
	SupplyTemp         Quantity `yaml:"vorlauftemperatur"`
	ReturnTemp         Quantity `yaml:"ruecklauftemperatur"`
	Pressure           Quantity `yaml:"druck"`
	HydraulicBalancing bool     `yaml:"hydraulischer_abgleich,omitempty"`
	Components         []string `yaml:"komponenten,omitempty"`
}

type HeatingGenerator struct {
	Type       string   `yaml:"typ,omitempty"`
	Power      Quantity `yaml:"leistung_kw"`
	COP        Quantity `yaml:"cop"`
	Efficiency Quantity `yaml:"wirkungsgrad"`
}

// VentilationSection holds the KG430 facts of one document.
type VentilationSection struct {
	Rooms   []VentilationRoom   `yaml:"raeume,omitempty"`
	Systems []VentilationSystem `yaml:"anlagen,omitempty"`
}

type VentilationRoom struct {
	Name      string   `yaml:"name"`
	Supply    Quantity `yaml:"zuluft"`
	Exhaust   Quantity `yaml:"abluft"`
	Persons   Quantity `yaml:"personen"`
	AirChange Quantity `yaml:"luftwechsel"`
	CO2       Quantity `yaml:"co2"`
}

type VentilationSystem struct {
	ID              string   `yaml:"id"`
	Flow            Quantity `yaml:"volumenstrom"`
	HeatRecovery    bool     `yaml:"wrg,omitempty"`
	HeatRecoveryEta Quantity `yaml:"wrg_wirkungsgrad"`
	FilterClasses   []string `yaml:"filterklassen,omitempty"`
}

// ElectricalSection holds the KG440 facts of one document.
type ElectricalSection struct {
	Circuits          []ElectricalCircuit `yaml:"stromkreise,omitempty"`
	Lighting          []LightingZone      `yaml:"beleuchtung,omitempty"`
	Consumers         []Consumer          `yaml:"verbraucher,omitempty"`
	EmergencyLighting bool                `yaml:"notbeleuchtung,omitempty"`
}

type ElectricalCircuit struct {
	Name            string   `yaml:"name"`
	VoltageDropPct  Quantity `yaml:"spannungsfall_prozent"`
	DiversityFactor Quantity `yaml:"gleichzeitigkeitsfaktor"`
	ReservePct      Quantity `yaml:"reserve_prozent"`
}

type LightingZone struct {
	ID    string   `yaml:"id"`
	Name  string   `yaml:"name,omitempty"`
	Usage string   `yaml:"nutzung,omitempty"`
	Area  Quantity `yaml:"flaeche"`
	Power Quantity `yaml:"leistung"`
}

type Consumer struct {
	Zone        string `yaml:"bereich"`
	UPSRequired bool   `yaml:"usv_erforderlich,omitempty"`
}

// CommunicationSection holds the KG450 facts of one document.
type CommunicationSection struct {
	Networks      []Network      `yaml:"datennetze,omitempty"`
	FireAlarm     *FireAlarm     `yaml:"brandmeldeanlage,omitempty"`
	SecurityAreas []SecurityArea `yaml:"sicherheitsbereiche,omitempty"`
}

type Network struct {
	Zone      string   `yaml:"zone"`
	RackFill  Quantity `yaml:"rack_belegung"`
	Shielding bool     `yaml:"kabelschirmung,omitempty"`
}

type FireAlarm struct {
	Standard       string `yaml:"norm,omitempty"`
	RedundantPaths *bool  `yaml:"redundante_wege,omitempty"`
}

type SecurityArea struct {
	Name            string `yaml:"name"`
	RedundantLink   bool   `yaml:"redundante_anbindung,omitempty"`
	AccessControl   bool   `yaml:"zutrittskontrolle,omitempty"`
	VideoMonitoring *bool  `yaml:"videoueberwachung,omitempty"`
}

// FireSuppressionSection holds the KG474 facts of one document.
type FireSuppressionSection struct {
	Sprinkler   []SprinklerZone `yaml:"sprinkler,omitempty"`
	Hydrants    []Hydrant       `yaml:"hydranten,omitempty"`
	WaterSupply *WaterSupply    `yaml:"wasserversorgung,omitempty"`
}

type SprinklerZone struct {
	Name           string   `yaml:"name"`
	HazardClass    string   `yaml:"gefaehrdungsklasse,omitempty"`
	Density        Quantity `yaml:"dichte"`
	Duration       Quantity `yaml:"einwirkzeit"`
	PumpRedundancy bool     `yaml:"pumpenredundanz,omitempty"`
}

type Hydrant struct {
	Name     string   `yaml:"name"`
	Flow     Quantity `yaml:"volumenstrom"`
	Pressure Quantity `yaml:"druck"`
}

type WaterSupply struct {
	Duration Quantity `yaml:"dauer"`
}

// AutomationSection holds the KG480 facts of one document.
type AutomationSection struct {
	Systems       []AutomationSystem `yaml:"systeme,omitempty"`
	Points        []PointGroup       `yaml:"messstellen,omitempty"`
	TrendDays     Quantity           `yaml:"trendaufzeichnung_tage"`
	AlarmResponse Quantity           `yaml:"alarmreaktionszeit"`
}

type AutomationSystem struct {
	TradeRef string `yaml:"gewerk"`
	Class    string `yaml:"klasse,omitempty"`
}

type PointGroup struct {
	Category string   `yaml:"kategorie"`
	Area     Quantity `yaml:"flaeche"`
	Count    Quantity `yaml:"anzahl"`
}

// DocumentsByTrade groups the project's documents by trade, preserving file
// order within each group.
func (p *Project) DocumentsByTrade() map[finding.Trade][]Document {
	grouped := make(map[finding.Trade][]Document)
	for _, doc := range p.Documents {
		grouped[doc.Trade] = append(grouped[doc.Trade], doc)
	}
	return grouped
}
