package catalog

// Range is an inclusive [Min, Max] interval.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains reports whether v lies inside the range.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Sanitary parameters (KG410). Velocity limits and insulation minimums are
// keyed by medium (kaltwasser, warmwasser, zirkulation, abwasser).
type Sanitary struct {
	HotWaterTempMin    float64             `json:"hot_water_temp_min"`
	CirculationTempMin float64             `json:"circulation_temp_min"`
	MaxStagnationHours float64             `json:"max_stagnation_hours"`
	MaxVelocity        map[string]float64  `json:"max_velocity"`
	MaterialBlacklist  map[string][]string `json:"material_blacklist"`
	BackflowRequired   []string            `json:"backflow_required_for"`
	InsulationMin      map[string]float64  `json:"insulation_min"`
}

// Heating parameters (KG420). SpecificLoad ranges are keyed by project type
// and given in W/m².
type Heating struct {
	SpecificLoad         map[string]Range `json:"specific_load"`
	SupplyTempMax        float64          `json:"supply_temp_max"`
	ReturnTempMax        float64          `json:"return_temp_max"`
	PressureMin          float64          `json:"pressure_min"`
	PressureMax          float64          `json:"pressure_max"`
	HydraulicBalanceReq  bool             `json:"hydraulic_balance_required"`
	GeneratorMargin      float64          `json:"generator_margin"`
	COPMin               float64          `json:"cop_min"`
	BoilerEfficiencyMin  float64          `json:"boiler_efficiency_min"`
	DeltaTTolerance      float64          `json:"delta_t_tolerance"`
	RequiredComponents   []string         `json:"required_components"`
}

// Ventilation parameters (KG430). Air-change ranges are per project type in
// 1/h, outdoor air in m³/h per person.
type Ventilation struct {
	AirChange           map[string]Range   `json:"air_change"`
	OutdoorAirPerPerson map[string]float64 `json:"outdoor_air_per_person"`
	CO2Limit            float64            `json:"co2_limit"`
	BalanceTolerance    float64            `json:"balance_tolerance"`
	HeatRecoveryReq     bool               `json:"wrg_required"`
	HeatRecoveryEtaMin  float64            `json:"wrg_eta_min"`
	HeatRecoveryMinFlow float64            `json:"wrg_min_flow"`
}

// Electrical parameters (KG440).
type Electrical struct {
	VoltageDropMaxPercent float64            `json:"voltage_drop_max_percent"`
	LightingPowerDensity  map[string]float64 `json:"lighting_power_density"`
	EmergencyLightingReq  []string           `json:"emergency_lighting_required"`
	UPSRequiredFor        []string           `json:"ups_required_for"`
	DiversityFactorRange  Range              `json:"diversity_factor_range"`
	ReservePercentMin     float64            `json:"reserve_percent_min"`
}

// Communication parameters (KG450).
type Communication struct {
	RedundantPathsRequired []string `json:"redundant_paths_required"`
	FireAlarmStandard      string   `json:"fire_alarm_standard"`
	DataRackFillMax        float64  `json:"data_rack_fill_max"`
	CableShieldingRequired []string `json:"cable_shielding_required"`
}

// FireSuppression parameters (KG474). Sprinkler densities are keyed by
// hazard class in l/min·m².
type FireSuppression struct {
	SprinklerDensity        map[string]float64 `json:"sprinkler_density"`
	WaterSupplyDurationMin  float64            `json:"water_supply_duration_min"`
	PumpRedundancyRequired  []string           `json:"pump_redundancy_required"`
	HydrantFlowMin          float64            `json:"hydrant_flow_min"`
	HydrantPressureMinBar   float64            `json:"hydrant_pressure_min_bar"`
}

// Automation parameters (KG480). BACSClasses maps a served trade code to
// the minimum required efficiency class (A best, D worst).
type Automation struct {
	BACSClasses          map[string]string  `json:"bacs_classes"`
	PointDensityMin      map[string]float64 `json:"point_density_min"`
	TrendStorageDaysMin  float64            `json:"trend_storage_days_min"`
	AlarmResponseTimeMax float64            `json:"alarm_response_time_max"`
}

// Catalog is the full parameter catalog across all seven trades.
type Catalog struct {
	Sanitary        Sanitary        `json:"kg410"`
	Heating         Heating         `json:"kg420"`
	Ventilation     Ventilation     `json:"kg430"`
	Electrical      Electrical      `json:"kg440"`
	Communication   Communication   `json:"kg450"`
	FireSuppression FireSuppression `json:"kg474"`
	Automation      Automation      `json:"kg480"`
}

// Default returns the built-in parameter catalog.
func Default() *Catalog {
	return &Catalog{
		Sanitary: Sanitary{
			HotWaterTempMin:    55.0,
			CirculationTempMin: 50.0,
			MaxStagnationHours: 72,
			MaxVelocity: map[string]float64{
				"kaltwasser":  2.0,
				"warmwasser":  1.5,
				"zirkulation": 0.8,
				"abwasser":    2.5,
			},
			MaterialBlacklist: map[string][]string{
				"warmwasser": {"verzinkter Stahl"},
			},
			BackflowRequired: []string{"gewerblich", "labor", "krankenhaus"},
			InsulationMin: map[string]float64{
				"warmwasser":  13,
				"zirkulation": 20,
			},
		},
		Heating: Heating{
			SpecificLoad: map[string]Range{
				"wohngebaeude":  {Min: 30.0, Max: 100.0},
				"buerogebaeude": {Min: 40.0, Max: 95.0},
				"schule":        {Min: 35.0, Max: 110.0},
				"krankenhaus":   {Min: 45.0, Max: 130.0},
				"industriebau":  {Min: 35.0, Max: 160.0},
			},
			SupplyTempMax:       70.0,
			ReturnTempMax:       55.0,
			PressureMin:         1.5,
			PressureMax:         3.0,
			HydraulicBalanceReq: true,
			GeneratorMargin:     1.15,
			COPMin:              3.5,
			BoilerEfficiencyMin: 0.92,
			DeltaTTolerance:     5.0,
			RequiredComponents: []string{
				"wärmeerzeuger",
				"umwälzpumpe",
				"ausdehnungsgefäß",
				"sicherheitsventil",
				"manometer",
			},
		},
		Ventilation: Ventilation{
			AirChange: map[string]Range{
				"wohngebaeude":  {Min: 0.5, Max: 3.0},
				"buerogebaeude": {Min: 0.7, Max: 6.0},
				"schule":        {Min: 3.0, Max: 6.0},
				"krankenhaus":   {Min: 6.0, Max: 15.0},
				"industriebau":  {Min: 2.0, Max: 20.0},
			},
			OutdoorAirPerPerson: map[string]float64{
				"wohngebaeude":  30.0,
				"buerogebaeude": 36.0,
				"schule":        30.0,
				"krankenhaus":   40.0,
				"industriebau":  25.0,
			},
			CO2Limit:            1000,
			BalanceTolerance:    0.1,
			HeatRecoveryReq:     true,
			HeatRecoveryEtaMin:  0.75,
			HeatRecoveryMinFlow: 1500,
		},
		Electrical: Electrical{
			VoltageDropMaxPercent: 3.0,
			LightingPowerDensity: map[string]float64{
				"buerogebaeude": 12.0,
				"schule":        15.0,
				"industrie":     18.0,
			},
			EmergencyLightingReq: []string{"buerogebaeude", "schule", "krankenhaus"},
			UPSRequiredFor:       []string{"rechenzentrum", "operationssaal"},
			DiversityFactorRange: Range{Min: 0.6, Max: 0.9},
			ReservePercentMin:    10.0,
		},
		Communication: Communication{
			RedundantPathsRequired: []string{"krankenhaus", "rechenzentrum"},
			FireAlarmStandard:      "DIN 14675",
			DataRackFillMax:        0.8,
			CableShieldingRequired: []string{"labor", "industrie"},
		},
		FireSuppression: FireSuppression{
			SprinklerDensity: map[string]float64{
				"hoch":    5.0,
				"normal":  2.5,
				"niedrig": 1.5,
			},
			WaterSupplyDurationMin: 30,
			PumpRedundancyRequired: []string{"hoch", "krankenhaus"},
			HydrantFlowMin:         200,
			HydrantPressureMinBar:  4.0,
		},
		Automation: Automation{
			BACSClasses: map[string]string{
				"kg420": "A",
				"kg430": "A",
				"kg440": "B",
				"kg450": "B",
			},
			PointDensityMin: map[string]float64{
				"hvac":     1.5,
				"lighting": 1.0,
				"metering": 0.5,
			},
			TrendStorageDaysMin:  30,
			AlarmResponseTimeMax: 300,
		},
	}
}

// Contains reports whether needle is in the haystack list. Membership lists
// in the catalog are short; linear scan is fine.
func Contains(list []string, needle string) bool {
	for _, entry := range list {
		if entry == needle {
			return true
		}
	}
	return false
}
