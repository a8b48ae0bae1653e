package catalog

import (
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
)

// LoadError describes a rejected catalog overlay.
type LoadError struct {
	Path    string
	Field   string
	Message string
}

func (e *LoadError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s: %s", e.Path, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// Load reads a CUE overlay file and applies it on top of the built-in
// defaults.
//
// The overlay only needs to state the parameters it changes; everything else
// keeps its default. The overlay must evaluate to concrete values (CUE
// expressions and arithmetic are fine, unresolved references are not). The
// merged catalog is validated (see validate) before it is returned.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog overlay: %w", err)
	}

	cuectx := cuecontext.New()

	overlay := cuectx.CompileBytes(data, cue.Filename(path))
	if err := overlay.Err(); err != nil {
		return nil, &LoadError{Path: path, Message: cueerrors.Details(err, nil)}
	}
	if err := overlay.Validate(cue.Concrete(true)); err != nil {
		return nil, &LoadError{Path: path, Message: cueerrors.Details(err, nil)}
	}

	// Decode behaves like json.Unmarshal: only fields present in the
	// overlay are overwritten, map entries merge key-wise.
	cat := Default()
	if err := overlay.Decode(cat); err != nil {
		return nil, &LoadError{Path: path, Message: cueerrors.Details(err, nil)}
	}

	if err := cat.validate(); err != nil {
		var le *LoadError
		if ok := asLoadError(err, &le); ok {
			le.Path = path
			return nil, le
		}
		return nil, err
	}
	return cat, nil
}

func asLoadError(err error, target **LoadError) bool {
	le, ok := err.(*LoadError)
	if ok {
		*target = le
	}
	return ok
}

// validate enforces the structural invariants an overlay could break:
// ranges ordered, fractions within [0,1], required scalars positive.
func (c *Catalog) validate() error {
	checkRange := func(field string, r Range) error {
		if r.Min > r.Max {
			return &LoadError{Field: field, Message: fmt.Sprintf("min %v exceeds max %v", r.Min, r.Max)}
		}
		return nil
	}
	for typ, r := range c.Heating.SpecificLoad {
		if err := checkRange("kg420.specific_load."+typ, r); err != nil {
			return err
		}
	}
	for typ, r := range c.Ventilation.AirChange {
		if err := checkRange("kg430.air_change."+typ, r); err != nil {
			return err
		}
	}
	if err := checkRange("kg440.diversity_factor_range", c.Electrical.DiversityFactorRange); err != nil {
		return err
	}

	checkFraction := func(field string, v float64) error {
		if v < 0 || v > 1 {
			return &LoadError{Field: field, Message: fmt.Sprintf("%v outside [0,1]", v)}
		}
		return nil
	}
	if err := checkFraction("kg430.balance_tolerance", c.Ventilation.BalanceTolerance); err != nil {
		return err
	}
	if err := checkFraction("kg430.wrg_eta_min", c.Ventilation.HeatRecoveryEtaMin); err != nil {
		return err
	}
	if err := checkFraction("kg420.boiler_efficiency_min", c.Heating.BoilerEfficiencyMin); err != nil {
		return err
	}
	if err := checkFraction("kg450.data_rack_fill_max", c.Communication.DataRackFillMax); err != nil {
		return err
	}

	checkPositive := func(field string, v float64) error {
		if v <= 0 {
			return &LoadError{Field: field, Message: fmt.Sprintf("%v must be positive", v)}
		}
		return nil
	}
	if err := checkPositive("kg410.hot_water_temp_min", c.Sanitary.HotWaterTempMin); err != nil {
		return err
	}
	if err := checkPositive("kg420.generator_margin", c.Heating.GeneratorMargin); err != nil {
		return err
	}
	if err := checkPositive("kg474.water_supply_duration_min", c.FireSuppression.WaterSupplyDurationMin); err != nil {
		return err
	}
	if err := checkPositive("kg480.trend_storage_days_min", c.Automation.TrendStorageDaysMin); err != nil {
		return err
	}
	return nil
}
