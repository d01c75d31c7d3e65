package model

// SettingKey is the stable storage key for one configurable build
// field. Display labels may change without orphaning saved values.
type SettingKey string

const (
	CategoryKart = "kart"
	CategoryTire = "tire"
)

const (
	SettingFrontCaster     SettingKey = "kart.frontend.caster"
	SettingFrontCamber     SettingKey = "kart.frontend.camber"
	SettingFrontToe        SettingKey = "kart.frontend.toe"
	SettingFrontTrackWidth SettingKey = "kart.frontend.trackWidth"
	SettingRearTrackWidth  SettingKey = "kart.rearend.trackWidth"
	SettingRearAxle        SettingKey = "kart.rearend.axle"
	SettingRearHubLength   SettingKey = "kart.rearend.hubLength"
	SettingSeatPosition    SettingKey = "kart.chassis.seatPosition"
	SettingChassisBars     SettingKey = "kart.chassis.bars"
	SettingGearing         SettingKey = "kart.engine.gearing"
	SettingCarbSetting     SettingKey = "kart.engine.carb"

	SettingTireCompound      SettingKey = "tire.compound"
	SettingTirePressureLF    SettingKey = "tire.pressure.leftFront"
	SettingTirePressureRF    SettingKey = "tire.pressure.rightFront"
	SettingTirePressureLR    SettingKey = "tire.pressure.leftRear"
	SettingTirePressureRR    SettingKey = "tire.pressure.rightRear"
	SettingTireDurometer     SettingKey = "tire.durometer"
	SettingTireCircumference SettingKey = "tire.circumference"
	SettingTirePrep          SettingKey = "tire.prep"
)

// SettingDef describes one catalog entry.
type SettingDef struct {
	Key      SettingKey
	Label    string
	Category string
}

var settingCatalog = []SettingDef{
	{SettingFrontCaster, "Caster", CategoryKart},
	{SettingFrontCamber, "Camber", CategoryKart},
	{SettingFrontToe, "Toe", CategoryKart},
	{SettingFrontTrackWidth, "Front Track Width", CategoryKart},
	{SettingRearTrackWidth, "Rear Track Width", CategoryKart},
	{SettingRearAxle, "Axle Stiffness", CategoryKart},
	{SettingRearHubLength, "Hub Length", CategoryKart},
	{SettingSeatPosition, "Seat Position", CategoryKart},
	{SettingChassisBars, "Chassis Bars", CategoryKart},
	{SettingGearing, "Gearing", CategoryKart},
	{SettingCarbSetting, "Carb Setting", CategoryKart},
	{SettingTireCompound, "Compound", CategoryTire},
	{SettingTirePressureLF, "Left Front Pressure", CategoryTire},
	{SettingTirePressureRF, "Right Front Pressure", CategoryTire},
	{SettingTirePressureLR, "Left Rear Pressure", CategoryTire},
	{SettingTirePressureRR, "Right Rear Pressure", CategoryTire},
	{SettingTireDurometer, "Durometer", CategoryTire},
	{SettingTireCircumference, "Circumference", CategoryTire},
	{SettingTirePrep, "Prep Applied", CategoryTire},
}

// SettingCatalog returns the full catalog in display order.
func SettingCatalog() []SettingDef {
	ret := make([]SettingDef, len(settingCatalog))
	copy(ret, settingCatalog)
	return ret
}

// SettingsByCategory filters the catalog to one category in display order.
func SettingsByCategory(category string) []SettingDef {
	ret := []SettingDef{}
	for _, def := range settingCatalog {
		if def.Category == category {
			ret = append(ret, def)
		}
	}
	return ret
}

// LookupSetting resolves a key against the catalog.
func LookupSetting(key SettingKey) (SettingDef, bool) {
	for _, def := range settingCatalog {
		if def.Key == key {
			return def, true
		}
	}
	return SettingDef{}, false
}
