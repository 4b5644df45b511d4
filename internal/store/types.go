package store

// MaidFilter narrows ListMaids. Zero values do not filter.
type MaidFilter struct {
	AgencyID  int64
	MaidType  string
	Published *bool
	Featured  *bool
	Limit     int
	Offset    int
}

// CareKind names one of the care and housework sections of a maid profile.
type CareKind string

const (
	CareInfantChild      CareKind = "infant_child_care"
	CareElderly          CareKind = "elderly_care"
	CareDisabled         CareKind = "disabled_care"
	CareGeneralHousework CareKind = "general_housework"
	CareCooking          CareKind = "cooking"
)

// CareKinds lists every section in display order.
var CareKinds = []CareKind{CareInfantChild, CareElderly, CareDisabled, CareGeneralHousework, CareCooking}

// completeColumn is the maid flag set once the section has been filled in.
func (k CareKind) completeColumn() string {
	return string(k) + "_complete"
}

const defaultListLimit = 50
