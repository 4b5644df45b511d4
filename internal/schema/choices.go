package schema

import "strconv"

// Choice is one member of an enumerated domain. Only Code is persisted.
type Choice struct {
	Code  string
	Label string
}

// ChoiceSet is a closed, ordered set of choices.
type ChoiceSet struct {
	Name    string
	Choices []Choice
}

// Contains reports whether code belongs to the set.
func (cs ChoiceSet) Contains(code string) bool {
	for _, c := range cs.Choices {
		if c.Code == code {
			return true
		}
	}
	return false
}

// Label returns the presentation label for code, or code itself when unknown.
func (cs ChoiceSet) Label(code string) string {
	for _, c := range cs.Choices {
		if c.Code == code {
			return c.Label
		}
	}
	return code
}

// Codes returns the codes in declaration order.
func (cs ChoiceSet) Codes() []string {
	codes := make([]string, len(cs.Choices))
	for i, c := range cs.Choices {
		codes[i] = c.Code
	}
	return codes
}

// IsZero reports whether the set is empty, i.e. the field is not enumerated.
func (cs ChoiceSet) IsZero() bool {
	return cs.Name == "" && len(cs.Choices) == 0
}

// ContainsInt is Contains for integer-coded sets.
func (cs ChoiceSet) ContainsInt(v int) bool {
	return cs.Contains(strconv.Itoa(v))
}

// IntRange builds an integer-coded set covering [lo, hi].
func IntRange(name string, lo, hi int) ChoiceSet {
	cs := ChoiceSet{Name: name}
	for i := lo; i <= hi; i++ {
		s := strconv.Itoa(i)
		cs.Choices = append(cs.Choices, Choice{Code: s, Label: s})
	}
	return cs
}

// Maid domains.
var (
	MaidType = ChoiceSet{Name: "maid_type", Choices: []Choice{
		{"NEW", "No Experience"},
		{"TRF", "Transfer"},
		{"SGE", "Singapore Experience"},
		{"OVE", "Overseas Experience"},
	}}

	PassportStatus = ChoiceSet{Name: "passport_status", Choices: []Choice{
		{"0", "Not Ready"},
		{"1", "Ready"},
	}}

	CarePreference = ChoiceSet{Name: "care_preference", Choices: []Choice{
		{"1", "Least preferred"},
		{"2", "Less preferred"},
		{"3", "No preference"},
		{"4", "More preferred"},
		{"5", "Most preferred"},
	}}

	Willingness = ChoiceSet{Name: "willingness", Choices: []Choice{
		{"true", "Willing"},
		{"false", "Not willing"},
	}}

	Experience = ChoiceSet{Name: "experience", Choices: []Choice{
		{"true", "Experience"},
		{"false", "No experience"},
	}}

	WorkDuty = ChoiceSet{Name: "work_duty", Choices: []Choice{
		{"H", "Housework"},
		{"H_HDB", "Housework (HDB)"},
		{"H_CON", "Housework (Condo)"},
		{"H_PLP", "Housework (Landed Property)"},
		{"CO", "Cooking"},
		{"CO_C", "Cooking (Chinese Food)"},
		{"CO_I", "Cooking (Indian Food)"},
		{"CO_M", "Cooking (Malay Food)"},
		{"CA_IC", "Infant child care"},
		{"CA_E", "Elderly care"},
		{"CA_D", "Disabled care"},
		{"CA_P", "Pet care"},
	}}

	FoodRestriction = ChoiceSet{Name: "food_restriction", Choices: []Choice{
		{"P", "No pork"},
		{"C", "No chicken"},
		{"B", "No beef"},
		{"S", "No seafood"},
	}}

	MaritalStatus = ChoiceSet{Name: "marital_status", Choices: []Choice{
		{"S", "Single"},
		{"M", "Married"},
		{"W", "Widowed"},
		{"SP", "Single Parent"},
		{"D", "Divorced"},
	}}

	EmploymentCountry = ChoiceSet{Name: "employment_country", Choices: []Choice{
		{"SG", "SINGAPORE"},
	}}

	CountryOfOrigin = ChoiceSet{Name: "country_of_origin", Choices: []Choice{
		{"BGD", "Bangladesh"},
		{"KHM", "Cambodia"},
		{"IND", "India"},
		{"IDN", "Indonesia"},
		{"MMR", "Myanmar"},
		{"PHL", "Philippines (the)"},
		{"LKA", "Sri Lanka"},
		{"OTH", "Others"},
	}}

	Religion = ChoiceSet{Name: "religion", Choices: []Choice{
		{"B", "Buddhist"},
		{"M", "Muslim"},
		{"H", "Hindu"},
		{"CH", "Christain"},
		{"CA", "Catholic"},
		{"S", "Sikh"},
		{"OTH", "Others"},
		{"NONE", "None"},
	}}
)

// careRemarks builds the remarks domain shared by the infant, elderly and
// disabled care satellites; only the "not willing" label differs.
func careRemarks(name, notWilling string) ChoiceSet {
	return ChoiceSet{Name: name, Choices: []Choice{
		{"OC", "Experience in own country"},
		{"OV", "Experience in overseas"},
		{"SG", "Experience in Singapore"},
		{"OC_SG", "Experience in own country and Singapore"},
		{"OC_O", "Experience in own country and overseas"},
		{"OC_O_SG", "Experience in own country, overseas and Singapore"},
		{"NE", "No experience, but willing to learn"},
		{"NW", notWilling},
		{"OTH", "Other remarks (Please specify)"},
	}}
}

// Care category remark domains.
var (
	InfantChildCareRemarks = careRemarks("infant_child_care_remarks", "Not willing to care for infants/children")
	ElderlyCareRemarks     = careRemarks("elderly_care_remarks", "Not willing to care for elderly")
	DisabledCareRemarks    = careRemarks("disabled_care_remarks", "Not willing to care for disabled")

	GeneralHouseworkRemarks = ChoiceSet{Name: "general_housework_remarks", Choices: []Choice{
		{"CAN", "Able to do all general housework"},
		{"OTH", "Other remarks (Please specify)"},
	}}

	CookingRemarks = ChoiceSet{Name: "cooking_remarks", Choices: []Choice{
		{"OC", "Able to cook own country's cuisine"},
		{"C", "Able to cook chinese cuisine"},
		{"I", "Able to cook indian cuisine"},
		{"W", "Able to cook western cuisine"},
		{"OC_C", "Able to cook own country's and chinese cuisine"},
		{"OC_I", "Able to cook own country's and indian cuisine"},
		{"OC_W", "Able to cook own country's and western cuisine"},
		{"C_I", "Able to cook chinese and indian cuisine"},
		{"C_W", "Able to cook chinese and western cuisine"},
		{"I_W", "Able to cook indian and western cuisine"},
		{"OC_C_I", "Able to cook own country's, chinese and indian cuisine"},
		{"OC_C_W", "Able to cook own country's, chinese and western cuisine"},
		{"OC_I_W", "Able to cook own country's, indian and western cuisine"},
		{"C_I_W", "Able to cook chinese, indian and western cuisine"},
		{"OC_C_I_W", "Able to cook own country's, chinese, indian and western cuisine"},
		{"OTH", "Other remarks (Please specify)"},
	}}
)

// Agency domains. The employee role set grew over time; both shapes are kept
// because migration history references the earlier one.
var (
	EmployeeRoleInitial = ChoiceSet{Name: "agency_employee_role", Choices: []Choice{
		{"M", "Manager"},
		{"S", "Sales staff"},
	}}

	EmployeeRole = ChoiceSet{Name: "agency_employee_role", Choices: []Choice{
		{"M", "Manager"},
		{"S", "Sales staff"},
		{"A", "Agency administrator"},
	}}
)

// Contact enquiry domains. These include the "ALL" (no preference) member
// that the maid profile domains do not have.
var (
	EnquiryNationality = ChoiceSet{Name: "enquiry_nationality", Choices: []Choice{
		{"ALL", "No preference"},
		{"KHM", "Cambodian"},
		{"PHL", "Filipino"},
		{"IND", "Indian"},
		{"IDN", "Indonesian"},
		{"MMR", "Myanmarese"},
		{"LKA", "Sri Lankan"},
		{"OTH", "Others"},
	}}

	EnquiryResponsibility = ChoiceSet{Name: "enquiry_responsibility", Choices: []Choice{
		{"ALL", "No preference"},
		{"GEH", "General Housework"},
		{"COK", "Cooking"},
		{"CFI", "Care for Infants/Children"},
		{"CFE", "Care for the Elderly"},
		{"CFD", "Care for the Disabled"},
	}}

	EnquiryMaidType = ChoiceSet{Name: "enquiry_maid_type", Choices: []Choice{
		{"ALL", "No preference"},
		{"NEW", "No Experience"},
		{"TRA", "Transfer"},
		{"SGE", "Singapore Experience"},
		{"OVE", "Overseas Experience"},
	}}

	MaidAge = IntRange("maid_age", 23, 50)

	PropertyType = ChoiceSet{Name: "enquiry_property_type", Choices: []Choice{
		{"2RMHDB", "2-Room HDB"},
		{"3RMHDB", "3-Room HDB"},
		{"4RMHDB", "4-Room HDB"},
		{"5RMHDB", "5-Room HDB"},
		{"E/MHDB", "Executive/Maisonette HDB"},
		{"CONDO", "Condominium"},
		{"CONDOP", "Condominium Penthouse"},
		{"TERRACE", "Terrace"},
		{"SEMI-D", "Semi-Detached"},
		{"BUNGLO", "Bungalow"},
		{"OTH", "Others"},
	}}
)
