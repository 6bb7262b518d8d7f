package models

// Role identifies how a user participates in the platform.
type Role string

// Supported user roles.
const (
	RoleNeedy     Role = "needy"
	RoleVolunteer Role = "volunteer"
	RoleDonor     Role = "donor"
	RoleGeneral   Role = "general"
)

// User represents a registered account of any role.
type User struct {
	BaseModel
	Name      string `json:"name"`
	Email     string `gorm:"uniqueIndex" json:"email"`
	Phone     string `json:"phone"`
	Password  string `json:"-"`
	City      string `json:"city"`
	Pincode   string `json:"pincode"`
	DOB       string `json:"dob"`
	Role      Role   `json:"role"`
	BloodType string `json:"bloodType"`
	Age       int    `json:"age"`

	Skills       []string      `gorm:"serializer:json" json:"volunteerSkills"`
	DonorProfile *DonorProfile `gorm:"serializer:json" json:"donorInfo,omitempty"`
}

// DonorProfile captures the health questionnaire a donor fills in
// before they may accept blood or organ alerts.
type DonorProfile struct {
	BloodType           string   `json:"bloodType"`
	ChronicDiseases     bool     `json:"chronicDiseases"`
	ChronicDiseasesList []string `json:"chronicDiseasesList,omitempty"`
	RecentIllness       bool     `json:"recentIllness"`
	RecentIllnessList   []string `json:"recentIllnessList,omitempty"`
	Vaccinated          bool     `json:"vaccinated"`
	VaccineDays         int      `json:"vaccineDays,omitempty"`
	SubstanceUse        bool     `json:"substanceUse"`
	SubstanceUseDays    int      `json:"substanceUseDays,omitempty"`
	GuardianName        string   `json:"guardianName"`
	GuardianRelation    string   `json:"guardianRelationship"`
	GuardianPhone       string   `json:"guardianPhone"`
}
