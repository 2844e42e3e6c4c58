package models

const (
	DosageUnitMilligram = "mg"
	DosageUnitGram      = "g"

	DateFormatMonthFirst = "MM/DD/YYYY"
	DateFormatDayFirst   = "DD/MM/YYYY"
)

type Preferences struct {
	DosageUnit     string `json:"dosageUnit"`
	DateFormat     string `json:"dateFormat"`
	PrivateProfile bool   `json:"privateProfile"`
}

type UserProfile struct {
	Name        string      `json:"name"`
	Email       string      `json:"email"`
	Preferences Preferences `json:"preferences"`
}

func DefaultUserProfile() UserProfile {
	return UserProfile{
		Name:  "Guest User",
		Email: "",
		Preferences: Preferences{
			DosageUnit:     DosageUnitMilligram,
			DateFormat:     DateFormatMonthFirst,
			PrivateProfile: true,
		},
	}
}
