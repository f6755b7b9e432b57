package models

// HomeNumbers is the fixed set of unit codes in the building:
// ground floor, first floor and second floor flats.
var HomeNumbers = []string{"G1", "F1", "F2", "S1", "S2"}

// ValidHomeNo reports whether code is one of the known unit codes.
func ValidHomeNo(code string) bool {
	for _, h := range HomeNumbers {
		if h == code {
			return true
		}
	}
	return false
}

// MonthNames maps month number (1-12) to the display name stored on
// collection and expense rows.
var MonthNames = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// ValidMonth reports whether name is a full English month name.
func ValidMonth(name string) bool {
	for _, m := range MonthNames {
		if m == name {
			return true
		}
	}
	return false
}

// Collection categories.
const (
	CategoryMaintenance = "Maintenance"
	CategoryWater       = "Water"
	CategoryCorpusFund  = "Corpus Fund"
	CategoryOthers      = "Others"
)

// ValidCategory reports whether c is a known collection category.
func ValidCategory(c string) bool {
	switch c {
	case CategoryMaintenance, CategoryWater, CategoryCorpusFund, CategoryOthers:
		return true
	}
	return false
}
