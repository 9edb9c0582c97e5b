package rules

// Equipment length whitelist per SKY equipment type, in meters. Read-only
// after initialization; every element of equipmentLengths must belong to the
// set for the chosen type.
var equipmentLengths = map[string][]int{
	"1 ton":   {16, 18, 20, 21},
	"1.2 ton": {19, 20, 22},
	"2.5 ton": {24, 25, 26, 28},
	"3.5 ton": {28, 30, 32, 34, 35},
	"5 ton":   {38, 40, 45, 50, 54},
	"17 ton":  {58, 60, 65},
	"19 ton":  {70, 75},
}

// EquipmentTypes returns the fixed set of valid SKY equipment types.
func EquipmentTypes() []string {
	types := make([]string, 0, len(equipmentLengths))
	for t := range equipmentLengths {
		types = append(types, t)
	}
	return types
}

// AllowedLengths returns the whitelist for one equipment type.
func AllowedLengths(equipmentType string) ([]int, bool) {
	lengths, ok := equipmentLengths[equipmentType]
	return lengths, ok
}

func isAllowedLength(equipmentType string, length int) bool {
	for _, l := range equipmentLengths[equipmentType] {
		if l == length {
			return true
		}
	}
	return false
}
