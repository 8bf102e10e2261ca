package utils

func ContainsString(targetString string, sliceOfStrings []string) bool {
	for i := range sliceOfStrings {
		if sliceOfStrings[i] == targetString {
			return true
		}
	}
	return false
}

func ContainsInt(targetInt int, sliceOfInts []int) bool {
	for i := range sliceOfInts {
		if sliceOfInts[i] == targetInt {
			return true
		}
	}
	return false
}

// SameStrings returns true if both slices hold the same strings in the same order
func SameStrings(a []string, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
