package directory

// PageSize is the number of records SWAPI returns per listing page
const PageSize = 10

// PageUnit is one selectable entry of the pagination strip
type PageUnit struct {
	Number int
	Active bool
}

// TotalPages derives the page count from the listing's total record count
func TotalPages(count, pageSize int) int {
	if count <= 0 || pageSize <= 0 {
		return 0
	}
	return (count + pageSize - 1) / pageSize
}

// PageUnits returns one unit per page from 1 to total, marking current as active.
// total <= 0 yields no units.
func PageUnits(current, total int) []PageUnit {
	if total <= 0 {
		return nil
	}
	units := make([]PageUnit, total)
	for i := range units {
		n := i + 1
		units[i] = PageUnit{Number: n, Active: n == current}
	}
	return units
}
