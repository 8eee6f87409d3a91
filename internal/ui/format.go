package ui

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DateAddedLayout renders creation timestamps as dd-MM-yyyy
const DateAddedLayout = "02-01-2006"

const imageBaseURL = "https://picsum.photos/200"

// FormatHeight converts a height in centimeters to meters with two decimals.
// Values SWAPI reports as text ("unknown") pass through unchanged.
func FormatHeight(cm string) string {
	v, err := strconv.ParseFloat(strings.ReplaceAll(cm, ",", ""), 64)
	if err != nil {
		return cm
	}
	return fmt.Sprintf("%.2f meters", v/100)
}

// FormatMass appends the unit to a numeric mass
func FormatMass(kg string) string {
	if _, err := strconv.ParseFloat(strings.ReplaceAll(kg, ",", ""), 64); err != nil {
		return kg
	}
	return kg + " kg"
}

// FormatDateAdded renders a creation time, or "unknown" when missing
func FormatDateAdded(t time.Time) string {
	if t.IsZero() {
		return "unknown"
	}
	return t.Format(DateAddedLayout)
}

// ImageURL returns the decorative placeholder image for a record name
func ImageURL(name string) string {
	return imageBaseURL + "?random=" + url.QueryEscape(name)
}
