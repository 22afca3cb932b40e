package constant

// Report workflow status values. There is no transition graph; any value may
// replace any other through the admin update endpoint.
const (
	StatusPending    = "Pending"
	StatusInProgress = "In Progress"
	StatusResolved   = "Resolved"
	StatusRejected   = "Rejected"
)

// Triage categories assigned to a report. CategoryButuhVerifikasi is the
// default until the detection result (or an admin) says otherwise.
const (
	CategorySampah          = "Sampah"
	CategoryBanjir          = "Banjir"
	CategoryJalanRusak      = "Jalan Rusak"
	CategoryPohonTumbang    = "Pohon Tumbang"
	CategoryButuhVerifikasi = "Butuh Verifikasi"
)

const (
	// ClassAIError marks a report whose classification call failed at intake.
	// The scheduler picks these up later.
	ClassAIError = "AI_Error"

	// ClassUnknown is used when the detection API answered but returned no
	// predictions.
	ClassUnknown = "Unknown"
)

// Mock-mode substitutes, used when the classifier has no API key configured.
const (
	MockClass      = "Sampah (Mock)"
	MockConfidence = 0.95
)

// PlaceholderImageURL is stored instead of a real object URL when S3 is
// unconfigured (local development without storage credentials).
const PlaceholderImageURL = "https://placehold.co/600x400?text=EnvWatch+Report"

// DemoTicketID returns a synthetic record from the lookup endpoint when demo
// mode is enabled. With demo mode off it is treated as a normal ticket ID.
const DemoTicketID = "TEST-123"

// GarbageConfidenceThreshold is the minimum confidence for a garbage-keyword
// match to auto-assign CategorySampah.
const GarbageConfidenceThreshold = 0.4

// GarbageKeywords are matched against the lower-cased predicted class.
var GarbageKeywords = []string{"garbage", "trash", "plastic", "sampah"}

func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusResolved, StatusRejected:
		return true
	}
	return false
}

func ValidCategory(c string) bool {
	switch c {
	case CategorySampah, CategoryBanjir, CategoryJalanRusak, CategoryPohonTumbang, CategoryButuhVerifikasi:
		return true
	}
	return false
}
